// Package records defines the clinical-audit domain model: treatment
// episodes, tumour pathology, and treatments. Records store raw TNM codes
// only; stage groups are computed from those codes at read time and are
// never part of the model, so a corrected staging table can never leave a
// stale stage behind.
package records

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pdsykes2512/surg-db-sub000/internal/staging"
)

// EpisodeStatus tracks the lifecycle of a treatment episode.
type EpisodeStatus string

const (
	StatusOpen   EpisodeStatus = "open"
	StatusClosed EpisodeStatus = "closed"
)

// StagingBasis records whether TNM codes were assigned clinically or from
// pathology after resection.
type StagingBasis string

const (
	BasisClinical     StagingBasis = "clinical"
	BasisPathological StagingBasis = "pathological"
)

// TreatmentKind is the modality of a treatment record.
type TreatmentKind string

const (
	TreatmentSurgery      TreatmentKind = "surgery"
	TreatmentChemotherapy TreatmentKind = "chemotherapy"
	TreatmentRadiotherapy TreatmentKind = "radiotherapy"
	TreatmentPalliative   TreatmentKind = "palliative"
)

var (
	ErrMissingPatientRef = errors.New("patient reference is required")
	ErrMissingEpisodeID  = errors.New("episode id is required")
	ErrMissingSite       = errors.New("tumour site is required")
	ErrBadStatus         = errors.New("episode status must be open or closed")
	ErrBadBasis          = errors.New("staging basis must be clinical or pathological")
	ErrBadTreatmentKind  = errors.New("unrecognized treatment kind")
	ErrBadCRM            = errors.New("CRM distance must be non-negative")
)

// Episode is one cancer-treatment episode for a patient at a hospital.
type Episode struct {
	ID             string        `json:"id" yaml:"id"`
	PatientRef     string        `json:"patient_ref" yaml:"patient_ref"`
	Hospital       string        `json:"hospital" yaml:"hospital"`
	ReferralSource string        `json:"referral_source" yaml:"referral_source"`
	DiagnosisDate  string        `json:"diagnosis_date" yaml:"diagnosis_date"` // ISO 8601 date
	Status         EpisodeStatus `json:"status" yaml:"status"`
	CreatedAt      time.Time     `json:"created_at" yaml:"-"`
	UpdatedAt      time.Time     `json:"updated_at" yaml:"-"`
}

// Tumour holds pathology for one tumour within an episode, including the
// raw TNM tokens exactly as entered and the AJCC edition they were staged
// under.
type Tumour struct {
	ID        string          `json:"id" yaml:"id"`
	EpisodeID string          `json:"episode_id" yaml:"episode_id"`
	Site      string          `json:"site" yaml:"site"`
	Histology string          `json:"histology" yaml:"histology"`
	Basis     StagingBasis    `json:"basis" yaml:"basis"`
	T         string          `json:"t" yaml:"t"`
	N         string          `json:"n" yaml:"n"`
	M         string          `json:"m" yaml:"m"`
	Edition   staging.Edition `json:"edition" yaml:"edition"`
	CRMmm     *float64        `json:"crm_mm,omitempty" yaml:"crm_mm,omitempty"` // circumferential resection margin
	CreatedAt time.Time       `json:"created_at" yaml:"-"`
	UpdatedAt time.Time       `json:"updated_at" yaml:"-"`
}

// Treatment is one treatment event within an episode.
type Treatment struct {
	ID        string        `json:"id" yaml:"id"`
	EpisodeID string        `json:"episode_id" yaml:"episode_id"`
	Kind      TreatmentKind `json:"kind" yaml:"kind"`
	StartDate string        `json:"start_date" yaml:"start_date"`
	Detail    string        `json:"detail" yaml:"detail"`
	CreatedAt time.Time     `json:"created_at" yaml:"-"`
}

// StagedTumour is a Tumour joined with its freshly computed stage group.
// Produced on read, never persisted.
type StagedTumour struct {
	Tumour
	Result   staging.Result
	Label    string
	Severity staging.Severity
}

// NewID returns a fresh record identifier.
func NewID() string {
	return uuid.NewString()
}

// Validate checks an episode before it is written.
func (e *Episode) Validate() error {
	if strings.TrimSpace(e.PatientRef) == "" {
		return ErrMissingPatientRef
	}
	switch e.Status {
	case StatusOpen, StatusClosed:
	default:
		return fmt.Errorf("%w: %q", ErrBadStatus, e.Status)
	}
	return nil
}

// Validate checks a tumour before it is written. The TNM tokens must
// normalize under the tumour's edition; a record that cannot be classified
// later is rejected now.
func (t *Tumour) Validate() error {
	if strings.TrimSpace(t.EpisodeID) == "" {
		return ErrMissingEpisodeID
	}
	if strings.TrimSpace(t.Site) == "" {
		return ErrMissingSite
	}
	switch t.Basis {
	case BasisClinical, BasisPathological:
	default:
		return fmt.Errorf("%w: %q", ErrBadBasis, t.Basis)
	}
	if t.CRMmm != nil && *t.CRMmm < 0 {
		return ErrBadCRM
	}
	if _, err := staging.Normalize(t.T, t.N, t.M, t.Edition); err != nil {
		return err
	}
	return nil
}

// Validate checks a treatment before it is written.
func (tr *Treatment) Validate() error {
	if strings.TrimSpace(tr.EpisodeID) == "" {
		return ErrMissingEpisodeID
	}
	switch tr.Kind {
	case TreatmentSurgery, TreatmentChemotherapy, TreatmentRadiotherapy, TreatmentPalliative:
	default:
		return fmt.Errorf("%w: %q", ErrBadTreatmentKind, tr.Kind)
	}
	return nil
}

// Staged classifies the tumour's stored codes and attaches the presentation
// contract. Validate has already guaranteed the codes normalize, but a
// malformed row read back from storage still surfaces as an error rather
// than a guessed stage.
func (t *Tumour) Staged() (StagedTumour, error) {
	res, err := staging.ClassifyCodes(t.T, t.N, t.M, t.Edition)
	if err != nil {
		return StagedTumour{}, fmt.Errorf("classify tumour %s: %w", t.ID, err)
	}
	return StagedTumour{
		Tumour:   *t,
		Result:   res,
		Label:    res.Stage.Label(),
		Severity: res.Stage.Severity(),
	}, nil
}
