// Package importer loads batches of audit records from YAML or JSON files,
// the format sites use for bulk submissions. Every record is validated
// before anything is written: staging codes that do not normalize under the
// record's edition reject that episode rather than being silently fixed.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/pdsykes2512/surg-db-sub000/internal/records"
	"github.com/pdsykes2512/surg-db-sub000/internal/staging"
	"github.com/pdsykes2512/surg-db-sub000/internal/store"
)

// insertWorkers bounds concurrent episode inserts. The store serializes
// writes anyway; the bound keeps validation and classification overlapped
// with I/O without flooding the scheduler on huge batches.
const insertWorkers = 4

// Batch is the on-disk submission format.
type Batch struct {
	Episodes []EpisodeEntry `json:"episodes" yaml:"episodes"`
}

// EpisodeEntry is one episode with its nested tumours and treatments.
type EpisodeEntry struct {
	records.Episode `yaml:",inline"`
	Tumours         []records.Tumour    `json:"tumours" yaml:"tumours"`
	Treatments      []records.Treatment `json:"treatments" yaml:"treatments"`
}

// Reject describes a batch entry that failed validation.
type Reject struct {
	Index      int    // position in the batch, zero-based
	PatientRef string
	Reason     string
}

// Result summarizes an import run.
type Result struct {
	Episodes   int
	Tumours    int
	Treatments int
	Rejected   []Reject
}

// Importer writes validated batches into a store.
type Importer struct {
	store          *store.Store
	defaultEdition staging.Edition
	log            *zap.Logger
}

// New returns an Importer. defaultEdition applies to tumours whose entry
// does not carry an edition tag.
func New(st *store.Store, defaultEdition staging.Edition, log *zap.Logger) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{store: st, defaultEdition: defaultEdition, log: log}
}

// ImportFile parses and imports the batch at path. The extension picks the
// codec: .json is JSON, anything else is YAML.
func (im *Importer) ImportFile(ctx context.Context, path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read batch: %w", err)
	}

	var batch Batch
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &batch)
	} else {
		err = yaml.Unmarshal(data, &batch)
	}
	if err != nil {
		return Result{}, fmt.Errorf("parse batch %s: %w", path, err)
	}

	return im.Import(ctx, batch)
}

// Import validates every entry, then inserts the valid ones concurrently.
// Validation failures reject the whole entry (an episode whose tumour
// cannot be classified is not worth half-importing); insert failures abort
// the run, since they mean the store itself is unhealthy.
func (im *Importer) Import(ctx context.Context, batch Batch) (Result, error) {
	var res Result
	var accepted []EpisodeEntry

	for i := range batch.Episodes {
		entry := batch.Episodes[i]
		if err := im.prepare(&entry); err != nil {
			res.Rejected = append(res.Rejected, Reject{
				Index:      i,
				PatientRef: entry.PatientRef,
				Reason:     err.Error(),
			})
			im.log.Warn("batch entry rejected",
				zap.Int("index", i),
				zap.String("patient_ref", entry.PatientRef),
				zap.Error(err))
			continue
		}
		accepted = append(accepted, entry)
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(insertWorkers)

	for i := range accepted {
		entry := accepted[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := im.insert(entry); err != nil {
				return fmt.Errorf("import %s: %w", entry.PatientRef, err)
			}
			mu.Lock()
			res.Episodes++
			res.Tumours += len(entry.Tumours)
			res.Treatments += len(entry.Treatments)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}

	im.log.Info("batch imported",
		zap.Int("episodes", res.Episodes),
		zap.Int("tumours", res.Tumours),
		zap.Int("treatments", res.Treatments),
		zap.Int("rejected", len(res.Rejected)))
	return res, nil
}

// prepare fills in ids, links children to their episode, applies the
// default edition, and validates everything.
func (im *Importer) prepare(entry *EpisodeEntry) error {
	if entry.ID == "" {
		entry.ID = records.NewID()
	}
	if entry.Status == "" {
		entry.Status = records.StatusOpen
	}
	if err := entry.Episode.Validate(); err != nil {
		return err
	}

	for j := range entry.Tumours {
		t := &entry.Tumours[j]
		if t.ID == "" {
			t.ID = records.NewID()
		}
		t.EpisodeID = entry.ID
		if t.Edition == 0 {
			t.Edition = im.defaultEdition
		}
		if err := t.Validate(); err != nil {
			return fmt.Errorf("tumour %d: %w", j, err)
		}
	}
	for j := range entry.Treatments {
		tr := &entry.Treatments[j]
		if tr.ID == "" {
			tr.ID = records.NewID()
		}
		tr.EpisodeID = entry.ID
		if err := tr.Validate(); err != nil {
			return fmt.Errorf("treatment %d: %w", j, err)
		}
	}
	return nil
}

func (im *Importer) insert(entry EpisodeEntry) error {
	if err := im.store.CreateEpisode(&entry.Episode); err != nil {
		return err
	}
	for j := range entry.Tumours {
		if err := im.store.CreateTumour(&entry.Tumours[j]); err != nil {
			return err
		}
	}
	for j := range entry.Treatments {
		if err := im.store.CreateTreatment(&entry.Treatments[j]); err != nil {
			return err
		}
	}
	return nil
}
