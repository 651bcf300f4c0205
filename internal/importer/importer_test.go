package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdsykes2512/surg-db-sub000/internal/records"
	"github.com/pdsykes2512/surg-db-sub000/internal/staging"
	"github.com/pdsykes2512/surg-db-sub000/internal/store"
)

const sampleBatch = `
episodes:
  - patient_ref: NHS-100-001
    hospital: RDE
    diagnosis_date: "2026-01-12"
    tumours:
      - site: sigmoid colon
        histology: adenocarcinoma
        basis: pathological
        t: T3
        n: N1a
        m: M0
    treatments:
      - kind: surgery
        start_date: "2026-02-03"
        detail: sigmoid colectomy
  - patient_ref: NHS-100-002
    hospital: RDE
    diagnosis_date: "2026-01-20"
    tumours:
      - site: rectum
        basis: clinical
        t: T2
        n: N0
        m: M0
  - patient_ref: NHS-100-003
    hospital: RDE
    tumours:
      - site: caecum
        basis: clinical
        t: T9
        n: N0
        m: M0
`

func newTestImporter(t *testing.T) (*Importer, *store.Store) {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return New(st, staging.Edition8, zap.NewNop()), st
}

func TestImportFile_MixedBatch(t *testing.T) {
	im, st := newTestImporter(t)

	path := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleBatch), 0o644))

	res, err := im.ImportFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Episodes)
	assert.Equal(t, 2, res.Tumours)
	assert.Equal(t, 1, res.Treatments)
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, 2, res.Rejected[0].Index)
	assert.Equal(t, "NHS-100-003", res.Rejected[0].PatientRef)
	assert.Contains(t, res.Rejected[0].Reason, "T")

	eps, err := st.ListEpisodes("")
	require.NoError(t, err)
	assert.Len(t, eps, 2)
}

func TestImportFile_JSON(t *testing.T) {
	im, st := newTestImporter(t)

	body := `{"episodes": [{
		"patient_ref": "NHS-200-001",
		"hospital": "RDE",
		"tumours": [{"site": "rectum", "basis": "clinical", "t": "T4a", "n": "N2a", "m": "M0", "edition": 8}]
	}]}`
	path := filepath.Join(t.TempDir(), "batch.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	res, err := im.ImportFile(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 1, res.Episodes)
	assert.Empty(t, res.Rejected)

	eps, err := st.ListEpisodes("")
	require.NoError(t, err)
	require.Len(t, eps, 1)

	tums, err := st.ListTumours(eps[0].ID)
	require.NoError(t, err)
	require.Len(t, tums, 1)
	assert.Equal(t, staging.StageIIIC, tums[0].Result.Stage)
}

func TestImport_DefaultEditionApplies(t *testing.T) {
	// An edition-7 site submitting N1c must be rejected, not reinterpreted.
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	im := New(st, staging.Edition7, nil)

	batch := Batch{Episodes: []EpisodeEntry{{
		Episode: records.Episode{PatientRef: "NHS-300-001"},
		Tumours: []records.Tumour{{
			Site: "rectum", Basis: records.BasisClinical,
			T: "T2", N: "N1c", M: "M0",
		}},
	}}}

	res, err := im.Import(context.Background(), batch)
	require.NoError(t, err)
	assert.Zero(t, res.Episodes)
	require.Len(t, res.Rejected, 1)
	assert.Contains(t, res.Rejected[0].Reason, "N1c")
}

func TestImport_EmptyBatch(t *testing.T) {
	im, _ := newTestImporter(t)
	res, err := im.Import(context.Background(), Batch{})
	require.NoError(t, err)
	assert.Zero(t, res.Episodes)
	assert.Empty(t, res.Rejected)
}

func TestImport_LargeBatchConcurrent(t *testing.T) {
	im, st := newTestImporter(t)

	var batch Batch
	for i := 0; i < 50; i++ {
		batch.Episodes = append(batch.Episodes, EpisodeEntry{
			Episode: records.Episode{PatientRef: records.NewID()},
			Tumours: []records.Tumour{{
				Site: "colon", Basis: records.BasisClinical,
				T: "T3", N: "N0", M: "M0",
			}},
		})
	}

	res, err := im.Import(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, 50, res.Episodes)
	assert.Equal(t, 50, res.Tumours)

	eps, err := st.ListEpisodes(records.StatusOpen)
	require.NoError(t, err)
	assert.Len(t, eps, 50)
}
