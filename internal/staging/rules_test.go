package staging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	allT = []TCode{TX, T0, Tis, T1, T2, T3, T4, T4a, T4b}
	allN = []NCode{NX, N0, N1, N1a, N1b, N1c, N2, N2a, N2b}
	allM = []MCode{MX, M0, M1, M1a, M1b, M1c}
)

func TestClassify_KnownGroupings(t *testing.T) {
	tests := []struct {
		name      string
		t         TCode
		n         NCode
		m         MCode
		want      Stage
		imprecise bool
	}{
		{"carcinoma in situ", Tis, N0, M0, Stage0, false},
		{"T1 node negative", T1, N0, M0, StageI, false},
		{"T2 node negative", T2, N0, M0, StageI, false},
		{"T3 node negative", T3, N0, M0, StageIIA, false},
		{"T4a node negative", T4a, N0, M0, StageIIB, false},
		{"T4b node negative", T4b, N0, M0, StageIIC, false},
		{"T2 N1", T2, N1, M0, StageIIIA, false},
		{"T1 N1c tumour deposits", T1, N1c, M0, StageIIIA, false},
		{"T1 N2a", T1, N2a, M0, StageIIIA, false},
		{"T3 N1", T3, N1, M0, StageIIIB, false},
		{"T4a N1b", T4a, N1b, M0, StageIIIB, false},
		{"T2 N2a", T2, N2a, M0, StageIIIB, false},
		{"T3 N2a", T3, N2a, M0, StageIIIB, false},
		{"T1 N2b", T1, N2b, M0, StageIIIB, false},
		{"T2 N2b", T2, N2b, M0, StageIIIB, false},
		{"T4a N2a", T4a, N2a, M0, StageIIIC, false},
		{"T3 N2b", T3, N2b, M0, StageIIIC, false},
		{"T4a N2b", T4a, N2b, M0, StageIIIC, false},
		{"T4b any nodal involvement", T4b, N2, M0, StageIIIC, false},
		{"lung metastasis overrides stage I", T1, N0, M1b, StageIVB, false},
		{"peritoneal metastasis", T3, N1, M1c, StageIVC, false},
		{"single-site metastasis", T4b, N2b, M1a, StageIVA, false},
		{"bare M1 falls back to IVA imprecisely", T2, N0, M1, StageIVA, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(Input{T: tt.t, N: tt.n, M: tt.m, Edition: Edition8})
			assert.Equal(t, tt.want, got.Stage)
			assert.Equal(t, tt.imprecise, got.Imprecise)
		})
	}
}

func TestClassify_MetastasisPrecedence(t *testing.T) {
	// M1 sub-stages decide the stage IV bucket no matter what T and N say,
	// unassessed axes included.
	for _, tc := range allT {
		for _, nc := range allN {
			in := Input{T: tc, N: nc, Edition: Edition8}

			in.M = M1a
			assert.Equal(t, Result{Stage: StageIVA}, Classify(in), "T=%s N=%s M1a", tc, nc)

			in.M = M1b
			assert.Equal(t, Result{Stage: StageIVB}, Classify(in), "T=%s N=%s M1b", tc, nc)

			in.M = M1c
			assert.Equal(t, Result{Stage: StageIVC}, Classify(in), "T=%s N=%s M1c", tc, nc)

			in.M = M1
			assert.Equal(t, Result{Stage: StageIVA, Imprecise: true}, Classify(in), "T=%s N=%s M1", tc, nc)
		}
	}
}

func TestClassify_UnassessedNeverStaged(t *testing.T) {
	// An unassessed T or N must never be coerced into a numbered stage:
	// understaging is a patient-safety hazard.
	tests := []struct {
		name string
		in   Input
	}{
		{"tumour not assessed", Input{T: TX, N: N0, M: M0, Edition: Edition8}},
		{"nodes not assessed", Input{T: T2, N: NX, M: M0, Edition: Edition8}},
		{"both not assessed", Input{T: TX, N: NX, M: M0, Edition: Edition8}},
		{"metastasis not assessed", Input{T: T3, N: N0, M: MX, Edition: Edition8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Result{Stage: StageUnknown}, Classify(tt.in))
		})
	}
}

func TestClassify_AmbiguousSubstagesStayUnknown(t *testing.T) {
	// A bare T4 cannot decide between IIB and IIC, and a bare N2 between
	// IIIB and IIIC (except under T4b), so no stage is guessed.
	assert.Equal(t, StageUnknown, Classify(Input{T: T4, N: N0, M: M0, Edition: Edition8}).Stage)
	assert.Equal(t, StageUnknown, Classify(Input{T: T3, N: N2, M: M0, Edition: Edition8}).Stage)
	assert.Equal(t, StageUnknown, Classify(Input{T: T0, N: N0, M: M0, Edition: Edition8}).Stage)
}

func TestClassify_TotalAndDeterministic(t *testing.T) {
	valid := map[Stage]bool{
		StageUnknown: true, Stage0: true, StageI: true,
		StageIIA: true, StageIIB: true, StageIIC: true,
		StageIIIA: true, StageIIIB: true, StageIIIC: true,
		StageIVA: true, StageIVB: true, StageIVC: true,
	}

	for _, ed := range []Edition{Edition7, Edition8} {
		for _, tc := range allT {
			for _, nc := range allN {
				for _, mc := range allM {
					in := Input{T: tc, N: nc, M: mc, Edition: ed}
					first := Classify(in)
					require.True(t, valid[first.Stage], "unexpected stage %v for %+v", first.Stage, in)
					assert.Equal(t, first, Classify(in), "classification not idempotent for %+v", in)
				}
			}
		}
	}
}

func TestClassifyCodes_EditionIsolation(t *testing.T) {
	// N1c exists only in the 8th edition; a 7th-edition record carrying it
	// is malformed and must be rejected, not reinterpreted.
	res, err := ClassifyCodes("T2", "N1c", "M0", Edition8)
	require.NoError(t, err)
	assert.Equal(t, StageIIIA, res.Stage)

	_, err = ClassifyCodes("T2", "N1c", "M0", Edition7)
	var invalid *InvalidCodeError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "N", invalid.Axis)
	assert.Equal(t, Edition7, invalid.Edition)
}

func TestClassifyCodes_Scenarios(t *testing.T) {
	tests := []struct {
		t, n, m   string
		want      Stage
		imprecise bool
	}{
		{"Tis", "N0", "M0", Stage0, false},
		{"T3", "N0", "M0", StageIIA, false},
		{"T4b", "N0", "M0", StageIIC, false},
		{"T2", "N1", "M0", StageIIIA, false},
		{"T4a", "N2a", "M0", StageIIIC, false},
		{"T1", "N0", "M1b", StageIVB, false},
		{"T2", "N0", "M1", StageIVA, true},
	}
	for _, tt := range tests {
		res, err := ClassifyCodes(tt.t, tt.n, tt.m, Edition8)
		require.NoError(t, err, "%s/%s/%s", tt.t, tt.n, tt.m)
		assert.Equal(t, tt.want, res.Stage, "%s/%s/%s", tt.t, tt.n, tt.m)
		assert.Equal(t, tt.imprecise, res.Imprecise, "%s/%s/%s", tt.t, tt.n, tt.m)
	}
}
