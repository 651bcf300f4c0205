package staging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_CanonicalForms(t *testing.T) {
	tests := []struct {
		name    string
		t, n, m string
		want    Input
	}{
		{"uppercase with prefixes", "T3", "N1B", "M0", Input{T: T3, N: N1b, M: M0, Edition: Edition8}},
		{"lowercase", "t4a", "n2b", "m1c", Input{T: T4a, N: N2b, M: M1c, Edition: Edition8}},
		{"bare digits", "2", "0", "0", Input{T: T2, N: N0, M: M0, Edition: Edition8}},
		{"surrounding whitespace", " T1 ", " N0", "M0 ", Input{T: T1, N: N0, M: M0, Edition: Edition8}},
		{"in situ", "tis", "n0", "m0", Input{T: Tis, N: N0, M: M0, Edition: Edition8}},
		{"empty means not assessed", "", "", "", Input{T: TX, N: NX, M: MX, Edition: Edition8}},
		{"explicit x", "Tx", "nX", "x", Input{T: TX, N: NX, M: MX, Edition: Edition8}},
		{"sub-stage preserved", "T4b", "N1c", "M1a", Input{T: T4b, N: N1c, M: M1a, Edition: Edition8}},
		{"bare parent codes preserved", "T4", "N2", "M1", Input{T: T4, N: N2, M: M1, Edition: Edition8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.t, tt.n, tt.m, Edition8)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_RejectsUnknownTokens(t *testing.T) {
	tests := []struct {
		name     string
		t, n, m  string
		wantAxis string
	}{
		{"garbage T", "T9", "N0", "M0", "T"},
		{"N token on T axis", "N1", "N0", "M0", "T"},
		{"garbage N", "T1", "N3", "M0", "N"},
		{"sub-letter on wrong code", "T1", "N0a", "M0", "N"},
		{"garbage M", "T1", "N0", "M2", "M"},
		{"word", "tumour", "N0", "M0", "T"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.t, tt.n, tt.m, Edition8)
			var invalid *InvalidCodeError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.wantAxis, invalid.Axis)
			assert.NotEmpty(t, invalid.Error())
		})
	}
}

func TestNormalize_EditionVocabulary(t *testing.T) {
	t.Run("edition 7 rejects N1c", func(t *testing.T) {
		_, err := Normalize("T2", "N1c", "M0", Edition7)
		var invalid *InvalidCodeError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "N", invalid.Axis)
	})

	t.Run("edition 7 rejects M1c", func(t *testing.T) {
		_, err := Normalize("T2", "N0", "M1c", Edition7)
		var invalid *InvalidCodeError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "M", invalid.Axis)
	})

	t.Run("edition 7 keeps shared vocabulary", func(t *testing.T) {
		in, err := Normalize("T4a", "N2b", "M1b", Edition7)
		require.NoError(t, err)
		assert.Equal(t, Input{T: T4a, N: N2b, M: M1b, Edition: Edition7}, in)
	})

	t.Run("unsupported edition", func(t *testing.T) {
		// The error must name the edition, not blame a code axis.
		_, err := Normalize("T1", "N0", "M0", Edition(6))
		var invalid *InvalidCodeError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "edition", invalid.Axis)
		assert.Equal(t, "6", invalid.Token)
	})
}

func TestNormalize_NeverCoercesUnassessed(t *testing.T) {
	// "x" and "0" are different clinical facts; an unassessed axis must
	// survive normalization as such.
	in, err := Normalize("Tx", "Nx", "Mx", Edition8)
	require.NoError(t, err)
	assert.NotEqual(t, T0, in.T)
	assert.NotEqual(t, N0, in.N)
	assert.NotEqual(t, M0, in.M)
}
