package staging

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemo_MatchesDirectClassification(t *testing.T) {
	memo := NewMemo()
	for _, tc := range allT {
		for _, nc := range allN {
			for _, mc := range allM {
				in := Input{T: tc, N: nc, M: mc, Edition: Edition8}
				require.Equal(t, Classify(in), memo.Classify(in))
				// Cached path must return the identical result.
				require.Equal(t, Classify(in), memo.Classify(in))
			}
		}
	}
	assert.Equal(t, len(allT)*len(allN)*len(allM), memo.Len())
}

func TestMemo_KeyIncludesEdition(t *testing.T) {
	memo := NewMemo()
	in7 := Input{T: T3, N: N0, M: M0, Edition: Edition7}
	in8 := Input{T: T3, N: N0, M: M0, Edition: Edition8}
	memo.Classify(in7)
	memo.Classify(in8)
	assert.Equal(t, 2, memo.Len())
}

func TestMemo_ConcurrentCallers(t *testing.T) {
	memo := NewMemo()
	in := Input{T: T2, N: N1, M: M0, Edition: Edition8}
	want := Classify(in)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if got := memo.Classify(in); got != want {
					t.Errorf("got %+v, want %+v", got, want)
					return
				}
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, memo.Len())
}
