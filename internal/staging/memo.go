package staging

import "sync"

// Memo caches classification results keyed on the exact (T, N, M, edition)
// tuple. Classification is referentially transparent, so a cached Result is
// bit-identical to a fresh one, imprecise flag included. The cache lives
// outside the classifier; Classify itself stays stateless.
//
// Safe for concurrent use. The zero value is not usable; call NewMemo.
type Memo struct {
	mu      sync.RWMutex
	results map[Input]Result
}

// NewMemo returns an empty memoizing wrapper around Classify.
func NewMemo() *Memo {
	return &Memo{results: make(map[Input]Result)}
}

// Classify returns the cached result for in, computing and storing it on
// first sight.
func (m *Memo) Classify(in Input) Result {
	m.mu.RLock()
	res, ok := m.results[in]
	m.mu.RUnlock()
	if ok {
		return res
	}

	res = Classify(in)

	m.mu.Lock()
	m.results[in] = res
	m.mu.Unlock()
	return res
}

// Len reports how many distinct tuples have been classified.
func (m *Memo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.results)
}
