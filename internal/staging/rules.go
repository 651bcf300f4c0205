package staging

// rule is one guard clause of the staging table. A nil code set matches any
// value on that axis, including the not-assessed codes; otherwise the input
// code must be listed. Rules are evaluated strictly in slice order and the
// first match wins.
type rule struct {
	t         []TCode
	n         []NCode
	m         []MCode
	stage     Stage
	imprecise bool
}

func (r rule) matches(in Input) bool {
	return matchT(r.t, in.T) && matchN(r.n, in.N) && matchM(r.m, in.M)
}

func matchT(set []TCode, t TCode) bool {
	if set == nil {
		return true
	}
	for _, c := range set {
		if c == t {
			return true
		}
	}
	return false
}

func matchN(set []NCode, n NCode) bool {
	if set == nil {
		return true
	}
	for _, c := range set {
		if c == n {
			return true
		}
	}
	return false
}

func matchM(set []MCode, m MCode) bool {
	if set == nil {
		return true
	}
	for _, c := range set {
		if c == m {
			return true
		}
	}
	return false
}

// anyN1 covers every nodal code the stage III groupings treat as N1.
var anyN1 = []NCode{N1, N1a, N1b, N1c}

// stagingRules is the ordered classification table. Ordering is load-bearing:
// distant metastasis outranks every locoregional grouping, so the M1 rules
// must run before any stage 0-III rule, and the stage III rows disambiguate
// T/N combinations that recur across groups. Do not reorder.
var stagingRules = []rule{
	// Any M1 variant forces a stage IV bucket regardless of T and N,
	// including unassessed T or N.
	{m: []MCode{M1a}, stage: StageIVA},
	{m: []MCode{M1b}, stage: StageIVB},
	{m: []MCode{M1c}, stage: StageIVC},
	// Bare M1 from older records: best available is IVA, flagged imprecise
	// so the caller never presents it as an exact assignment.
	{m: []MCode{M1}, stage: StageIVA, imprecise: true},

	{t: []TCode{Tis}, n: []NCode{N0}, m: []MCode{M0}, stage: Stage0},
	{t: []TCode{T1, T2}, n: []NCode{N0}, m: []MCode{M0}, stage: StageI},
	{t: []TCode{T3}, n: []NCode{N0}, m: []MCode{M0}, stage: StageIIA},
	{t: []TCode{T4a}, n: []NCode{N0}, m: []MCode{M0}, stage: StageIIB},
	{t: []TCode{T4b}, n: []NCode{N0}, m: []MCode{M0}, stage: StageIIC},

	{t: []TCode{T1, T2}, n: anyN1, m: []MCode{M0}, stage: StageIIIA},
	{t: []TCode{T1}, n: []NCode{N2a}, m: []MCode{M0}, stage: StageIIIA},
	{t: []TCode{T3, T4a}, n: anyN1, m: []MCode{M0}, stage: StageIIIB},
	{t: []TCode{T2, T3}, n: []NCode{N2a}, m: []MCode{M0}, stage: StageIIIB},
	{t: []TCode{T1, T2}, n: []NCode{N2b}, m: []MCode{M0}, stage: StageIIIB},
	{t: []TCode{T4a}, n: []NCode{N2a}, m: []MCode{M0}, stage: StageIIIC},
	{t: []TCode{T3, T4a}, n: []NCode{N2b}, m: []MCode{M0}, stage: StageIIIC},
	{t: []TCode{T4b}, n: []NCode{N1, N1a, N1b, N1c, N2, N2a, N2b}, m: []MCode{M0}, stage: StageIIIC},
}

// Classify maps a canonical TNM triple to its stage group.
//
// Unassessed T or N (with no distant metastasis recorded) yields
// StageUnknown rather than a guessed stage: coercing an unassessed axis to
// "0" would understage the patient. A triple no rule covers — a bare T4 or
// N2 whose sub-designation would decide between adjacent groups, or an
// unassessed M — also yields StageUnknown.
func Classify(in Input) Result {
	for _, r := range stagingRules {
		if r.matches(in) {
			return Result{Stage: r.stage, Imprecise: r.imprecise}
		}
	}
	return Result{Stage: StageUnknown}
}

// ClassifyCodes normalizes raw tokens and classifies them in one step.
func ClassifyCodes(t, n, m string, ed Edition) (Result, error) {
	in, err := Normalize(t, n, m, ed)
	if err != nil {
		return Result{}, err
	}
	return Classify(in), nil
}
