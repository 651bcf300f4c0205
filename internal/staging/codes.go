// Package staging classifies colorectal carcinoma TNM codes into AJCC
// anatomic stage groups. Classification is a pure function of the code
// triple and the AJCC edition: no state, no I/O, identical inputs always
// produce identical results.
package staging

import "fmt"

// Edition identifies which AJCC staging edition's vocabulary applies.
// Edition 8 distinguishes N1c and M1a-c; edition 7 predates N1c and M1c.
type Edition int

const (
	Edition7 Edition = 7
	Edition8 Edition = 8
)

// Valid reports whether e is a supported AJCC edition.
func (e Edition) Valid() bool {
	return e == Edition7 || e == Edition8
}

func (e Edition) String() string {
	return fmt.Sprintf("AJCC %dth edition", int(e))
}

// TCode describes primary tumour extent. TX means the tumour could not be
// assessed; it is a distinct state, never interchangeable with T0.
type TCode int

const (
	TX TCode = iota
	T0
	Tis
	T1
	T2
	T3
	T4 // sub-designation unavailable; never upgraded to T4a or T4b
	T4a
	T4b
)

func (t TCode) String() string {
	switch t {
	case TX:
		return "Tx"
	case T0:
		return "T0"
	case Tis:
		return "Tis"
	case T1:
		return "T1"
	case T2:
		return "T2"
	case T3:
		return "T3"
	case T4:
		return "T4"
	case T4a:
		return "T4a"
	case T4b:
		return "T4b"
	default:
		return fmt.Sprintf("TCode(%d)", int(t))
	}
}

// NCode describes regional lymph node involvement.
type NCode int

const (
	NX NCode = iota
	N0
	N1
	N1a
	N1b
	N1c // tumour deposits without nodal metastasis; edition 8 only
	N2
	N2a
	N2b
)

func (n NCode) String() string {
	switch n {
	case NX:
		return "Nx"
	case N0:
		return "N0"
	case N1:
		return "N1"
	case N1a:
		return "N1a"
	case N1b:
		return "N1b"
	case N1c:
		return "N1c"
	case N2:
		return "N2"
	case N2a:
		return "N2a"
	case N2b:
		return "N2b"
	default:
		return fmt.Sprintf("NCode(%d)", int(n))
	}
}

// MCode describes distant metastasis status.
type MCode int

const (
	MX MCode = iota
	M0
	M1 // sub-stage unspecified; accepted for older records
	M1a
	M1b
	M1c // edition 8 only
)

func (m MCode) String() string {
	switch m {
	case MX:
		return "Mx"
	case M0:
		return "M0"
	case M1:
		return "M1"
	case M1a:
		return "M1a"
	case M1b:
		return "M1b"
	case M1c:
		return "M1c"
	default:
		return fmt.Sprintf("MCode(%d)", int(m))
	}
}

// Input is a canonical TNM triple tagged with the edition whose sub-stage
// semantics apply. Construct it with Normalize; a hand-built Input is only
// meaningful if its codes are valid for its edition.
type Input struct {
	T       TCode
	N       NCode
	M       MCode
	Edition Edition
}

// InvalidCodeError reports a token that is not a recognized code for its
// axis, or a code that does not exist in the requested edition.
type InvalidCodeError struct {
	Axis    string // "T", "N", "M", or "edition"
	Token   string // the raw token as supplied
	Edition Edition
	Reason  string
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid %s code %q: %s", e.Axis, e.Token, e.Reason)
}
