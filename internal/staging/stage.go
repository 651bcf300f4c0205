package staging

import "fmt"

// Stage is an AJCC anatomic stage group. StageUnknown is a legitimate
// output — it marks a triple that is valid but unassessed or unmapped,
// not an error condition.
type Stage int

const (
	StageUnknown Stage = iota
	Stage0
	StageI
	StageIIA
	StageIIB
	StageIIC
	StageIIIA
	StageIIIB
	StageIIIC
	StageIVA
	StageIVB
	StageIVC
)

func (s Stage) String() string {
	switch s {
	case StageUnknown:
		return "Unknown"
	case Stage0:
		return "0"
	case StageI:
		return "I"
	case StageIIA:
		return "IIA"
	case StageIIB:
		return "IIB"
	case StageIIC:
		return "IIC"
	case StageIIIA:
		return "IIIA"
	case StageIIIB:
		return "IIIB"
	case StageIIIC:
		return "IIIC"
	case StageIVA:
		return "IVA"
	case StageIVB:
		return "IVB"
	case StageIVC:
		return "IVC"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Result is the outcome of classifying a TNM triple. Imprecise marks a
// best-available assignment (a bare M1 without sub-letter) so callers can
// surface it to the clinician rather than present it as exact.
type Result struct {
	Stage     Stage
	Imprecise bool
}
