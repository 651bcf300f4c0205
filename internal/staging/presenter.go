package staging

// Severity is the display tier a stage maps to. The UI layer owns the
// actual colours; the tier is the contract.
type Severity int

const (
	SeverityNeutral Severity = iota // Unknown
	SeverityNone                    // stage 0
	SeverityLow                     // stage I
	SeverityMedium                  // stage II
	SeverityHigh                    // stage III
	SeverityCritical                // stage IV
)

func (s Severity) String() string {
	switch s {
	case SeverityNeutral:
		return "neutral"
	case SeverityNone:
		return "none"
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "neutral"
	}
}

// Label returns the human-readable form, e.g. "Stage IIIB". StageUnknown
// is rendered as "Unknown" with no prefix.
func (s Stage) Label() string {
	if s == StageUnknown {
		return "Unknown"
	}
	return "Stage " + s.String()
}

// Severity returns the display tier for a stage. Total over the Stage enum;
// unrecognized values fall back to the neutral tier.
func (s Stage) Severity() Severity {
	switch s {
	case Stage0:
		return SeverityNone
	case StageI:
		return SeverityLow
	case StageIIA, StageIIB, StageIIC:
		return SeverityMedium
	case StageIIIA, StageIIIB, StageIIIC:
		return SeverityHigh
	case StageIVA, StageIVB, StageIVC:
		return SeverityCritical
	default:
		return SeverityNeutral
	}
}
