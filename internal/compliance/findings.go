// Package compliance derives audit findings from trace links and threshold
// comparisons, and shapes them into audit entries and report rows.
package compliance

// Finding is one classified compliance outcome for a regulatory rule.
type Finding string

const (
	FindingCompliant        Finding = "COMPLIANT"
	FindingMissingPolicy    Finding = "MISSING_POLICY"
	FindingMissingSystem    Finding = "MISSING_SYSTEM"
	FindingSystemTooLenient Finding = "SYSTEM_TOO_LENIENT"
	FindingControlWeakened  Finding = "CONTROL_WEAKENED"
)

// Severity ranks the urgency of a finding set.
type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// SeverityFor maps a finding set to its severity. An unenforced or
// under-enforced limit is always HIGH; a weakened qualitative control is
// MEDIUM; everything else, including a missing policy alone, is LOW.
func SeverityFor(findings []Finding) Severity {
	weakened := false

	for _, f := range findings {
		switch f {
		case FindingSystemTooLenient, FindingMissingSystem:
			return SeverityHigh
		case FindingControlWeakened:
			weakened = true
		}
	}

	if weakened {
		return SeverityMedium
	}
	return SeverityLow
}
