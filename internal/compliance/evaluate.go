package compliance

import (
	"github.com/wardenhq/warden/internal/extraction"
	"github.com/wardenhq/warden/internal/linking"
	"github.com/wardenhq/warden/internal/rules"
)

// Evidence carries the matched rule texts backing an audit entry.
type Evidence struct {
	Policy string `json:"policy,omitempty"`
	System string `json:"system,omitempty"`
}

// AuditEntry is the per-regulation audit outcome.
type AuditEntry struct {
	RegulationText string    `json:"regulation_text"`
	Findings       []Finding `json:"findings"`
	Severity       Severity  `json:"severity"`
	Evidence       Evidence  `json:"evidence"`
}

// EvaluateTrace derives the finding set for one trace link. The derivation
// is pure and order-independent over its rule set; COMPLIANT is asserted
// only when no other finding applies.
func EvaluateTrace(link linking.Link) AuditEntry {
	findings := make([]Finding, 0, 2)

	if link.Policy == nil {
		findings = append(findings, FindingMissingPolicy)
	}
	if link.System == nil {
		findings = append(findings, FindingMissingSystem)
	}

	if f, flagged := evaluateLimit(link); flagged {
		findings = append(findings, f)
	}
	if f, flagged := evaluateRequirement(link); flagged {
		findings = append(findings, f)
	}

	if len(findings) == 0 {
		findings = append(findings, FindingCompliant)
	}

	entry := AuditEntry{
		RegulationText: link.Regulation.RawText,
		Findings:       findings,
		Severity:       SeverityFor(findings),
	}

	if link.Policy != nil {
		entry.Evidence.Policy = link.Policy.Rule.RawText
	}
	if link.System != nil {
		entry.Evidence.System = link.System.Rule.RawText
	}

	return entry
}

// EvaluateTraces evaluates every link, preserving input order.
func EvaluateTraces(links []linking.Link) []AuditEntry {
	entries := make([]AuditEntry, len(links))
	for i, link := range links {
		entries[i] = EvaluateTrace(link)
	}
	return entries
}

// evaluateLimit checks enforcement of a regulatory LIMIT by the matched
// system rule. A missing system match is already flagged separately; a
// qualitative (non-LIMIT) system rule cannot enforce a numeric bound, and a
// numerically higher system bound under-enforces it.
func evaluateLimit(link linking.Link) (Finding, bool) {
	if link.Regulation.RuleType != rules.RuleLimit || link.System == nil {
		return "", false
	}

	if link.System.Rule.RuleType != rules.RuleLimit {
		return FindingSystemTooLenient, true
	}

	regVal, _ := extraction.ParseNumeric(link.Regulation.Value)
	sysVal, _ := extraction.ParseNumeric(link.System.Rule.Value)

	if regVal != nil && sysVal != nil && *sysVal > *regVal {
		return FindingSystemTooLenient, true
	}

	return "", false
}

// evaluateRequirement flags a mandatory regulatory control that the system
// implements as optional.
func evaluateRequirement(link linking.Link) (Finding, bool) {
	if link.Regulation.RuleType != rules.RuleRequirement || link.System == nil {
		return "", false
	}

	if link.Regulation.Operator == "REQUIRED" && link.System.Rule.Operator == "OPTIONAL" {
		return FindingControlWeakened, true
	}

	return "", false
}
