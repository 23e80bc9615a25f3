package rules

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var percentPattern = regexp.MustCompile(`(\d+)\s*(%|percent)`)

var ltvTerms = []string{"ltv", "loan-to-value", "loan to value"}

// Extract turns a classified candidate into a structured rule. Candidates
// whose text does not yield the fields their rule type requires are rejected
// outright; a partially filled record is never produced.
func Extract(c RuleCandidate) (StructuredRule, bool) {
	rule := StructuredRule{
		RuleID:     uuid.NewString(),
		DocType:    c.DocType,
		RuleType:   c.RuleType,
		RawText:    c.Text,
		SourceRef:  c.SourceRef,
		Confidence: c.Confidence,
	}

	lower := strings.ToLower(c.Text)

	switch c.RuleType {
	case RuleLimit:
		if containsAny(lower, ltvTerms) {
			rule.Metric = "LTV"
			rule.Operator = "<="
			if m := percentPattern.FindStringSubmatch(lower); m != nil {
				rule.Value = m[1] + "%"
			}
		}
	case RuleRequirement:
		if strings.Contains(lower, "income") {
			rule.Metric = "INCOME_VERIFICATION"
			if strings.Contains(lower, "must") {
				rule.Operator = "REQUIRED"
			} else {
				rule.Operator = "OPTIONAL"
			}
		}
	case RuleException:
		rule.Operator = "REQUIRES_APPROVAL"
		rule.Value = "TRUE"
	}

	if !validate(rule) {
		return StructuredRule{}, false
	}

	return rule, true
}

// ExtractAll extracts and validates every candidate, silently dropping
// rejections. The pipeline continues with fewer records rather than failing.
func ExtractAll(candidates []RuleCandidate) []StructuredRule {
	result := make([]StructuredRule, 0, len(candidates))
	for _, c := range candidates {
		if rule, ok := Extract(c); ok {
			result = append(result, rule)
		}
	}
	return result
}

// validate enforces the per-type field invariants: a LIMIT must carry a
// metric and value, a REQUIREMENT a metric and operator.
func validate(r StructuredRule) bool {
	switch r.RuleType {
	case RuleLimit:
		return r.Metric != "" && r.Value != ""
	case RuleRequirement:
		return r.Metric != "" && r.Operator != ""
	case RuleException:
		return true
	default:
		return false
	}
}
