package rules

import "strings"

// categoryRule pairs a keyword predicate with the category it assigns.
// Rules are evaluated top-down and the first whose keyword set matches wins,
// regardless of keyword position in the text.
type categoryRule struct {
	ruleType RuleType
	keywords []string
	strong   []string
}

// classificationRules is the precedence-ordered rule table. Exceptions are
// tested before limits: "may exceed the maximum with approval" is an
// exception even though it mentions a limit keyword.
var classificationRules = []categoryRule{
	{
		ruleType: RuleException,
		keywords: []string{"exception", "override", "approval", "approved by"},
		strong:   []string{"approval"},
	},
	{
		ruleType: RuleLimit,
		keywords: []string{"must not exceed", "maximum", "limit", "ratio", "percent", "%"},
		strong:   []string{"%"},
	},
	{
		ruleType: RuleRequirement,
		keywords: []string{"must", "mandatory", "required", "shall"},
		strong:   []string{"must", "shall"},
	},
}

const (
	baseConfidence   = 0.5
	strongSignalBump = 0.3
)

// Classify tags text with a rule category and a confidence score.
// Unmatched text yields RuleOther with zero confidence; callers filter those
// out before extraction.
func Classify(text string) (RuleType, float64) {
	lower := strings.ToLower(text)

	for _, rule := range classificationRules {
		if !containsAny(lower, rule.keywords) {
			continue
		}

		confidence := baseConfidence
		if containsAny(lower, rule.strong) {
			confidence += strongSignalBump
		}
		return rule.ruleType, min(confidence, 1.0)
	}

	return RuleOther, 0.0
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
