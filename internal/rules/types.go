// Package rules classifies raw text spans into rule categories and extracts
// structured rule records with metric, operator, and value fields.
package rules

// DocType identifies the class of document a rule was extracted from.
type DocType string

const (
	DocRegulation DocType = "REGULATION"
	DocPolicy     DocType = "POLICY"
	DocSystem     DocType = "SYSTEM"
)

// RuleType categorizes what kind of obligation a rule expresses.
type RuleType string

const (
	RuleLimit       RuleType = "LIMIT"
	RuleRequirement RuleType = "REQUIREMENT"
	RuleException   RuleType = "EXCEPTION"
	RuleOther       RuleType = "OTHER"
)

// RuleCandidate is a classified text span that may yield a structured rule.
type RuleCandidate struct {
	Text       string   `json:"text"`
	DocType    DocType  `json:"doc_type"`
	RuleType   RuleType `json:"rule_type"`
	Confidence float64  `json:"confidence"`
	SourceRef  string   `json:"source_ref"`
}

// StructuredRule is a validated, typed rule record. Metric, Operator, and
// Value use the empty string for absence; validation guarantees the fields
// required by the rule type are present before a record is produced.
type StructuredRule struct {
	RuleID     string   `json:"rule_id"`
	DocType    DocType  `json:"doc_type"`
	RuleType   RuleType `json:"rule_type"`
	Metric     string   `json:"metric,omitempty"`
	Operator   string   `json:"operator,omitempty"`
	Value      string   `json:"value,omitempty"`
	RawText    string   `json:"raw_text"`
	SourceRef  string   `json:"source_ref"`
	Confidence float64  `json:"confidence"`
}
