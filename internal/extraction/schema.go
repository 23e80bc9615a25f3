// Package extraction turns raw document text into structured clause records
// with typed thresholds. Model output is coerced into the schema exactly once,
// at ingest, through the NewClause factory; downstream packages never
// re-validate clause fields.
package extraction

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Threshold is one quantitative or boolean limit attached to a clause.
// Number and Flag are typed projections of Value; at most one is non-nil.
// Both nil means the value could not be parsed and comparisons treat it
// as indeterminate.
type Threshold struct {
	Parameter     string   `json:"parameter"`
	Value         string   `json:"value"`
	Number        *float64 `json:"value_number,omitempty"`
	Flag          *bool    `json:"value_bool,omitempty"`
	Operator      string   `json:"operator"`
	Unit          string   `json:"unit,omitempty"`
	HumanReadable string   `json:"human_readable,omitempty"`
}

// Clause is one normalized obligation extracted from a source document.
type Clause struct {
	ClauseID        string      `json:"clause_id"`
	ClauseCode      string      `json:"clause_code"`
	ClauseTitle     string      `json:"clause_title"`
	RegulationName  string      `json:"regulation_name"`
	Section         string      `json:"section"`
	EffectiveDate   string      `json:"effective_date"`
	Category        string      `json:"category"`
	Description     string      `json:"description"`
	AppliesTo       []string    `json:"applies_to"`
	Conditions      []string    `json:"conditions"`
	Thresholds      []Threshold `json:"thresholds"`
	ComplianceCheck string      `json:"compliance_check"`
	RiskLevel       string      `json:"risk_level"`
	SourceText      string      `json:"source_text"`
	ExtractedAt     time.Time   `json:"extracted_at"`
}

// ClauseRecord is the wire shape produced by the extraction model. Every field
// may be missing or null; ValueNumeric is untyped because models emit numbers,
// booleans, and strings interchangeably.
type ClauseRecord struct {
	ClauseID        string            `json:"clause_id"`
	ClauseCode      string            `json:"clause_code"`
	ClauseTitle     string            `json:"clause_title"`
	RegulationName  string            `json:"regulation_name"`
	Section         string            `json:"section"`
	EffectiveDate   string            `json:"effective_date"`
	Category        string            `json:"category"`
	Description     string            `json:"description"`
	AppliesTo       []string          `json:"applies_to"`
	Conditions      []string          `json:"conditions"`
	Thresholds      []ThresholdRecord `json:"thresholds"`
	ComplianceCheck string            `json:"compliance_check"`
	RiskLevel       string            `json:"risk_level"`
	SourceText      string            `json:"source_text"`
}

// ThresholdRecord is the wire shape of one threshold.
type ThresholdRecord struct {
	Parameter     string `json:"parameter"`
	Value         string `json:"value"`
	ValueNumeric  any    `json:"value_numeric"`
	Operator      string `json:"operator"`
	Unit          string `json:"unit"`
	HumanReadable string `json:"human_readable"`
}

const defaultRiskLevel = "MEDIUM"

var (
	trueTokens  = []string{"true", "yes", "required", "mandatory"}
	falseTokens = []string{"false", "no", "optional"}
)

// NewClause coerces a wire record into a Clause, filling defaults for missing
// fields. fallbackID is used when the record carries no clause_id
// (e.g. "CLAUSE-003" for the third clause of a document).
func NewClause(rec ClauseRecord, fallbackID string) Clause {
	c := Clause{
		ClauseID:        strings.TrimSpace(rec.ClauseID),
		ClauseCode:      rec.ClauseCode,
		ClauseTitle:     rec.ClauseTitle,
		RegulationName:  rec.RegulationName,
		Section:         rec.Section,
		EffectiveDate:   rec.EffectiveDate,
		Category:        rec.Category,
		Description:     rec.Description,
		AppliesTo:       rec.AppliesTo,
		Conditions:      rec.Conditions,
		ComplianceCheck: rec.ComplianceCheck,
		RiskLevel:       rec.RiskLevel,
		SourceText:      rec.SourceText,
		ExtractedAt:     time.Now().UTC(),
	}

	if c.ClauseID == "" {
		c.ClauseID = fallbackID
	}
	if c.RiskLevel == "" {
		c.RiskLevel = defaultRiskLevel
	}
	if c.AppliesTo == nil {
		c.AppliesTo = []string{}
	}
	if c.Conditions == nil {
		c.Conditions = []string{}
	}

	c.Thresholds = make([]Threshold, 0, len(rec.Thresholds))
	for _, t := range rec.Thresholds {
		c.Thresholds = append(c.Thresholds, newThreshold(t))
	}

	return c
}

func newThreshold(rec ThresholdRecord) Threshold {
	t := Threshold{
		Parameter:     rec.Parameter,
		Value:         rec.Value,
		Operator:      rec.Operator,
		Unit:          rec.Unit,
		HumanReadable: rec.HumanReadable,
	}

	// prefer a typed value the model already produced
	switch v := rec.ValueNumeric.(type) {
	case bool:
		b := v
		t.Flag = &b
		return t
	case float64:
		n := v
		t.Number = &n
		return t
	case string:
		t.Number, t.Flag = ParseNumeric(v)
		return t
	}

	t.Number, t.Flag = ParseNumeric(rec.Value)
	return t
}

// ParseNumeric projects a raw threshold value onto a typed number or boolean.
// Boolean tokens are recognized first; otherwise currency and percent symbols
// are stripped and the remainder parsed as a float. Unparseable values yield
// (nil, nil).
func ParseNumeric(value string) (*float64, *bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return nil, nil
	}

	for _, tok := range trueTokens {
		if v == tok {
			b := true
			return nil, &b
		}
	}
	for _, tok := range falseTokens {
		if v == tok {
			b := false
			return nil, &b
		}
	}

	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '%', '$', '€', '₹', ',', ' ':
			return -1
		}
		return r
	}, v)

	if n, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return &n, nil
	}

	return nil, nil
}

// FallbackClauseID formats the positional clause identifier used when the
// extraction model omits one.
func FallbackClauseID(index int) string {
	return fmt.Sprintf("CLAUSE-%03d", index+1)
}

// Label returns the display identifier for a clause: code and title when
// present, falling back to the clause id.
func (c Clause) Label() string {
	code := c.ClauseCode
	if code == "" {
		code = c.ClauseID
	}
	if c.ClauseTitle == "" {
		return code
	}
	return code + ": " + c.ClauseTitle
}

// DedupeClauses drops clauses whose source text prefix duplicates an earlier
// clause, preserving input order.
func DedupeClauses(clauses []Clause) []Clause {
	const prefixLen = 100

	seen := make(map[string]struct{}, len(clauses))
	result := make([]Clause, 0, len(clauses))

	for _, c := range clauses {
		key := c.SourceText
		if len(key) > prefixLen {
			key = key[:prefixLen]
		}
		if _, dup := seen[key]; dup && key != "" {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, c)
	}

	return result
}
