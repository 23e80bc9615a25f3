package rules

import (
	"strings"

	"github.com/wardenhq/warden/internal/ingestion"
)

// minCandidateLength filters out fragments (headings, cell labels) that
// cannot carry an obligation.
const minCandidateLength = 15

// CandidatesFromElements classifies parsed document elements and returns the
// spans that express a rule. OTHER-classified elements are discarded here so
// extraction only ever sees categorized candidates.
func CandidatesFromElements(elements []ingestion.TextElement, docType DocType) []RuleCandidate {
	candidates := make([]RuleCandidate, 0, len(elements))

	for _, el := range elements {
		text := strings.TrimSpace(el.Text)
		if len(text) < minCandidateLength {
			continue
		}

		ruleType, confidence := Classify(text)
		if ruleType == RuleOther {
			continue
		}

		candidates = append(candidates, RuleCandidate{
			Text:       text,
			DocType:    docType,
			RuleType:   ruleType,
			Confidence: confidence,
			SourceRef:  el.SourceRef,
		})
	}

	return candidates
}
