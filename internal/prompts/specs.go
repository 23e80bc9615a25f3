package prompts

const transcribeSpec = `Respond with the transcribed page text only. No JSON, no markdown fencing, no commentary about the transcription.`

const extractSpec = `Respond with a JSON array of clause objects matching this exact structure:

[
  {
    "clause_id": "<identifier>",
    "clause_code": "<short code, e.g. REG-4.2>",
    "clause_title": "<title>",
    "regulation_name": "<governing document name>",
    "section": "<section reference>",
    "effective_date": "<date or empty>",
    "category": "<lending|capital|reporting|governance|other>",
    "description": "<one sentence summary>",
    "applies_to": ["<population>"],
    "conditions": ["<condition>"],
    "thresholds": [
      {
        "parameter": "<snake_case parameter name>",
        "value": "<value as stated, e.g. 80%>",
        "value_numeric": 80,
        "operator": "<=",
        "unit": "<%|currency|empty>",
        "human_readable": "<plain restatement>"
      }
    ],
    "compliance_check": "<what a reviewer verifies>",
    "risk_level": "<HIGH|MEDIUM|LOW>",
    "source_text": "<the verbatim source span>"
  }
]

Field constraints:
- value_numeric: the typed projection of value. A number for quantitative
  limits, true/false for boolean requirements, null when no typed value
  exists.
- operator: one of <=, >=, <, >, == for quantitative thresholds; REQUIRED,
  OPTIONAL, or REQUIRES_APPROVAL for qualitative ones.
- source_text: copy the source span exactly; it anchors deduplication.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Emit an empty array when the text contains no obligations
- Use null or empty values for fields the text does not state`

const relatednessSpec = `Respond with exactly two lines:

ANSWER: <YES|NO>
REASON: <one short sentence>

No other text before or after the two lines.`

const similaritySpec = `Respond with a JSON object matching this exact structure:

{
  "score": 0.0,
  "rationale": "<one short sentence>"
}

Field constraints:
- score: a number in [0, 1]. 1.0 means the statements describe the same
  obligation; 0.0 means they are unrelated.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing`

var specs = map[Stage]string{
	StageTranscribe:  transcribeSpec,
	StageExtract:     extractSpec,
	StageRelatedness: relatednessSpec,
	StageSimilarity:  similaritySpec,
}

// Spec returns the output specification for an audit stage.
// Specifications define the expected response format and behavioral constraints.
// Returns ErrInvalidStage if the stage is not recognized.
func Spec(stage Stage) (string, error) {
	text, ok := specs[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
