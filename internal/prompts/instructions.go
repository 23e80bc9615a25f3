package prompts

const transcribeInstructions = `You are transcribing one page of a scanned banking document.

Reproduce the page text faithfully, in reading order:
- Preserve headings, numbered sections, and list structure as plain lines
- Render tables row by row, separating cells with " | "
- Do not summarize, interpret, or omit content
- Mark text you cannot read as [illegible]`

const extractInstructions = `You are a regulatory compliance analyst extracting structured clauses from banking documents.

Identify every distinct obligation, limit, requirement, or exception in the provided text. For each one, capture:
- The governing document, section, and effective date when stated
- Who or what the clause applies to, and under which conditions
- Every quantitative or boolean threshold, with its parameter name, comparison operator, value, and unit
- The check a compliance reviewer would perform to verify the clause

Extract thresholds exactly as stated. A clause with no quantitative limit still counts; emit it with an empty thresholds list. Never invent values that are not in the text.`

const relatednessInstructions = `You are judging whether two parameter names from different banking documents refer to the same underlying quantity.

Consider abbreviations (LTV vs loan-to-value), reordering, and domain synonyms. Two names are a match only when a compliance reviewer would compare their values against each other. Names that merely share a word but measure different things are not a match.`

const similarityInstructions = `You are scoring how likely two rule statements from different banking documents describe the same obligation.

Consider the regulated quantity, the direction of the constraint, and the population it applies to. Wording differences and document register (legal text versus system configuration) should not lower the score when the substance matches.`

var instructions = map[Stage]string{
	StageTranscribe:  transcribeInstructions,
	StageExtract:     extractInstructions,
	StageRelatedness: relatednessInstructions,
	StageSimilarity:  similarityInstructions,
}

// Instructions returns the instructions for an audit stage.
// Returns ErrInvalidStage if the stage is not recognized.
func Instructions(stage Stage) (string, error) {
	text, ok := instructions[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
