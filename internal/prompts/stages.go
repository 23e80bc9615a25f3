// Package prompts holds the static model prompts for each audit stage.
// Prompts are compiled in: extraction and relatedness output must stay in
// lockstep with the schema factory and comparison algebra that consume it.
package prompts

import (
	"encoding/json"
	"slices"
)

// Stage identifies an audit step backed by a model prompt.
type Stage string

// Valid audit stages.
const (
	StageTranscribe  Stage = "transcribe"
	StageExtract     Stage = "extract"
	StageRelatedness Stage = "relatedness"
	StageSimilarity  Stage = "similarity"
)

var stages = []Stage{
	StageTranscribe,
	StageExtract,
	StageRelatedness,
	StageSimilarity,
}

// Stages returns the list of valid audit stages.
func Stages() []Stage {
	return stages
}

// UnmarshalJSON validates that the decoded string is a known stage value.
func (s *Stage) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v := Stage(raw)
	if !slices.Contains(stages, v) {
		return ErrInvalidStage
	}
	*s = v
	return nil
}

// ParseStage validates a string as a known audit stage.
// Returns ErrInvalidStage if the value is not recognized.
func ParseStage(s string) (Stage, error) {
	v := Stage(s)
	if !slices.Contains(stages, v) {
		return "", ErrInvalidStage
	}
	return v, nil
}
