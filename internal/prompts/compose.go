package prompts

import "strings"

// Compose assembles the full prompt for a stage: instructions, output
// specification, and the stage payload.
func Compose(stage Stage, payload string) (string, error) {
	inst, err := Instructions(stage)
	if err != nil {
		return "", err
	}

	spec, err := Spec(stage)
	if err != nil {
		return "", err
	}

	parts := []string{inst, spec}
	if payload != "" {
		parts = append(parts, payload)
	}

	return strings.Join(parts, "\n\n"), nil
}
