package prompts_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/wardenhq/warden/internal/prompts"
)

func TestParseStage(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    prompts.Stage
		wantErr bool
	}{
		{"transcribe", "transcribe", prompts.StageTranscribe, false},
		{"extract", "extract", prompts.StageExtract, false},
		{"relatedness", "relatedness", prompts.StageRelatedness, false},
		{"similarity", "similarity", prompts.StageSimilarity, false},
		{"unknown", "summarize", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := prompts.ParseStage(tt.input)
			if tt.wantErr {
				if !errors.Is(err, prompts.ErrInvalidStage) {
					t.Errorf("error = %v, want ErrInvalidStage", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStage(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStageUnmarshalJSON(t *testing.T) {
	var s prompts.Stage
	if err := json.Unmarshal([]byte(`"extract"`), &s); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if s != prompts.StageExtract {
		t.Errorf("got %v, want extract", s)
	}

	if err := json.Unmarshal([]byte(`"bogus"`), &s); !errors.Is(err, prompts.ErrInvalidStage) {
		t.Errorf("error = %v, want ErrInvalidStage", err)
	}
}

func TestStagesCoverAllPrompts(t *testing.T) {
	for _, stage := range prompts.Stages() {
		t.Run(string(stage), func(t *testing.T) {
			inst, err := prompts.Instructions(stage)
			if err != nil {
				t.Fatalf("Instructions(%s) error = %v", stage, err)
			}
			if inst == "" {
				t.Errorf("Instructions(%s) is empty", stage)
			}

			spec, err := prompts.Spec(stage)
			if err != nil {
				t.Fatalf("Spec(%s) error = %v", stage, err)
			}
			if spec == "" {
				t.Errorf("Spec(%s) is empty", stage)
			}
		})
	}
}

func TestInstructionsInvalidStage(t *testing.T) {
	if _, err := prompts.Instructions("bogus"); !errors.Is(err, prompts.ErrInvalidStage) {
		t.Errorf("error = %v, want ErrInvalidStage", err)
	}
	if _, err := prompts.Spec("bogus"); !errors.Is(err, prompts.ErrInvalidStage) {
		t.Errorf("error = %v, want ErrInvalidStage", err)
	}
}

func TestCompose(t *testing.T) {
	payload := "The loan-to-value ratio must not exceed 85%."

	got, err := prompts.Compose(prompts.StageExtract, payload)
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}

	inst, _ := prompts.Instructions(prompts.StageExtract)
	spec, _ := prompts.Spec(prompts.StageExtract)

	if !strings.HasPrefix(got, inst) {
		t.Error("composed prompt should start with stage instructions")
	}
	if !strings.Contains(got, spec) {
		t.Error("composed prompt should contain the output specification")
	}
	if !strings.HasSuffix(got, payload) {
		t.Error("composed prompt should end with the payload")
	}
	if strings.Count(got, "\n\n") < 2 {
		t.Errorf("sections should be separated by blank lines: %q", got)
	}
}

func TestComposeEmptyPayload(t *testing.T) {
	got, err := prompts.Compose(prompts.StageRelatedness, "")
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}

	spec, _ := prompts.Spec(prompts.StageRelatedness)
	if !strings.HasSuffix(got, spec) {
		t.Error("composed prompt without payload should end with the output specification")
	}
}

func TestComposeInvalidStage(t *testing.T) {
	if _, err := prompts.Compose("bogus", "payload"); !errors.Is(err, prompts.ErrInvalidStage) {
		t.Errorf("error = %v, want ErrInvalidStage", err)
	}
}
