package oracle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/wardenhq/warden/internal/engine"
	"github.com/wardenhq/warden/internal/prompts"
	"github.com/wardenhq/warden/pkg/formatting"
)

// Agent is a model-backed oracle. Its judgments are not deterministic;
// callers already treat oracle output as advisory and degrade failures to
// no-match.
type Agent struct {
	cfg    gaconfig.AgentConfig
	logger *slog.Logger
}

// NewAgent creates an Agent oracle with the given agent configuration.
func NewAgent(cfg gaconfig.AgentConfig, logger *slog.Logger) *Agent {
	return &Agent{
		cfg:    cfg,
		logger: logger.With("system", "oracle"),
	}
}

type similarityResponse struct {
	Score     float64 `json:"score"`
	Rationale string  `json:"rationale"`
}

func (o *Agent) Similarity(ctx context.Context, a, b string) (float64, error) {
	payload := fmt.Sprintf("Statement A:\n%s\n\nStatement B:\n%s", a, b)

	prompt, err := prompts.Compose(prompts.StageSimilarity, payload)
	if err != nil {
		return 0.0, err
	}

	content, err := o.chat(ctx, prompt)
	if err != nil {
		return 0.0, err
	}

	parsed, err := formatting.Parse[similarityResponse](content)
	if err != nil {
		return 0.0, fmt.Errorf("parse similarity response: %w", err)
	}

	return clampUnit(parsed.Score), nil
}

// Relatedness asks the model for a YES/NO judgment on two parameter names.
// YES answers carry 0.9 confidence, NO answers 0.1.
func (o *Agent) Relatedness(ctx context.Context, a, b string) (engine.RelatednessResult, error) {
	payload := fmt.Sprintf("Parameter A: %s\nParameter B: %s", a, b)

	prompt, err := prompts.Compose(prompts.StageRelatedness, payload)
	if err != nil {
		return engine.RelatednessResult{}, err
	}

	content, err := o.chat(ctx, prompt)
	if err != nil {
		return engine.RelatednessResult{}, err
	}

	return parseRelatedness(content)
}

func (o *Agent) chat(ctx context.Context, prompt string) (string, error) {
	a, err := agent.New(&o.cfg)
	if err != nil {
		return "", fmt.Errorf("create agent: %w", err)
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("chat call: %w", err)
	}

	return resp.Content(), nil
}

func parseRelatedness(content string) (engine.RelatednessResult, error) {
	result := engine.RelatednessResult{Confidence: 0.1}
	answered := false

	for line := range strings.Lines(content) {
		line = strings.TrimSpace(line)
		if after, ok := strings.CutPrefix(line, "ANSWER:"); ok {
			answered = true
			if strings.EqualFold(strings.TrimSpace(after), "YES") {
				result.Match = true
				result.Confidence = 0.9
			}
		}
		if after, ok := strings.CutPrefix(line, "REASON:"); ok {
			result.Reason = strings.TrimSpace(after)
		}
	}

	if !answered {
		return engine.RelatednessResult{}, fmt.Errorf("malformed relatedness response: %s", content)
	}

	return result, nil
}
