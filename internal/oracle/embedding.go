package oracle

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/wardenhq/warden/internal/engine"
)

// Embedding scores text pairs by cosine similarity of their embeddings.
type Embedding struct {
	client               openai.Client
	model                string
	relatednessThreshold float64
	logger               *slog.Logger
}

// NewEmbedding creates an Embedding oracle from the oracle config.
func NewEmbedding(cfg *Config, logger *slog.Logger) *Embedding {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Embedding{
		client:               openai.NewClient(opts...),
		model:                cfg.EmbeddingModel,
		relatednessThreshold: cfg.RelatednessThreshold,
		logger:               logger.With("system", "oracle"),
	}
}

func (e *Embedding) Similarity(ctx context.Context, a, b string) (float64, error) {
	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(e.model),
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: []string{a, b},
		},
	})
	if err != nil {
		return 0.0, fmt.Errorf("embed pair: %w", err)
	}

	if len(resp.Data) < 2 {
		return 0.0, fmt.Errorf("embed pair: expected 2 embeddings, got %d", len(resp.Data))
	}

	score := cosine(resp.Data[0].Embedding, resp.Data[1].Embedding)
	return clampUnit(score), nil
}

func (e *Embedding) Relatedness(ctx context.Context, a, b string) (engine.RelatednessResult, error) {
	sim, err := e.Similarity(ctx, a, b)
	if err != nil {
		return engine.RelatednessResult{}, err
	}

	return engine.RelatednessResult{
		Match:      sim >= e.relatednessThreshold,
		Confidence: sim,
		Reason:     "embedding cosine similarity",
	}, nil
}

func cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}

	if na == 0 || nb == 0 {
		return 0.0
	}

	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func clampUnit(v float64) float64 {
	return math.Min(math.Max(v, 0.0), 1.0)
}
