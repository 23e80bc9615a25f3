package extraction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"golang.org/x/sync/errgroup"

	"github.com/wardenhq/warden/internal/prompts"
	"github.com/wardenhq/warden/pkg/formatting"
)

// Extractor turns document text into structured clauses through the
// extraction model. Chunks are processed with bounded concurrency and the
// combined clause list preserves document order.
type Extractor struct {
	agentCfg  gaconfig.AgentConfig
	chunkSize int
	workers   int
	logger    *slog.Logger
}

// NewExtractor creates an Extractor with the given agent configuration.
func NewExtractor(agentCfg gaconfig.AgentConfig, workers int, logger *slog.Logger) *Extractor {
	if workers < 1 {
		workers = 1
	}

	return &Extractor{
		agentCfg:  agentCfg,
		chunkSize: DefaultChunkSize,
		workers:   workers,
		logger:    logger.With("system", "extraction"),
	}
}

// ExtractClauses extracts every clause from text. Clauses missing an
// identifier receive a positional fallback id; duplicates by source text
// are dropped.
func (e *Extractor) ExtractClauses(ctx context.Context, text string) ([]Clause, error) {
	chunks := ChunkText(text, e.chunkSize)
	if len(chunks) == 0 {
		return []Clause{}, nil
	}

	perChunk := make([][]ClauseRecord, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, chunk := range chunks {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			records, err := e.extractChunk(gctx, chunk)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", i+1, err)
			}

			perChunk[i] = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	clauses := make([]Clause, 0)
	for _, records := range perChunk {
		for _, rec := range records {
			clauses = append(clauses, NewClause(rec, FallbackClauseID(len(clauses))))
		}
	}

	clauses = DedupeClauses(clauses)

	e.logger.InfoContext(
		ctx, "clause extraction complete",
		"chunks", len(chunks),
		"clauses", len(clauses),
	)

	return clauses, nil
}

func (e *Extractor) extractChunk(ctx context.Context, chunk string) ([]ClauseRecord, error) {
	prompt, err := prompts.Compose(prompts.StageExtract, "Document text:\n\n"+chunk)
	if err != nil {
		return nil, err
	}

	a, err := agent.New(&e.agentCfg)
	if err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("chat call: %w", err)
	}

	records, err := formatting.Parse[[]ClauseRecord](resp.Content())
	if err != nil {
		return nil, fmt.Errorf("parse clauses: %w", err)
	}

	return records, nil
}
