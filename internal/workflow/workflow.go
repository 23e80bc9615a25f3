package workflow

import (
	"context"
	"fmt"
	"os"
	"time"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// Execute runs the audit workflow for one document set. It creates a temp
// directory for downloaded blobs and rendered pages (cleaned up via defer),
// builds the state graph (ingest → extract → link? → evaluate), executes it,
// and extracts the Result from the final state.
func Execute(ctx context.Context, rt *Runtime, set DocumentSet) (*Result, error) {
	tempDir, err := os.MkdirTemp("", "warden-audit-*")
	if err != nil {
		return nil, fmt.Errorf("create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyDocumentSet, set)
	initialState = initialState.Set(KeyTempDir, tempDir)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractResult(finalState)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("warden-audit")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("ingest", IngestNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("extract", ExtractNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("link", LinkNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("evaluate", EvaluateNode(rt)); err != nil {
		return nil, err
	}

	// ingest → extract (unconditional)
	if err := graph.AddEdge("ingest", "extract", nil); err != nil {
		return nil, err
	}

	// extract → link (when the regulation yielded structured rules)
	if err := graph.AddEdge("extract", "link", hasRegulationRules); err != nil {
		return nil, err
	}

	// extract → evaluate (nothing to link)
	if err := graph.AddEdge("extract", "evaluate", state.Not(hasRegulationRules)); err != nil {
		return nil, err
	}

	// link → evaluate (unconditional)
	if err := graph.AddEdge("link", "evaluate", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("ingest"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("evaluate"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractResult(s state.State) (*Result, error) {
	val, ok := s.Get(KeyAuditState)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyAuditState)
	}

	audit, ok := val.(AuditState)
	if !ok {
		return nil, fmt.Errorf("%s is not AuditState", KeyAuditState)
	}

	setVal, ok := s.Get(KeyDocumentSet)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyDocumentSet)
	}

	set, ok := setVal.(DocumentSet)
	if !ok {
		return nil, fmt.Errorf("%s is not DocumentSet", KeyDocumentSet)
	}

	return &Result{
		Documents:   set,
		State:       audit,
		CompletedAt: time.Now(),
	}, nil
}

func hasRegulationRules(s state.State) bool {
	val, ok := s.Get(KeyAuditState)
	if !ok {
		return false
	}

	audit, ok := val.(AuditState)
	if !ok {
		return false
	}

	return audit.HasRegulationRules()
}
