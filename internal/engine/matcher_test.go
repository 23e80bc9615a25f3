package engine_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/wardenhq/warden/internal/engine"
)

type stubOracle struct {
	result engine.RelatednessResult
	err    error
	calls  int
}

func (s *stubOracle) Relatedness(_ context.Context, _, _ string) (engine.RelatednessResult, error) {
	s.calls++
	return s.result, s.err
}

func newMatcher(t *testing.T, oracle engine.RelatednessOracle) *engine.Matcher {
	t.Helper()

	var cfg engine.Config
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return engine.NewMatcher(cfg, oracle, logger)
}

func TestFindBestMatchDirect(t *testing.T) {
	m := newMatcher(t, nil)
	pool := []engine.Candidate{
		{Threshold: numeric("max_ltv_ratio", 80, "<="), Source: "POL-001"},
	}

	match := m.FindBestMatch(context.Background(), numeric("max_ltv_ratio", 85, "<="), pool)
	if match == nil {
		t.Fatal("got nil, want a match")
	}
	if match.Similarity != 1.0 {
		t.Errorf("similarity: got %g, want 1.0", match.Similarity)
	}
	if match.Score != 1.1 {
		t.Errorf("score: got %g, want 1.1", match.Score)
	}
	if match.Semantic {
		t.Error("direct match should not be marked semantic")
	}
	if match.Candidate.Source != "POL-001" {
		t.Errorf("source: got %q, want %q", match.Candidate.Source, "POL-001")
	}
}

func TestFindBestMatchPrefersHigherScore(t *testing.T) {
	m := newMatcher(t, nil)
	pool := []engine.Candidate{
		{Threshold: numeric("max_ltv_ratio", 80, ">="), Source: "POL-001"},
		{Threshold: numeric("max_ltv_ratio", 82, "<="), Source: "POL-002"},
	}

	match := m.FindBestMatch(context.Background(), numeric("max_ltv_ratio", 85, "<="), pool)
	if match == nil {
		t.Fatal("got nil, want a match")
	}
	if match.Candidate.Source != "POL-002" {
		t.Errorf("got %q, want the operator-compatible candidate POL-002", match.Candidate.Source)
	}
}

func TestFindBestMatchNoCandidates(t *testing.T) {
	m := newMatcher(t, nil)

	if match := m.FindBestMatch(context.Background(), numeric("max_ltv", 85, "<="), nil); match != nil {
		t.Errorf("got %+v, want nil", match)
	}
}

func TestFindBestMatchBelowOracleFloor(t *testing.T) {
	oracle := &stubOracle{result: engine.RelatednessResult{Match: true, Confidence: 1.0}}
	m := newMatcher(t, oracle)
	pool := []engine.Candidate{
		{Threshold: numeric("xyz", 10, "<="), Source: "POL-001"},
	}

	if match := m.FindBestMatch(context.Background(), numeric("max_ltv_ratio", 85, "<="), pool); match != nil {
		t.Errorf("got %+v, want nil", match)
	}
	if oracle.calls != 0 {
		t.Errorf("oracle consulted %d times for a below-floor candidate", oracle.calls)
	}
}

func TestFindBestMatchMidBandAccepted(t *testing.T) {
	oracle := &stubOracle{result: engine.RelatednessResult{Match: true, Confidence: 0.9, Reason: "same quantity"}}
	m := newMatcher(t, oracle)
	pool := []engine.Candidate{
		{Threshold: numeric("loan_to_value_ratio", 80, "<="), Source: "SYS-001"},
	}

	match := m.FindBestMatch(context.Background(), numeric("LTV", 85, "<="), pool)
	if match == nil {
		t.Fatal("got nil, want a semantic match")
	}
	if !match.Semantic {
		t.Error("mid-band match should be marked semantic")
	}
	if match.Reason != "same quantity" {
		t.Errorf("reason: got %q, want %q", match.Reason, "same quantity")
	}
	if match.Score < m.Config().AcceptFloor {
		t.Errorf("score %g below accept floor %g", match.Score, m.Config().AcceptFloor)
	}
	if oracle.calls != 1 {
		t.Errorf("oracle consulted %d times, want 1", oracle.calls)
	}
}

func TestFindBestMatchMidBandRejected(t *testing.T) {
	oracle := &stubOracle{result: engine.RelatednessResult{Match: false}}
	m := newMatcher(t, oracle)
	pool := []engine.Candidate{
		{Threshold: numeric("loan_to_value_ratio", 80, "<="), Source: "SYS-001"},
	}

	if match := m.FindBestMatch(context.Background(), numeric("LTV", 85, "<="), pool); match != nil {
		t.Errorf("got %+v, want nil", match)
	}
	if oracle.calls != 1 {
		t.Errorf("oracle consulted %d times, want 1", oracle.calls)
	}
}

func TestFindBestMatchMidBandWithoutOracle(t *testing.T) {
	m := newMatcher(t, nil)
	pool := []engine.Candidate{
		{Threshold: numeric("loan_to_value_ratio", 80, "<="), Source: "SYS-001"},
	}

	if match := m.FindBestMatch(context.Background(), numeric("LTV", 85, "<="), pool); match != nil {
		t.Errorf("got %+v, want nil", match)
	}
}

func TestFindBestMatchOracleFailureSkipsCandidate(t *testing.T) {
	oracle := &stubOracle{err: errors.New("provider unavailable")}
	m := newMatcher(t, oracle)
	pool := []engine.Candidate{
		{Threshold: numeric("loan_to_value_ratio", 80, "<="), Source: "SYS-001"},
		{Threshold: numeric("LTV", 82, "<="), Source: "SYS-002"},
	}

	match := m.FindBestMatch(context.Background(), numeric("LTV", 85, "<="), pool)
	if match == nil {
		t.Fatal("got nil, want the direct candidate")
	}
	if match.Candidate.Source != "SYS-002" {
		t.Errorf("got %q, want SYS-002", match.Candidate.Source)
	}
}

func TestFindBestMatchAcceptFloor(t *testing.T) {
	oracle := &stubOracle{result: engine.RelatednessResult{Match: true, Confidence: 0.0}}
	m := newMatcher(t, oracle)
	pool := []engine.Candidate{
		{Threshold: numeric("loan_to_value_ratio", 80, ">="), Source: "SYS-001"},
	}

	if match := m.FindBestMatch(context.Background(), numeric("LTV", 85, "<="), pool); match != nil {
		t.Errorf("got %+v, want nil for a score below the accept floor", match)
	}
}
