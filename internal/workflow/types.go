package workflow

import (
	"time"

	"github.com/google/uuid"

	"github.com/wardenhq/warden/internal/compliance"
	"github.com/wardenhq/warden/internal/extraction"
	"github.com/wardenhq/warden/internal/ingestion"
	"github.com/wardenhq/warden/internal/linking"
	"github.com/wardenhq/warden/internal/rules"
)

const (
	KeyDocumentSet = "document_set"
	KeyTempDir     = "temp_dir"
	KeyAuditState  = "audit_state"
)

// DocumentSet identifies the three documents an audit run compares.
type DocumentSet struct {
	Regulation uuid.UUID `json:"regulation"`
	Policy     uuid.UUID `json:"policy"`
	System     uuid.UUID `json:"system"`
}

// DocumentArtifacts accumulates everything the pipeline derives from one
// source document.
type DocumentArtifacts struct {
	DocumentID uuid.UUID                `json:"document_id"`
	Filename   string                   `json:"filename"`
	Elements   []ingestion.TextElement  `json:"elements"`
	Text       string                   `json:"text"`
	Clauses    []extraction.Clause      `json:"clauses"`
	Rules      []rules.StructuredRule   `json:"rules"`
}

// AuditState holds the running audit accumulated across pipeline nodes.
type AuditState struct {
	Regulation DocumentArtifacts      `json:"regulation"`
	Policy     DocumentArtifacts      `json:"policy"`
	System     DocumentArtifacts      `json:"system"`
	Links      []linking.Link         `json:"links"`
	Entries    []compliance.AuditEntry `json:"entries"`
	Rows       []compliance.ReportRow `json:"rows"`
}

// HasRegulationRules reports whether the regulation yielded any structured
// rules worth linking.
func (s *AuditState) HasRegulationRules() bool {
	return len(s.Regulation.Rules) > 0
}

// Result is the final output from an audit workflow execution.
type Result struct {
	Documents   DocumentSet `json:"documents"`
	State       AuditState  `json:"state"`
	CompletedAt time.Time   `json:"completed_at"`
}
