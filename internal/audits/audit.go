// Package audits implements the audit run domain for Warden.
// It provides types, data access, and business logic for executing the
// audit workflow against a document set and for storing, querying, and
// reporting the results.
package audits

import (
	"time"

	"github.com/google/uuid"

	"github.com/wardenhq/warden/internal/compliance"
)

// AuditRun represents a stored audit execution over one document set.
// Entries are loaded on demand; list queries return runs without them.
type AuditRun struct {
	ID           uuid.UUID               `json:"id"`
	RegulationID uuid.UUID               `json:"regulation_id"`
	PolicyID     uuid.UUID               `json:"policy_id"`
	SystemID     uuid.UUID               `json:"system_id"`
	ModelName    string                  `json:"model_name"`
	ProviderName string                  `json:"provider_name"`
	HighCount    int                     `json:"high_count"`
	MediumCount  int                     `json:"medium_count"`
	LowCount     int                     `json:"low_count"`
	Report       []compliance.ReportRow  `json:"report"`
	Entries      []compliance.AuditEntry `json:"entries,omitempty"`
	CompletedAt  time.Time               `json:"completed_at"`
	CreatedAt    time.Time               `json:"created_at"`
}

// RunCommand carries the document set for a new audit run.
type RunCommand struct {
	RegulationID uuid.UUID `json:"regulation_id"`
	PolicyID     uuid.UUID `json:"policy_id"`
	SystemID     uuid.UUID `json:"system_id"`
}
