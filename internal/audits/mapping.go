package audits

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/wardenhq/warden/internal/compliance"
	"github.com/wardenhq/warden/pkg/query"
	"github.com/wardenhq/warden/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "audit_runs", "a").
	Project("id", "ID").
	Project("regulation_id", "RegulationID").
	Project("policy_id", "PolicyID").
	Project("system_id", "SystemID").
	Project("model_name", "ModelName").
	Project("provider_name", "ProviderName").
	Project("high_count", "HighCount").
	Project("medium_count", "MediumCount").
	Project("low_count", "LowCount").
	Project("report", "Report").
	Project("completed_at", "CompletedAt").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for audit run queries.
// Nil fields are ignored. All fields use exact matching.
type Filters struct {
	RegulationID *uuid.UUID `json:"regulation_id,omitempty"`
	PolicyID     *uuid.UUID `json:"policy_id,omitempty"`
	SystemID     *uuid.UUID `json:"system_id,omitempty"`
	ModelName    *string    `json:"model_name,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("RegulationID", f.RegulationID).
		WhereEquals("PolicyID", f.PolicyID).
		WhereEquals("SystemID", f.SystemID).
		WhereEquals("ModelName", f.ModelName)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	parseID := func(name string) *uuid.UUID {
		if v := values.Get(name); v != "" {
			if id, err := uuid.Parse(v); err == nil {
				return &id
			}
		}
		return nil
	}

	f.RegulationID = parseID("regulation_id")
	f.PolicyID = parseID("policy_id")
	f.SystemID = parseID("system_id")

	if m := values.Get("model_name"); m != "" {
		f.ModelName = &m
	}

	return f
}

func scanRun(s repository.Scanner) (AuditRun, error) {
	var a AuditRun
	var reportRaw []byte

	err := s.Scan(
		&a.ID,
		&a.RegulationID,
		&a.PolicyID,
		&a.SystemID,
		&a.ModelName,
		&a.ProviderName,
		&a.HighCount,
		&a.MediumCount,
		&a.LowCount,
		&reportRaw,
		&a.CompletedAt,
		&a.CreatedAt,
	)

	if err != nil {
		return a, err
	}

	if len(reportRaw) > 0 {
		if err := json.Unmarshal(reportRaw, &a.Report); err != nil {
			return a, fmt.Errorf("unmarshal report: %w", err)
		}
	}

	if a.Report == nil {
		a.Report = []compliance.ReportRow{}
	}

	return a, nil
}

func scanEntry(s repository.Scanner) (compliance.AuditEntry, error) {
	var e compliance.AuditEntry
	var findingsRaw []byte

	err := s.Scan(
		&e.RegulationText,
		&findingsRaw,
		&e.Severity,
		&e.Evidence.Policy,
		&e.Evidence.System,
	)

	if err != nil {
		return e, err
	}

	if len(findingsRaw) > 0 {
		if err := json.Unmarshal(findingsRaw, &e.Findings); err != nil {
			return e, fmt.Errorf("unmarshal findings: %w", err)
		}
	}

	if e.Findings == nil {
		e.Findings = []compliance.Finding{}
	}

	return e, nil
}
