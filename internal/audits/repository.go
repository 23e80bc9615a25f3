package audits

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/wardenhq/warden/internal/compliance"
	"github.com/wardenhq/warden/internal/documents"
	"github.com/wardenhq/warden/internal/engine"
	"github.com/wardenhq/warden/internal/oracle"
	"github.com/wardenhq/warden/internal/workflow"
	"github.com/wardenhq/warden/pkg/pagination"
	"github.com/wardenhq/warden/pkg/query"
	"github.com/wardenhq/warden/pkg/repository"
	"github.com/wardenhq/warden/pkg/storage"
)

type repo struct {
	db         *sql.DB
	rt         *workflow.Runtime
	docs       documents.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an audit repository implementing the System interface.
// It internally constructs the workflow runtime from the provided dependencies.
func New(
	db *sql.DB,
	agent gaconfig.AgentConfig,
	engineCfg engine.Config,
	orc oracle.Oracle,
	logger *slog.Logger,
	pagination pagination.Config,
	storage storage.System,
	docs documents.System,
) System {
	rt := &workflow.Runtime{
		Agent:     agent,
		Engine:    engineCfg,
		Oracle:    orc,
		Storage:   storage,
		Documents: docs,
		Logger:    logger.With("workflow", "audit"),
	}
	return &repo{
		db:         db,
		rt:         rt,
		docs:       docs,
		logger:     logger.With("system", "audits"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[AuditRun], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "ModelName", "ProviderName")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count audit runs: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	runs, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanRun)
	if err != nil {
		return nil, fmt.Errorf("query audit runs: %w", err)
	}

	result := pagination.NewPageResult(runs, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*AuditRun, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	run, err := repository.QueryOne(ctx, r.db, q, args, scanRun)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	entries, err := r.loadEntries(ctx, id)
	if err != nil {
		return nil, err
	}
	run.Entries = entries

	return &run, nil
}

func (r *repo) Run(ctx context.Context, cmd RunCommand) (*AuditRun, error) {
	if err := r.validateDocuments(ctx, cmd); err != nil {
		return nil, err
	}

	result, err := workflow.Execute(ctx, r.rt, workflow.DocumentSet{
		Regulation: cmd.RegulationID,
		Policy:     cmd.PolicyID,
		System:     cmd.SystemID,
	})
	if err != nil {
		return nil, fmt.Errorf("audit documents: %w", err)
	}

	reportJSON, err := json.Marshal(result.State.Rows)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}

	high, medium, low := severityCounts(result.State.Entries)

	insertQ := `
		INSERT INTO audit_runs(
			regulation_id, policy_id, system_id, model_name, provider_name,
			high_count, medium_count, low_count, report, completed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, regulation_id, policy_id, system_id, model_name, provider_name,
				  high_count, medium_count, low_count, report, completed_at, created_at`

	insertArgs := []any{
		cmd.RegulationID,
		cmd.PolicyID,
		cmd.SystemID,
		r.rt.Agent.Model.Name,
		r.rt.Agent.Provider.Name,
		high,
		medium,
		low,
		reportJSON,
		result.CompletedAt,
	}

	run, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (AuditRun, error) {
		stored, err := repository.QueryOne(ctx, tx, insertQ, insertArgs, scanRun)
		if err != nil {
			return AuditRun{}, fmt.Errorf("insert audit run: %w", err)
		}

		if err := insertEntries(ctx, tx, stored.ID, result.State.Entries); err != nil {
			return AuditRun{}, err
		}

		for _, docID := range []uuid.UUID{cmd.RegulationID, cmd.PolicyID, cmd.SystemID} {
			if err := repository.ExecExpectOne(
				ctx, tx,
				"UPDATE documents SET status = 'audited', updated_at = NOW() WHERE id = $1",
				docID,
			); err != nil {
				return AuditRun{}, fmt.Errorf("update document status: %w", err)
			}
		}

		return stored, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	run.Entries = result.State.Entries

	r.logger.Info("audit run complete",
		"id", run.ID,
		"regulation_id", cmd.RegulationID,
		"entries", len(run.Entries),
		"high", high,
		"medium", medium,
		"low", low,
	)
	return &run, nil
}

func (r *repo) Report(ctx context.Context, id uuid.UUID) ([]compliance.ReportRow, error) {
	run, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return run.Report, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM audit_runs WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("audit run deleted", "id", id)
	return nil
}

func (r *repo) validateDocuments(ctx context.Context, cmd RunCommand) error {
	expected := []struct {
		id      uuid.UUID
		docType documents.DocType
	}{
		{cmd.RegulationID, documents.DocRegulation},
		{cmd.PolicyID, documents.DocPolicy},
		{cmd.SystemID, documents.DocSystem},
	}

	for _, e := range expected {
		doc, err := r.docs.Find(ctx, e.id)
		if err != nil {
			return err
		}
		if doc.DocType != e.docType {
			return fmt.Errorf("%w: %s is %s, expected %s", ErrDocTypeMismatch, e.id, doc.DocType, e.docType)
		}
	}

	return nil
}

func (r *repo) loadEntries(ctx context.Context, runID uuid.UUID) ([]compliance.AuditEntry, error) {
	q := `
		SELECT regulation_text, findings, severity, policy_evidence, system_evidence
		FROM audit_entries
		WHERE run_id = $1
		ORDER BY position`

	entries, err := repository.QueryMany(ctx, r.db, q, []any{runID}, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}

	return entries, nil
}

func insertEntries(ctx context.Context, tx *sql.Tx, runID uuid.UUID, entries []compliance.AuditEntry) error {
	q := `
		INSERT INTO audit_entries(run_id, position, regulation_text, findings, severity, policy_evidence, system_evidence)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for i, e := range entries {
		findingsJSON, err := json.Marshal(e.Findings)
		if err != nil {
			return fmt.Errorf("marshal findings: %w", err)
		}

		if _, err := tx.ExecContext(
			ctx, q,
			runID, i, e.RegulationText, findingsJSON, e.Severity,
			e.Evidence.Policy, e.Evidence.System,
		); err != nil {
			return fmt.Errorf("insert audit entry %d: %w", i, err)
		}
	}

	return nil
}

func severityCounts(entries []compliance.AuditEntry) (high, medium, low int) {
	for _, e := range entries {
		switch e.Severity {
		case compliance.SeverityHigh:
			high++
		case compliance.SeverityMedium:
			medium++
		default:
			low++
		}
	}
	return high, medium, low
}
