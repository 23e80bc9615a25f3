// Package workflow implements the audit pipeline for Warden as a state
// graph: ingest source documents, extract clauses and structured rules,
// link regulatory rules to their policy and system implementations, and
// evaluate compliance.
package workflow

import "errors"

// Sentinel errors for workflow operations.
var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrIngestFailed     = errors.New("document ingestion failed")
	ErrExtractFailed    = errors.New("rule extraction failed")
	ErrLinkFailed       = errors.New("rule linking failed")
	ErrEvaluateFailed   = errors.New("compliance evaluation failed")
)
