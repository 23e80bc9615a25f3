package workflow

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/wardenhq/warden/internal/ingestion"
)

// IngestNode returns a state node that downloads the three source documents
// from blob storage into the temp directory and parses each into ordered
// text elements. PDF documents are transcribed page-by-page through the
// vision model; text-native formats are parsed directly.
func IngestNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		set, tempDir, err := extractIngestState(s)
		if err != nil {
			return s, fmt.Errorf("ingest: %w", err)
		}

		dispatcher := ingestion.NewDispatcher()
		dispatcher.Register(".pdf", ingestion.NewPDFParser(rt.Agent, rt.Logger))

		audit := AuditState{}
		targets := []struct {
			id   uuid.UUID
			dest *DocumentArtifacts
		}{
			{set.Regulation, &audit.Regulation},
			{set.Policy, &audit.Policy},
			{set.System, &audit.System},
		}

		for _, target := range targets {
			artifacts, err := ingestDocument(ctx, rt, dispatcher, target.id, tempDir)
			if err != nil {
				return s, fmt.Errorf("ingest: %w", err)
			}
			*target.dest = *artifacts
		}

		rt.Logger.InfoContext(
			ctx, "ingest node complete",
			"regulation_elements", len(audit.Regulation.Elements),
			"policy_elements", len(audit.Policy.Elements),
			"system_elements", len(audit.System.Elements),
		)

		s = s.Set(KeyAuditState, audit)
		return s, nil
	})
}

func ingestDocument(
	ctx context.Context,
	rt *Runtime,
	dispatcher *ingestion.Dispatcher,
	documentID uuid.UUID,
	tempDir string,
) (*DocumentArtifacts, error) {
	doc, err := rt.Documents.Find(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDocumentNotFound, err)
	}

	localPath := filepath.Join(tempDir, fmt.Sprintf("%s%s", documentID, filepath.Ext(doc.Filename)))
	if err := downloadBlob(ctx, rt, doc.StorageKey, localPath); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIngestFailed, err)
	}

	elements, err := dispatcher.Parse(ctx, localPath)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrIngestFailed, doc.Filename, err)
	}

	return &DocumentArtifacts{
		DocumentID: documentID,
		Filename:   doc.Filename,
		Elements:   elements,
		Text:       joinElements(elements),
	}, nil
}

func downloadBlob(ctx context.Context, rt *Runtime, key, localPath string) error {
	blob, err := rt.Storage.Download(ctx, key)
	if err != nil {
		return fmt.Errorf("download blob: %w", err)
	}
	defer blob.Body.Close()

	f, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(f, blob.Body); err != nil {
		f.Close()
		return fmt.Errorf("write temp file: %w", err)
	}

	return f.Close()
}

func joinElements(elements []ingestion.TextElement) string {
	parts := make([]string, 0, len(elements))
	for _, e := range elements {
		parts = append(parts, e.Text)
	}
	return strings.Join(parts, "\n\n")
}

func extractIngestState(s state.State) (DocumentSet, string, error) {
	setVal, ok := s.Get(KeyDocumentSet)
	if !ok {
		return DocumentSet{}, "", fmt.Errorf("%w: missing %s in state", ErrDocumentNotFound, KeyDocumentSet)
	}

	set, ok := setVal.(DocumentSet)
	if !ok {
		return DocumentSet{}, "", fmt.Errorf("%w: %s is not DocumentSet", ErrDocumentNotFound, KeyDocumentSet)
	}

	tempDirVal, ok := s.Get(KeyTempDir)
	if !ok {
		return DocumentSet{}, "", fmt.Errorf("%w: missing %s in state", ErrIngestFailed, KeyTempDir)
	}

	tempDir, ok := tempDirVal.(string)
	if !ok {
		return DocumentSet{}, "", fmt.Errorf("%w: %s is not string", ErrIngestFailed, KeyTempDir)
	}

	return set, tempDir, nil
}
