package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/JaimeStill/document-context/pkg/config"
	"github.com/JaimeStill/document-context/pkg/document"
	"github.com/JaimeStill/document-context/pkg/encoding"
	"github.com/JaimeStill/document-context/pkg/image"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"golang.org/x/sync/errgroup"

	"github.com/wardenhq/warden/internal/prompts"
)

// PDFParser transcribes PDF documents page by page. Regulations frequently
// arrive as scans with no text layer, so each page is rendered to an image
// and transcribed through the vision model rather than extracted directly.
type PDFParser struct {
	agentCfg gaconfig.AgentConfig
	logger   *slog.Logger
}

// NewPDFParser creates a PDFParser that transcribes pages with the given
// agent configuration.
func NewPDFParser(agentCfg gaconfig.AgentConfig, logger *slog.Logger) *PDFParser {
	return &PDFParser{
		agentCfg: agentCfg,
		logger:   logger.With("system", "ingestion"),
	}
}

func (p *PDFParser) Parse(ctx context.Context, path string) ([]TextElement, error) {
	pdfDoc, err := document.OpenPDF(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer pdfDoc.Close()

	renderer, err := image.NewImageMagickRenderer(config.DefaultImageConfig())
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	pages, err := pdfDoc.ExtractAllPages()
	if err != nil {
		return nil, fmt.Errorf("extract pages: %w", err)
	}

	prompt, err := prompts.Compose(prompts.StageTranscribe, "")
	if err != nil {
		return nil, err
	}

	name := filepath.Base(path)
	elements := make([]TextElement, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(transcribeWorkerCount(len(pages)))

	for i, page := range pages {
		pageNum := i + 1

		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			text, err := p.transcribePage(gctx, page, renderer, prompt)
			if err != nil {
				return fmt.Errorf("page %d: %w", pageNum, err)
			}

			elements[i] = TextElement{
				Text:        text,
				ElementType: ElementPage,
				SourceRef:   fmt.Sprintf("%s#page%d", name, pageNum),
				Page:        pageNum,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	p.logger.InfoContext(ctx, "pdf transcribed", "path", name, "pages", len(pages))

	return splitPageElements(elements), nil
}

func (p *PDFParser) transcribePage(ctx context.Context, page document.Page, renderer image.Renderer, prompt string) (string, error) {
	data, err := page.ToImage(renderer, nil)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}

	dataURI, err := encoding.EncodeImageDataURI(data, document.PNG)
	if err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	a, err := agent.New(&p.agentCfg)
	if err != nil {
		return "", fmt.Errorf("create agent: %w", err)
	}

	resp, err := a.Vision(ctx, prompt, []string{dataURI})
	if err != nil {
		return "", fmt.Errorf("vision call: %w", err)
	}

	return resp.Content(), nil
}

// splitPageElements breaks page transcriptions into paragraph elements so
// candidate classification sees the same granularity as text-native formats.
// Page-level source references are preserved.
func splitPageElements(pages []TextElement) []TextElement {
	elements := make([]TextElement, 0, len(pages))

	for _, pageEl := range pages {
		blocks := strings.Split(strings.ReplaceAll(pageEl.Text, "\r\n", "\n"), "\n\n")
		for i, block := range blocks {
			text := strings.TrimSpace(block)
			if text == "" {
				continue
			}

			elements = append(elements, TextElement{
				Text:        text,
				ElementType: ElementParagraph,
				SourceRef:   fmt.Sprintf("%s.p%d", pageEl.SourceRef, i+1),
				Page:        pageEl.Page,
			})
		}
	}

	return elements
}

func transcribeWorkerCount(pageCount int) int {
	return max(min(runtime.NumCPU(), pageCount), 1)
}
