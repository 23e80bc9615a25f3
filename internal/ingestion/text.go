package ingestion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TextParser splits plain text and markdown documents into paragraph
// elements on blank-line boundaries.
type TextParser struct{}

func (p *TextParser) Parse(_ context.Context, path string) ([]TextElement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", path, err)
	}

	name := filepath.Base(path)
	normalized := strings.ReplaceAll(string(data), "\r\n", "\n")
	blocks := strings.Split(normalized, "\n\n")

	elements := make([]TextElement, 0, len(blocks))
	for _, block := range blocks {
		text := strings.TrimSpace(block)
		if text == "" {
			continue
		}

		elements = append(elements, TextElement{
			Text:        text,
			ElementType: ElementParagraph,
			SourceRef:   fmt.Sprintf("%s#p%d", name, len(elements)+1),
		})
	}

	return elements, nil
}
