package ingestion

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat indicates no parser is registered for a file extension.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Parser produces the ordered text elements of one source document.
type Parser interface {
	Parse(ctx context.Context, path string) ([]TextElement, error)
}

// Dispatcher routes a document to the parser registered for its extension.
type Dispatcher struct {
	parsers map[string]Parser
}

// NewDispatcher creates a Dispatcher with the text-native parsers registered
// (.txt, .md, .csv). Binary formats are registered separately via Register.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{parsers: make(map[string]Parser)}

	text := &TextParser{}
	d.Register(".txt", text)
	d.Register(".md", text)
	d.Register(".csv", &CSVParser{})

	return d
}

// Register binds a parser to a file extension (including the leading dot).
func (d *Dispatcher) Register(ext string, p Parser) {
	d.parsers[strings.ToLower(ext)] = p
}

// Parse dispatches path to the parser for its extension.
func (d *Dispatcher) Parse(ctx context.Context, path string) ([]TextElement, error) {
	ext := strings.ToLower(filepath.Ext(path))

	p, ok := d.parsers[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	return p.Parse(ctx, path)
}

// Supports reports whether a parser is registered for the path's extension.
func (d *Dispatcher) Supports(path string) bool {
	_, ok := d.parsers[strings.ToLower(filepath.Ext(path))]
	return ok
}
