// Package ingestion parses source documents into ordered text elements.
// Parsers are selected by file extension; each element carries a source
// reference so downstream findings can cite where a rule came from.
package ingestion

// TextElement is one parsed unit of a source document. Immutable once
// produced; downstream stages only read it.
type TextElement struct {
	Text        string `json:"text"`
	ElementType string `json:"element_type"`
	SourceRef   string `json:"source_ref"`
	Page        int    `json:"page,omitempty"`
	Sheet       string `json:"sheet,omitempty"`
	Row         int    `json:"row,omitempty"`
}

// Element types produced by the bundled parsers.
const (
	ElementParagraph = "paragraph"
	ElementRow       = "row"
	ElementPage      = "page"
)
