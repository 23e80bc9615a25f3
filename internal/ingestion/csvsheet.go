package ingestion

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CSVParser turns each data row of a CSV sheet into one element, pairing
// cells with their column headers so rule text stays self-describing
// ("parameter: max_ltv | value: 80 | operator: <=").
type CSVParser struct{}

func (p *CSVParser) Parse(_ context.Context, path string) ([]TextElement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sheet %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", path, err)
	}

	if len(records) == 0 {
		return []TextElement{}, nil
	}

	sheet := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	header := records[0]

	elements := make([]TextElement, 0, len(records)-1)
	for i, record := range records[1:] {
		text := renderRow(header, record)
		if text == "" {
			continue
		}

		rowNum := i + 2 // 1-based, after the header row
		elements = append(elements, TextElement{
			Text:        text,
			ElementType: ElementRow,
			SourceRef:   fmt.Sprintf("%s!row%d", sheet, rowNum),
			Sheet:       sheet,
			Row:         rowNum,
		})
	}

	return elements, nil
}

func renderRow(header, record []string) string {
	parts := make([]string, 0, len(record))
	for i, cell := range record {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}

		if i < len(header) && strings.TrimSpace(header[i]) != "" {
			parts = append(parts, strings.TrimSpace(header[i])+": "+cell)
		} else {
			parts = append(parts, cell)
		}
	}
	return strings.Join(parts, " | ")
}
