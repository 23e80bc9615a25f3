package compliance

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
)

// ReportRow is one line of the flat audit report.
type ReportRow struct {
	Clause       string `json:"regulatory_clause"`
	PolicyStatus Status `json:"compliant_with_bank_policy"`
	SystemStatus Status `json:"compliant_with_system_rules"`
	Explanation  string `json:"explanation"`
}

var csvHeader = []string{
	"Regulatory Clause",
	"Compliant with Bank Policy",
	"Compliant with System Rules",
	"Explanation",
}

// WriteCSV serializes report rows as CSV with the canonical header.
func WriteCSV(w io.Writer, rows []ReportRow) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Clause,
			string(row.PolicyStatus),
			string(row.SystemStatus),
			row.Explanation,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write report row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteJSON serializes report rows as indented JSON.
func WriteJSON(w io.Writer, rows []ReportRow) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rows)
}
