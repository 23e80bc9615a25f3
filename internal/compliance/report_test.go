package compliance_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/wardenhq/warden/internal/compliance"
)

var reportRows = []compliance.ReportRow{
	{
		Clause:       "REG-1.2: Maximum LTV",
		PolicyStatus: compliance.StatusYes,
		SystemStatus: compliance.StatusNo,
		Explanation:  "max_ltv [SYS-1]: ✗ FAIL: allows 90, reg caps at 85",
	},
	{
		Clause:       "REG-2.1: Income Verification",
		PolicyStatus: compliance.StatusNA,
		SystemStatus: compliance.StatusYes,
		Explanation:  "No thresholds to compare",
	},
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := compliance.WriteCSV(&buf, reportRows); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	header := []string{"Regulatory Clause", "Compliant with Bank Policy", "Compliant with System Rules", "Explanation"}
	for i, col := range header {
		if records[0][i] != col {
			t.Errorf("header[%d]: got %q, want %q", i, records[0][i], col)
		}
	}

	if records[1][0] != "REG-1.2: Maximum LTV" || records[1][2] != "No" {
		t.Errorf("first row: got %v", records[1])
	}
	if records[2][1] != "N/A" {
		t.Errorf("second row policy status: got %q, want N/A", records[2][1])
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := compliance.WriteCSV(&buf, nil); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("got %d records, want the header only", len(records))
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := compliance.WriteJSON(&buf, reportRows); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var decoded []compliance.ReportRow
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if len(decoded) != 2 {
		t.Fatalf("got %d rows, want 2", len(decoded))
	}
	if decoded[0] != reportRows[0] {
		t.Errorf("got %+v, want %+v", decoded[0], reportRows[0])
	}
}
