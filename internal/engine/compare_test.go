package engine_test

import (
	"testing"

	"github.com/wardenhq/warden/internal/engine"
	"github.com/wardenhq/warden/internal/extraction"
)

func numeric(parameter string, value float64, operator string) extraction.Threshold {
	return extraction.Threshold{Parameter: parameter, Number: &value, Operator: operator}
}

func boolean(parameter string, value bool) extraction.Threshold {
	return extraction.Threshold{Parameter: parameter, Flag: &value}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name        string
		reg         extraction.Threshold
		found       extraction.Threshold
		passed      bool
		explanation string
	}{
		{
			name:        "cap respected",
			reg:         numeric("max_ltv", 85, "<="),
			found:       numeric("max_ltv", 80, "<="),
			passed:      true,
			explanation: "OK: 80 ≤ 85",
		},
		{
			name:        "cap exceeded",
			reg:         numeric("max_ltv", 85, "<="),
			found:       numeric("max_ltv", 90, "<="),
			passed:      false,
			explanation: "FAIL: allows 90, reg caps at 85",
		},
		{
			name:        "cap met exactly",
			reg:         numeric("max_ltv", 85, "<="),
			found:       numeric("max_ltv", 85, "<="),
			passed:      true,
			explanation: "OK: 85 ≤ 85",
		},
		{
			name:        "floor respected",
			reg:         numeric("min_income", 30000, ">="),
			found:       numeric("min_income", 35000, ">="),
			passed:      true,
			explanation: "OK: 35000 ≥ 30000",
		},
		{
			name:        "floor violated",
			reg:         numeric("min_income", 30000, ">="),
			found:       numeric("min_income", 25000, ">="),
			passed:      false,
			explanation: "FAIL: allows 25000, reg floor at 30000",
		},
		{
			name:        "equality match",
			reg:         numeric("retention_years", 7, "=="),
			found:       numeric("retention_years", 7, "=="),
			passed:      true,
			explanation: "Match: both 7",
		},
		{
			name:        "equality mismatch",
			reg:         numeric("retention_years", 7, "=="),
			found:       numeric("retention_years", 5, "=="),
			passed:      false,
			explanation: "Mismatch: reg=7, found=5",
		},
		{
			name:        "boolean match",
			reg:         boolean("income_verification", true),
			found:       boolean("income_verification", true),
			passed:      true,
			explanation: "Match: both true",
		},
		{
			name:        "boolean mismatch",
			reg:         boolean("income_verification", true),
			found:       boolean("income_verification", false),
			passed:      false,
			explanation: "Mismatch: reg=true, found=false",
		},
		{
			name:        "boolean against missing value",
			reg:         boolean("income_verification", true),
			found:       extraction.Threshold{Parameter: "income_verification"},
			passed:      false,
			explanation: "Mismatch: reg=true, found=none",
		},
		{
			name:        "missing regulatory value",
			reg:         extraction.Threshold{Parameter: "max_ltv", Operator: "<="},
			found:       numeric("max_ltv", 80, "<="),
			passed:      true,
			explanation: "Cannot compare (missing value)",
		},
		{
			name:        "operator mismatch defers to review",
			reg:         numeric("max_ltv", 85, "<="),
			found:       numeric("max_ltv", 80, ">="),
			passed:      true,
			explanation: "Review needed (operator mismatch)",
		},
		{
			name:        "missing regulatory operator defers to review",
			reg:         numeric("max_ltv", 80, ""),
			found:       numeric("max_ltv", 85, "<="),
			passed:      true,
			explanation: "Review needed (operator mismatch)",
		},
		{
			name:        "unrecognized regulatory operator defers to review",
			reg:         numeric("max_ltv", 80, "within"),
			found:       numeric("max_ltv", 85, ""),
			passed:      true,
			explanation: "Review needed (operator mismatch)",
		},
		{
			name:        "equality mismatch across operator families",
			reg:         numeric("max_ltv", 80, "=="),
			found:       numeric("max_ltv", 85, "<="),
			passed:      false,
			explanation: "Mismatch: reg=80, found=85",
		},
		{
			name:        "equality match across operator families",
			reg:         numeric("retention_years", 7, "=="),
			found:       numeric("retention_years", 7, ">="),
			passed:      true,
			explanation: "Match: both 7",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := engine.Compare(tc.reg, tc.found)
			if got.Passed != tc.passed {
				t.Errorf("passed: got %v, want %v", got.Passed, tc.passed)
			}
			if got.Explanation != tc.explanation {
				t.Errorf("explanation: got %q, want %q", got.Explanation, tc.explanation)
			}
		})
	}
}
