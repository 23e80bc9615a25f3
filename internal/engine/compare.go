package engine

import (
	"fmt"

	"github.com/wardenhq/warden/internal/extraction"
)

// Comparison is the outcome of checking one matched threshold pair.
// Passed is fail-open for indeterminate pairs: a missing value or an
// unrecognized regulatory operator never blocks compliance on its own,
// only a concrete violation or a failed equality does.
type Comparison struct {
	Passed      bool
	Explanation string
}

// Compare checks a candidate threshold against the regulatory threshold it
// was matched to.
func Compare(reg, found extraction.Threshold) Comparison {
	if reg.Flag != nil || found.Flag != nil {
		return compareFlags(reg, found)
	}

	if reg.Number == nil || found.Number == nil {
		return Comparison{Passed: true, Explanation: "Cannot compare (missing value)"}
	}

	// Equality checks apply regardless of the candidate's operator family.
	if Family(reg.Operator) != FamilyEq && !OperatorsCompatible(reg.Operator, found.Operator) {
		return Comparison{Passed: true, Explanation: "Review needed (operator mismatch)"}
	}

	return compareNumbers(*reg.Number, *found.Number, reg.Operator)
}

func compareFlags(reg, found extraction.Threshold) Comparison {
	if reg.Flag != nil && found.Flag != nil && *reg.Flag == *found.Flag {
		return Comparison{
			Passed:      true,
			Explanation: fmt.Sprintf("Match: both %s", formatValue(reg)),
		}
	}

	return Comparison{
		Passed: false,
		Explanation: fmt.Sprintf(
			"Mismatch: reg=%s, found=%s",
			formatValue(reg), formatValue(found),
		),
	}
}

func compareNumbers(reg, found float64, regOperator string) Comparison {
	switch Family(regOperator) {
	case FamilyMax:
		if found <= reg {
			return Comparison{
				Passed:      true,
				Explanation: fmt.Sprintf("OK: %s ≤ %s", formatNumber(found), formatNumber(reg)),
			}
		}
		return Comparison{
			Passed: false,
			Explanation: fmt.Sprintf(
				"FAIL: allows %s, reg caps at %s",
				formatNumber(found), formatNumber(reg),
			),
		}
	case FamilyMin:
		if found >= reg {
			return Comparison{
				Passed:      true,
				Explanation: fmt.Sprintf("OK: %s ≥ %s", formatNumber(found), formatNumber(reg)),
			}
		}
		return Comparison{
			Passed: false,
			Explanation: fmt.Sprintf(
				"FAIL: allows %s, reg floor at %s",
				formatNumber(found), formatNumber(reg),
			),
		}
	case FamilyEq:
		if found == reg {
			return Comparison{
				Passed:      true,
				Explanation: fmt.Sprintf("Match: both %s", formatNumber(reg)),
			}
		}
		return Comparison{
			Passed: false,
			Explanation: fmt.Sprintf(
				"Mismatch: reg=%s, found=%s",
				formatNumber(reg), formatNumber(found),
			),
		}
	default:
		return Comparison{Passed: true, Explanation: "Review needed (operator mismatch)"}
	}
}

func formatValue(t extraction.Threshold) string {
	switch {
	case t.Flag != nil:
		return fmt.Sprintf("%t", *t.Flag)
	case t.Number != nil:
		return formatNumber(*t.Number)
	default:
		return "none"
	}
}

func formatNumber(n float64) string {
	return fmt.Sprintf("%g", n)
}
