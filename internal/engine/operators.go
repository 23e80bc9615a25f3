package engine

import "strings"

// OperatorFamily partitions comparison operators by direction.
type OperatorFamily int

const (
	// FamilyUnknown covers empty and unrecognized operators.
	FamilyUnknown OperatorFamily = iota
	// FamilyMax covers upper-bound operators (<=, <).
	FamilyMax
	// FamilyMin covers lower-bound operators (>=, >).
	FamilyMin
	// FamilyEq covers equality operators (==, =).
	FamilyEq
)

var operatorCanonical = map[string]string{
	"lte":    "<=",
	"lt":     "<",
	"<=":     "<=",
	"<":      "<",
	"gte":    ">=",
	"gt":     ">",
	">=":     ">=",
	">":      ">",
	"equals": "==",
	"eq":     "==",
	"=":      "==",
	"==":     "==",
}

// NormalizeOperator maps an operator spelling onto its canonical symbol
// (<=, >=, <, >, ==). Unrecognized operators pass through unchanged.
func NormalizeOperator(op string) string {
	key := strings.ToLower(strings.TrimSpace(op))
	if canonical, ok := operatorCanonical[key]; ok {
		return canonical
	}
	return op
}

// Family classifies an operator into its comparison family.
func Family(op string) OperatorFamily {
	switch NormalizeOperator(op) {
	case "<=", "<":
		return FamilyMax
	case ">=", ">":
		return FamilyMin
	case "==":
		return FamilyEq
	default:
		return FamilyUnknown
	}
}

// OperatorsCompatible reports whether two operators belong to the same
// comparison family. An empty operator is compatible with anything.
func OperatorsCompatible(a, b string) bool {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return true
	}

	fa, fb := Family(a), Family(b)
	if fa == FamilyUnknown || fb == FamilyUnknown {
		return false
	}
	return fa == fb
}
