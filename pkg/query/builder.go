package query

import (
	"fmt"
	"reflect"
	"strings"
)

// placeholder marks an argument slot before parameter numbering runs.
const placeholder = "$%d"

type predicate struct {
	expr   string
	values []any
}

// SortField names one ORDER BY column. Field is the logical name resolved
// through the ProjectionMap; Descending flips the direction to DESC.
type SortField struct {
	Field      string
	Descending bool
}

// Builder assembles SQL statements through a fluent API, numbering
// positional parameters as predicates accumulate.
type Builder struct {
	projection  *ProjectionMap
	predicates  []predicate
	sortFields  []SortField
	defaultSort []SortField
}

// NewBuilder creates a Builder over the given projection. The default sort
// applies whenever no explicit ordering is set.
func NewBuilder(projection *ProjectionMap, defaultSort ...SortField) *Builder {
	return &Builder{
		projection:  projection,
		predicates:  make([]predicate, 0),
		defaultSort: defaultSort,
	}
}

// ParseSortFields splits a comma-separated sort expression into SortFields.
// A "-" prefix marks a field descending, e.g. "severity,-createdAt".
// Empty input yields nil.
func ParseSortFields(s string) []SortField {
	if s == "" {
		return nil
	}

	var fields []SortField
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		field := SortField{Field: part}
		if after, ok := strings.CutPrefix(part, "-"); ok {
			field = SortField{Field: after, Descending: true}
		}
		fields = append(fields, field)
	}

	return fields
}

// Build returns a SELECT statement with the accumulated predicates and ordering.
func (b *Builder) Build() (string, []any) {
	where, args, _ := b.renderWhere(1)

	sql := fmt.Sprintf(
		"SELECT %s FROM %s%s%s",
		b.projection.Columns(),
		b.projection.From(),
		where,
		b.renderOrderBy(),
	)

	return sql, args
}

// BuildCount returns a COUNT(*) statement with the accumulated predicates.
func (b *Builder) BuildCount() (string, []any) {
	where, args, _ := b.renderWhere(1)
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", b.projection.From(), where), args
}

// BuildPage returns a SELECT statement with ordering, LIMIT, and OFFSET
// for the given one-based page.
func (b *Builder) BuildPage(page, pageSize int) (string, []any) {
	where, args, _ := b.renderWhere(1)

	sql := fmt.Sprintf(
		"SELECT %s FROM %s%s%s LIMIT %d OFFSET %d",
		b.projection.Columns(),
		b.projection.From(),
		where,
		b.renderOrderBy(),
		pageSize,
		(page-1)*pageSize,
	)

	return sql, args
}

// BuildSingle returns a SELECT statement fetching one record by its ID field.
func (b *Builder) BuildSingle(idField string, id any) (string, []any) {
	sql := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		b.projection.Columns(),
		b.projection.From(),
		b.projection.Column(idField),
	)
	return sql, []any{id}
}

// BuildSingleOrNull returns a SELECT statement limited to one row under the
// accumulated predicates.
func (b *Builder) BuildSingleOrNull() (string, []any) {
	where, args, _ := b.renderWhere(1)
	sql := fmt.Sprintf(
		"SELECT %s FROM %s%s LIMIT 1",
		b.projection.Columns(),
		b.projection.From(),
		where,
	)
	return sql, args
}

// OrderByFields sets an explicit sort order, displacing the default sort.
func (b *Builder) OrderByFields(fields []SortField) *Builder {
	b.sortFields = fields
	return b
}

// WhereContains adds a case-insensitive substring match. Nil or empty
// values are skipped.
func (b *Builder) WhereContains(field string, value *string) *Builder {
	if value == nil || *value == "" {
		return b
	}

	b.predicates = append(b.predicates, predicate{
		expr:   fmt.Sprintf("%s ILIKE %s", b.projection.Column(field), placeholder),
		values: []any{"%" + *value + "%"},
	})
	return b
}

// WhereEquals adds an equality predicate. Nil values are skipped.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if isNil(value) {
		return b
	}

	b.predicates = append(b.predicates, predicate{
		expr:   fmt.Sprintf("%s = %s", b.projection.Column(field), placeholder),
		values: []any{value},
	})
	return b
}

// WhereIn adds an IN predicate over the given values. Empty slices are skipped.
func (b *Builder) WhereIn(field string, values []any) *Builder {
	if len(values) == 0 {
		return b
	}

	slots := make([]string, len(values))
	for i := range slots {
		slots[i] = placeholder
	}

	b.predicates = append(b.predicates, predicate{
		expr:   fmt.Sprintf("%s IN (%s)", b.projection.Column(field), strings.Join(slots, ", ")),
		values: values,
	})
	return b
}

// WhereNullable adds an equality predicate, or IS NULL when the value is nil.
func (b *Builder) WhereNullable(column string, val any) *Builder {
	col := b.projection.Column(column)

	if isNil(val) {
		b.predicates = append(b.predicates, predicate{expr: col + " IS NULL"})
		return b
	}

	b.predicates = append(b.predicates, predicate{
		expr:   fmt.Sprintf("%s = %s", col, placeholder),
		values: []any{val},
	})
	return b
}

// WhereSearch adds an OR group of substring matches across the given
// fields. Skipped when the search term or field list is empty.
func (b *Builder) WhereSearch(search *string, fields ...string) *Builder {
	if search == nil || *search == "" || len(fields) == 0 {
		return b
	}

	exprs := make([]string, len(fields))
	values := make([]any, len(fields))
	pattern := "%" + *search + "%"

	for i, field := range fields {
		exprs[i] = fmt.Sprintf("%s ILIKE %s", b.projection.Column(field), placeholder)
		values[i] = pattern
	}

	b.predicates = append(b.predicates, predicate{
		expr:   "(" + strings.Join(exprs, " OR ") + ")",
		values: values,
	})
	return b
}

func (b *Builder) renderOrderBy() string {
	fields := b.sortFields
	if len(fields) == 0 {
		fields = b.defaultSort
	}
	if len(fields) == 0 {
		return ""
	}

	parts := make([]string, len(fields))
	for i, f := range fields {
		dir := "ASC"
		if f.Descending {
			dir = "DESC"
		}
		parts[i] = fmt.Sprintf("%s %s", b.projection.Column(f.Field), dir)
	}

	return " ORDER BY " + strings.Join(parts, ", ")
}

func (b *Builder) renderWhere(start int) (string, []any, int) {
	if len(b.predicates) == 0 {
		return "", nil, start
	}

	exprs := make([]string, 0, len(b.predicates))
	args := make([]any, 0)
	n := start

	for _, p := range b.predicates {
		expr := p.expr
		for _, v := range p.values {
			expr = strings.Replace(expr, placeholder, fmt.Sprintf("$%d", n), 1)
			args = append(args, v)
			n++
		}
		exprs = append(exprs, expr)
	}

	return " WHERE " + strings.Join(exprs, " AND "), args, n
}

func isNil(value any) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	}

	return false
}
