// Package query builds SQL statements from logical field names through
// projection mapping.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap resolves view property names to alias-qualified column
// references for one table.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	mapping map[string]string
	ordered []string
}

// NewProjectionMap creates an empty projection for schema.table under the
// given alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema:  schema,
		table:   table,
		alias:   alias,
		mapping: make(map[string]string),
		ordered: make([]string, 0),
	}
}

// Project registers a database column under its view property name.
// Columns appear in SELECT lists in registration order.
func (p *ProjectionMap) Project(column, viewName string) *ProjectionMap {
	qualified := fmt.Sprintf("%s.%s", p.alias, column)
	p.mapping[viewName] = qualified
	p.ordered = append(p.ordered, qualified)
	return p
}

// Alias returns the table alias.
func (p *ProjectionMap) Alias() string {
	return p.alias
}

// From returns the aliased table reference for a FROM clause.
func (p *ProjectionMap) From() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// Column resolves a view property name to its qualified column. Unmapped
// names pass through unchanged.
func (p *ProjectionMap) Column(viewName string) string {
	if col, ok := p.mapping[viewName]; ok {
		return col
	}
	return viewName
}

// Columns returns the full SELECT column list.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.ordered, ", ")
}

// ColumnList returns the qualified columns in registration order.
func (p *ProjectionMap) ColumnList() []string {
	return p.ordered
}
