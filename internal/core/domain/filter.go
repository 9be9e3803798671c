package domain

import "strings"

// Fixed names of the single catalog and schema the bridge reports.
const (
	CatalogName = "hazelcast"
	SchemaName  = "public"
)

// Table types reported by list_table_types, in order.
const (
	TableTypeBase = "BASE TABLE"
	TableTypeView = "VIEW"
)

// MatchAll is the LIKE pattern substituted for an unspecified filter.
const MatchAll FilterPattern = "%"

// FilterPattern is a LIKE-syntax pattern. It is never empty.
type FilterPattern string

// NormalizePattern turns an optional caller filter into a LIKE pattern.
// An empty input means "no filter", never "match the empty string".
func NormalizePattern(s string) FilterPattern {
	if s == "" {
		return MatchAll
	}
	return FilterPattern(s)
}

// TableFilter selects rows for list_tables. Zero value matches everything.
type TableFilter struct {
	Catalog string   `json:"catalog,omitempty"`
	Schema  string   `json:"schema,omitempty"`
	Table   string   `json:"table,omitempty"`
	Types   []string `json:"types,omitempty"`
}

// TypeList returns the non-blank table types to filter on, or nil.
func (f TableFilter) TypeList() []string {
	var types []string
	for _, t := range f.Types {
		if strings.TrimSpace(t) != "" {
			types = append(types, t)
		}
	}
	return types
}

// ColumnFilter selects rows for list_columns. Zero value matches everything.
type ColumnFilter struct {
	Catalog string `json:"catalog,omitempty"`
	Schema  string `json:"schema,omitempty"`
	Table   string `json:"table,omitempty"`
	Column  string `json:"column,omitempty"`
}
