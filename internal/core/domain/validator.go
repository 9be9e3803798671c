package domain

import (
	"errors"
	"fmt"
	"strings"

	pg_query "github.com/pganalyze/pg_query_go/v6"
)

var (
	ErrEmptyQuery      = errors.New("empty query")
	ErrNotSelect       = errors.New("only SELECT statements are allowed")
	ErrMultiStatement  = errors.New("multiple statements are not allowed")
	ErrNotCatalogQuery = errors.New("query reads outside information_schema")
)

// CatalogQueryValidator checks SQL with PostgreSQL's own parser before it
// reaches a PostgreSQL-dialect engine: a single SELECT whose FROM clause only
// names information_schema relations.
type CatalogQueryValidator struct{}

func NewCatalogQueryValidator() *CatalogQueryValidator {
	return &CatalogQueryValidator{}
}

func (v *CatalogQueryValidator) Validate(sql string) error {
	trimmed := strings.TrimSpace(sql)
	if trimmed == "" {
		return ErrEmptyQuery
	}

	tree, err := pg_query.Parse(trimmed)
	if err != nil {
		return fmt.Errorf("parsing SQL: %w", err)
	}

	switch len(tree.Stmts) {
	case 0:
		return ErrEmptyQuery
	case 1:
	default:
		return ErrMultiStatement
	}

	sel := tree.Stmts[0].GetStmt().GetSelectStmt()
	if sel == nil {
		return ErrNotSelect
	}
	if len(sel.GetFromClause()) == 0 {
		return ErrNotCatalogQuery
	}
	for _, from := range sel.GetFromClause() {
		rv := from.GetRangeVar()
		if rv == nil || !strings.EqualFold(rv.GetSchemaname(), "information_schema") {
			return ErrNotCatalogQuery
		}
	}
	return nil
}
