package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/guillermoBallester/hzmeta/internal/core/domain"
)

// PlaceholderStyle selects how filter values reach the generated SQL.
type PlaceholderStyle int

const (
	// Dollar binds $1, $2, ... (PostgreSQL, pgx).
	Dollar PlaceholderStyle = iota
	// Question binds ? (SQLite, Hazelcast).
	Question
	// AtP binds @p1, @p2, ... (SQL Server).
	AtP
	// Inline embeds values as quoted literals for engines without bind support.
	Inline
)

func (p PlaceholderStyle) String() string {
	switch p {
	case Dollar:
		return "dollar"
	case Question:
		return "question"
	case AtP:
		return "atp"
	case Inline:
		return "inline"
	default:
		return "PlaceholderStyle(" + strconv.Itoa(int(p)) + ")"
	}
}

// ParsePlaceholderStyle accepts the names printed by String.
func ParsePlaceholderStyle(s string) (PlaceholderStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dollar":
		return Dollar, nil
	case "question":
		return Question, nil
	case "atp":
		return AtP, nil
	case "inline":
		return Inline, nil
	default:
		return 0, fmt.Errorf("unknown placeholder style %q", s)
	}
}

// CatalogQuery is generated SQL plus its positional bind arguments.
type CatalogQuery struct {
	SQL  string
	Args []any
}

// CatalogQueryBuilder composes information_schema queries. Caller-supplied
// values are always bound or strictly quoted, never concatenated.
type CatalogQueryBuilder struct {
	style PlaceholderStyle
}

func NewCatalogQueryBuilder(style PlaceholderStyle) *CatalogQueryBuilder {
	return &CatalogQueryBuilder{style: style}
}

// Style returns the placeholder style the builder emits.
func (b *CatalogQueryBuilder) Style() PlaceholderStyle {
	return b.style
}

// Tables builds the list_tables query.
func (b *CatalogQueryBuilder) Tables(f domain.TableFilter) (CatalogQuery, error) {
	p := b.params()

	var sb strings.Builder
	sb.WriteString("SELECT table_catalog, table_schema, table_name, table_type FROM information_schema.tables WHERE ")
	sb.WriteString("table_catalog LIKE " + p.bind(string(domain.NormalizePattern(f.Catalog))))
	sb.WriteString(" AND table_schema LIKE " + p.bind(string(domain.NormalizePattern(f.Schema))))
	sb.WriteString(" AND table_name LIKE " + p.bind(string(domain.NormalizePattern(f.Table))))

	if types := f.TypeList(); len(types) > 0 {
		marks := make([]string, len(types))
		for i, t := range types {
			marks[i] = p.bind(t)
		}
		sb.WriteString(" AND table_type IN (" + strings.Join(marks, ", ") + ")")
	}
	sb.WriteString(" ORDER BY table_type, table_catalog, table_schema, table_name")

	return p.query(sb.String())
}

// Columns builds the list_columns query.
func (b *CatalogQueryBuilder) Columns(f domain.ColumnFilter) (CatalogQuery, error) {
	p := b.params()

	var sb strings.Builder
	sb.WriteString("SELECT table_catalog, table_schema, table_name, column_name, data_type, is_nullable, ordinal_position")
	sb.WriteString(" FROM information_schema.columns WHERE ")
	sb.WriteString("table_catalog LIKE " + p.bind(string(domain.NormalizePattern(f.Catalog))))
	sb.WriteString(" AND table_schema LIKE " + p.bind(string(domain.NormalizePattern(f.Schema))))
	sb.WriteString(" AND table_name LIKE " + p.bind(string(domain.NormalizePattern(f.Table))))
	sb.WriteString(" AND column_name LIKE " + p.bind(string(domain.NormalizePattern(f.Column))))
	sb.WriteString(" ORDER BY table_catalog, table_schema, table_name, ordinal_position")

	return p.query(sb.String())
}

func (b *CatalogQueryBuilder) params() *paramList {
	return &paramList{style: b.style}
}

// paramList collects bind arguments in placeholder order. The first literal
// that cannot be quoted is kept in err and reported by query.
type paramList struct {
	style PlaceholderStyle
	args  []any
	err   error
}

func (p *paramList) bind(v string) string {
	if p.style == Inline {
		lit, err := QuoteLiteral(v)
		if err != nil && p.err == nil {
			p.err = err
		}
		return lit
	}

	p.args = append(p.args, v)
	n := len(p.args)
	switch p.style {
	case Dollar:
		return "$" + strconv.Itoa(n)
	case AtP:
		return "@p" + strconv.Itoa(n)
	default:
		return "?"
	}
}

func (p *paramList) query(sql string) (CatalogQuery, error) {
	if p.err != nil {
		return CatalogQuery{}, fmt.Errorf("building catalog query: %w", p.err)
	}
	return CatalogQuery{SQL: sql, Args: p.args}, nil
}

// QuoteLiteral renders v as a single-quoted SQL string literal. Embedded
// quotes are doubled. NUL bytes are rejected since engines truncate at them.
func QuoteLiteral(v string) (string, error) {
	if strings.IndexByte(v, 0) >= 0 {
		return "", fmt.Errorf("%w: contains NUL byte", domain.ErrInvalidLiteral)
	}
	return "'" + strings.ReplaceAll(v, "'", "''") + "'", nil
}
