// Package tableview renders metadata results as terminal tables.
package tableview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/guillermoBallester/hzmeta/internal/core/domain"
)

var (
	colorPrimary = lipgloss.Color("63")  // Purple
	colorBorder  = lipgloss.Color("238") // Dark gray
	colorMuted   = lipgloss.Color("245") // Light gray

	styleHeader = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Padding(0, 1)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
	styleNull   = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)
	styleFooter = lipgloss.NewStyle().Foreground(colorMuted)
)

const nullText = "NULL"

// Options controls which columns are printed.
type Options struct {
	// Columns restricts output to these names, in this order. Empty means all.
	Columns []string
	// HideEmpty drops columns that are NULL in every row.
	HideEmpty bool
}

// Render formats set as a bordered table followed by a row count.
func Render(set *domain.FixedRowSet, opts Options) string {
	schema := set.Schema()
	cols := selectColumns(schema, set.Rows(), opts)

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = schema[c].Name
	}

	rows := set.Rows()
	cells := make([][]string, len(rows))
	for r, row := range rows {
		cells[r] = make([]string, len(cols))
		for i, c := range cols {
			cells[r][i] = FormatValue(row[c])
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(headers...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case row >= 0 && row < len(cells) && cells[row][col] == nullText:
				return styleNull
			default:
				return styleCell
			}
		})

	return t.String() + "\n" + styleFooter.Render(rowCount(len(rows)))
}

// RenderInfo formats the engine description as a two-column table.
func RenderInfo(info domain.EngineInfo) string {
	pairs := [][]string{
		{"Product", info.ProductName},
		{"Driver", info.DriverName + " " + info.DriverVersion},
		{"Identifier quote", info.IdentifierQuote},
		{"Search string escape", info.SearchStringEscape},
		{"Catalog term", info.CatalogTerm},
		{"Schema term", info.SchemaTerm},
		{"Procedure term", info.ProcedureTerm},
		{"Catalog separator", info.CatalogSeparator},
		{"Numeric functions", info.NumericFunctions},
		{"String functions", info.StringFunctions},
		{"Table types", strings.Join(info.TableTypes, ", ")},
		{"Transactions", strconv.FormatBool(info.SupportsTransactions)},
		{"Read only", strconv.FormatBool(info.ReadOnly)},
		{"Nulls sorted low", strconv.FormatBool(info.NullsSortedLow)},
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Rows(pairs...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return styleHeader
			}
			return styleCell
		}).
		String()
}

// FormatValue renders one cell. NULL is spelled out.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return nullText
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

func selectColumns(schema domain.RowSchema, rows []domain.Row, opts Options) []int {
	var cols []int
	if len(opts.Columns) > 0 {
		for _, name := range opts.Columns {
			if i := schema.Index(strings.ToUpper(strings.TrimSpace(name))); i >= 0 {
				cols = append(cols, i)
			}
		}
	} else {
		for i := range schema {
			cols = append(cols, i)
		}
	}

	if !opts.HideEmpty || len(rows) == 0 {
		return cols
	}
	kept := cols[:0]
	for _, c := range cols {
		for _, row := range rows {
			if row[c] != nil {
				kept = append(kept, c)
				break
			}
		}
	}
	return kept
}

func rowCount(n int) string {
	if n == 1 {
		return "1 row"
	}
	return strconv.Itoa(n) + " rows"
}
