package service

import (
	"fmt"

	"github.com/guillermoBallester/hzmeta/internal/core/domain"
)

// TableRecord is one row of the list_tables catalog query.
type TableRecord struct {
	Catalog string
	Schema  string
	Name    string
	Type    string
}

// ColumnRecord is one row of the list_columns catalog query.
type ColumnRecord struct {
	Catalog  string
	Schema   string
	Table    string
	Column   string
	DataType string
	Nullable bool
	Ordinal  int64
}

// Materializer reshapes raw catalog rows into the fixed metadata layouts.
type Materializer struct {
	registry *domain.TypeRegistry
	codec    ValueCodec
}

func NewMaterializer(registry *domain.TypeRegistry, codec ValueCodec) *Materializer {
	return &Materializer{
		registry: registry,
		codec:    codec,
	}
}

// Materialize encodes every raw value for its column and builds the row set.
// Any failing row fails the whole result.
func (m *Materializer) Materialize(schema domain.RowSchema, raw [][]any) (*domain.FixedRowSet, error) {
	rows := make([]domain.Row, 0, len(raw))
	for i, values := range raw {
		if len(values) != len(schema) {
			return nil, fmt.Errorf("row %d: %w: %d values for %d columns", i, domain.ErrRowShape, len(values), len(schema))
		}
		row := make(domain.Row, len(values))
		for j, v := range values {
			encoded, err := m.codec.Encode(schema[j].Type, v)
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", i, schema[j].Name, err)
			}
			row[j] = encoded
		}
		rows = append(rows, row)
	}
	return domain.NewFixedRowSet(schema, rows)
}

// TableRow lays out a table record as a list_tables row.
func (m *Materializer) TableRow(r TableRecord) []any {
	return []any{
		r.Catalog,
		r.Schema,
		r.Name,
		r.Type,
		nil, // REMARKS
		nil, // TYPE_CAT
		nil, // TYPE_SCHEM
		nil, // TYPE_NAME
		nil, // SELF_REFERENCING_COL_NAME
		nil, // REF_GENERATION
	}
}

// ColumnRow derives a list_columns row from the native type reported by the
// catalog. An unmapped type yields a *domain.TypeMappingError.
func (m *Materializer) ColumnRow(r ColumnRecord) ([]any, error) {
	d, err := m.registry.Resolve(r.DataType)
	if err != nil {
		return nil, err
	}

	var decimalDigits, radix, octetLength any
	if d.Scale != 0 {
		decimalDigits = d.Scale
	}
	if m.registry.IsNumeric(d.Family) {
		radix = domain.NumericRadix
	}
	if d.Family == domain.FamilyVarchar {
		octetLength = d.Precision
	}

	nullable, isNullable := domain.ColumnNoNulls, "NO"
	if r.Nullable {
		nullable, isNullable = domain.ColumnNullable, "YES"
	}

	return []any{
		r.Catalog,
		r.Schema,
		r.Table,
		r.Column,
		d.JDBCType,
		d.DisplayName,
		d.Precision,
		nil, // BUFFER_LENGTH
		decimalDigits,
		radix,
		nullable,
		nil, // REMARKS
		nil, // COLUMN_DEF
		nil, // SQL_DATA_TYPE
		nil, // SQL_DATETIME_SUB
		octetLength,
		r.Ordinal,
		isNullable,
		nil, // SCOPE_CATALOG
		nil, // SCOPE_SCHEMA
		nil, // SCOPE_TABLE
		nil, // SOURCE_DATA_TYPE
		nil, // IS_AUTOINCREMENT
		nil, // IS_GENERATEDCOLUMN
	}, nil
}

// TypeInfoRows returns one list_type_info row per supported family.
func (m *Materializer) TypeInfoRows() ([][]any, error) {
	families := m.registry.Supported()
	rows := make([][]any, 0, len(families))
	for _, f := range families {
		d, err := m.registry.Descriptor(f)
		if err != nil {
			return nil, err
		}
		rows = append(rows, []any{
			d.DisplayName,
			d.JDBCType,
			d.Precision,
			nil, // LITERAL_PREFIX
			nil, // LITERAL_SUFFIX
			nil, // CREATE_PARAMS
			domain.TypeNullable,
			true, // CASE_SENSITIVE
			domain.TypeSearchable,
			!d.Signed,
			false, // FIXED_PREC_SCALE
			false, // AUTO_INCREMENT
			nil,   // LOCAL_TYPE_NAME
			0,     // MINIMUM_SCALE
			0,     // MAXIMUM_SCALE
			0,     // SQL_DATA_TYPE
			0,     // SQL_DATETIME_SUB
			0,     // NUM_PREC_RADIX
		})
	}
	return rows, nil
}
