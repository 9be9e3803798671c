package domain

import (
	"encoding/json"
	"fmt"
)

// ColumnDescriptor identifies one column of a metadata result.
type ColumnDescriptor struct {
	Name     string     `json:"name"`
	Type     TypeFamily `json:"type"`
	Nullable bool       `json:"nullable"`
}

// RowSchema is the ordered column layout of a metadata result.
type RowSchema []ColumnDescriptor

// Names returns the column names in order.
func (s RowSchema) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

// Index returns the position of the named column, or -1.
func (s RowSchema) Index(name string) int {
	for i, c := range s {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Row holds one value per schema column.
type Row []any

// CheckRow verifies that row fits schema: same width, Go types matching each
// column family, and nil only in nullable columns.
func CheckRow(schema RowSchema, row Row) error {
	if len(row) != len(schema) {
		return fmt.Errorf("%w: %d values for %d columns", ErrRowShape, len(row), len(schema))
	}
	for i, col := range schema {
		if err := checkValue(col, row[i]); err != nil {
			return err
		}
	}
	return nil
}

func checkValue(col ColumnDescriptor, v any) error {
	if v == nil {
		if !col.Nullable {
			return fmt.Errorf("%w: %s", ErrNullInNotNull, col.Name)
		}
		return nil
	}
	var ok bool
	switch col.Type {
	case FamilyVarchar:
		_, ok = v.(string)
	case FamilyBoolean:
		_, ok = v.(bool)
	case FamilyTinyint:
		_, ok = v.(int8)
	case FamilySmallint:
		_, ok = v.(int16)
	case FamilyInteger:
		_, ok = v.(int32)
	case FamilyBigint:
		_, ok = v.(int64)
	default:
		return fmt.Errorf("%w: column %s has type %s", ErrUnsupportedType, col.Name, col.Type)
	}
	if !ok {
		return fmt.Errorf("%w: column %s (%s) holds %T", ErrRowShape, col.Name, col.Type, v)
	}
	return nil
}

// FixedRowSet is a fully materialized metadata result. It holds no
// reference to the engine and is immutable once built.
type FixedRowSet struct {
	schema RowSchema
	rows   []Row
}

// NewFixedRowSet validates every row against schema and takes ownership of both.
func NewFixedRowSet(schema RowSchema, rows []Row) (*FixedRowSet, error) {
	for i, row := range rows {
		if err := CheckRow(schema, row); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return &FixedRowSet{schema: schema, rows: rows}, nil
}

// EmptyRowSet returns a result with the given layout and no rows.
func EmptyRowSet(schema RowSchema) *FixedRowSet {
	return &FixedRowSet{schema: schema}
}

// Schema returns a copy of the column layout.
func (s *FixedRowSet) Schema() RowSchema {
	out := make(RowSchema, len(s.schema))
	copy(out, s.schema)
	return out
}

// Len returns the number of rows.
func (s *FixedRowSet) Len() int {
	return len(s.rows)
}

// Row returns a copy of row i.
func (s *FixedRowSet) Row(i int) Row {
	out := make(Row, len(s.rows[i]))
	copy(out, s.rows[i])
	return out
}

// Rows returns copies of all rows.
func (s *FixedRowSet) Rows() []Row {
	out := make([]Row, len(s.rows))
	for i := range s.rows {
		out[i] = s.Row(i)
	}
	return out
}

// Cursor returns a new forward-only cursor positioned before the first row.
func (s *FixedRowSet) Cursor() *Cursor {
	return newCursor(s)
}

type rowSetJSON struct {
	Columns RowSchema `json:"columns"`
	Rows    []Row     `json:"rows"`
}

func (s *FixedRowSet) MarshalJSON() ([]byte, error) {
	rows := s.rows
	if rows == nil {
		rows = []Row{}
	}
	return json.Marshal(rowSetJSON{Columns: s.schema, Rows: rows})
}

// Validate rechecks every row against the schema.
func (s *FixedRowSet) Validate() error {
	for i, row := range s.rows {
		if err := CheckRow(s.schema, row); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}
