package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func personSchema() RowSchema {
	return RowSchema{
		{Name: "NAME", Type: FamilyVarchar, Nullable: false},
		{Name: "AGE", Type: FamilyInteger, Nullable: true},
	}
}

func TestCheckRow(t *testing.T) {
	schema := personSchema()

	require.NoError(t, CheckRow(schema, Row{"alice", int32(30)}))
	require.NoError(t, CheckRow(schema, Row{"alice", nil}))

	assert.ErrorIs(t, CheckRow(schema, Row{"alice"}), ErrRowShape)
	assert.ErrorIs(t, CheckRow(schema, Row{nil, int32(1)}), ErrNullInNotNull)
	assert.ErrorIs(t, CheckRow(schema, Row{"alice", 30}), ErrRowShape, "int is not int32")
	assert.ErrorIs(t, CheckRow(schema, Row{"alice", int64(30)}), ErrRowShape)
}

func TestCheckRow_UnsupportedFamily(t *testing.T) {
	schema := RowSchema{{Name: "TS", Type: FamilyTimestamp, Nullable: true}}
	require.NoError(t, CheckRow(schema, Row{nil}))
	assert.ErrorIs(t, CheckRow(schema, Row{"2024-01-01"}), ErrUnsupportedType)
}

func TestNewFixedRowSet_RejectsInvalidRow(t *testing.T) {
	_, err := NewFixedRowSet(personSchema(), []Row{
		{"alice", int32(30)},
		{nil, nil},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNullInNotNull)
	assert.Contains(t, err.Error(), "row 1")
}

func TestFixedRowSet_AccessorsReturnCopies(t *testing.T) {
	set, err := NewFixedRowSet(personSchema(), []Row{{"alice", int32(30)}})
	require.NoError(t, err)
	require.NoError(t, set.Validate())

	row := set.Row(0)
	row[0] = "mallory"
	assert.Equal(t, "alice", set.Row(0)[0])

	rows := set.Rows()
	rows[0][0] = "mallory"
	assert.Equal(t, "alice", set.Row(0)[0])

	schema := set.Schema()
	schema[0].Name = "X"
	assert.Equal(t, "NAME", set.Schema()[0].Name)
}

func TestEmptyRowSet(t *testing.T) {
	set := EmptyRowSet(TablesSchema())
	assert.Equal(t, 0, set.Len())
	assert.Len(t, set.Schema(), 10)
	assert.False(t, set.Cursor().Next())
}

func TestFixedRowSet_MarshalJSON(t *testing.T) {
	set, err := NewFixedRowSet(personSchema(), []Row{{"alice", nil}})
	require.NoError(t, err)

	b, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"columns": [
			{"name": "NAME", "type": "VARCHAR", "nullable": false},
			{"name": "AGE", "type": "INTEGER", "nullable": true}
		],
		"rows": [["alice", null]]
	}`, string(b))

	b, err = json.Marshal(EmptyRowSet(CatalogsSchema()))
	require.NoError(t, err)
	assert.JSONEq(t, `{"columns":[{"name":"TABLE_CAT","type":"VARCHAR","nullable":false}],"rows":[]}`, string(b))
}

func TestRowSchema_NamesAndIndex(t *testing.T) {
	s := SchemasSchema()
	assert.Equal(t, []string{"TABLE_CATALOG", "TABLE_SCHEM"}, s.Names())
	assert.Equal(t, 1, s.Index("TABLE_SCHEM"))
	assert.Equal(t, -1, s.Index("MISSING"))
}
