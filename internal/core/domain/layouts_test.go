package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayouts_Widths(t *testing.T) {
	assert.Len(t, TablesSchema(), 10)
	assert.Len(t, ColumnsSchema(), 24)
	assert.Len(t, SchemasSchema(), 2)
	assert.Len(t, CatalogsSchema(), 1)
	assert.Len(t, TableTypesSchema(), 1)
	assert.Len(t, TypeInfoSchema(), 18)
}

func TestColumnsSchema_Contract(t *testing.T) {
	s := ColumnsSchema()
	assert.Equal(t, []string{
		"TABLE_CAT", "TABLE_SCHEM", "TABLE_NAME", "COLUMN_NAME", "DATA_TYPE",
		"TYPE_NAME", "COLUMN_SIZE", "BUFFER_LENGTH", "DECIMAL_DIGITS", "NUM_PREC_RADIX",
		"NULLABLE", "REMARKS", "COLUMN_DEF", "SQL_DATA_TYPE", "SQL_DATETIME_SUB",
		"CHAR_OCTET_LENGTH", "ORDINAL_POSITION", "IS_NULLABLE", "SCOPE_CATALOG",
		"SCOPE_SCHEMA", "SCOPE_TABLE", "SOURCE_DATA_TYPE", "IS_AUTOINCREMENT",
		"IS_GENERATEDCOLUMN",
	}, s.Names())

	dataType := s[s.Index("DATA_TYPE")]
	assert.Equal(t, FamilySmallint, dataType.Type)
	assert.False(t, dataType.Nullable)
	assert.True(t, s[s.Index("CHAR_OCTET_LENGTH")].Nullable)
	assert.False(t, s[s.Index("TABLE_NAME")].Nullable)
	assert.True(t, s[s.Index("TABLE_CAT")].Nullable)
}

func TestLayouts_FreshPerCall(t *testing.T) {
	a := TablesSchema()
	a[0].Name = "CHANGED"
	assert.Equal(t, "TABLE_CAT", TablesSchema()[0].Name)
}

func TestNewEngineInfo(t *testing.T) {
	info := NewEngineInfo("1.2.3")
	assert.Equal(t, "Hazelcast", info.ProductName)
	assert.Equal(t, "1.2.3", info.DriverVersion)
	assert.Equal(t, `"`, info.IdentifierQuote)
	assert.Equal(t, ".", info.CatalogSeparator)
	assert.False(t, info.SupportsTransactions)
	assert.True(t, info.NullsSortedLow)
	assert.Equal(t, []string{TableTypeBase, TableTypeView}, info.TableTypes)
}
