package domain

// The constructors below return the fixed column layouts of each metadata
// operation. Each call builds a new RowSchema.

func varchar(name string, nullable bool) ColumnDescriptor {
	return ColumnDescriptor{Name: name, Type: FamilyVarchar, Nullable: nullable}
}

func integer(name string, nullable bool) ColumnDescriptor {
	return ColumnDescriptor{Name: name, Type: FamilyInteger, Nullable: nullable}
}

func smallint(name string, nullable bool) ColumnDescriptor {
	return ColumnDescriptor{Name: name, Type: FamilySmallint, Nullable: nullable}
}

func boolean(name string, nullable bool) ColumnDescriptor {
	return ColumnDescriptor{Name: name, Type: FamilyBoolean, Nullable: nullable}
}

// TablesSchema is the list_tables layout.
func TablesSchema() RowSchema {
	return RowSchema{
		varchar("TABLE_CAT", true),
		varchar("TABLE_SCHEM", true),
		varchar("TABLE_NAME", false),
		varchar("TABLE_TYPE", true),
		varchar("REMARKS", true),
		varchar("TYPE_CAT", true),
		varchar("TYPE_SCHEM", true),
		varchar("TYPE_NAME", true),
		varchar("SELF_REFERENCING_COL_NAME", true),
		varchar("REF_GENERATION", true),
	}
}

// ColumnsSchema is the list_columns layout.
func ColumnsSchema() RowSchema {
	return RowSchema{
		varchar("TABLE_CAT", true),
		varchar("TABLE_SCHEM", true),
		varchar("TABLE_NAME", false),
		varchar("COLUMN_NAME", false),
		smallint("DATA_TYPE", false),
		varchar("TYPE_NAME", false),
		integer("COLUMN_SIZE", false),
		varchar("BUFFER_LENGTH", true),
		integer("DECIMAL_DIGITS", true),
		integer("NUM_PREC_RADIX", true),
		integer("NULLABLE", false),
		varchar("REMARKS", true),
		varchar("COLUMN_DEF", true),
		integer("SQL_DATA_TYPE", true),
		integer("SQL_DATETIME_SUB", true),
		integer("CHAR_OCTET_LENGTH", true),
		integer("ORDINAL_POSITION", false),
		varchar("IS_NULLABLE", false),
		varchar("SCOPE_CATALOG", true),
		varchar("SCOPE_SCHEMA", true),
		varchar("SCOPE_TABLE", true),
		smallint("SOURCE_DATA_TYPE", true),
		varchar("IS_AUTOINCREMENT", true),
		varchar("IS_GENERATEDCOLUMN", true),
	}
}

// SchemasSchema is the list_schemas layout.
func SchemasSchema() RowSchema {
	return RowSchema{
		varchar("TABLE_CATALOG", false),
		varchar("TABLE_SCHEM", false),
	}
}

// CatalogsSchema is the list_catalogs layout.
func CatalogsSchema() RowSchema {
	return RowSchema{
		varchar("TABLE_CAT", false),
	}
}

// TableTypesSchema is the list_table_types layout.
func TableTypesSchema() RowSchema {
	return RowSchema{
		varchar("TABLE_TYPE", false),
	}
}

// TypeInfoSchema is the list_type_info layout.
func TypeInfoSchema() RowSchema {
	return RowSchema{
		varchar("TYPE_NAME", true),
		integer("DATA_TYPE", true),
		integer("PRECISION", true),
		varchar("LITERAL_PREFIX", true),
		varchar("LITERAL_SUFFIX", true),
		varchar("CREATE_PARAMS", true),
		smallint("NULLABLE", true),
		boolean("CASE_SENSITIVE", true),
		smallint("SEARCHABLE", true),
		boolean("UNSIGNED_ATTRIBUTE", true),
		boolean("FIXED_PREC_SCALE", true),
		boolean("AUTO_INCREMENT", true),
		varchar("LOCAL_TYPE_NAME", true),
		smallint("MINIMUM_SCALE", true),
		smallint("MAXIMUM_SCALE", true),
		integer("SQL_DATA_TYPE", true),
		integer("SQL_DATETIME_SUB", true),
		integer("NUM_PREC_RADIX", true),
	}
}
