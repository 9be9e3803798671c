package domain

// EngineInfo describes the engine and the bridge the way a database driver
// reports its static capabilities.
type EngineInfo struct {
	ProductName          string   `json:"product_name"`
	DriverName           string   `json:"driver_name"`
	DriverVersion        string   `json:"driver_version"`
	IdentifierQuote      string   `json:"identifier_quote"`
	SearchStringEscape   string   `json:"search_string_escape"`
	CatalogTerm          string   `json:"catalog_term"`
	SchemaTerm           string   `json:"schema_term"`
	ProcedureTerm        string   `json:"procedure_term"`
	CatalogSeparator     string   `json:"catalog_separator"`
	CatalogAtStart       bool     `json:"catalog_at_start"`
	NumericFunctions     string   `json:"numeric_functions"`
	StringFunctions      string   `json:"string_functions"`
	ReadOnly             bool     `json:"read_only"`
	SupportsTransactions bool     `json:"supports_transactions"`
	NullsSortedLow       bool     `json:"nulls_sorted_low"`
	MixedCaseIdentifiers bool     `json:"mixed_case_identifiers"`
	TableTypes           []string `json:"table_types"`
}

// NewEngineInfo returns the static engine description for driverVersion.
func NewEngineInfo(driverVersion string) EngineInfo {
	return EngineInfo{
		ProductName:          "Hazelcast",
		DriverName:           "hzmeta",
		DriverVersion:        driverVersion,
		IdentifierQuote:      `"`,
		SearchStringEscape:   "%",
		CatalogTerm:          "catalog",
		SchemaTerm:           "schema",
		ProcedureTerm:        "procedure",
		CatalogSeparator:     ".",
		CatalogAtStart:       true,
		NumericFunctions:     "ABS,CEIL,DEGREES,EXP,FLOOR,LN,LOG10,RAND,ROUND,SIGN,TRUNCATE,ACOS,ASIN,ATAN,COS,COT,SIN,TAN",
		StringFunctions:      "ASCII,BTRIM,INITCAP,LENGTH,LIKE,ESCAPE,LOWER,LTRIM,RTRIM,SUBSTRING,TRIM,UPPER",
		ReadOnly:             false,
		SupportsTransactions: false,
		NullsSortedLow:       true,
		MixedCaseIdentifiers: true,
		TableTypes:           []string{TableTypeBase, TableTypeView},
	}
}
