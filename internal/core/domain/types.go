package domain

import (
	"math"
	"strings"
)

// TypeFamily is the engine's type classification, named as the engine's
// information_schema reports it.
type TypeFamily string

const (
	FamilyVarchar               TypeFamily = "VARCHAR"
	FamilyBoolean               TypeFamily = "BOOLEAN"
	FamilyTinyint               TypeFamily = "TINYINT"
	FamilySmallint              TypeFamily = "SMALLINT"
	FamilyInteger               TypeFamily = "INTEGER"
	FamilyBigint                TypeFamily = "BIGINT"
	FamilyDecimal               TypeFamily = "DECIMAL"
	FamilyReal                  TypeFamily = "REAL"
	FamilyDouble                TypeFamily = "DOUBLE"
	FamilyTime                  TypeFamily = "TIME"
	FamilyDate                  TypeFamily = "DATE"
	FamilyTimestamp             TypeFamily = "TIMESTAMP"
	FamilyTimestampWithTimeZone TypeFamily = "TIMESTAMP_WITH_TIME_ZONE"
	FamilyObject                TypeFamily = "OBJECT"
	FamilyJSON                  TypeFamily = "JSON"
	FamilyNull                  TypeFamily = "NULL"
	FamilyRow                   TypeFamily = "ROW"
)

// Standardized (java.sql.Types) codes.
const (
	JDBCVarchar               = 12
	JDBCBoolean               = 16
	JDBCTinyint               = -6
	JDBCSmallint              = 5
	JDBCInteger               = 4
	JDBCBigint                = -5
	JDBCDecimal               = 3
	JDBCReal                  = 7
	JDBCDouble                = 8
	JDBCTime                  = 92
	JDBCDate                  = 91
	JDBCTimestamp             = 93
	JDBCTimestampWithTimezone = 2014
	JDBCJavaObject            = 2000
	JDBCOther                 = 1111
	JDBCNull                  = 0
	JDBCStruct                = 2002
)

// Nullability and searchability constants used in metadata rows.
const (
	ColumnNoNulls   = 0
	ColumnNullable  = 1
	TypeNullable    = 1
	TypeSearchable  = 3
	NumericRadix    = 10
	unboundedLength = math.MaxInt32
)

// TypeDescriptor is the standardized description of one type family.
type TypeDescriptor struct {
	Family      TypeFamily `json:"family"`
	JDBCType    int        `json:"jdbc_type"`
	DisplayName string     `json:"display_name"`
	Precision   int        `json:"precision"`
	Scale       int        `json:"scale"`
	Signed      bool       `json:"signed"`
}

// TypeRegistry maps engine type families to standardized descriptors.
// It is read-only after construction and safe for concurrent use.
type TypeRegistry struct {
	byFamily  map[TypeFamily]TypeDescriptor
	byName    map[string]TypeFamily
	supported []TypeFamily
}

var standardRegistry = newTypeRegistry()

// StandardTypes returns the process-wide registry.
func StandardTypes() *TypeRegistry {
	return standardRegistry
}

func newTypeRegistry() *TypeRegistry {
	descriptors := []TypeDescriptor{
		{Family: FamilyVarchar, JDBCType: JDBCVarchar, Precision: unboundedLength},
		{Family: FamilyBoolean, JDBCType: JDBCBoolean, Precision: 1},
		{Family: FamilyTinyint, JDBCType: JDBCTinyint, Precision: 3, Signed: true},
		{Family: FamilySmallint, JDBCType: JDBCSmallint, Precision: 5, Signed: true},
		{Family: FamilyInteger, JDBCType: JDBCInteger, Precision: 10, Signed: true},
		{Family: FamilyBigint, JDBCType: JDBCBigint, Precision: 19, Signed: true},
		{Family: FamilyDecimal, JDBCType: JDBCDecimal, Precision: 38, Scale: 18, Signed: true},
		{Family: FamilyReal, JDBCType: JDBCReal, Precision: 7, Signed: true},
		{Family: FamilyDouble, JDBCType: JDBCDouble, Precision: 15, Signed: true},
		{Family: FamilyTime, JDBCType: JDBCTime, Precision: 18, Scale: 9},
		{Family: FamilyDate, JDBCType: JDBCDate, Precision: 10},
		{Family: FamilyTimestamp, JDBCType: JDBCTimestamp, Precision: 29, Scale: 9},
		{Family: FamilyTimestampWithTimeZone, JDBCType: JDBCTimestampWithTimezone, Precision: 35, Scale: 9},
		{Family: FamilyObject, JDBCType: JDBCJavaObject, Precision: unboundedLength},
		{Family: FamilyJSON, JDBCType: JDBCOther, Precision: unboundedLength},
		{Family: FamilyNull, JDBCType: JDBCNull},
		{Family: FamilyRow, JDBCType: JDBCStruct, Precision: unboundedLength},
	}

	r := &TypeRegistry{
		byFamily: make(map[TypeFamily]TypeDescriptor, len(descriptors)),
		byName:   make(map[string]TypeFamily, len(descriptors)*2+len(typeAliases)),
		supported: []TypeFamily{
			FamilyVarchar, FamilyBoolean, FamilyBigint, FamilyTinyint, FamilySmallint,
			FamilyInteger, FamilyDecimal, FamilyReal, FamilyDouble, FamilyTime,
			FamilyDate, FamilyTimestamp, FamilyTimestampWithTimeZone, FamilyObject, FamilyJSON,
		},
	}
	for _, d := range descriptors {
		d.DisplayName = displayName(d.Family)
		r.byFamily[d.Family] = d
		r.byName[lookupKey(string(d.Family))] = d.Family
		r.byName[lookupKey(d.DisplayName)] = d.Family
	}
	for name, family := range typeAliases {
		r.byName[lookupKey(name)] = family
	}
	return r
}

// typeAliases are information_schema.data_type spellings of engines other
// than the native one (PostgreSQL, SQL Server).
var typeAliases = map[string]TypeFamily{
	"character varying":           FamilyVarchar,
	"varchar":                     FamilyVarchar,
	"character":                   FamilyVarchar,
	"char":                        FamilyVarchar,
	"text":                        FamilyVarchar,
	"name":                        FamilyVarchar,
	"nvarchar":                    FamilyVarchar,
	"nchar":                       FamilyVarchar,
	"ntext":                       FamilyVarchar,
	"bool":                        FamilyBoolean,
	"bit":                         FamilyBoolean,
	"int":                         FamilyInteger,
	"int4":                        FamilyInteger,
	"int2":                        FamilySmallint,
	"int8":                        FamilyBigint,
	"numeric":                     FamilyDecimal,
	"money":                       FamilyDecimal,
	"float":                       FamilyDouble,
	"float8":                      FamilyDouble,
	"double precision":            FamilyDouble,
	"float4":                      FamilyReal,
	"time without time zone":      FamilyTime,
	"timestamp without time zone": FamilyTimestamp,
	"datetime":                    FamilyTimestamp,
	"datetime2":                   FamilyTimestamp,
	"timestamp with time zone":    FamilyTimestampWithTimeZone,
	"timestamptz":                 FamilyTimestampWithTimeZone,
	"datetimeoffset":              FamilyTimestampWithTimeZone,
	"jsonb":                       FamilyJSON,
	"uuid":                        FamilyObject,
	"uniqueidentifier":            FamilyObject,
	"bytea":                       FamilyObject,
	"varbinary":                   FamilyObject,
	"array":                       FamilyObject,
	"user-defined":                FamilyObject,

	// PostgreSQL system catalog types, reported for pg_catalog and
	// information_schema columns.
	`"char"`:              FamilyVarchar,
	"oid":                 FamilyBigint,
	"xid":                 FamilyBigint,
	"cid":                 FamilyBigint,
	"xid8":                FamilyDecimal,
	"regproc":             FamilyVarchar,
	"regprocedure":        FamilyVarchar,
	"regoper":             FamilyVarchar,
	"regoperator":         FamilyVarchar,
	"regclass":            FamilyVarchar,
	"regtype":             FamilyVarchar,
	"regrole":             FamilyVarchar,
	"regnamespace":        FamilyVarchar,
	"regconfig":           FamilyVarchar,
	"regdictionary":       FamilyVarchar,
	"regcollation":        FamilyVarchar,
	"aclitem":             FamilyVarchar,
	"pg_lsn":              FamilyVarchar,
	"pg_node_tree":        FamilyVarchar,
	"pg_ndistinct":        FamilyVarchar,
	"pg_dependencies":     FamilyVarchar,
	"pg_mcv_list":         FamilyVarchar,
	"pg_snapshot":         FamilyVarchar,
	"txid_snapshot":       FamilyVarchar,
	"anyarray":            FamilyObject,
	"interval":            FamilyObject,
	"time with time zone": FamilyTime,
	"timetz":              FamilyTime,
	"inet":                FamilyVarchar,
	"cidr":                FamilyVarchar,
	"macaddr":             FamilyVarchar,
	"macaddr8":            FamilyVarchar,
	"xml":                 FamilyVarchar,
	"tsvector":            FamilyVarchar,
	"tsquery":             FamilyVarchar,
	"jsonpath":            FamilyVarchar,
	"bit varying":         FamilyObject,
	"varbit":              FamilyObject,
	"point":               FamilyObject,
	"line":                FamilyObject,
	"lseg":                FamilyObject,
	"box":                 FamilyObject,
	"path":                FamilyObject,
	"polygon":             FamilyObject,
	"circle":              FamilyObject,
	"int4range":           FamilyObject,
	"int8range":           FamilyObject,
	"numrange":            FamilyObject,
	"tsrange":             FamilyObject,
	"tstzrange":           FamilyObject,
	"daterange":           FamilyObject,
	"int4multirange":      FamilyObject,
	"int8multirange":      FamilyObject,
	"nummultirange":       FamilyObject,
	"tsmultirange":        FamilyObject,
	"tstzmultirange":      FamilyObject,
	"datemultirange":      FamilyObject,

	// SQL Server spellings not covered above.
	"smallmoney":    FamilyDecimal,
	"smalldatetime": FamilyTimestamp,
	"binary":        FamilyObject,
	"image":         FamilyObject,
	"rowversion":    FamilyObject,
	"sql_variant":   FamilyObject,
	"hierarchyid":   FamilyObject,
}

func lookupKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func displayName(f TypeFamily) string {
	return strings.ReplaceAll(string(f), "_", " ")
}

// Descriptor returns the descriptor for a family.
func (r *TypeRegistry) Descriptor(f TypeFamily) (TypeDescriptor, error) {
	d, ok := r.byFamily[f]
	if !ok {
		return TypeDescriptor{}, &TypeMappingError{Name: string(f)}
	}
	return d, nil
}

// Lookup resolves a catalog-reported type name to its family.
func (r *TypeRegistry) Lookup(nativeName string) (TypeFamily, error) {
	f, ok := r.byName[lookupKey(nativeName)]
	if !ok {
		return "", &TypeMappingError{Name: nativeName}
	}
	return f, nil
}

// Resolve is Lookup followed by Descriptor.
func (r *TypeRegistry) Resolve(nativeName string) (TypeDescriptor, error) {
	f, err := r.Lookup(nativeName)
	if err != nil {
		return TypeDescriptor{}, err
	}
	return r.Descriptor(f)
}

// DisplayName returns the human-readable family name, e.g. "TIMESTAMP WITH TIME ZONE".
func (r *TypeRegistry) DisplayName(f TypeFamily) (string, error) {
	d, err := r.Descriptor(f)
	if err != nil {
		return "", err
	}
	return d.DisplayName, nil
}

// IsNumeric reports whether values of f are numbers.
func (r *TypeRegistry) IsNumeric(f TypeFamily) bool {
	switch f {
	case FamilyTinyint, FamilySmallint, FamilyInteger, FamilyBigint,
		FamilyDecimal, FamilyReal, FamilyDouble:
		return true
	}
	return false
}

// Supported lists the families reported by list_type_info, in order.
func (r *TypeRegistry) Supported() []TypeFamily {
	out := make([]TypeFamily, len(r.supported))
	copy(out, r.supported)
	return out
}
