package sqlclient

import (
	"database/sql"
	"strings"

	"mysql-adapter/internal/wire"
)

// defaultTextCharset stands in for the column's real collation id, which
// database/sql does not surface. Any value other than the binary
// sentinel works: downstream only ever tests for wire.CharsetBinary.
const defaultTextCharset uint16 = 224 // utf8mb4_unicode_ci

// typeCodes maps the driver's database type names back onto wire type
// codes and the charset class they imply. The driver already folds the
// charset into the name (TEXT vs BLOB, CHAR vs BINARY), so the pair is
// recoverable without touching the protocol.
var typeCodes = map[string]wire.Field{
	"DECIMAL":   {Type: wire.TypeNewDecimal, Charset: wire.CharsetBinary},
	"TINYINT":   {Type: wire.TypeTiny, Charset: wire.CharsetBinary},
	"SMALLINT":  {Type: wire.TypeShort, Charset: wire.CharsetBinary},
	"INT":       {Type: wire.TypeLong, Charset: wire.CharsetBinary},
	"MEDIUMINT": {Type: wire.TypeInt24, Charset: wire.CharsetBinary},
	"BIGINT":    {Type: wire.TypeLongLong, Charset: wire.CharsetBinary},
	"FLOAT":     {Type: wire.TypeFloat, Charset: wire.CharsetBinary},
	"DOUBLE":    {Type: wire.TypeDouble, Charset: wire.CharsetBinary},
	"NULL":      {Type: wire.TypeNull, Charset: wire.CharsetBinary},
	"TIMESTAMP": {Type: wire.TypeTimestamp, Charset: wire.CharsetBinary},
	"DATE":      {Type: wire.TypeDate, Charset: wire.CharsetBinary},
	"TIME":      {Type: wire.TypeTime, Charset: wire.CharsetBinary},
	"DATETIME":  {Type: wire.TypeDateTime, Charset: wire.CharsetBinary},
	"YEAR":      {Type: wire.TypeYear, Charset: wire.CharsetBinary},
	"BIT":       {Type: wire.TypeBit, Charset: wire.CharsetBinary},
	"JSON":      {Type: wire.TypeJSON, Charset: defaultTextCharset},
	"ENUM":      {Type: wire.TypeEnum, Charset: defaultTextCharset},
	"SET":       {Type: wire.TypeSet, Charset: defaultTextCharset},

	"CHAR":      {Type: wire.TypeString, Charset: defaultTextCharset},
	"BINARY":    {Type: wire.TypeString, Charset: wire.CharsetBinary},
	"VARCHAR":   {Type: wire.TypeVarString, Charset: defaultTextCharset},
	"VARBINARY": {Type: wire.TypeVarString, Charset: wire.CharsetBinary},

	"TINYTEXT":   {Type: wire.TypeTinyBlob, Charset: defaultTextCharset},
	"TINYBLOB":   {Type: wire.TypeTinyBlob, Charset: wire.CharsetBinary},
	"TEXT":       {Type: wire.TypeBlob, Charset: defaultTextCharset},
	"BLOB":       {Type: wire.TypeBlob, Charset: wire.CharsetBinary},
	"MEDIUMTEXT": {Type: wire.TypeMediumBlob, Charset: defaultTextCharset},
	"MEDIUMBLOB": {Type: wire.TypeMediumBlob, Charset: wire.CharsetBinary},
	"LONGTEXT":   {Type: wire.TypeLongBlob, Charset: defaultTextCharset},
	"LONGBLOB":   {Type: wire.TypeLongBlob, Charset: wire.CharsetBinary},

	"GEOMETRY": {Type: wire.TypeGeometry, Charset: wire.CharsetBinary},
}

// fieldForTypeName resolves a driver database type name to its wire
// code and charset class, folding an "UNSIGNED " prefix into the flags.
func fieldForTypeName(name string) wire.Field {
	var flags uint16
	if rest, ok := strings.CutPrefix(name, "UNSIGNED "); ok {
		name = rest
		flags |= wire.FlagUnsigned
	}

	f, ok := typeCodes[name]
	if !ok {
		// Out-of-protocol code, so classification fails closed
		// instead of guessing.
		f = wire.Field{Type: 0xf4}
	}
	f.Flags |= flags
	return f
}

// fieldOf synthesizes a wire field descriptor from driver column
// metadata.
func fieldOf(ct *sql.ColumnType) wire.Field {
	f := fieldForTypeName(ct.DatabaseTypeName())
	f.Name = ct.Name()
	if nullable, ok := ct.Nullable(); ok && !nullable {
		f.Flags |= wire.FlagNotNull
	}
	if length, ok := ct.Length(); ok && length > 0 {
		f.Length = uint32(length)
	}
	return f
}
