// Package wire holds the MySQL column metadata vocabulary: the on-wire
// type codes, the per-column flag bits and the charset sentinel used to
// tell byte columns apart from text columns sharing a type code.
package wire

// Column type codes as sent in the result set column definition packet.
// See https://mariadb.com/kb/en/result-set-packets/#field-types
const (
	TypeDecimal    uint8 = 0x00
	TypeTiny       uint8 = 0x01
	TypeShort      uint8 = 0x02
	TypeLong       uint8 = 0x03
	TypeFloat      uint8 = 0x04
	TypeDouble     uint8 = 0x05
	TypeNull       uint8 = 0x06
	TypeTimestamp  uint8 = 0x07
	TypeLongLong   uint8 = 0x08
	TypeInt24      uint8 = 0x09
	TypeDate       uint8 = 0x0a
	TypeTime       uint8 = 0x0b
	TypeDateTime   uint8 = 0x0c
	TypeYear       uint8 = 0x0d
	TypeNewDate    uint8 = 0x0e
	TypeVarChar    uint8 = 0x0f
	TypeBit        uint8 = 0x10
	TypeJSON       uint8 = 0xf5
	TypeNewDecimal uint8 = 0xf6
	TypeEnum       uint8 = 0xf7
	TypeSet        uint8 = 0xf8
	TypeTinyBlob   uint8 = 0xf9
	TypeMediumBlob uint8 = 0xfa
	TypeLongBlob   uint8 = 0xfb
	TypeBlob       uint8 = 0xfc
	TypeVarString  uint8 = 0xfd
	TypeString     uint8 = 0xfe
	TypeGeometry   uint8 = 0xff
)

// Column definition flag bits.
const (
	FlagNotNull       uint16 = 1
	FlagPrimaryKey    uint16 = 2
	FlagUniqueKey     uint16 = 4
	FlagMultipleKey   uint16 = 8
	FlagBlob          uint16 = 16
	FlagUnsigned      uint16 = 32
	FlagZerofill      uint16 = 64
	FlagBinary        uint16 = 128
	FlagEnum          uint16 = 256
	FlagAutoIncrement uint16 = 512
	FlagTimestamp     uint16 = 1024
	FlagSet           uint16 = 2048
	FlagNoDefault     uint16 = 4096
	FlagOnUpdateNow   uint16 = 8192
	FlagNum           uint16 = 32768
)

// CharsetBinary is the reserved character set id meaning the column holds
// raw bytes rather than text. It disambiguates BLOB from TEXT columns,
// which share the same type codes.
const CharsetBinary uint16 = 63

// Field describes one result column as reported by the server.
// Instances are built fresh per query and never mutated afterwards.
type Field struct {
	// Name is the column name (alias if the query set one).
	Name string
	// Type is the wire type code of the column.
	Type uint8
	// Flags is the column attribute bitmask.
	Flags uint16
	// Charset identifies the column text encoding; CharsetBinary means
	// the column is binary.
	Charset uint16
	// Length is the declared column length. Only meaningful for BIT,
	// where it separates single-bit boolean columns from bit fields.
	Length uint32
}

var typeNames = map[uint8]string{
	TypeDecimal:    "DECIMAL",
	TypeTiny:       "TINY",
	TypeShort:      "SHORT",
	TypeLong:       "LONG",
	TypeFloat:      "FLOAT",
	TypeDouble:     "DOUBLE",
	TypeNull:       "NULL",
	TypeTimestamp:  "TIMESTAMP",
	TypeLongLong:   "LONGLONG",
	TypeInt24:      "INT24",
	TypeDate:       "DATE",
	TypeTime:       "TIME",
	TypeDateTime:   "DATETIME",
	TypeYear:       "YEAR",
	TypeNewDate:    "NEWDATE",
	TypeVarChar:    "VARCHAR",
	TypeBit:        "BIT",
	TypeJSON:       "JSON",
	TypeNewDecimal: "NEWDECIMAL",
	TypeEnum:       "ENUM",
	TypeSet:        "SET",
	TypeTinyBlob:   "TINY_BLOB",
	TypeMediumBlob: "MEDIUM_BLOB",
	TypeLongBlob:   "LONG_BLOB",
	TypeBlob:       "BLOB",
	TypeVarString:  "VAR_STRING",
	TypeString:     "STRING",
	TypeGeometry:   "GEOMETRY",
}

// TypeName returns the protocol name for a wire type code, or "Unknown"
// if the code is not part of the protocol table.
func TypeName(code uint8) string {
	if name, ok := typeNames[code]; ok {
		return name
	}
	return "Unknown"
}
