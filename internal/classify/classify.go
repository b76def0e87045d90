// Package classify maps MySQL wire column metadata onto the normalized,
// engine-agnostic column type taxonomy consumed by the query layer.
package classify

import (
	"fmt"

	"mysql-adapter/internal/wire"
)

// ColumnType is the normalized column taxonomy. It is closed: there is no
// "unknown" member, an unclassifiable column is an error instead.
type ColumnType int

const (
	Numeric ColumnType = iota
	Float
	Double
	Int32
	Int64
	DateTime
	Time
	Date
	Text
	Bytes
	Boolean
	Json
	Enum
)

var columnTypeNames = [...]string{
	Numeric:  "Numeric",
	Float:    "Float",
	Double:   "Double",
	Int32:    "Int32",
	Int64:    "Int64",
	DateTime: "DateTime",
	Time:     "Time",
	Date:     "Date",
	Text:     "Text",
	Bytes:    "Bytes",
	Boolean:  "Boolean",
	Json:     "Json",
	Enum:     "Enum",
}

func (t ColumnType) String() string {
	if t < 0 || int(t) >= len(columnTypeNames) {
		return fmt.Sprintf("ColumnType(%d)", int(t))
	}
	return columnTypeNames[t]
}

// MarshalText renders the type by name so envelopes serialize readably.
func (t ColumnType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnsupportedTypeError reports a column whose wire metadata matched no
// classification rule. TypeName is the protocol name of the offending
// code, or "Unknown" when the code itself is not in the protocol table.
type UnsupportedTypeError struct {
	TypeName string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported native data type %s", e.TypeName)
}

// Classify resolves one column descriptor to its normalized type.
//
// The rules are ordered and mutually exclusive; order matters because
// several codes are shared across categories and only the unsigned flag,
// the binary charset sentinel or the declared length tells them apart.
// The function is pure: same field in, same type out.
func Classify(f wire.Field) (ColumnType, error) {
	switch f.Type {
	case wire.TypeDecimal, wire.TypeNewDecimal:
		return Numeric, nil
	case wire.TypeFloat:
		return Float, nil
	case wire.TypeDouble:
		return Double, nil
	case wire.TypeTiny, wire.TypeShort, wire.TypeYear:
		return Int32, nil
	case wire.TypeLong, wire.TypeInt24:
		// 32-bit unsigned values overflow int32, so promote them.
		if f.Flags&wire.FlagUnsigned != 0 {
			return Int64, nil
		}
		return Int32, nil
	case wire.TypeLongLong:
		return Int64, nil
	case wire.TypeTimestamp, wire.TypeDateTime:
		return DateTime, nil
	case wire.TypeTime:
		return Time, nil
	case wire.TypeDate, wire.TypeNewDate:
		return Date, nil
	case wire.TypeVarChar, wire.TypeVarString, wire.TypeString:
		return Text, nil
	case wire.TypeTinyBlob, wire.TypeMediumBlob, wire.TypeLongBlob, wire.TypeBlob:
		// The blob codes cover both TEXT and BLOB columns; only the
		// charset tells them apart.
		if f.Charset == wire.CharsetBinary {
			return Bytes, nil
		}
		return Text, nil
	case wire.TypeBit:
		if f.Length == 1 {
			return Boolean, nil
		}
		return Bytes, nil
	case wire.TypeJSON:
		return Json, nil
	case wire.TypeEnum:
		return Enum, nil
	}
	if f.Flags&wire.FlagEnum != 0 {
		return Enum, nil
	}
	if f.Type == wire.TypeNull {
		// Columns rarely carry the NULL type outside constant
		// expressions. Int32 is an arbitrary but stable fallback.
		return Int32, nil
	}
	return 0, &UnsupportedTypeError{TypeName: wire.TypeName(f.Type)}
}
