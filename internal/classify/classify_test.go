package classify

import (
	"errors"
	"testing"

	"mysql-adapter/internal/wire"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		field wire.Field
		want  ColumnType
	}{
		{"decimal", wire.Field{Type: wire.TypeDecimal}, Numeric},
		{"newdecimal", wire.Field{Type: wire.TypeNewDecimal}, Numeric},
		{"float", wire.Field{Type: wire.TypeFloat}, Float},
		{"double", wire.Field{Type: wire.TypeDouble}, Double},
		{"tiny", wire.Field{Type: wire.TypeTiny}, Int32},
		{"short", wire.Field{Type: wire.TypeShort}, Int32},
		{"year", wire.Field{Type: wire.TypeYear}, Int32},
		{"long signed", wire.Field{Type: wire.TypeLong}, Int32},
		{"long unsigned", wire.Field{Type: wire.TypeLong, Flags: wire.FlagUnsigned}, Int64},
		{"int24 signed", wire.Field{Type: wire.TypeInt24}, Int32},
		{"int24 unsigned", wire.Field{Type: wire.TypeInt24, Flags: wire.FlagUnsigned}, Int64},
		{"longlong", wire.Field{Type: wire.TypeLongLong}, Int64},
		{"longlong unsigned", wire.Field{Type: wire.TypeLongLong, Flags: wire.FlagUnsigned}, Int64},
		{"timestamp", wire.Field{Type: wire.TypeTimestamp}, DateTime},
		{"datetime", wire.Field{Type: wire.TypeDateTime}, DateTime},
		{"time", wire.Field{Type: wire.TypeTime}, Time},
		{"date", wire.Field{Type: wire.TypeDate}, Date},
		{"newdate", wire.Field{Type: wire.TypeNewDate}, Date},
		{"varchar", wire.Field{Type: wire.TypeVarChar, Charset: 224}, Text},
		{"var_string", wire.Field{Type: wire.TypeVarString, Charset: 224}, Text},
		{"string", wire.Field{Type: wire.TypeString, Charset: 224}, Text},
		{"binary string is still text", wire.Field{Type: wire.TypeString, Charset: wire.CharsetBinary}, Text},
		{"text blob", wire.Field{Type: wire.TypeBlob, Charset: 5}, Text},
		{"tiny text blob", wire.Field{Type: wire.TypeTinyBlob, Charset: 224}, Text},
		{"medium text blob", wire.Field{Type: wire.TypeMediumBlob, Charset: 224}, Text},
		{"long text blob", wire.Field{Type: wire.TypeLongBlob, Charset: 224}, Text},
		{"binary blob", wire.Field{Type: wire.TypeBlob, Charset: wire.CharsetBinary}, Bytes},
		{"binary tiny blob", wire.Field{Type: wire.TypeTinyBlob, Charset: wire.CharsetBinary}, Bytes},
		{"binary medium blob", wire.Field{Type: wire.TypeMediumBlob, Charset: wire.CharsetBinary}, Bytes},
		{"binary long blob", wire.Field{Type: wire.TypeLongBlob, Charset: wire.CharsetBinary}, Bytes},
		{"bit(1)", wire.Field{Type: wire.TypeBit, Length: 1}, Boolean},
		{"bit(2)", wire.Field{Type: wire.TypeBit, Length: 2}, Bytes},
		{"bit without length", wire.Field{Type: wire.TypeBit, Length: 0}, Bytes},
		{"json", wire.Field{Type: wire.TypeJSON, Charset: 224}, Json},
		{"enum code", wire.Field{Type: wire.TypeEnum, Charset: 224}, Enum},
		{"enum flag on unknown code", wire.Field{Type: 0x20, Flags: wire.FlagEnum}, Enum},
		// NULL columns only show up for constant expressions; Int32 is
		// an arbitrary but stable fallback, not a semantic promise.
		{"null fallback", wire.Field{Type: wire.TypeNull}, Int32},
		{"null with enum flag", wire.Field{Type: wire.TypeNull, Flags: wire.FlagEnum}, Enum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Classify(tt.field)
			if err != nil {
				t.Fatalf("Classify(%+v) returned error: %v", tt.field, err)
			}
			if got != tt.want {
				t.Errorf("Classify(%+v) = %v, want %v", tt.field, got, tt.want)
			}

			// Same descriptor in, same type out.
			again, err := Classify(tt.field)
			if err != nil || again != got {
				t.Errorf("Classify is not deterministic: first %v, second %v (err %v)", got, again, err)
			}
		})
	}
}

func TestClassifyUnsupported(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		field    wire.Field
		wantName string
	}{
		{"set", wire.Field{Type: wire.TypeSet, Charset: 224}, "SET"},
		{"geometry", wire.Field{Type: wire.TypeGeometry}, "GEOMETRY"},
		{"out of table low", wire.Field{Type: 0x11}, "Unknown"},
		{"out of table high", wire.Field{Type: 0xf4}, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Classify(tt.field)
			if err == nil {
				t.Fatalf("Classify(%+v) succeeded, want unsupported type error", tt.field)
			}
			var unsupported *UnsupportedTypeError
			if !errors.As(err, &unsupported) {
				t.Fatalf("Classify(%+v) error = %T, want *UnsupportedTypeError", tt.field, err)
			}
			if unsupported.TypeName != tt.wantName {
				t.Errorf("TypeName = %q, want %q", unsupported.TypeName, tt.wantName)
			}
		})
	}
}

func TestColumnTypeString(t *testing.T) {
	t.Parallel()

	if got := Boolean.String(); got != "Boolean" {
		t.Errorf("Boolean.String() = %q", got)
	}
	if got := ColumnType(99).String(); got != "ColumnType(99)" {
		t.Errorf("ColumnType(99).String() = %q", got)
	}
	text, err := Json.MarshalText()
	if err != nil || string(text) != "Json" {
		t.Errorf("Json.MarshalText() = %q, %v", text, err)
	}
}
