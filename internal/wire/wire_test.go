package wire

import "testing"

func TestTypeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code uint8
		want string
	}{
		{TypeDecimal, "DECIMAL"},
		{TypeLongLong, "LONGLONG"},
		{TypeBit, "BIT"},
		{TypeJSON, "JSON"},
		{TypeVarString, "VAR_STRING"},
		{TypeGeometry, "GEOMETRY"},
		{0x11, "Unknown"},
		{0xf4, "Unknown"},
	}
	for _, tt := range tests {
		if got := TypeName(tt.code); got != tt.want {
			t.Errorf("TypeName(%#x) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
