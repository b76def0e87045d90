package sqlclient

import (
	"fmt"
	"strconv"
	"time"

	"mysql-adapter/internal/wire"
)

// textPreserved enumerates the wire types whose values must cross this
// boundary as their exact wire text. Native decoding is lossy for them:
// BIGINT narrows past 2^53 once it reaches a float-based consumer, and
// temporal values pick up a timezone the server never sent. The table is
// consulted before any default decoder.
var textPreserved = map[uint8]bool{
	wire.TypeTimestamp: true,
	wire.TypeDateTime:  true,
	wire.TypeDate:      true,
	wire.TypeLongLong:  true,
}

// decodeValue converts one scanned cell according to the field-decoding
// policy: overridden types become strings verbatim, everything else
// falls back to the default decoder for its wire type.
func decodeValue(f wire.Field, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if textPreserved[f.Type] {
		return asText(v)
	}

	switch f.Type {
	case wire.TypeTiny, wire.TypeShort, wire.TypeLong, wire.TypeInt24, wire.TypeYear, wire.TypeNull:
		return asInt(v)
	case wire.TypeFloat, wire.TypeDouble:
		return asFloat(v)
	case wire.TypeBit:
		return asBytes(v)
	case wire.TypeString, wire.TypeVarString, wire.TypeTinyBlob, wire.TypeMediumBlob, wire.TypeLongBlob, wire.TypeBlob:
		if f.Charset == wire.CharsetBinary {
			return asBytes(v)
		}
		return asText(v)
	default:
		// DECIMAL keeps full precision as text; TIME, JSON, ENUM and
		// SET are textual on the wire already.
		return asText(v)
	}
}

func asText(v any) (any, error) {
	switch x := v.(type) {
	case []byte:
		return string(x), nil
	case string:
		return x, nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case time.Time:
		// Only reachable when the DSN enables parseTime; render the
		// canonical literal the server would have sent.
		return x.Format("2006-01-02 15:04:05.999999"), nil
	case bool:
		if x {
			return "1", nil
		}
		return "0", nil
	}
	return nil, fmt.Errorf("cannot represent %T as text", v)
}

func asInt(v any) (any, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case uint64:
		return int64(x), nil
	case []byte:
		n, err := strconv.ParseInt(string(x), 10, 64)
		if err != nil {
			return nil, err
		}
		return n, nil
	case string:
		n, err := strconv.ParseInt(x, 10, 64)
		if err != nil {
			return nil, err
		}
		return n, nil
	}
	return nil, fmt.Errorf("cannot represent %T as integer", v)
}

func asFloat(v any) (any, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case []byte:
		n, err := strconv.ParseFloat(string(x), 64)
		if err != nil {
			return nil, err
		}
		return n, nil
	case int64:
		return float64(x), nil
	}
	return nil, fmt.Errorf("cannot represent %T as float", v)
}

func asBytes(v any) (any, error) {
	switch x := v.(type) {
	case []byte:
		return x, nil
	case string:
		return []byte(x), nil
	}
	return nil, fmt.Errorf("cannot represent %T as bytes", v)
}
