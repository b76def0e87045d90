package exporter

import (
	"bufio"
	"encoding/csv"
	"io"
	"strconv"

	"mysql-adapter/internal/classify"
)

// CSVEncoder wraps encoding/csv with type-aware, low-allocation logic.
// It uses a bufio.Writer to minimize IO syscalls, which is crucial for high-throughput exporting.
type CSVEncoder struct {
	w   *csv.Writer
	buf *bufio.Writer
}

// NewCSVEncoder creates a new CSV encoder that writes to the provided io.Writer.
// It initializes a 64KB buffer to optimize write performance.
func NewCSVEncoder(w io.Writer) *CSVEncoder {
	buf := bufio.NewWriterSize(w, 64*1024)
	return &CSVEncoder{
		w:   csv.NewWriter(buf),
		buf: buf,
	}
}

// WriteHeader writes the CSV header row. The column types are not needed
// here: CSV cells are strings either way.
func (e *CSVEncoder) WriteHeader(columns []string, _ []classify.ColumnType) error {
	return e.w.Write(columns)
}

// WriteRow writes a single row of already-decoded envelope values.
func (e *CSVEncoder) WriteRow(values []any) error {
	record := make([]string, len(values))
	for i, v := range values {
		record[i] = toString(v)
	}
	return e.w.Write(record)
}

// Flush ensures all data is written to the underlying writer.
func (e *CSVEncoder) Flush() error {
	e.w.Flush()
	if err := e.w.Error(); err != nil {
		return err
	}
	return e.buf.Flush()
}

// Error returns any error stored in the CSV writer.
func (e *CSVEncoder) Error() error {
	return e.w.Error()
}

// Close flushes and satisfies io.Closer.
func (e *CSVEncoder) Close() error {
	return e.Flush()
}

// toString renders an envelope value. Envelope rows only ever hold nil,
// string, []byte, int64, float64 and bool after decoding.
func toString(val any) string {
	var s string
	if val == nil {
		s = "NULL"
	} else {
		switch v := val.(type) {
		case []byte:
			s = string(v)
		case string:
			s = v
		case int64:
			s = strconv.FormatInt(v, 10)
		case int:
			s = strconv.Itoa(v)
		case float64:
			s = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			if v {
				s = "1"
			} else {
				s = "0"
			}
		default:
			s = ""
		}
	}

	// Formula Injection Mitigation (CSV Injection)
	// If the string starts with =, +, -, or @, prefix it with a single quote.
	if len(s) > 0 {
		first := s[0]
		if first == '=' || first == '+' || first == '-' || first == '@' {
			s = "'" + s
		}
	}
	return s
}
