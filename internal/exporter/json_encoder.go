package exporter

import (
	"encoding/json"
	"fmt"
	"io"

	"mysql-adapter/internal/classify"
)

// JSONEncoder implements RowEncoder for JSON Lines format.
// The first line is a header object carrying column names and normalized
// types; every following line is one row object keyed by column name.
type JSONEncoder struct {
	w       io.Writer
	columns []string
	err     error
}

// NewJSONEncoder creates a new JSON Lines encoder.
func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

// WriteHeader emits the header line and captures the column names used
// as JSON keys for the row objects.
func (e *JSONEncoder) WriteHeader(columns []string, types []classify.ColumnType) error {
	if e.err != nil {
		return e.err
	}
	e.columns = columns

	header := struct {
		Columns []string              `json:"columns"`
		Types   []classify.ColumnType `json:"types"`
	}{Columns: columns, Types: types}
	return e.writeLine(header)
}

func (e *JSONEncoder) WriteRow(values []any) error {
	if e.err != nil {
		return e.err
	}

	rowMap := make(map[string]any, len(values))
	for i, v := range values {
		colName := fmt.Sprintf("column_%d", i)
		if i < len(e.columns) {
			colName = e.columns[i]
		}

		// []byte would marshal as base64; the envelope already decoded
		// text columns, so remaining byte slices are genuinely binary
		// and stay base64. Everything else passes through.
		rowMap[colName] = v
	}
	return e.writeLine(rowMap)
}

func (e *JSONEncoder) writeLine(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		e.err = err
		return err
	}
	if _, err := e.w.Write(data); err != nil {
		e.err = err
		return err
	}
	if _, err := e.w.Write([]byte("\n")); err != nil {
		e.err = err
		return err
	}
	return nil
}

func (e *JSONEncoder) Flush() error {
	return nil
}

func (e *JSONEncoder) Error() error {
	return e.err
}

func (e *JSONEncoder) Close() error {
	return e.Flush()
}
