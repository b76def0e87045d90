package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"mysql-adapter/internal/classify"
)

// ExcelEncoder implements RowEncoder for Excel (.xlsx) files.
// It uses excelize.StreamWriter for efficient writing of large files.
// Normalized column types decide which cells become native numbers.
type ExcelEncoder struct {
	f         *excelize.File
	sw        *excelize.StreamWriter
	w         io.Writer
	sheetName string
	rowIdx    int
	types     []classify.ColumnType
	err       error
}

// NewExcelEncoder creates a new Excel encoder.
// It initializes a new workbook and specific stream writer for high performance.
func NewExcelEncoder(w io.Writer) *ExcelEncoder {
	f := excelize.NewFile()
	sheetName := "Sheet1"
	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return &ExcelEncoder{err: err}
	}

	return &ExcelEncoder{
		f:         f,
		sw:        sw,
		w:         w,
		sheetName: sheetName,
		rowIdx:    1,
	}
}

func (e *ExcelEncoder) WriteHeader(columns []string, types []classify.ColumnType) error {
	if e.err != nil {
		return e.err
	}
	e.types = types

	row := make([]any, len(columns))
	for i, col := range columns {
		row[i] = col
	}
	return e.setRow(row)
}

func (e *ExcelEncoder) WriteRow(values []any) error {
	if e.err != nil {
		return e.err
	}

	row := make([]any, len(values))
	for i, v := range values {
		if v == nil {
			row[i] = "NULL"
			continue
		}
		if i < len(e.types) && numericColumn(e.types[i]) {
			// Excelize stores int64/float64 as native number cells.
			switch v.(type) {
			case int64, float64:
				row[i] = v
				continue
			}
		}

		var s string
		switch val := v.(type) {
		case []byte:
			s = string(val)
		case string:
			s = val
		default:
			s = toString(v)
		}

		// Formula Injection Mitigation
		if len(s) > 0 {
			first := s[0]
			if first == '=' || first == '+' || first == '-' || first == '@' {
				s = "'" + s
			}
		}
		row[i] = s
	}
	return e.setRow(row)
}

func numericColumn(t classify.ColumnType) bool {
	switch t {
	case classify.Int32, classify.Float, classify.Double:
		return true
	}
	// Int64 and Numeric stay textual: cell values round-trip through
	// float64 and would lose precision.
	return false
}

func (e *ExcelEncoder) setRow(row []any) error {
	cell, err := excelize.CoordinatesToCellName(1, e.rowIdx)
	if err != nil {
		e.err = err
		return err
	}
	if err := e.sw.SetRow(cell, row); err != nil {
		e.err = err
		return err
	}
	e.rowIdx++

	// Excel hard limit: 1,048,576 rows
	if e.rowIdx > 1048576 {
		e.err = fmt.Errorf("excel row limit exceeded (1,048,576 rows)")
		return e.err
	}
	return nil
}

func (e *ExcelEncoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	if err := e.sw.Flush(); err != nil {
		e.err = err
		return err
	}
	return e.f.Write(e.w)
}

func (e *ExcelEncoder) Error() error {
	return e.err
}

func (e *ExcelEncoder) Close() error {
	if e.f != nil {
		_ = e.f.Close()
	}
	return nil
}
