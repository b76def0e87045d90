package exporter

import (
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"mysql-adapter/internal/classify"
)

// PDFEncoder implements RowEncoder for PDF generation.
// It creates a simple grid layout for exported data.
// WARNING: PDF generation is memory intensive and slower than CSV/JSON.
type PDFEncoder struct {
	pdf    *fpdf.Fpdf
	w      io.Writer
	err    error
	closed bool
}

// NewPDFEncoder creates a new PDF encoder.
func NewPDFEncoder(w io.Writer) *PDFEncoder {
	pdf := fpdf.New("L", "mm", "A4", "") // Landscape, mm, A4
	pdf.SetFont("Arial", "", 10)
	pdf.AddPage()
	return &PDFEncoder{
		pdf: pdf,
		w:   w,
	}
}

// WriteHeader writes the table headers, annotated with the normalized
// column type so the report is self-describing.
func (e *PDFEncoder) WriteHeader(columns []string, types []classify.ColumnType) error {
	if e.err != nil {
		return e.err
	}

	e.pdf.SetFont("Arial", "B", 10)
	colWidth := e.columnWidth(len(columns))
	for i, col := range columns {
		label := col
		if i < len(types) {
			label = col + " (" + types[i].String() + ")"
		}
		e.pdf.CellFormat(colWidth, 7, label, "1", 0, "C", false, 0, "")
	}
	e.pdf.Ln(-1)
	e.pdf.SetFont("Arial", "", 10)
	return nil
}

// WriteRow writes a single row of data.
func (e *PDFEncoder) WriteRow(values []any) error {
	if e.err != nil {
		return e.err
	}

	colWidth := e.columnWidth(len(values))
	for _, v := range values {
		str := toString(v)
		str = strings.TrimPrefix(str, "'") // injection guard is a CSV concern, not a visual one
		e.pdf.CellFormat(colWidth, 7, str, "1", 0, "L", false, 0, "")
	}
	e.pdf.Ln(-1)
	return nil
}

// columnWidth distributes the usable page width equally.
// A4 landscape is ~297mm wide with 10mm default margins on each side.
func (e *PDFEncoder) columnWidth(columns int) float64 {
	pageWidth, _ := e.pdf.GetPageSize()
	left, _, right, _ := e.pdf.GetMargins()
	return (pageWidth - left - right) / float64(columns)
}

// Flush writes the PDF to the underlying writer. The document can only
// be emitted once; later flushes are no-ops.
func (e *PDFEncoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	if e.closed {
		return nil
	}
	e.closed = true
	return e.pdf.Output(e.w)
}

// Error returns any stored error.
func (e *PDFEncoder) Error() error {
	return e.err
}

// Close flushes and satisfies io.Closer.
func (e *PDFEncoder) Close() error {
	return e.Flush()
}
