package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// CSVWriter streams tabular export data to an underlying writer
type CSVWriter struct {
	delimiter  rune
	includeBOM bool
	headers    []string
	rowCount   int
	writer     *csv.Writer
	out        io.Writer
	started    bool
}

// WriterOption is a functional option for CSVWriter configuration
type WriterOption func(*CSVWriter)

// WithDelimiter sets the field delimiter (default is comma)
func WithDelimiter(d rune) WriterOption {
	return func(w *CSVWriter) {
		w.delimiter = d
	}
}

// WithBOM prefixes the output with a UTF-8 BOM so spreadsheet tools
// detect the encoding
func WithBOM(include bool) WriterOption {
	return func(w *CSVWriter) {
		w.includeBOM = include
	}
}

// NewCSVWriter creates a new CSV writer over the given output
func NewCSVWriter(out io.Writer, opts ...WriterOption) *CSVWriter {
	w := &CSVWriter{
		delimiter:  ',',
		includeBOM: true,
		out:        out,
	}

	for _, opt := range opts {
		opt(w)
	}

	w.writer = csv.NewWriter(out)
	w.writer.Comma = w.delimiter

	return w
}

// WriteHeader writes the header row. Must be called exactly once,
// before any data rows.
func (w *CSVWriter) WriteHeader(headers []string) error {
	if w.started {
		return ErrHeaderAlreadyWritten
	}
	if len(headers) == 0 {
		return ErrMissingHeader
	}

	if w.includeBOM {
		// UTF-8 BOM: 0xEF, 0xBB, 0xBF
		if _, err := w.out.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	if err := w.writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	w.headers = headers
	w.started = true

	return nil
}

// WriteRow writes one data row. The field count must match the header.
func (w *CSVWriter) WriteRow(fields []string) error {
	if !w.started {
		return ErrMissingHeader
	}
	if len(fields) != len(w.headers) {
		return fmt.Errorf("%w: got %d fields, header has %d", ErrFieldCountMismatch, len(fields), len(w.headers))
	}

	if err := w.writer.Write(fields); err != nil {
		return fmt.Errorf("failed to write row %d: %w", w.rowCount+1, err)
	}

	w.rowCount++
	return nil
}

// Flush writes buffered data to the underlying writer
func (w *CSVWriter) Flush() error {
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv output: %w", err)
	}
	return nil
}

// RowCount returns the number of data rows written so far
func (w *CSVWriter) RowCount() int {
	return w.rowCount
}

// Headers returns the header row written to the output
func (w *CSVWriter) Headers() []string {
	return w.headers
}

// FormatTime renders a timestamp for export, blank when zero
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatOptionalTime renders an optional timestamp for export
func FormatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatTime(*t)
}

// FormatAmount renders an optional money amount with two decimal places
func FormatAmount(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}

// FormatBool renders a boolean as Yes/No for export readability
func FormatBool(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// FormatInt renders an integer for export
func FormatInt(n int) string {
	return strconv.Itoa(n)
}
