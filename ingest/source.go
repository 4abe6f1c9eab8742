package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/chaitanya039/sales-dashboard-backend/models"
)

// Row is one source record keyed by header name.
type Row struct {
	Line   int
	Values map[string]string
}

// RowError is a malformed source row. The stream is still usable after it.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }
func (e *RowError) Unwrap() error { return e.Err }

// Source yields rows until io.EOF. A *RowError rejects one row; any other
// error ends the stream.
type Source interface {
	Next() (Row, error)
}

// CSVSource reads delimited text with a header line. Input is decoded as
// UTF-8 (or UTF-16 when a BOM says so), the BOM is dropped, and text is
// NFC-normalized before parsing.
type CSVSource struct {
	r      *csv.Reader
	header []string
}

// NewCSVSource reads and checks the header. Every SaleRecord header must be
// present; extra columns are ignored.
func NewCSVSource(r io.Reader, comma rune) (*CSVSource, error) {
	decoded := transform.NewReader(r, transform.Chain(
		unicode.BOMOverride(unicode.UTF8.NewDecoder()),
		norm.NFC,
	))

	cr := csv.NewReader(decoded)
	cr.Comma = comma
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	hdr, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty source", ErrSourceRead)
		}
		return nil, fmt.Errorf("%w: read header: %w", ErrSourceRead, err)
	}

	header := make([]string, len(hdr))
	seen := make(map[string]bool, len(hdr))
	for i, h := range hdr {
		header[i] = strings.TrimSpace(h)
		seen[header[i]] = true
	}

	var missing []string
	for _, f := range models.Fields {
		if !seen[f.Header] {
			missing = append(missing, f.Header)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", ErrSourceRead, strings.Join(missing, ", "))
	}

	return &CSVSource{r: cr, header: header}, nil
}

// Next returns the next row.
func (s *CSVSource) Next() (Row, error) {
	rec, err := s.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Row{}, io.EOF
		}
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return Row{}, &RowError{Line: pe.StartLine, Err: pe.Err}
		}
		return Row{}, err
	}

	line, _ := s.r.FieldPos(0)
	values := make(map[string]string, len(s.header))
	for i, h := range s.header {
		values[h] = rec[i]
	}
	return Row{Line: line, Values: values}, nil
}
