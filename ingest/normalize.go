package ingest

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/chaitanya039/sales-dashboard-backend/models"
)

// Rejection explains why a source row did not become a SaleRecord.
type Rejection struct {
	Line   int
	Field  string
	Value  string
	Reason string
}

func (r *Rejection) Error() string {
	if r.Field == "" {
		return fmt.Sprintf("line %d: %s", r.Line, r.Reason)
	}
	return fmt.Sprintf("line %d: %s %q: %s", r.Line, r.Field, r.Value, r.Reason)
}

// Normalize coerces a row into a SaleRecord. Numeric columns become numbers,
// the date column a timestamp and the rest trimmed text.
//
// In lenient mode nothing is rejected: an empty number is 0, an unparsable
// number is NaN and an unparsable date is left unset. In strict mode those
// cases reject the row.
func Normalize(row Row, strict bool) (models.SaleRecord, *Rejection) {
	var rec models.SaleRecord
	targets := rec.ScanTargets()

	for i, f := range models.Fields {
		raw, ok := row.Values[f.Header]
		if !ok {
			return models.SaleRecord{}, &Rejection{Line: row.Line, Field: f.Header, Reason: "missing column"}
		}

		switch dst := targets[i].(type) {
		case *models.Number:
			n := models.ParseNumber(raw)
			if strict && (strings.TrimSpace(raw) == "" || math.IsNaN(n)) {
				return models.SaleRecord{}, &Rejection{Line: row.Line, Field: f.Header, Value: raw, Reason: "not a number"}
			}
			*dst = models.Number(n)
		case **time.Time:
			t := models.ParseDate(raw)
			if t.IsZero() {
				if strict {
					return models.SaleRecord{}, &Rejection{Line: row.Line, Field: f.Header, Value: raw, Reason: "not a date"}
				}
				continue
			}
			*dst = &t
		case *string:
			*dst = strings.TrimSpace(raw)
		}
	}
	return rec, nil
}
