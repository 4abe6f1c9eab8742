package query

import (
	"strings"

	"github.com/chaitanya039/sales-dashboard-backend/models"
)

// Sort is a single-field ordering. The zero value means natural order.
type Sort struct {
	Field models.Field
	Desc  bool
}

// IsNatural reports whether no ordering was requested.
func (s Sort) IsNatural() bool {
	return s.Field == ""
}

// BuildSort orders by field, descending only when order is "desc" in any
// case. The field name is not checked here; stores fall back to natural
// order for names they do not know.
func BuildSort(field, order string) Sort {
	if field == "" {
		return Sort{}
	}
	return Sort{
		Field: models.Field(field),
		Desc:  strings.EqualFold(order, "desc"),
	}
}
