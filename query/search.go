package query

import "github.com/chaitanya039/sales-dashboard-backend/models"

// SearchFields are the fields a free-text term is matched against, in order.
var SearchFields = []models.Field{
	models.FieldCustomerName,
	models.FieldProductName,
	models.FieldBrand,
	models.FieldStoreLocation,
}

// BuildSearch returns nil for an empty term, otherwise a disjunction of
// case-insensitive substring matches over SearchFields. NUL bytes and invalid
// UTF-8 are dropped from the term first.
func BuildSearch(term string) Predicate {
	term = cleanText(term)
	if term == "" {
		return nil
	}
	out := make(Or, 0, len(SearchFields))
	for _, f := range SearchFields {
		out = append(out, Regex{Field: f, Term: term})
	}
	return out
}
