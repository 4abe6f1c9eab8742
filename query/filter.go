package query

import "github.com/chaitanya039/sales-dashboard-backend/models"

// BuildFilter turns the filter parameters into a conjunction of conditions.
// Absent parameters add nothing. The date range applies only when both
// StartDate and EndDate are given. Unparsable numbers and dates do not fail:
// they become bounds that match no record. NUL bytes and invalid UTF-8 are
// dropped from text values; a value left empty adds nothing.
func BuildFilter(p Params) And {
	var out And

	p.Region = cleanText(p.Region)
	p.Gender = cleanText(p.Gender)
	p.Category = cleanText(p.Category)
	p.PaymentMethod = cleanText(p.PaymentMethod)
	p.Tags = cleanText(p.Tags)

	if p.Region != "" {
		out = append(out, Equals{Field: models.FieldCustomerRegion, Value: p.Region})
	}
	if p.Gender != "" {
		out = append(out, Equals{Field: models.FieldGender, Value: p.Gender})
	}
	if p.Category != "" {
		out = append(out, Equals{Field: models.FieldProductCategory, Value: p.Category})
	}
	if p.PaymentMethod != "" {
		out = append(out, Equals{Field: models.FieldPaymentMethod, Value: p.PaymentMethod})
	}

	if p.AgeMin != "" || p.AgeMax != "" {
		age := Range{Field: models.FieldAge}
		if p.AgeMin != "" {
			age.Min = models.ParseNumber(p.AgeMin)
		}
		if p.AgeMax != "" {
			age.Max = models.ParseNumber(p.AgeMax)
		}
		out = append(out, age)
	}

	if p.StartDate != "" && p.EndDate != "" {
		out = append(out, Range{
			Field: models.FieldDate,
			Min:   models.ParseDate(p.StartDate),
			Max:   models.ParseDate(p.EndDate),
		})
	}

	if p.Tags != "" {
		out = append(out, Regex{Field: models.FieldTags, Term: p.Tags})
	}

	return out
}
