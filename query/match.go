package query

import (
	"strings"
	"time"

	"github.com/chaitanya039/sales-dashboard-backend/models"
)

// Match evaluates p against r.
func Match(p Predicate, r *models.SaleRecord) bool {
	switch v := p.(type) {
	case nil:
		return true
	case Equals:
		s, ok := r.Value(v.Field).(string)
		return ok && s == v.Value
	case Regex:
		s, ok := r.Value(v.Field).(string)
		return ok && strings.Contains(strings.ToLower(s), strings.ToLower(v.Term))
	case Range:
		val := r.Value(v.Field)
		if v.Min != nil && !atLeast(val, v.Min) {
			return false
		}
		if v.Max != nil && !atMost(val, v.Max) {
			return false
		}
		return true
	case And:
		for _, t := range v {
			if !Match(t, r) {
				return false
			}
		}
		return true
	case Or:
		for _, t := range v {
			if Match(t, r) {
				return true
			}
		}
		return false
	}
	return false
}

func atLeast(val, bound any) bool {
	c, ok := compare(val, bound)
	return ok && c >= 0
}

func atMost(val, bound any) bool {
	c, ok := compare(val, bound)
	return ok && c <= 0
}

// compare orders val against bound. ok is false when the two are not
// comparable, either side is NaN, or either side is an unset time.
func compare(val, bound any) (int, bool) {
	if InvalidBound(bound) {
		return 0, false
	}
	switch b := bound.(type) {
	case float64:
		v, ok := val.(float64)
		if !ok || v != v {
			return 0, false
		}
		switch {
		case v < b:
			return -1, true
		case v > b:
			return 1, true
		}
		return 0, true
	case time.Time:
		v, ok := val.(time.Time)
		if !ok {
			return 0, false
		}
		return v.Compare(b), true
	}
	return 0, false
}
