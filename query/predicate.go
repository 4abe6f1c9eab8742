// Package query turns raw listing parameters into a Spec: a predicate over
// sale records, an ordering and a pagination window. Predicates are plain
// values; storage backends either compile them (database.CompileWhere) or
// evaluate them in memory (Match).
package query

import (
	"time"

	"github.com/chaitanya039/sales-dashboard-backend/models"
)

// Predicate is one of Equals, Range, Regex, And or Or.
type Predicate interface {
	isPredicate()
}

// Equals matches records whose text field equals Value exactly.
type Equals struct {
	Field models.Field
	Value string
}

// Range matches records whose field lies within [Min, Max]. Bounds are
// float64 or time.Time; a nil bound is open. A NaN or zero-time bound is a
// bound that failed coercion and matches nothing.
type Range struct {
	Field models.Field
	Min   any
	Max   any
}

// Regex matches records whose field contains Term, ignoring case. Term is a
// literal; metacharacters carry no meaning.
type Regex struct {
	Field models.Field
	Term  string
}

// And matches when every term matches. An empty And matches everything.
type And []Predicate

// Or matches when at least one term matches. An empty Or matches nothing.
type Or []Predicate

func (Equals) isPredicate() {}
func (Range) isPredicate()  {}
func (Regex) isPredicate()  {}
func (And) isPredicate()    {}
func (Or) isPredicate()     {}

// All conjoins preds, dropping nils and flattening nested Ands.
func All(preds ...Predicate) And {
	out := And{}
	for _, p := range preds {
		switch v := p.(type) {
		case nil:
		case And:
			out = append(out, All(v...)...)
		default:
			out = append(out, v)
		}
	}
	return out
}

// IsEmpty reports whether p places no restriction on records.
func IsEmpty(p Predicate) bool {
	if p == nil {
		return true
	}
	a, ok := p.(And)
	if !ok {
		return false
	}
	for _, t := range a {
		if !IsEmpty(t) {
			return false
		}
	}
	return true
}

// InvalidBound reports whether a range bound failed coercion.
func InvalidBound(b any) bool {
	switch v := b.(type) {
	case float64:
		return v != v
	case time.Time:
		return v.IsZero()
	}
	return false
}
