package database

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/chaitanya039/sales-dashboard-backend/models"
	"github.com/chaitanya039/sales-dashboard-backend/query"
)

// whereBuilder renders predicates into SQL with positional arguments.
type whereBuilder struct {
	args []any
}

func (b *whereBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// CompileWhere renders p as a WHERE clause body and its arguments. An empty
// predicate yields an empty clause. Arguments are numbered from $1.
func CompileWhere(p query.Predicate) (string, []any) {
	if query.IsEmpty(p) {
		return "", nil
	}
	b := &whereBuilder{}
	return b.build(p), b.args
}

func (b *whereBuilder) build(p query.Predicate) string {
	switch v := p.(type) {
	case nil:
		return "TRUE"
	case query.Equals:
		col, ok := column(v.Field)
		if !ok {
			return "FALSE"
		}
		return col + " = " + b.arg(v.Value)
	case query.Regex:
		col, ok := column(v.Field)
		if !ok {
			return "FALSE"
		}
		return col + " ~* " + b.arg(regexp.QuoteMeta(v.Term))
	case query.Range:
		col, ok := column(v.Field)
		if !ok || query.InvalidBound(v.Min) || query.InvalidBound(v.Max) {
			return "FALSE"
		}
		var parts []string
		if v.Min != nil {
			parts = append(parts, col+" >= "+b.arg(v.Min))
		}
		if v.Max != nil {
			parts = append(parts, col+" <= "+b.arg(v.Max))
		}
		if len(parts) == 0 {
			return "TRUE"
		}
		return strings.Join(parts, " AND ")
	case query.And:
		return b.join(v, " AND ", "TRUE")
	case query.Or:
		return b.join(v, " OR ", "FALSE")
	}
	return "FALSE"
}

func (b *whereBuilder) join(terms []query.Predicate, sep, empty string) string {
	if len(terms) == 0 {
		return empty
	}
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = "(" + b.build(t) + ")"
	}
	return strings.Join(parts, sep)
}

// OrderBy renders the ordering for s. Unknown fields fall back to natural
// (insertion) order; id always breaks ties.
func OrderBy(s query.Sort) string {
	if s.IsNatural() {
		return "id ASC"
	}
	col, ok := column(s.Field)
	if !ok {
		return "id ASC"
	}
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	return col + " " + dir + ", id ASC"
}

func column(f models.Field) (string, bool) {
	def, ok := models.LookupField(string(f))
	if !ok {
		return "", false
	}
	return def.Column, true
}
