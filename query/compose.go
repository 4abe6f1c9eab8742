package query

// Spec is a fully resolved listing query.
type Spec struct {
	Predicate Predicate
	Sort      Sort
	Page      Page
}

// Compose conjoins the filter and search predicates.
func Compose(filter, search Predicate) Predicate {
	return All(filter, search)
}

// Build resolves every part of a listing query from p.
func Build(p Params) Spec {
	return Spec{
		Predicate: Compose(BuildFilter(p), BuildSearch(p.Search)),
		Sort:      BuildSort(p.Sort, p.Order),
		Page:      BuildPagination(p.Page, p.Limit),
	}
}
