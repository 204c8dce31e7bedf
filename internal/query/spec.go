// Package query builds tenant-scoped predicates, orderings and pagination
// windows for list endpoints. It is pure computation: no I/O, no shared
// state, and no failure mode once inputs pass boundary validation.
package query

// Spec is the immutable input of one list request. The zero value lists
// everything in the caller's scope with default paging.
type Spec struct {
	Filters      map[string]any
	Comparisons  []Comparison
	Search       string
	SearchFields []string
	Sort         string
	SortOrder    string
	Page         int
	PageSize     int
}

// Comparison is one ordered range term, e.g. {publishedAt gte <t>}.
// Combining gte and lte on the same field expresses an inclusive range.
type Comparison struct {
	Field string `json:"field"`
	Op    string `json:"op"`
	Value any    `json:"value"`
}

// Comparison operators accepted on the wire.
const (
	OpGT  = "gt"
	OpLT  = "lt"
	OpGTE = "gte"
	OpLTE = "lte"
)

// Scope pins every predicate to one site and excludes soft-deleted rows.
// Deleted holds the status value that marks a row as soft-deleted.
type Scope struct {
	SiteID  int64
	Deleted string
}
