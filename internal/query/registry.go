package query

// Kind classifies the value type behind a logical field.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindTime
)

// Column maps a logical field name onto its storage column.
type Column struct {
	Name string
	Kind Kind
}

// Registry is the fixed set of queryable fields for one entity. Tenant and
// Status name the isolation and soft-delete columns; either may be empty
// for entities that lack them. Registries are built once at startup and
// read-only thereafter.
type Registry struct {
	Entity string
	Tenant string
	Status string
	Fields map[string]Column
}

// Resolve looks up a logical field. Unknown names report ok=false, never an
// error; callers drop the term and move on.
func (r *Registry) Resolve(field string) (Column, bool) {
	if r == nil || len(r.Fields) == 0 {
		return Column{}, false
	}
	col, ok := r.Fields[field]
	return col, ok
}
