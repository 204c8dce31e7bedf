package query

import "strings"

// Ordering is a resolved single-key sort. The zero value means store order.
type Ordering struct {
	Column string
	Desc   bool
}

// ResolveSort maps (field, order) onto a storage ordering. Unknown or empty
// fields resolve to none rather than failing. Direction is descending only
// when order is exactly "desc"; everything else sorts ascending.
func ResolveSort(reg *Registry, field, order string) (Ordering, bool) {
	field = strings.TrimSpace(field)
	if field == "" {
		return Ordering{}, false
	}
	col, ok := reg.Resolve(field)
	if !ok {
		return Ordering{}, false
	}
	return Ordering{Column: col.Name, Desc: strings.TrimSpace(order) == "desc"}, true
}

// Clause renders " ORDER BY col ASC|DESC", or "" for the zero ordering.
func (o Ordering) Clause() string {
	if o.Column == "" {
		return ""
	}
	if o.Desc {
		return " ORDER BY " + o.Column + " DESC"
	}
	return " ORDER BY " + o.Column + " ASC"
}
