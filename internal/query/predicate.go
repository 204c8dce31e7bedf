package query

import (
	"sort"
	"strings"
)

// Predicate is one conjunctive WHERE condition with positional args.
type Predicate struct {
	Expr string
	Args []any
}

// Clause renders " WHERE <expr>", or "" when no condition applies.
func (p Predicate) Clause() string {
	if p.Expr == "" {
		return ""
	}
	return " WHERE " + p.Expr
}

var sqlOps = map[string]string{
	OpGT:  ">",
	OpLT:  "<",
	OpGTE: ">=",
	OpLTE: "<=",
}

// BuildPredicate composes the five condition groups: site scope, soft-delete
// exclusion, exact-match filters, range comparisons, and the search
// disjunction, all joined with AND. Scope terms are added whenever the
// registry declares the column; callers cannot opt out, and a caller-supplied
// status filter conjoins with the exclusion instead of replacing it. Unknown
// fields and unknown operators contribute nothing.
func BuildPredicate(reg *Registry, scope Scope, spec Spec) Predicate {
	conds := []string{}
	args := []any{}

	if reg != nil && reg.Tenant != "" {
		conds = append(conds, reg.Tenant+" = ?")
		args = append(args, scope.SiteID)
	}
	if reg != nil && reg.Status != "" {
		conds = append(conds, reg.Status+" <> ?")
		args = append(args, scope.Deleted)
	}

	// map iteration order is random; emit filter terms in sorted field
	// order so the statement text stays stable
	fields := make([]string, 0, len(spec.Filters))
	for f := range spec.Filters {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		v := spec.Filters[f]
		if v == nil {
			continue
		}
		col, ok := reg.Resolve(f)
		if !ok {
			continue
		}
		conds = append(conds, col.Name+" = ?")
		args = append(args, v)
	}

	for _, cmp := range spec.Comparisons {
		col, ok := reg.Resolve(cmp.Field)
		if !ok {
			continue
		}
		op, ok := sqlOps[cmp.Op]
		if !ok {
			continue
		}
		conds = append(conds, col.Name+" "+op+" ?")
		args = append(args, cmp.Value)
	}

	if term := strings.TrimSpace(spec.Search); term != "" && len(spec.SearchFields) > 0 {
		like := "%" + strings.ToLower(term) + "%"
		parts := []string{}
		searchArgs := []any{}
		for _, f := range spec.SearchFields {
			col, ok := reg.Resolve(f)
			if !ok {
				continue
			}
			parts = append(parts, "LOWER("+col.Name+") LIKE ?")
			searchArgs = append(searchArgs, like)
		}
		// when no search field resolves the whole term is universal,
		// not "match nothing"
		if len(parts) > 0 {
			conds = append(conds, "("+strings.Join(parts, " OR ")+")")
			args = append(args, searchArgs...)
		}
	}

	return Predicate{Expr: strings.Join(conds, " AND "), Args: args}
}
