package query

import (
	"reflect"
	"testing"
)

func testRegistry() *Registry {
	return &Registry{
		Entity: "articles",
		Tenant: "site_id",
		Status: "status",
		Fields: map[string]Column{
			"id":          {Name: "id", Kind: KindInt},
			"title":       {Name: "title", Kind: KindText},
			"summary":     {Name: "summary", Kind: KindText},
			"status":      {Name: "status", Kind: KindText},
			"views":       {Name: "views", Kind: KindInt},
			"publishedAt": {Name: "published_at", Kind: KindTime},
		},
	}
}

func testScope() Scope {
	return Scope{SiteID: 7, Deleted: "DELETED"}
}

func TestBuildPredicateScopeAlwaysApplied(t *testing.T) {
	p := BuildPredicate(testRegistry(), testScope(), Spec{})

	want := "site_id = ? AND status <> ?"
	if p.Expr != want {
		t.Fatalf("expr mismatch: got %q want %q", p.Expr, want)
	}
	if !reflect.DeepEqual(p.Args, []any{int64(7), "DELETED"}) {
		t.Fatalf("args mismatch: got %v", p.Args)
	}
	if p.Clause() != " WHERE site_id = ? AND status <> ?" {
		t.Fatalf("clause mismatch: got %q", p.Clause())
	}
}

func TestBuildPredicateStatusFilterConjoinsWithExclusion(t *testing.T) {
	spec := Spec{Filters: map[string]any{"status": "PENDING"}}
	p := BuildPredicate(testRegistry(), testScope(), spec)

	want := "site_id = ? AND status <> ? AND status = ?"
	if p.Expr != want {
		t.Fatalf("expr mismatch: got %q want %q", p.Expr, want)
	}
	if !reflect.DeepEqual(p.Args, []any{int64(7), "DELETED", "PENDING"}) {
		t.Fatalf("args mismatch: got %v", p.Args)
	}
}

func TestBuildPredicateDropsUnknownFilterFields(t *testing.T) {
	spec := Spec{Filters: map[string]any{
		"title":    "Go",
		"nosuch":   "x",
		"password": "secret",
	}}
	p := BuildPredicate(testRegistry(), testScope(), spec)

	want := "site_id = ? AND status <> ? AND title = ?"
	if p.Expr != want {
		t.Fatalf("unknown fields should be dropped silently: got %q", p.Expr)
	}
	if !reflect.DeepEqual(p.Args, []any{int64(7), "DELETED", "Go"}) {
		t.Fatalf("args mismatch: got %v", p.Args)
	}
}

func TestBuildPredicateSkipsNilFilterValues(t *testing.T) {
	spec := Spec{Filters: map[string]any{"title": nil, "views": 3}}
	p := BuildPredicate(testRegistry(), testScope(), spec)

	want := "site_id = ? AND status <> ? AND views = ?"
	if p.Expr != want {
		t.Fatalf("nil values should be skipped: got %q", p.Expr)
	}
}

func TestBuildPredicateFilterOrderIsDeterministic(t *testing.T) {
	spec := Spec{Filters: map[string]any{
		"views":  10,
		"status": "PUBLISHED",
		"title":  "Go",
	}}
	want := "site_id = ? AND status <> ? AND status = ? AND title = ? AND views = ?"
	for i := 0; i < 20; i++ {
		p := BuildPredicate(testRegistry(), testScope(), spec)
		if p.Expr != want {
			t.Fatalf("run %d: expr not deterministic: got %q want %q", i, p.Expr, want)
		}
	}
}

func TestBuildPredicateComparisonRange(t *testing.T) {
	spec := Spec{Comparisons: []Comparison{
		{Field: "views", Op: OpGTE, Value: 10},
		{Field: "views", Op: OpLTE, Value: 100},
	}}
	p := BuildPredicate(testRegistry(), testScope(), spec)

	want := "site_id = ? AND status <> ? AND views >= ? AND views <= ?"
	if p.Expr != want {
		t.Fatalf("expr mismatch: got %q want %q", p.Expr, want)
	}
	if !reflect.DeepEqual(p.Args, []any{int64(7), "DELETED", 10, 100}) {
		t.Fatalf("args mismatch: got %v", p.Args)
	}
}

func TestBuildPredicateComparisonOps(t *testing.T) {
	cases := []struct {
		op   string
		want string
	}{
		{OpGT, "views > ?"},
		{OpLT, "views < ?"},
		{OpGTE, "views >= ?"},
		{OpLTE, "views <= ?"},
	}
	for _, tc := range cases {
		spec := Spec{Comparisons: []Comparison{{Field: "views", Op: tc.op, Value: 5}}}
		p := BuildPredicate(testRegistry(), testScope(), spec)
		want := "site_id = ? AND status <> ? AND " + tc.want
		if p.Expr != want {
			t.Fatalf("op %s: got %q want %q", tc.op, p.Expr, want)
		}
	}
}

func TestBuildPredicateDropsUnknownComparison(t *testing.T) {
	spec := Spec{Comparisons: []Comparison{
		{Field: "nosuch", Op: OpGT, Value: 1},
		{Field: "views", Op: "between", Value: 1},
		{Field: "views", Op: OpGT, Value: 1},
	}}
	p := BuildPredicate(testRegistry(), testScope(), spec)

	want := "site_id = ? AND status <> ? AND views > ?"
	if p.Expr != want {
		t.Fatalf("unknown field/op should be dropped: got %q", p.Expr)
	}
}

func TestBuildPredicateSearchDisjunction(t *testing.T) {
	spec := Spec{Search: "Berita", SearchFields: []string{"title", "summary"}}
	p := BuildPredicate(testRegistry(), testScope(), spec)

	want := "site_id = ? AND status <> ? AND (LOWER(title) LIKE ? OR LOWER(summary) LIKE ?)"
	if p.Expr != want {
		t.Fatalf("expr mismatch: got %q want %q", p.Expr, want)
	}
	if !reflect.DeepEqual(p.Args, []any{int64(7), "DELETED", "%berita%", "%berita%"}) {
		t.Fatalf("search args should be lowered and wrapped: got %v", p.Args)
	}
}

func TestBuildPredicateSearchSkipsUnresolvableFields(t *testing.T) {
	spec := Spec{Search: "go", SearchFields: []string{"nosuch", "title"}}
	p := BuildPredicate(testRegistry(), testScope(), spec)

	want := "site_id = ? AND status <> ? AND (LOWER(title) LIKE ?)"
	if p.Expr != want {
		t.Fatalf("expr mismatch: got %q want %q", p.Expr, want)
	}
	if len(p.Args) != 3 {
		t.Fatalf("expected 3 args, got %v", p.Args)
	}
}

func TestBuildPredicateSearchUniversalWhenNothingResolves(t *testing.T) {
	spec := Spec{Search: "go", SearchFields: []string{"nope", "nada"}}
	p := BuildPredicate(testRegistry(), testScope(), spec)

	want := "site_id = ? AND status <> ?"
	if p.Expr != want {
		t.Fatalf("unresolvable search must contribute nothing: got %q", p.Expr)
	}
	if len(p.Args) != 2 {
		t.Fatalf("no search args expected, got %v", p.Args)
	}
}

func TestBuildPredicateSearchIgnoredWithoutFields(t *testing.T) {
	p := BuildPredicate(testRegistry(), testScope(), Spec{Search: "go"})
	if p.Expr != "site_id = ? AND status <> ?" {
		t.Fatalf("search without fields must contribute nothing: got %q", p.Expr)
	}
	blank := BuildPredicate(testRegistry(), testScope(), Spec{Search: "   ", SearchFields: []string{"title"}})
	if blank.Expr != "site_id = ? AND status <> ?" {
		t.Fatalf("blank search must contribute nothing: got %q", blank.Expr)
	}
}

func TestBuildPredicateWithoutTenantAndStatusColumns(t *testing.T) {
	reg := &Registry{
		Entity: "audit_logs",
		Tenant: "site_id",
		Fields: map[string]Column{
			"action": {Name: "action", Kind: KindText},
		},
	}
	p := BuildPredicate(reg, testScope(), Spec{Filters: map[string]any{"action": "create"}})

	want := "site_id = ? AND action = ?"
	if p.Expr != want {
		t.Fatalf("status exclusion must be skipped without a status column: got %q", p.Expr)
	}

	bare := BuildPredicate(&Registry{Entity: "x"}, testScope(), Spec{})
	if bare.Expr != "" || bare.Clause() != "" {
		t.Fatalf("registry without scope columns should yield empty predicate, got %q", bare.Expr)
	}
}

func TestRegistryResolve(t *testing.T) {
	reg := testRegistry()
	col, ok := reg.Resolve("publishedAt")
	if !ok || col.Name != "published_at" || col.Kind != KindTime {
		t.Fatalf("resolve publishedAt: got %+v ok=%v", col, ok)
	}
	if _, ok := reg.Resolve("nosuch"); ok {
		t.Fatalf("unknown field must not resolve")
	}
	var nilReg *Registry
	if _, ok := nilReg.Resolve("title"); ok {
		t.Fatalf("nil registry must not resolve")
	}
}
