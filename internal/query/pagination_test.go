package query

import "testing"

func TestPaginateNormalizesPage(t *testing.T) {
	for _, page := range []int{0, -1, -99} {
		pg := Paginate(page, 10, 45)
		if pg.Page != 1 || pg.Offset != 0 {
			t.Fatalf("page %d: got page=%d offset=%d, want 1/0", page, pg.Page, pg.Offset)
		}
	}
}

func TestPaginateNormalizesPageSize(t *testing.T) {
	for _, size := range []int{0, -5} {
		pg := Paginate(1, size, 45)
		if pg.PageSize != DefaultPageSize || pg.Limit != DefaultPageSize {
			t.Fatalf("size %d: got pageSize=%d limit=%d, want default %d", size, pg.PageSize, pg.Limit, DefaultPageSize)
		}
	}
}

func TestPaginateZeroTotal(t *testing.T) {
	pg := Paginate(3, 25, 0)
	if pg.TotalPages != 0 {
		t.Fatalf("zero total must give zero totalPages, got %d", pg.TotalPages)
	}
	if pg.Offset != 50 || pg.Limit != 25 {
		t.Fatalf("window must still be computed: got offset=%d limit=%d", pg.Offset, pg.Limit)
	}
}

func TestPaginateExactDivision(t *testing.T) {
	pg := Paginate(1, 10, 100)
	if pg.TotalPages != 10 {
		t.Fatalf("100/10 must give 10 pages, got %d", pg.TotalPages)
	}
}

func TestPaginatePartialLastPage(t *testing.T) {
	pg := Paginate(5, 10, 45)
	if pg.TotalPages != 5 {
		t.Fatalf("45/10 must give 5 pages, got %d", pg.TotalPages)
	}
	if pg.Offset != 40 || pg.Limit != 10 {
		t.Fatalf("page 5 window: got offset=%d limit=%d, want 40/10", pg.Offset, pg.Limit)
	}
	lastPageRows := 45 - (pg.TotalPages-1)*pg.PageSize
	if lastPageRows != 5 {
		t.Fatalf("last page must hold 5 rows, got %d", lastPageRows)
	}
}

func TestPaginateBeyondLastPage(t *testing.T) {
	pg := Paginate(9, 10, 45)
	if pg.Page != 9 || pg.Offset != 80 || pg.TotalPages != 5 {
		t.Fatalf("beyond-last page must stay legal: got %+v", pg)
	}
}

// Walking page 1..TotalPages over a dataset must yield every row exactly
// once, in order.
func TestPaginateWalkIsCompleteAndDisjoint(t *testing.T) {
	cases := []struct {
		total, size int
	}{
		{45, 10},
		{23, 7},
		{10, 10},
		{1, 10},
	}
	for _, tc := range cases {
		rows := make([]int, tc.total)
		for i := range rows {
			rows[i] = i
		}

		collected := []int{}
		first := Paginate(1, tc.size, tc.total)
		for page := 1; page <= first.TotalPages; page++ {
			pg := Paginate(page, tc.size, tc.total)
			end := pg.Offset + pg.Limit
			if end > tc.total {
				end = tc.total
			}
			if pg.Offset > tc.total {
				t.Fatalf("total=%d size=%d page=%d: offset %d beyond data", tc.total, tc.size, page, pg.Offset)
			}
			collected = append(collected, rows[pg.Offset:end]...)
		}

		if len(collected) != tc.total {
			t.Fatalf("total=%d size=%d: walked %d rows", tc.total, tc.size, len(collected))
		}
		for i, v := range collected {
			if v != i {
				t.Fatalf("total=%d size=%d: row %d out of order or duplicated (got %d)", tc.total, tc.size, i, v)
			}
		}
	}
}

func TestAssembleEmptyDataset(t *testing.T) {
	res := Assemble[string](nil, 3, 50, 0)
	if res.Data == nil || len(res.Data) != 0 {
		t.Fatalf("empty dataset must give empty non-nil data, got %#v", res.Data)
	}
	if res.Total != 0 || res.TotalPages != 0 {
		t.Fatalf("empty dataset metadata wrong: %+v", res)
	}
	if res.Page != 3 || res.PageSize != 50 {
		t.Fatalf("requested window must be echoed: %+v", res)
	}
}

func TestAssembleLastPageScenario(t *testing.T) {
	rows := []int{40, 41, 42, 43, 44}
	res := Assemble(rows, 5, 10, 45)
	if len(res.Data) != 5 || res.Total != 45 || res.TotalPages != 5 || res.Page != 5 || res.PageSize != 10 {
		t.Fatalf("metadata mismatch: %+v", res)
	}
}

func TestAssembleNormalizesInvalidWindow(t *testing.T) {
	res := Assemble([]int{1}, 0, -1, 1)
	if res.Page != 1 || res.PageSize != DefaultPageSize || res.TotalPages != 1 {
		t.Fatalf("invalid window must be normalized: %+v", res)
	}
}
