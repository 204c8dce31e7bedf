package query

// DefaultPageSize applies when the caller sends no usable page size.
const DefaultPageSize = 10

// Paging is the computed window for one page plus its totals.
type Paging struct {
	Offset     int
	Limit      int
	Page       int
	PageSize   int
	TotalPages int
}

// Paginate normalizes (page, pageSize) and derives offset, limit and
// totalPages. It is total: invalid inputs are clamped, never rejected, and
// pages beyond the last are legal (they just window past the data).
func Paginate(page, pageSize, total int) Paging {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return Paging{
		Offset:     (page - 1) * pageSize,
		Limit:      pageSize,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
