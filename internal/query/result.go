package query

// Result is the uniform paginated response shape for list endpoints.
type Result[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// Assemble wraps one fetched page. Callers must pass the same (page,
// pageSize) they used to compute the window that produced rows; the metadata
// comes from Paginate so both stay consistent. A nil rows slice serializes
// as [] rather than null.
func Assemble[T any](rows []T, page, pageSize, total int) Result[T] {
	pg := Paginate(page, pageSize, total)
	if rows == nil {
		rows = []T{}
	}
	return Result[T]{
		Data:       rows,
		Total:      total,
		Page:       pg.Page,
		PageSize:   pg.PageSize,
		TotalPages: pg.TotalPages,
	}
}
