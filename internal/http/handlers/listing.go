package handlers

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"cms/internal/domain"
	"cms/internal/query"
	"cms/internal/utils"

	"github.com/gin-gonic/gin"
)

// maxPageSize caps how many rows one page may request.
const maxPageSize = 100

var listOps = map[string]bool{
	query.OpGT:  true,
	query.OpLT:  true,
	query.OpGTE: true,
	query.OpLTE: true,
}

// ParseListQuery reads the list contract from query parameters: page,
// pageSize, search (alias q), searchFields, sort, sortOrder, plus filters
// and comparisons as JSON-encoded values. Unknown field names pass through
// untouched and resolve to nothing further down; malformed JSON, an
// unknown comparison op and a pageSize above the cap are caller errors.
func ParseListQuery(c *gin.Context) (query.Spec, error) {
	spec := query.Spec{}

	spec.Page, _ = strconv.Atoi(strings.TrimSpace(c.Query("page")))
	spec.PageSize, _ = strconv.Atoi(strings.TrimSpace(c.Query("pageSize")))
	if spec.PageSize > maxPageSize {
		return spec, domain.ValidationError{Field: "pageSize", Msg: fmt.Sprintf("maksimal %d", maxPageSize)}
	}

	spec.Search = strings.TrimSpace(c.Query("search"))
	if spec.Search == "" {
		spec.Search = strings.TrimSpace(c.Query("q"))
	}
	spec.SearchFields = utils.SplitCSV(c.Query("searchFields"))
	spec.Sort = strings.TrimSpace(c.Query("sort"))
	spec.SortOrder = strings.TrimSpace(c.Query("sortOrder"))

	if raw := strings.TrimSpace(c.Query("filters")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &spec.Filters); err != nil {
			return spec, domain.ValidationError{Field: "filters", Msg: "harus objek JSON"}
		}
	}
	if raw := strings.TrimSpace(c.Query("comparisons")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &spec.Comparisons); err != nil {
			return spec, domain.ValidationError{Field: "comparisons", Msg: "harus array JSON"}
		}
		for _, cmp := range spec.Comparisons {
			if !listOps[cmp.Op] {
				return spec, domain.ValidationError{Field: "comparisons", Msg: "op tidak dikenal: " + cmp.Op}
			}
		}
	}

	return spec, nil
}

// withDefaultSearchFields fills the entity's search columns when the wire
// leaves them out, so a bare ?q= works everywhere.
func withDefaultSearchFields(spec query.Spec, fields ...string) query.Spec {
	if len(spec.SearchFields) == 0 {
		spec.SearchFields = fields
	}
	return spec
}
