package types

import "strings"

// Sort directions accepted by list endpoints.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Columns list endpoints may sort by. Anything else falls back to created_at
// so clients cannot inject arbitrary SQL through the sort parameter.
var sortableColumns = map[string]struct{}{
	"created_at":           {},
	"updated_at":           {},
	"title":                {},
	"average_rating":       {},
	"cooking_time_minutes": {},
}

// Pageable carries pagination and sorting for list queries. Page is 0-based.
type Pageable struct {
	Page int
	Size int
	Sort string
	Dir  string
}

// NewPageable builds a Pageable with sane bounds and a whitelisted sort column.
func NewPageable(page, size int, sort, dir string) Pageable {
	if page < 0 {
		page = 0
	}
	if size < 1 {
		size = 20
	}
	if size > 100 {
		size = 100
	}
	sort = strings.ToLower(strings.TrimSpace(sort))
	if _, ok := sortableColumns[sort]; !ok {
		sort = "created_at"
	}
	if dir = strings.ToLower(strings.TrimSpace(dir)); dir != SortAsc {
		dir = SortDesc
	}
	return Pageable{Page: page, Size: size, Sort: sort, Dir: dir}
}

// Offset returns the row offset for the page.
func (p Pageable) Offset() int {
	return p.Page * p.Size
}

// OrderClause returns the ORDER BY expression for the page.
func (p Pageable) OrderClause() string {
	return p.Sort + " " + p.Dir
}

// Page is one page of results plus the totals clients need for paging UI.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

// NewPage assembles a Page from query results and the total row count.
func NewPage[T any](content []T, p Pageable, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	pages := int(total) / p.Size
	if int(total)%p.Size != 0 {
		pages++
	}
	return Page[T]{
		Content:       content,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: total,
		TotalPages:    pages,
	}
}
