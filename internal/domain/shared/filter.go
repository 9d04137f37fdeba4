package shared

import "strings"

// MaxPageSize bounds every list endpoint
const MaxPageSize = 100

// Filter carries paging, ordering and search options down to repositories.
// Filters holds typed, repository-specific criteria keyed by column.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]any
}

// DefaultFilter is page one of twenty, newest first
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  map[string]any{},
	}
}

// Paged overrides page and size when set, capping size at MaxPageSize, and
// stores the trimmed search term
func (f Filter) Paged(page, size int, search string) Filter {
	if page > 0 {
		f.Page = page
	}
	if size > 0 {
		f.PageSize = min(size, MaxPageSize)
	}
	f.Search = strings.TrimSpace(search)
	return f
}

func (f Filter) Offset() int {
	if f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}
