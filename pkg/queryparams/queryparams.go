package queryparams

import "strings"

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
	DefaultOrderBy = "desc"
)

// ListParams carries pagination, sorting and simple filters parsed from the
// query string of list endpoints.
type ListParams struct {
	Page    int    `query:"page"`
	PerPage int    `query:"per_page"`
	SortBy  string `query:"sort_by"`
	OrderBy string `query:"order_by"`
	Title   string `query:"title"`
	Status  string `query:"status"`
}

// DefaultListParams returns params sorted by the given column, descending.
func DefaultListParams(sortBy string) ListParams {
	return ListParams{
		Page:    DefaultPage,
		PerPage: DefaultPerPage,
		SortBy:  sortBy,
		OrderBy: DefaultOrderBy,
	}
}

// Validate clamps out-of-range values instead of erroring.
func (p *ListParams) Validate() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	orderBy := strings.ToLower(p.OrderBy)
	if orderBy != "asc" && orderBy != "desc" {
		p.OrderBy = DefaultOrderBy
	} else {
		p.OrderBy = orderBy
	}
}

// CalculateOffset returns the row offset for the current page.
func (p *ListParams) CalculateOffset() int {
	return (p.Page - 1) * p.PerPage
}

// CalculateTotalPages derives the page count from a total row count.
func CalculateTotalPages(totalCount int64, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	pages := int(totalCount) / perPage
	if int(totalCount)%perPage != 0 {
		pages++
	}
	return pages
}

// PaginationMeta describes one page of a paginated result.
type PaginationMeta struct {
	CurrentPage int   `json:"currentPage"`
	PerPage     int   `json:"perPage"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
}

// PaginatedResult wraps a page of data with its meta block.
type PaginatedResult struct {
	Data any            `json:"data"`
	Meta PaginationMeta `json:"meta"`
}
