package shared

import "time"

// ListFilter represents the optional filter set accepted by every root
// entity listing. Sparse by design: zero values mean "not filtered".
type ListFilter struct {
	// Name is matched case-insensitively as a substring.
	Name string
	// Document is matched against every document column the entity
	// family carries, each compared in its stored form.
	Document string
	// Kind and Status are exact matches against the discriminant and
	// status columns.
	Kind   string
	Status string
	// DateStart/DateEnd bound created_at inclusively. A lone bound is
	// ignored; both must be present for the range to apply.
	DateStart *time.Time
	DateEnd   *time.Time

	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
}

// DefaultListFilter returns a filter with default pagination.
func DefaultListFilter() ListFilter {
	return ListFilter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
}

// Normalize clamps pagination to sane bounds.
func (f *ListFilter) Normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = 20
	}
	if f.PageSize > 100 {
		f.PageSize = 100
	}
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
