// internal/domain/pagination.go
package domain

// Pagination converts a 1-based page and a page size into an offset window.
type Pagination struct {
	Page     int
	Limit    int
	Total    int64
	Skip     int
	LastPage int
}

// NewPagination computes skip and last page for total items.
// page and limit must be positive.
func NewPagination(page, limit int, total int64) Pagination {
	lastPage := total / int64(limit)
	if total%int64(limit) != 0 {
		lastPage++
	}
	return Pagination{
		Page:     page,
		Limit:    limit,
		Total:    total,
		Skip:     (page - 1) * limit,
		LastPage: int(lastPage),
	}
}

// Beyond reports whether the requested page lies past the last page.
func (p Pagination) Beyond() bool {
	return p.Page > p.LastPage
}
