package utils

// Pagination describes one page of a paginated listing.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	Total       int64
	HasNext     bool
	HasPrev     bool
}

// ClampPage normalizes page/limit query values: page defaults to 1, limit
// defaults to defLimit and is capped at 100.
func ClampPage(page, limit, defLimit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = defLimit
	}
	return page, limit, (page - 1) * limit
}

// NewPagination computes the pagination block for a listing response.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		Total:       total,
		HasNext:     int64(page)*int64(limit) < total,
		HasPrev:     page > 1,
	}
}
