package response

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	HasMore    bool  `json:"has_more"`
}

// NewPagination derives paging metadata for an already-sliced result set.
func NewPagination(page, pageSize int, total int64) *Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return &Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		HasMore:    int64(page*pageSize) < total,
	}
}
