package service

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// pageBounds normalizes page/limit and returns them with the row offset.
func pageBounds(page, limit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit, (page - 1) * limit
}

func paginate(page, limit, total int) Pagination {
	pages := (total + limit - 1) / limit
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}
