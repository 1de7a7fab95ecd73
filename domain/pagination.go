package domain

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination computes totalPages as ceil(total/limit).
func NewPagination(page, limit int, total int64) *Pagination {
	page, limit = NormalizePage(page, limit)
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// NormalizePage applies the list defaults and caps limit at MaxLimit.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Offset returns the number of rows to skip for a page.
func Offset(page, limit int) int {
	page, limit = NormalizePage(page, limit)
	return (page - 1) * limit
}

// PageQuery is bound from the page and limit query parameters of list endpoints.
type PageQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

func (q PageQuery) ToFindPageOption(sort ...string) *FindPageOption {
	page, limit := NormalizePage(q.Page, q.Limit)
	return &FindPageOption{Page: page, Limit: limit, Sort: sort}
}
