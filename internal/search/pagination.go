package search

// DefaultPageSize is the number of offers requested per page.
const DefaultPageSize = 20

// TotalPages returns ceil(totalCount/pageSize), never less than one so that an empty
// result still renders as "page 1 of 1".
func TotalPages(totalCount, pageSize int) int {
	if pageSize <= 0 || totalCount <= 0 {
		return 1
	}
	pages := (totalCount + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

func CanGoPrev(page int) bool {
	return page > 0
}

func CanGoNext(page, totalPages int) bool {
	return page+1 < totalPages
}

// Pager is the navigation state shown under a result list.
type Pager struct {
	Page       int  `json:"page"`
	TotalPages int  `json:"total_pages"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

// NewPager builds the pager for a zero-based page index.
func NewPager(page, totalCount, pageSize int) Pager {
	total := TotalPages(totalCount, pageSize)
	return Pager{
		Page:       page,
		TotalPages: total,
		HasPrev:    CanGoPrev(page),
		HasNext:    CanGoNext(page, total),
	}
}

// Display returns the one-based page number shown to users.
func (p Pager) Display() int {
	return p.Page + 1
}
