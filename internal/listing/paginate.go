package listing

// Page is one slice of a filtered collection.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	// StartIndex and EndIndex bound Items inside the full collection; EndIndex is exclusive.
	StartIndex int `json:"startIndex"`
	EndIndex   int `json:"endIndex"`
}

// HasMore reports whether a later page exists.
func (p Page[T]) HasMore() bool {
	return p.Page >= 1 && p.Page < p.TotalPages
}

// Paginate returns the 1-indexed page of items. Requests outside
// [1, TotalPages] yield an empty slice rather than an error, and the page
// number is never clamped here.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	total := len(items)
	p := Page[T]{
		Items:    []T{},
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	if pageSize < 1 {
		return p
	}

	p.TotalPages = (total + pageSize - 1) / pageSize
	if page < 1 || page > p.TotalPages {
		return p
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	p.StartIndex = start
	p.EndIndex = end
	p.Items = items[start:end:end]
	return p
}
