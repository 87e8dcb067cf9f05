package query

import (
	"github.com/dmitrijs2005/notehub/internal/client/models"
)

// TotalPages returns ceil(total/perPage), or 0 for an empty result.
func TotalPages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

func checkBounds(page, perPage int) error {
	if page < 1 {
		return &models.ValidationError{Field: "Page", Reason: "must be at least 1"}
	}
	if perPage <= 0 {
		return &models.ValidationError{Field: "PerPage", Reason: "must be greater than 0"}
	}
	return nil
}

// NewPage builds the metadata for one page of a result set holding total
// items. items is taken as-is and must already be the requested slice.
func NewPage[T any](items []T, page, perPage, total int) (models.Page[T], error) {
	if err := checkBounds(page, perPage); err != nil {
		return models.Page[T]{}, err
	}
	if items == nil {
		items = []T{}
	}
	pages := TotalPages(total, perPage)
	return models.Page[T]{
		Items:      items,
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: pages,
		HasNext:    page < pages,
		HasPrev:    page > 1,
	}, nil
}

// Paginate slices page out of all. A page past the end yields no items and
// HasNext=false. page < 1 and perPage <= 0 are rejected, never clamped.
func Paginate[T any](all []T, page, perPage int) (models.Page[T], error) {
	if err := checkBounds(page, perPage); err != nil {
		return models.Page[T]{}, err
	}

	n := len(all)
	items := []T{}
	// check against the page count first so (page-1)*perPage cannot overflow
	if page-1 < (n+perPage-1)/perPage {
		start := (page - 1) * perPage
		end := min(start+perPage, n)
		items = make([]T, end-start)
		copy(items, all[start:end])
	}
	return NewPage(items, page, perPage, n)
}
