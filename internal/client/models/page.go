package models

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Page is one page of an ordered result set plus the metadata that drives
// page selectors.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalItems int  `json:"total"`
	TotalPages int  `json:"pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// PaginatedResult is the object shape returned by paginated endpoints.
// Optional fields are pointers so absence can be told apart from zero.
type PaginatedResult[T any] struct {
	Items   []T   `json:"items"`
	Total   int   `json:"total"`
	Page    *int  `json:"page,omitempty"`
	PerPage *int  `json:"per_page,omitempty"`
	Pages   *int  `json:"pages,omitempty"`
	HasNext *bool `json:"has_next,omitempty"`
	HasPrev *bool `json:"has_prev,omitempty"`
}

// SearchResult is either a legacy bare JSON array or a PaginatedResult.
// Exactly one of Legacy and Paginated is set after decoding.
type SearchResult[T any] struct {
	Legacy    []T
	Paginated *PaginatedResult[T]
}

var ErrUnknownResultShape = errors.New("search result is neither a list nor a paginated object")

// IsLegacy reports whether the server answered with a bare array.
func (r *SearchResult[T]) IsLegacy() bool {
	return r.Paginated == nil
}

func (r *SearchResult[T]) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return ErrUnknownResultShape
	}
	switch trimmed[0] {
	case '[':
		items := []T{}
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*r = SearchResult[T]{Legacy: items}
		return nil
	case '{':
		var p PaginatedResult[T]
		if err := json.Unmarshal(trimmed, &p); err != nil {
			return err
		}
		if p.Items == nil {
			p.Items = []T{}
		}
		*r = SearchResult[T]{Paginated: &p}
		return nil
	default:
		return ErrUnknownResultShape
	}
}
