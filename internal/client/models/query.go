package models

// Visibility restricts results by the note's is_public flag.
type Visibility string

const (
	VisibilityAll     Visibility = "all"
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// SortKey orders search results.
type SortKey string

const (
	SortNewest SortKey = "newest"
	SortOldest SortKey = "oldest"
	SortTitle  SortKey = "title"
)

// SearchQuery is a value object built per search. Tags behave as a set:
// order is kept for display, duplicates are ignored and Equal compares
// membership only.
type SearchQuery struct {
	Text       string
	Tags       []string `validate:"dive,required"`
	Course     string
	Owner      string
	Visibility Visibility `validate:"omitempty,oneof=all public private"`
	Page       int        `validate:"min=1"`
	PerPage    int        `validate:"gt=0"`
	Sort       SortKey    `validate:"omitempty,oneof=newest oldest title"`
}

// NewSearchQuery returns the first page of an unfiltered newest-first query.
func NewSearchQuery(perPage int) SearchQuery {
	return SearchQuery{Page: 1, PerPage: perPage, Visibility: VisibilityAll, Sort: SortNewest}
}

// Normalized fills defaults (visibility all, sort newest) and drops
// duplicate tags, keeping first occurrences.
func (q SearchQuery) Normalized() SearchQuery {
	if q.Visibility == "" {
		q.Visibility = VisibilityAll
	}
	if q.Sort == "" {
		q.Sort = SortNewest
	}
	if len(q.Tags) > 0 {
		seen := make(map[string]struct{}, len(q.Tags))
		tags := make([]string, 0, len(q.Tags))
		for _, t := range q.Tags {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
		q.Tags = tags
	}
	return q
}

// HasTag reports whether name is selected (case-sensitive).
func (q SearchQuery) HasTag(name string) bool {
	for _, t := range q.Tags {
		if t == name {
			return true
		}
	}
	return false
}

// WithTag returns a copy with name added to the tag set and the page reset
// to 1. ok is false, and q is returned unchanged, when name was already
// selected.
func (q SearchQuery) WithTag(name string) (SearchQuery, bool) {
	if q.HasTag(name) {
		return q, false
	}
	tags := make([]string, len(q.Tags), len(q.Tags)+1)
	copy(tags, q.Tags)
	q.Tags = append(tags, name)
	q.Page = 1
	return q, true
}

// WithoutTag returns a copy with name removed and the page reset to 1.
func (q SearchQuery) WithoutTag(name string) (SearchQuery, bool) {
	if !q.HasTag(name) {
		return q, false
	}
	tags := make([]string, 0, len(q.Tags)-1)
	for _, t := range q.Tags {
		if t != name {
			tags = append(tags, t)
		}
	}
	q.Tags = tags
	q.Page = 1
	return q, true
}

// Equal compares two queries by value after normalisation.
func (q SearchQuery) Equal(o SearchQuery) bool {
	a, b := q.Normalized(), o.Normalized()
	if a.Text != b.Text || a.Course != b.Course || a.Owner != b.Owner ||
		a.Visibility != b.Visibility || a.Page != b.Page || a.PerPage != b.PerPage || a.Sort != b.Sort {
		return false
	}
	if len(a.Tags) != len(b.Tags) {
		return false
	}
	for _, t := range a.Tags {
		if !b.HasTag(t) {
			return false
		}
	}
	return true
}
