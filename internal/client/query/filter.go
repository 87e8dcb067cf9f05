package query

import (
	"strings"

	"github.com/dmitrijs2005/notehub/internal/client/models"
)

// Matches reports whether n satisfies every predicate of q.
// Text matching is case-insensitive; tag, course and owner matching is exact.
func Matches(n *models.Note, q models.SearchQuery) bool {
	if q.Text != "" {
		needle := strings.ToLower(q.Text)
		if !strings.Contains(strings.ToLower(n.Title), needle) &&
			!strings.Contains(strings.ToLower(n.Description), needle) &&
			!strings.Contains(strings.ToLower(n.Owner.Username), needle) {
			return false
		}
	}

	for _, t := range q.Tags {
		if !n.HasTag(t) {
			return false
		}
	}

	if q.Course != "" && n.CourseCode != q.Course {
		return false
	}
	if q.Owner != "" && n.Owner.Username != q.Owner {
		return false
	}

	switch q.Visibility {
	case models.VisibilityPublic:
		return n.IsPublic
	case models.VisibilityPrivate:
		return !n.IsPublic
	default:
		return true
	}
}

// Filter returns the notes matching q in their original order. The input
// slice is not modified.
func Filter(notes []models.Note, q models.SearchQuery) []models.Note {
	out := make([]models.Note, 0, len(notes))
	for i := range notes {
		if Matches(&notes[i], q) {
			out = append(out, notes[i])
		}
	}
	return out
}
