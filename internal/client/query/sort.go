package query

import (
	"slices"
	"strings"

	"github.com/dmitrijs2005/notehub/internal/client/models"
)

// Sort orders notes in place by key. The sort is stable: notes that compare
// equal keep their relative order. An empty key sorts newest first.
func Sort(notes []models.Note, key models.SortKey) {
	slices.SortStableFunc(notes, compareFunc(key))
}

func compareFunc(key models.SortKey) func(a, b models.Note) int {
	switch key {
	case models.SortOldest:
		return func(a, b models.Note) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case models.SortTitle:
		// byte-wise, so "Zeta" < "alpha"
		return func(a, b models.Note) int { return strings.Compare(a.Title, b.Title) }
	default:
		return func(a, b models.Note) int { return b.CreatedAt.Compare(a.CreatedAt) }
	}
}
