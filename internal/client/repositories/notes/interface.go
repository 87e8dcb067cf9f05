package notes

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/notehub/internal/client/models"
)

var ErrNotFound = errors.New("note not in local snapshot")

// Repository stores the ordered note snapshot.
type Repository interface {
	// Upsert stores n at position, replacing any note with the same id.
	Upsert(ctx context.Context, position int, n models.Note, syncedAt time.Time) error

	// All returns every stored note ordered by position.
	All(ctx context.Context) ([]models.Note, error)

	// Get returns one note or ErrNotFound.
	Get(ctx context.Context, publicID string) (*models.Note, error)

	Delete(ctx context.Context, publicID string) error
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}
