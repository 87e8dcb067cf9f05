package notes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/notehub/internal/client/models"
	"github.com/dmitrijs2005/notehub/internal/dbx"
)

// SQLiteRepository implements Repository over a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, position int, n models.Note, syncedAt time.Time) error {
	if n.PublicID == "" {
		return errors.New("upsert note: empty public_id")
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode note %s: %w", n.PublicID, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO notes (public_id, position, payload, synced_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(public_id) DO UPDATE SET
			position = excluded.position,
			payload = excluded.payload,
			synced_at = excluded.synced_at
	`, n.PublicID, position, payload, syncedAt.UTC())
	if err != nil {
		return fmt.Errorf("upsert note %s: %w", n.PublicID, err)
	}
	return nil
}

func (r *SQLiteRepository) All(ctx context.Context) ([]models.Note, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT public_id, payload FROM notes ORDER BY position, public_id`)
	if err != nil {
		return nil, fmt.Errorf("select notes: %w", err)
	}
	defer rows.Close()

	result := []models.Note{}
	for rows.Next() {
		var (
			id      string
			payload []byte
		)
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("scan note row: %w", err)
		}
		var n models.Note
		if err := json.Unmarshal(payload, &n); err != nil {
			return nil, fmt.Errorf("decode note %s: %w", id, err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate note rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, publicID string) (*models.Note, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM notes WHERE public_id = ?`, publicID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get note %s: %w", publicID, err)
	}

	var n models.Note
	if err := json.Unmarshal(payload, &n); err != nil {
		return nil, fmt.Errorf("decode note %s: %w", publicID, err)
	}
	return &n, nil
}

// Delete removes one note. It expects exactly one row to be affected.
func (r *SQLiteRepository) Delete(ctx context.Context, publicID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE public_id = ?`, publicID)
	if err != nil {
		return fmt.Errorf("delete note %s: %w", publicID, err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if ra == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notes`); err != nil {
		return fmt.Errorf("clear notes: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count notes: %w", err)
	}
	return n, nil
}
