package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openCatalog(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE snapshot (public_id TEXT PRIMARY KEY, position INTEGER NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO snapshot (public_id, position) VALUES ('old-1', 0), ('old-2', 1)`)
	require.NoError(t, err)
	return db
}

func storedIDs(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query(`SELECT public_id FROM snapshot ORDER BY position`)
	require.NoError(t, err)
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		require.NoError(t, rows.Scan(&id))
		ids = append(ids, id)
	}
	require.NoError(t, rows.Err())
	return ids
}

// replaceWith clears the snapshot and inserts ids, stopping with failWith
// after the first insert when it is non-nil.
func replaceWith(ids []string, failWith error) func(context.Context, DBTX) error {
	return func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM snapshot`); err != nil {
			return err
		}
		for i, id := range ids {
			if _, err := tx.ExecContext(ctx, `INSERT INTO snapshot (public_id, position) VALUES (?, ?)`, id, i); err != nil {
				return err
			}
			if failWith != nil {
				return failWith
			}
		}
		return nil
	}
}

func TestWithTx_CommitsReplacement(t *testing.T) {
	db := openCatalog(t)

	err := WithTx(context.Background(), db, nil, replaceWith([]string{"new-1", "new-2", "new-3"}, nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"new-1", "new-2", "new-3"}, storedIDs(t, db))
}

func TestWithTx_FailedReplacementKeepsSnapshot(t *testing.T) {
	db := openCatalog(t)
	stop := errors.New("page 2 unavailable")

	err := WithTx(context.Background(), db, nil, replaceWith([]string{"new-1", "new-2"}, stop))
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, []string{"old-1", "old-2"}, storedIDs(t, db))
}

func TestWithTx_ConstraintErrorKeepsSnapshot(t *testing.T) {
	db := openCatalog(t)

	err := WithTx(context.Background(), db, nil, replaceWith([]string{"dup", "dup"}, nil))
	require.Error(t, err)
	assert.Equal(t, []string{"old-1", "old-2"}, storedIDs(t, db))
}

func TestWithTx_PanicRollsBackAndPropagates(t *testing.T) {
	db := openCatalog(t)

	assert.PanicsWithValue(t, "decoder crashed", func() {
		_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
			_, err := tx.ExecContext(ctx, `DELETE FROM snapshot`)
			require.NoError(t, err)
			panic("decoder crashed")
		})
	})
	assert.Equal(t, []string{"old-1", "old-2"}, storedIDs(t, db))
}

func TestWithTx_BeginErrors(t *testing.T) {
	t.Run("closed database", func(t *testing.T) {
		db := openCatalog(t)
		require.NoError(t, db.Close())

		called := false
		err := WithTx(context.Background(), db, nil, func(context.Context, DBTX) error {
			called = true
			return nil
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "begin tx")
		assert.False(t, called)
	})

	t.Run("cancelled context", func(t *testing.T) {
		db := openCatalog(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := WithTx(ctx, db, nil, replaceWith([]string{"new-1"}, nil))
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, []string{"old-1", "old-2"}, storedIDs(t, db))
	})
}
