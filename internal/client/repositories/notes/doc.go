// Package notes persists the snapshot of the public note list that the
// client answers offline queries from.
//
// Notes are stored as JSON payloads keyed by public_id, together with
// their position in the server listing, so the snapshot can be read back
// in the order it was fetched. Replace a snapshot inside a transaction:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    repo := notes.NewSQLiteRepository(tx)
//	    if err := repo.Clear(ctx); err != nil {
//	        return err
//	    }
//	    for i, n := range list {
//	        if err := repo.Upsert(ctx, i, n, now); err != nil {
//	            return err
//	        }
//	    }
//	    return nil
//	})
package notes
