package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/notehub/internal/client/models"
	"github.com/dmitrijs2005/notehub/internal/client/query"
	"github.com/dmitrijs2005/notehub/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/notehub/internal/client/repositories/notes"
	"github.com/dmitrijs2005/notehub/internal/dbx"
	"github.com/dmitrijs2005/notehub/internal/logging"
)

// syncPageSize is the per_page used when walking GET /notes.
const syncPageSize = 100

// maxSyncPages stops a sync against a server whose pagination never ends.
const maxSyncPages = 1000

// ListAPI is the subset of the API used by CatalogService.
type ListAPI interface {
	ListNotes(ctx context.Context, page, perPage int) (*models.SearchResult[models.Note], error)
}

// SyncResult summarises one catalog sync.
type SyncResult struct {
	Notes    int
	Pages    int
	SyncedAt time.Time
}

// CatalogService keeps a local snapshot of the public note list and primes
// the query engine with it so searches run without network round trips.
type CatalogService struct {
	api    ListAPI
	db     *sql.DB
	engine *query.Engine
	log    logging.Logger
	now    func() time.Time
}

func NewCatalogService(api ListAPI, db *sql.DB, engine *query.Engine, log logging.Logger) *CatalogService {
	if log == nil {
		log = logging.Nop()
	}
	return &CatalogService{api: api, db: db, engine: engine, log: log, now: time.Now}
}

// Sync fetches the full note list, replaces the stored snapshot in one
// transaction and primes the engine. A failed sync leaves the previous
// snapshot untouched.
func (s *CatalogService) Sync(ctx context.Context) (*SyncResult, error) {
	all, pages, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := notes.NewSQLiteRepository(tx)
		if err := repo.Clear(ctx); err != nil {
			return err
		}
		for i, n := range all {
			if err := repo.Upsert(ctx, i, n, now); err != nil {
				return err
			}
		}
		return metadata.SetTime(ctx, metadata.NewSQLiteRepository(tx), metadata.KeyLastSync, now)
	})
	if err != nil {
		return nil, fmt.Errorf("store snapshot: %w", err)
	}

	s.engine.Prime(all)
	s.log.Info(ctx, "catalog synced", "notes", len(all), "pages", pages)
	return &SyncResult{Notes: len(all), Pages: pages, SyncedAt: now}, nil
}

// fetchAll walks GET /notes page by page. A legacy list answer is the
// whole list.
func (s *CatalogService) fetchAll(ctx context.Context) ([]models.Note, int, error) {
	var (
		all  []models.Note
		seen = map[string]struct{}{}
	)
	for page := 1; page <= maxSyncPages; page++ {
		res, err := s.api.ListNotes(ctx, page, syncPageSize)
		if err != nil {
			return nil, page - 1, err
		}
		if res.IsLegacy() {
			return dedupe(res.Legacy, seen, all), page, nil
		}

		p := res.Paginated
		all = dedupe(p.Items, seen, all)

		more := len(p.Items) > 0
		if p.HasNext != nil {
			more = *p.HasNext
		} else if p.Pages != nil {
			more = page < *p.Pages
		} else if p.Total > 0 {
			more = len(all) < p.Total
		}
		if !more {
			return all, page, nil
		}
	}
	return nil, maxSyncPages, fmt.Errorf("note list exceeds %d pages", maxSyncPages)
}

// dedupe appends items whose public_id was not seen yet; listings can
// shift while being paged.
func dedupe(items []models.Note, seen map[string]struct{}, into []models.Note) []models.Note {
	for _, n := range items {
		if _, dup := seen[n.PublicID]; dup {
			continue
		}
		seen[n.PublicID] = struct{}{}
		into = append(into, n)
	}
	return into
}

// LoadOffline primes the engine from the stored snapshot. ok is false when
// no sync has happened yet.
func (s *CatalogService) LoadOffline(ctx context.Context) (n int, syncedAt time.Time, ok bool, err error) {
	syncedAt, ok, err = metadata.Time(ctx, metadata.NewSQLiteRepository(s.db), metadata.KeyLastSync)
	if err != nil || !ok {
		return 0, time.Time{}, false, err
	}

	all, err := notes.NewSQLiteRepository(s.db).All(ctx)
	if err != nil {
		return 0, time.Time{}, false, err
	}
	s.engine.Prime(all)
	s.log.Info(ctx, "offline catalog loaded", "notes", len(all), "synced_at", syncedAt)
	return len(all), syncedAt, true, nil
}

// GoOnline drops the primed snapshot so queries reach the server again.
func (s *CatalogService) GoOnline() {
	s.engine.Reset()
}
