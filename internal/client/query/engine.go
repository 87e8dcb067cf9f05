package query

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrijs2005/notehub/internal/client/models"
	"github.com/dmitrijs2005/notehub/internal/logging"
)

var (
	// ErrNotPrimed is returned by Local before any snapshot was loaded.
	ErrNotPrimed = errors.New("no local note snapshot loaded")
	// ErrNoRemote is returned by Remote on an engine built without a searcher.
	ErrNoRemote = errors.New("no remote searcher configured")
	// ErrInconsistentResult is returned when a server page contradicts itself.
	ErrInconsistentResult = errors.New("inconsistent search result")
)

// Searcher is the server-side search endpoint.
type Searcher interface {
	Search(ctx context.Context, params url.Values) (*models.SearchResult[models.Note], error)
}

// Engine answers search queries either through a Searcher or over a primed
// in-memory snapshot. It is safe for concurrent use.
type Engine struct {
	remote Searcher
	log    logging.Logger

	mu       sync.RWMutex
	snapshot []models.Note
	primed   bool
}

// NewEngine returns an engine delegating to remote. remote may be nil for a
// purely local engine.
func NewEngine(remote Searcher, log logging.Logger) *Engine {
	if log == nil {
		log = logging.Nop()
	}
	return &Engine{remote: remote, log: log}
}

// Prime loads the full, unfiltered note list that Local answers from. The
// slice is copied.
func (e *Engine) Prime(notes []models.Note) {
	cp := make([]models.Note, len(notes))
	copy(cp, notes)

	e.mu.Lock()
	e.snapshot = cp
	e.primed = true
	e.mu.Unlock()
}

// Reset drops the snapshot; subsequent Query calls go to the server.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.snapshot = nil
	e.primed = false
	e.mu.Unlock()
}

// Primed reports whether a snapshot is loaded, and its size.
func (e *Engine) Primed() (bool, int) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.primed, len(e.snapshot)
}

// Query answers locally when a snapshot is loaded and remotely otherwise.
func (e *Engine) Query(ctx context.Context, q models.SearchQuery) (models.Page[models.Note], error) {
	if ok, _ := e.Primed(); ok {
		return e.Local(q)
	}
	return e.Remote(ctx, q)
}

// Local filters, sorts and paginates the snapshot without network access.
func (e *Engine) Local(q models.SearchQuery) (models.Page[models.Note], error) {
	q = q.Normalized()
	if err := q.Validate(); err != nil {
		return models.Page[models.Note]{}, err
	}

	e.mu.RLock()
	if !e.primed {
		e.mu.RUnlock()
		return models.Page[models.Note]{}, ErrNotPrimed
	}
	matched := Filter(e.snapshot, q)
	e.mu.RUnlock()

	Sort(matched, q.Sort)
	return Paginate(matched, q.Page, q.PerPage)
}

// Remote sends q to the server and normalises the answer into a Page.
// Server results are not re-filtered. Validation happens before any
// network access; transport and HTTP errors are returned unchanged.
func (e *Engine) Remote(ctx context.Context, q models.SearchQuery) (models.Page[models.Note], error) {
	q = q.Normalized()
	if err := q.Validate(); err != nil {
		return models.Page[models.Note]{}, err
	}
	if e.remote == nil {
		return models.Page[models.Note]{}, ErrNoRemote
	}

	res, err := e.remote.Search(ctx, Values(q))
	if err != nil {
		return models.Page[models.Note]{}, err
	}
	return e.normalize(ctx, q, res)
}

func (e *Engine) normalize(ctx context.Context, q models.SearchQuery, res *models.SearchResult[models.Note]) (models.Page[models.Note], error) {
	if res == nil {
		return models.Page[models.Note]{}, fmt.Errorf("%w: empty response", ErrInconsistentResult)
	}

	// A bare list is the whole result set.
	if res.IsLegacy() {
		e.log.Debug(ctx, "legacy search result", "items", len(res.Legacy))
		return Paginate(res.Legacy, q.Page, q.PerPage)
	}

	p := res.Paginated
	page, perPage := q.Page, q.PerPage
	if p.Page != nil {
		page = *p.Page
	}
	if p.PerPage != nil {
		perPage = *p.PerPage
	}

	if page < 1 || perPage <= 0 {
		return models.Page[models.Note]{}, fmt.Errorf("%w: page=%d per_page=%d", ErrInconsistentResult, page, perPage)
	}
	if len(p.Items) > perPage {
		return models.Page[models.Note]{}, fmt.Errorf("%w: %d items exceed per_page=%d", ErrInconsistentResult, len(p.Items), perPage)
	}

	out, err := NewPage(p.Items, page, perPage, p.Total)
	if err != nil {
		return models.Page[models.Note]{}, err
	}

	if p.Pages != nil {
		if *p.Pages != out.TotalPages {
			e.log.Warn(ctx, "server page count disagrees with total",
				"server_pages", *p.Pages, "computed_pages", out.TotalPages,
				"total", p.Total, "per_page", perPage)
		}
		out.TotalPages = *p.Pages
		out.HasNext = page < out.TotalPages
	}
	if p.HasNext != nil {
		out.HasNext = *p.HasNext
	}
	if p.HasPrev != nil {
		out.HasPrev = *p.HasPrev
	}
	return out, nil
}

// Values encodes the non-default fields of q as search parameters.
// page and per_page are always sent.
func Values(q models.SearchQuery) url.Values {
	v := url.Values{}
	if q.Text != "" {
		v.Set("q", q.Text)
	}
	if len(q.Tags) > 0 {
		v.Set("tags", strings.Join(q.Tags, ","))
	}
	if q.Course != "" {
		v.Set("course", q.Course)
	}
	if q.Owner != "" {
		v.Set("owner", q.Owner)
	}
	switch q.Visibility {
	case models.VisibilityPublic:
		v.Set("is_public", "true")
	case models.VisibilityPrivate:
		v.Set("is_public", "false")
	}
	if q.Sort != "" && q.Sort != models.SortNewest {
		v.Set("sort", string(q.Sort))
	}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("per_page", strconv.Itoa(q.PerPage))
	return v
}
