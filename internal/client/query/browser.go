package query

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/notehub/internal/client/models"
)

var (
	ErrNoNextPage = errors.New("already on the last page")
	ErrNoPrevPage = errors.New("already on the first page")
)

// Querier answers a search query with one page of notes.
type Querier interface {
	Query(ctx context.Context, q models.SearchQuery) (models.Page[models.Note], error)
}

// Browser holds the query and last page of one interactive search session.
// State changes only when a fetch succeeds. A Browser is not safe for
// concurrent use.
type Browser struct {
	engine Querier
	q      models.SearchQuery
	page   models.Page[models.Note]
	loaded bool
}

func NewBrowser(engine Querier, q models.SearchQuery) *Browser {
	return &Browser{engine: engine, q: q.Normalized()}
}

// Query returns the current query.
func (b *Browser) Query() models.SearchQuery { return b.q }

// Page returns the last fetched page; ok is false before the first fetch.
func (b *Browser) Page() (page models.Page[models.Note], ok bool) {
	return b.page, b.loaded
}

// Apply switches to q. Nothing is fetched when q equals the current query
// and a page is already loaded.
func (b *Browser) Apply(ctx context.Context, q models.SearchQuery) (models.Page[models.Note], error) {
	if b.loaded && q.Equal(b.q) {
		return b.page, nil
	}
	return b.fetch(ctx, q)
}

// Refresh re-runs the current query unconditionally.
func (b *Browser) Refresh(ctx context.Context) (models.Page[models.Note], error) {
	return b.fetch(ctx, b.q)
}

// SelectTag adds name to the tag set and re-queries from page 1. Selecting
// a tag that is already selected does nothing and reports changed=false.
func (b *Browser) SelectTag(ctx context.Context, name string) (page models.Page[models.Note], changed bool, err error) {
	q, ok := b.q.WithTag(name)
	if !ok {
		return b.page, false, nil
	}
	page, err = b.fetch(ctx, q)
	return page, err == nil, err
}

// DeselectTag removes name from the tag set and re-queries from page 1.
func (b *Browser) DeselectTag(ctx context.Context, name string) (page models.Page[models.Note], changed bool, err error) {
	q, ok := b.q.WithoutTag(name)
	if !ok {
		return b.page, false, nil
	}
	page, err = b.fetch(ctx, q)
	return page, err == nil, err
}

// GoTo fetches page n of the current query.
func (b *Browser) GoTo(ctx context.Context, n int) (models.Page[models.Note], error) {
	q := b.q
	q.Page = n
	return b.Apply(ctx, q)
}

func (b *Browser) Next(ctx context.Context) (models.Page[models.Note], error) {
	if b.loaded && !b.page.HasNext {
		return b.page, ErrNoNextPage
	}
	return b.GoTo(ctx, b.q.Page+1)
}

func (b *Browser) Prev(ctx context.Context) (models.Page[models.Note], error) {
	if b.q.Page <= 1 {
		return b.page, ErrNoPrevPage
	}
	return b.GoTo(ctx, b.q.Page-1)
}

func (b *Browser) fetch(ctx context.Context, q models.SearchQuery) (models.Page[models.Note], error) {
	q = q.Normalized()
	page, err := b.engine.Query(ctx, q)
	if err != nil {
		return b.page, err
	}
	b.q = q
	b.page = page
	b.loaded = true
	return page, nil
}
