package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/notehub/internal/client/client"
	"github.com/dmitrijs2005/notehub/internal/client/models"
	"github.com/dmitrijs2005/notehub/internal/client/query"
	"github.com/dmitrijs2005/notehub/internal/client/services"
)

type fakeAuth struct {
	session  *services.Session
	username string
	password string
	loginErr error
	reg      models.Registration
}

func (f *fakeAuth) Login(_ context.Context, username, password string) (*services.Session, error) {
	f.username, f.password = username, password
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.session = &services.Session{Token: "t", User: &models.User{Username: username}}
	return f.session, nil
}

func (f *fakeAuth) Register(_ context.Context, r models.Registration) (*services.Session, error) {
	f.reg = r
	f.session = &services.Session{Token: "t", User: &models.User{Username: r.Username}}
	return f.session, nil
}

func (f *fakeAuth) Restore(context.Context) (*services.Session, error) {
	if f.session == nil {
		return nil, services.ErrNotLoggedIn
	}
	return f.session, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.session = nil
	return nil
}

func (f *fakeAuth) Session() (services.Session, bool) {
	if f.session == nil {
		return services.Session{}, false
	}
	return *f.session, true
}

func (f *fakeAuth) HandleError(_ context.Context, err error) error {
	if ae, ok := client.AsAuthExpired(err); ok {
		f.session = nil
		return ae
	}
	return err
}

type fakeNotes struct {
	detail   *models.NoteDetail
	uploaded models.NoteUpload
	path     string
	statuses []models.OCRStatus
}

func (f *fakeNotes) Detail(_ context.Context, id string) (*models.NoteDetail, error) {
	if f.detail == nil {
		return nil, &client.HTTPError{Status: 404, Message: "Note not found"}
	}
	return f.detail, nil
}

func (f *fakeNotes) Upload(_ context.Context, meta models.NoteUpload, path string) (*models.Note, error) {
	f.uploaded, f.path = meta, path
	return &models.Note{PublicID: "new1", Title: meta.Title, OCRStatus: models.OCRPending}, nil
}

func (f *fakeNotes) WaitForOCR(ctx context.Context, id string, onChange func(models.OCRStatus)) (*models.Note, error) {
	for _, s := range f.statuses {
		onChange(s)
	}
	if len(f.statuses) == 0 {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return &models.Note{PublicID: id, OCRStatus: f.statuses[len(f.statuses)-1]}, nil
}

type fakeBookmarks struct{ on map[string]bool }

func (f *fakeBookmarks) Toggle(_ context.Context, id string) (bool, error) {
	if f.on == nil {
		f.on = map[string]bool{}
	}
	f.on[id] = !f.on[id]
	return f.on[id], nil
}

type fakeSocial struct{ err error }

func (f *fakeSocial) Profile(_ context.Context, u string) (*models.Profile, error) {
	return &models.Profile{User: models.User{Username: u}, FollowersCount: 3}, f.err
}

func (f *fakeSocial) Follow(_ context.Context, u string) (*models.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Profile{User: models.User{Username: u}, FollowersCount: 4, IsFollowing: true}, nil
}

func (f *fakeSocial) Unfollow(_ context.Context, u string) (*models.Profile, error) {
	return &models.Profile{User: models.User{Username: u}, FollowersCount: 2}, f.err
}

func (f *fakeSocial) Recommendations(context.Context) ([]models.Profile, error) {
	return []models.Profile{{User: models.User{Username: "carol"}, NotesCount: 9}}, nil
}

// fakeCatalog primes the engine the way CatalogService does.
type fakeCatalog struct {
	engine *query.Engine
	notes  []models.Note
	synced bool
}

func (f *fakeCatalog) Sync(context.Context) (*services.SyncResult, error) {
	f.synced = true
	f.engine.Prime(f.notes)
	return &services.SyncResult{Notes: len(f.notes), Pages: 1, SyncedAt: time.Now()}, nil
}

func (f *fakeCatalog) LoadOffline(context.Context) (int, time.Time, bool, error) {
	if !f.synced {
		return 0, time.Time{}, false, nil
	}
	f.engine.Prime(f.notes)
	return len(f.notes), time.Now(), true, nil
}

func (f *fakeCatalog) GoOnline() { f.engine.Reset() }

type fakeExport struct {
	id   string
	kind models.DownloadKind
}

func (f *fakeExport) Export(_ context.Context, id string, kind models.DownloadKind) (string, error) {
	f.id, f.kind = id, kind
	return "downloads/" + id, nil
}

type fakeAPI struct {
	deleted  []string
	comments []string
	reacted  string
}

func (f *fakeAPI) PopularTags(_ context.Context, limit int) ([]models.Tag, error) {
	return []models.Tag{{Name: "math", NotesCount: limit}}, nil
}

func (f *fakeAPI) Courses(context.Context) ([]models.Course, error) {
	return []models.Course{{Code: "MA101", Name: "Calculus"}}, nil
}

func (f *fakeAPI) MyCourses(context.Context) ([]models.Course, error) { return nil, nil }

func (f *fakeAPI) Enroll(context.Context, string) error { return nil }

func (f *fakeAPI) Stats(context.Context) (*models.Stats, error) {
	return &models.Stats{NotesCount: 5, PublicNotes: 3}, nil
}

func (f *fakeAPI) AddComment(_ context.Context, id string, c models.NewComment) (*models.Comment, error) {
	f.comments = append(f.comments, id+":"+c.Content)
	return &models.Comment{Content: c.Content}, nil
}

func (f *fakeAPI) React(_ context.Context, id, kind string) error {
	f.reacted = id + ":" + kind
	return nil
}

func (f *fakeAPI) DeleteNote(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

// offlineSearcher fails every remote search so tests notice accidental
// network use.
type offlineSearcher struct{ calls int }

func (s *offlineSearcher) Search(context.Context, url.Values) (*models.SearchResult[models.Note], error) {
	s.calls++
	return nil, &client.NetworkError{Method: "GET", URL: "/notes/search", Err: io.ErrUnexpectedEOF}
}

type harness struct {
	app      *App
	out      *bytes.Buffer
	auth     *fakeAuth
	notes    *fakeNotes
	catalog  *fakeCatalog
	export   *fakeExport
	api      *fakeAPI
	searcher *offlineSearcher
}

func catalogNotes(n int) []models.Note {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.Note, n)
	for i := range out {
		out[i] = models.Note{
			PublicID:  fmt.Sprintf("n%02d", i),
			Title:     fmt.Sprintf("Lecture %02d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			IsPublic:  true,
			Owner:     models.Owner{Username: "alice"},
		}
		if i%2 == 0 {
			out[i].Tags = []models.Tag{{Name: "math"}}
		}
	}
	return out
}

// newHarness builds an App over fakes and a real engine and browser. The
// engine starts primed with the catalog unless online is set.
func newHarness(t *testing.T, input ...string) *harness {
	t.Helper()
	searcher := &offlineSearcher{}
	engine := query.NewEngine(searcher, nil)
	h := &harness{
		out:      &bytes.Buffer{},
		auth:     &fakeAuth{},
		notes:    &fakeNotes{},
		catalog:  &fakeCatalog{engine: engine, notes: catalogNotes(12)},
		export:   &fakeExport{},
		api:      &fakeAPI{},
		searcher: searcher,
	}
	h.app = NewApp(Deps{
		Auth:      h.auth,
		Browser:   query.NewBrowser(engine, models.NewSearchQuery(5)),
		Notes:     h.notes,
		Bookmarks: &fakeBookmarks{},
		Social:    &fakeSocial{},
		Catalog:   h.catalog,
		Export:    h.export,
		API:       h.api,
	}, strings.NewReader(strings.Join(input, "\n")+"\n"), h.out)
	return h
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func loggedInAs(username string) *services.Session {
	return &services.Session{Token: "t", User: &models.User{Username: username}}
}
