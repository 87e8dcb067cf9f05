package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/notehub/internal/client/client"
	"github.com/dmitrijs2005/notehub/internal/client/models"
	"github.com/dmitrijs2005/notehub/internal/client/query"
	"github.com/dmitrijs2005/notehub/internal/client/services"
	"github.com/dmitrijs2005/notehub/internal/logging"
)

// Mode tells where searches are answered from.
type Mode string

const (
	// ModeOnline sends every search to the server.
	ModeOnline Mode = "online"
	// ModeOffline answers searches from the local catalog snapshot.
	ModeOffline Mode = "offline"
)

// defaultOCRWait bounds how long upload follows OCR progress.
const defaultOCRWait = 2 * time.Minute

// Authenticator is the session surface the CLI needs.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*services.Session, error)
	Register(ctx context.Context, r models.Registration) (*services.Session, error)
	Restore(ctx context.Context) (*services.Session, error)
	Logout(ctx context.Context) error
	Session() (services.Session, bool)
	HandleError(ctx context.Context, err error) error
}

// Pager is an interactive search session; *query.Browser implements it.
type Pager interface {
	Query() models.SearchQuery
	Apply(ctx context.Context, q models.SearchQuery) (models.Page[models.Note], error)
	Refresh(ctx context.Context) (models.Page[models.Note], error)
	SelectTag(ctx context.Context, name string) (models.Page[models.Note], bool, error)
	DeselectTag(ctx context.Context, name string) (models.Page[models.Note], bool, error)
	GoTo(ctx context.Context, n int) (models.Page[models.Note], error)
	Next(ctx context.Context) (models.Page[models.Note], error)
	Prev(ctx context.Context) (models.Page[models.Note], error)
}

type NoteReader interface {
	Detail(ctx context.Context, id string) (*models.NoteDetail, error)
	Upload(ctx context.Context, meta models.NoteUpload, path string) (*models.Note, error)
	WaitForOCR(ctx context.Context, id string, onChange func(models.OCRStatus)) (*models.Note, error)
}

type Bookmarker interface {
	Toggle(ctx context.Context, noteID string) (bool, error)
}

type Socializer interface {
	Profile(ctx context.Context, username string) (*models.Profile, error)
	Follow(ctx context.Context, username string) (*models.Profile, error)
	Unfollow(ctx context.Context, username string) (*models.Profile, error)
	Recommendations(ctx context.Context) ([]models.Profile, error)
}

type Syncer interface {
	Sync(ctx context.Context) (*services.SyncResult, error)
	LoadOffline(ctx context.Context) (int, time.Time, bool, error)
	GoOnline()
}

type Exporter interface {
	Export(ctx context.Context, id string, kind models.DownloadKind) (string, error)
}

// API covers the endpoints the CLI calls without a service in between.
type API interface {
	PopularTags(ctx context.Context, limit int) ([]models.Tag, error)
	Courses(ctx context.Context) ([]models.Course, error)
	MyCourses(ctx context.Context) ([]models.Course, error)
	Enroll(ctx context.Context, courseCode string) error
	Stats(ctx context.Context) (*models.Stats, error)
	AddComment(ctx context.Context, noteID string, c models.NewComment) (*models.Comment, error)
	React(ctx context.Context, noteID, kind string) error
	DeleteNote(ctx context.Context, id string) error
}

// Deps are the collaborators an App drives. Gatherer may be nil.
type Deps struct {
	Auth      Authenticator
	Browser   Pager
	Notes     NoteReader
	Bookmarks Bookmarker
	Social    Socializer
	Catalog   Syncer
	Export    Exporter
	API       API
	Gatherer  prometheus.Gatherer
	Log       logging.Logger
}

type App struct {
	Deps
	Mode    Mode
	ocrWait time.Duration
	reader  *bufio.Reader
	out     io.Writer
	errOut  io.Writer
}

func NewApp(d Deps, in io.Reader, out io.Writer) *App {
	if d.Log == nil {
		d.Log = logging.Nop()
	}
	return &App{
		Deps:    d,
		Mode:    ModeOnline,
		ocrWait: defaultOCRWait,
		reader:  bufio.NewReader(in),
		out:     out,
		errOut:  out,
	}
}

// Run resumes a stored session if there is one and blocks in the REPL
// until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	a.printf("Welcome to NoteHub CLI (type 'help' for commands)\n")

	sess, err := a.Auth.Restore(ctx)
	switch {
	case err == nil:
		a.printf("Resumed session for %s\n", sess.User.Username)
	case errors.Is(err, services.ErrNotLoggedIn):
	default:
		a.handleError(ctx, err)
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		a.printf("Switched to %s mode\n", mode)
	}
}

func (a *App) isLoggedIn() bool {
	_, ok := a.Auth.Session()
	return ok
}

func (a *App) getStatus() string {
	s := ""
	if sess, ok := a.Auth.Session(); ok && sess.User != nil {
		s = sess.User.Username + " "
	}
	return fmt.Sprintf("(%s%s)", s, a.Mode)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

var (
	errColor  = color.New(color.FgRed)
	warnColor = color.New(color.FgYellow)
	okColor   = color.New(color.FgGreen)
)

// handleError reports a failed command. A rejected token ends the session.
func (a *App) handleError(ctx context.Context, err error) {
	err = a.Auth.HandleError(ctx, err)

	var (
		authErr *client.AuthExpiredError
		verr    *models.ValidationError
		herr    *client.HTTPError
	)
	switch {
	case errors.As(err, &authErr):
		warnColor.Fprintln(a.errOut, "Session expired, please log in again")
	case errors.Is(err, errUsage):
		warnColor.Fprintln(a.errOut, err)
	case errors.As(err, &verr):
		warnColor.Fprintf(a.errOut, "Invalid input: %v\n", verr)
	case errors.Is(err, client.ErrUnavailable):
		errColor.Fprintln(a.errOut, "Server unavailable; 'offline' searches the last synced catalog")
	case errors.Is(err, query.ErrNoNextPage), errors.Is(err, query.ErrNoPrevPage):
		warnColor.Fprintln(a.errOut, err)
	case errors.As(err, &herr):
		errColor.Fprintf(a.errOut, "Request failed (%d): %s\n", herr.Status, herr.Message)
	default:
		errColor.Fprintf(a.errOut, "Error: %v\n", err)
	}
	a.Log.Debug(ctx, "command failed", "error", err)
}
