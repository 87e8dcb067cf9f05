package query

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/dmitrijs2005/notehub/internal/client/models"
	"github.com/dmitrijs2005/notehub/internal/logging"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func note(id, title string, opts ...func(*models.Note)) models.Note {
	n := models.Note{PublicID: id, Title: title, CreatedAt: baseTime, IsPublic: true}
	for _, o := range opts {
		o(&n)
	}
	return n
}

func by(user string) func(*models.Note) {
	return func(n *models.Note) { n.Owner.Username = user }
}

func desc(d string) func(*models.Note) {
	return func(n *models.Note) { n.Description = d }
}

func private(n *models.Note) { n.IsPublic = false }

func tagged(names ...string) func(*models.Note) {
	return func(n *models.Note) {
		for _, name := range names {
			n.Tags = append(n.Tags, models.Tag{Name: name})
		}
	}
}

func course(code string) func(*models.Note) {
	return func(n *models.Note) { n.CourseCode = code }
}

func at(d time.Duration) func(*models.Note) {
	return func(n *models.Note) { n.CreatedAt = baseTime.Add(d) }
}

func ids(notes []models.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.PublicID
	}
	return out
}

// twentyFive returns notes titled "Note 00".."Note 24" in reverse order.
func twentyFive() []models.Note {
	notes := make([]models.Note, 0, 25)
	for i := 24; i >= 0; i-- {
		notes = append(notes, note(fmt.Sprintf("n%02d", i), fmt.Sprintf("Note %02d", i), at(time.Duration(i)*time.Minute)))
	}
	return notes
}

// fakeSearcher records calls and returns a canned result.
type fakeSearcher struct {
	mu     sync.Mutex
	calls  []url.Values
	result *models.SearchResult[models.Note]
	err    error
}

func (f *fakeSearcher) Search(_ context.Context, params url.Values) (*models.SearchResult[models.Note], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, params)
	return f.result, f.err
}

func (f *fakeSearcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type logEntry struct {
	level string
	msg   string
	args  []any
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) add(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, args: args})
}

func (l *recordingLogger) Debug(_ context.Context, msg string, args ...any) {
	l.add("debug", msg, args)
}
func (l *recordingLogger) Info(_ context.Context, msg string, args ...any) { l.add("info", msg, args) }
func (l *recordingLogger) Warn(_ context.Context, msg string, args ...any) { l.add("warn", msg, args) }
func (l *recordingLogger) Error(_ context.Context, msg string, args ...any) {
	l.add("error", msg, args)
}
func (l *recordingLogger) With(...any) logging.Logger { return l }

func (l *recordingLogger) count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.entries {
		if e.level == level {
			n++
		}
	}
	return n
}

func ptr[T any](v T) *T { return &v }
