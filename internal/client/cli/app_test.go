package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/notehub/internal/client/client"
	"github.com/dmitrijs2005/notehub/internal/client/models"
	"github.com/dmitrijs2005/notehub/internal/metrics"
)

func TestApp_SyncThenBrowseLocally(t *testing.T) {
	h := newHarness(t,
		"sync",
		"tag math",
		"tag math",
		"next",
		"next",
		"search lecture 1",
		"exit",
	)
	h.app.Run(context.Background())
	out := h.out.String()

	assert.Contains(t, out, "Synced 12 notes (1 pages)")
	assert.Contains(t, out, "Switched to offline mode")
	assert.Contains(t, out, "Page 1 of 2 (6 notes)  [next]")
	assert.Contains(t, out, `Tag "math" is already selected`)
	assert.Contains(t, out, "Page 2 of 2 (6 notes)  [prev]")
	assert.Contains(t, out, "already on the last page")
	assert.Contains(t, out, `Filters: text="lecture 1" tags=math`)
	assert.Regexp(t, `n10\s+Lecture 10 \[math\] @alice`, out)
	assert.Zero(t, h.searcher.calls, "a primed engine never searches remotely")
}

func TestApp_OnlineSearchFailureIsReported(t *testing.T) {
	h := newHarness(t, "search calculus", "offline", "exit")
	h.app.Run(context.Background())
	out := h.out.String()

	assert.Equal(t, 1, h.searcher.calls)
	assert.Contains(t, out, "Server unavailable")
	assert.Contains(t, out, "No local catalog yet; run 'sync' first")
	assert.Equal(t, ModeOnline, h.app.Mode)
}

func TestApp_OfflineAndOnline(t *testing.T) {
	h := newHarness(t, "offline", "online", "search x", "exit")
	h.catalog.synced = true
	h.app.Run(context.Background())
	out := h.out.String()

	assert.Contains(t, out, "Loaded 12 notes synced")
	assert.Contains(t, out, "Switched to online mode")
	assert.Equal(t, 1, h.searcher.calls, "after 'online' searches go to the server")
}

func TestApp_LoginLogout(t *testing.T) {
	stubPassword(t, "s3cret")
	h := newHarness(t, "login alice", "whoami", "logout", "whoami", "exit")
	h.app.Run(context.Background())
	out := h.out.String()

	assert.Equal(t, "alice", h.auth.username)
	assert.Equal(t, "s3cret", h.auth.password)
	assert.Contains(t, out, "Logged in as alice")
	assert.Contains(t, out, "notehub (alice online)> ")
	assert.Contains(t, out, "Logged out")
	assert.Contains(t, out, "'whoami' requires a login")
}

func TestApp_LoginPromptsForUsername(t *testing.T) {
	stubPassword(t, "pw")
	h := newHarness(t, "login", "bob", "exit")
	h.app.Run(context.Background())
	assert.Equal(t, "bob", h.auth.username)
}

func TestApp_Register(t *testing.T) {
	stubPassword(t, "longenough")
	h := newHarness(t, "register", "dana", "dana@example.com", "", "exit")
	h.app.Run(context.Background())

	assert.Equal(t, models.Registration{Username: "dana", Email: "dana@example.com", Password: "longenough"}, h.auth.reg)
	assert.Contains(t, h.out.String(), "Welcome, dana!")
}

func TestApp_ResumesStoredSession(t *testing.T) {
	h := newHarness(t, "exit")
	h.auth.session = loggedInAs("erin")
	h.app.Run(context.Background())
	assert.Contains(t, h.out.String(), "Resumed session for erin")
}

func TestApp_ExpiredSessionLogsOut(t *testing.T) {
	h := newHarness(t, "bookmark n1", "exit")
	h.auth.session = loggedInAs("erin")
	h.app.Bookmarks = expiredBookmarks{}
	h.app.Run(context.Background())

	assert.Contains(t, h.out.String(), "Session expired, please log in again")
	assert.Nil(t, h.auth.session)
}

type expiredBookmarks struct{}

func (expiredBookmarks) Toggle(context.Context, string) (bool, error) {
	return false, &client.HTTPError{Status: 401, Message: "Token has expired"}
}

func TestApp_NoteCommands(t *testing.T) {
	h := newHarness(t,
		"show n1",
		"bookmark n1",
		"bookmark n1",
		"download n1",
		"download n1 markdown",
		"comment n1", "great notes", "",
		"react n1 helpful",
		"delete n1", "y",
		"delete n2", "n",
		"show",
		"exit",
	)
	h.auth.session = loggedInAs("erin")
	h.notes.detail = &models.NoteDetail{
		Note:      &models.Note{PublicID: "n1", Title: "Linear Algebra", Owner: models.Owner{Username: "alice"}, OCRStatus: models.OCRCompleted, Tags: []models.Tag{{Name: "math"}}},
		Comments:  []models.Comment{{Content: "thanks", Author: models.Owner{Username: "bob"}}},
		Reactions: models.Reactions{"like": 2, "helpful": 1},
	}
	h.app.Run(context.Background())
	out := h.out.String()

	assert.Contains(t, out, "Linear Algebra")
	assert.Contains(t, out, "Reactions: helpful=1 like=2")
	assert.Contains(t, out, "@bob")
	assert.Contains(t, out, "Bookmarked")
	assert.Contains(t, out, "Bookmark removed")
	assert.Contains(t, out, "Saved to downloads/n1")
	assert.Equal(t, models.DownloadMarkdown, h.export.kind)
	assert.Equal(t, []string{"n1:great notes"}, h.api.comments)
	assert.Equal(t, "n1:helpful", h.api.reacted)
	assert.Equal(t, []string{"n1"}, h.api.deleted)
	assert.Contains(t, out, "usage: show <id>")
}

func TestApp_ShowNotFound(t *testing.T) {
	h := newHarness(t, "show nope", "exit")
	h.app.Run(context.Background())
	assert.Contains(t, h.out.String(), "Request failed (404): Note not found")
}

func TestApp_UploadFollowsOCR(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lecture.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF"), 0o600))

	h := newHarness(t, "upload "+path, "Week 1", "intro", "", "y", "exit")
	h.auth.session = loggedInAs("erin")
	h.notes.statuses = []models.OCRStatus{models.OCRPending, models.OCRProcessing, models.OCRCompleted}
	h.app.Run(context.Background())
	out := h.out.String()

	assert.Equal(t, models.NoteUpload{Title: "Week 1", Description: "intro", IsPublic: true}, h.notes.uploaded)
	assert.Equal(t, path, h.notes.path)
	assert.Contains(t, out, "Uploaded new1")
	assert.Contains(t, out, "ocr: processing")
	assert.Contains(t, out, "ocr: completed")
}

func TestApp_UploadStopsWaitingForOCR(t *testing.T) {
	h := newHarness(t, "upload x.pdf", "Week 2", "", "n", "exit")
	h.auth.session = loggedInAs("erin")
	h.app.ocrWait = 10 * time.Millisecond
	h.app.Run(context.Background())

	assert.Contains(t, h.out.String(), "OCR is still running; check later with 'show new1'")
}

func TestApp_SocialAndCatalogCommands(t *testing.T) {
	h := newHarness(t, "profile carol", "follow carol", "recommend", "tags 5", "courses", "stats", "exit")
	h.auth.session = loggedInAs("erin")
	h.app.Run(context.Background())
	out := h.out.String()

	assert.Contains(t, out, "@carol\n  3 followers")
	assert.Contains(t, out, "@carol - following\n  4 followers")
	assert.Contains(t, out, "math")
	assert.Contains(t, out, "MA101")
	assert.Contains(t, out, "Notes:     5 (3 public)")
}

func TestApp_FilterCommands(t *testing.T) {
	h := newHarness(t, "sync", "owner bob", "owner -", "sort title", "visibility secret", "clear", "exit")
	h.app.Run(context.Background())
	out := h.out.String()

	assert.Contains(t, out, "Filters: owner=bob")
	assert.Contains(t, out, "No notes found")
	assert.Contains(t, out, "Filters: sort=title")
	assert.Contains(t, out, "Invalid input")
	assert.Equal(t, models.NewSearchQuery(5), h.app.Browser.Query())
}

func TestApp_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)
	c.Start("GET")(200)
	c.Start("GET")(0)

	h := newHarness(t, "metrics", "exit")
	h.app.Gatherer = reg
	h.app.Run(context.Background())
	out := h.out.String()

	assert.Contains(t, out, `notehub_client_requests_total{method="GET",status="200"} 1`)
	assert.Contains(t, out, `notehub_client_requests_total{method="GET",status="network_error"} 1`)
	assert.Contains(t, out, `notehub_client_request_duration_seconds{method="GET"} count=2`)
}

func TestApp_MetricsDisabled(t *testing.T) {
	h := newHarness(t, "metrics", "exit")
	h.app.Run(context.Background())
	assert.Contains(t, h.out.String(), "metrics are disabled")
}
