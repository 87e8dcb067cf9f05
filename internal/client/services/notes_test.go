package services

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/notehub/internal/client/client"
	"github.com/dmitrijs2005/notehub/internal/client/models"
)

type fakeNoteAPI struct {
	mu sync.Mutex

	note       *models.Note
	statuses   []models.OCRStatus
	getCalls   atomic.Int32
	commentErr error

	// inFlight/maxInFlight measure how many detail calls overlap
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	gate        chan struct{}

	created  models.NoteUpload
	fileName string
	content  []byte
}

func (f *fakeNoteAPI) enter() func() {
	n := f.inFlight.Add(1)
	for {
		m := f.maxInFlight.Load()
		if n <= m || f.maxInFlight.CompareAndSwap(m, n) {
			break
		}
	}
	if f.gate != nil {
		<-f.gate
	}
	return func() { f.inFlight.Add(-1) }
}

func (f *fakeNoteAPI) GetNote(_ context.Context, id string) (*models.Note, error) {
	defer f.enter()()
	i := int(f.getCalls.Add(1)) - 1
	n := *f.note
	if len(f.statuses) > 0 {
		n.OCRStatus = f.statuses[min(i, len(f.statuses)-1)]
	}
	return &n, nil
}

func (f *fakeNoteAPI) Comments(context.Context, string) ([]models.Comment, error) {
	defer f.enter()()
	if f.commentErr != nil {
		return nil, f.commentErr
	}
	return []models.Comment{{ID: 1, Content: "nice"}}, nil
}

func (f *fakeNoteAPI) Reactions(context.Context, string) (models.Reactions, error) {
	defer f.enter()()
	return models.Reactions{"like": 2}, nil
}

func (f *fakeNoteAPI) Collaborators(context.Context, string) ([]models.Collaborator, error) {
	defer f.enter()()
	return []models.Collaborator{{Username: "carol"}}, nil
}

func (f *fakeNoteAPI) CreateNote(_ context.Context, meta models.NoteUpload, fileName string, content io.Reader) (*models.Note, error) {
	b, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.created, f.fileName, f.content = meta, fileName, b
	f.mu.Unlock()
	return &models.Note{PublicID: "new", Title: meta.Title, OCRStatus: models.OCRPending}, nil
}

func TestDetail_FansOutConcurrently(t *testing.T) {
	f := &fakeNoteAPI{note: &models.Note{PublicID: "n1", Title: "T"}, gate: make(chan struct{})}
	s := NewNoteService(f, nil)

	// release all four calls only once they are all waiting
	go func() {
		for f.inFlight.Load() < 4 {
			time.Sleep(time.Millisecond)
		}
		close(f.gate)
	}()

	d, err := s.Detail(context.Background(), "n1")
	require.NoError(t, err)
	assert.Equal(t, int32(4), f.maxInFlight.Load())
	assert.Equal(t, "T", d.Note.Title)
	assert.Len(t, d.Comments, 1)
	assert.Equal(t, 2, d.Reactions["like"])
	assert.Equal(t, "carol", d.Collaborators[0].Username)
}

func TestDetail_FailsIfAnyPartFails(t *testing.T) {
	herr := &client.HTTPError{Status: 403, Message: "private"}
	f := &fakeNoteAPI{note: &models.Note{PublicID: "n1"}, commentErr: herr}

	d, err := NewNoteService(f, nil).Detail(context.Background(), "n1")
	assert.Nil(t, d)
	assert.ErrorIs(t, err, herr)
}

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name string
		size int64
		ok   bool
	}{
		{"notes.pdf", 10, true},
		{"scan.PNG", 10, true},
		{"scan.jpg", MaxUploadSize, true},
		{"scan.jpeg", 1, true},
		{"notes.docx", 10, false},
		{"noext", 10, false},
		{"empty.pdf", 0, false},
		{"huge.pdf", MaxUploadSize + 1, false},
	}
	for _, tt := range tests {
		err := ValidateUpload(tt.name, tt.size)
		if tt.ok {
			assert.NoError(t, err, tt.name)
			continue
		}
		assert.ErrorIs(t, err, models.ErrValidation, tt.name)
	}
}

func TestUpload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lecture.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7"), 0o600))

	f := &fakeNoteAPI{}
	s := NewNoteService(f, nil)

	n, err := s.Upload(context.Background(), models.NoteUpload{Title: "Lecture", IsPublic: true}, path)
	require.NoError(t, err)
	assert.Equal(t, "new", n.PublicID)
	assert.Equal(t, "lecture.pdf", f.fileName)
	assert.Equal(t, "%PDF-1.7", string(f.content))
	assert.True(t, f.created.IsPublic)

	empty := filepath.Join(dir, "empty.pdf")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	_, err = s.Upload(context.Background(), models.NoteUpload{Title: "x"}, empty)
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = s.Upload(context.Background(), models.NoteUpload{}, path)
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = s.Upload(context.Background(), models.NoteUpload{Title: "x"}, filepath.Join(dir, "missing.pdf"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWaitForOCR(t *testing.T) {
	f := &fakeNoteAPI{
		note:     &models.Note{PublicID: "n1"},
		statuses: []models.OCRStatus{models.OCRPending, models.OCRPending, models.OCRProcessing, models.OCRCompleted},
	}
	s := NewNoteService(f, nil, WithPollInterval(time.Millisecond))

	var seen []models.OCRStatus
	n, err := s.WaitForOCR(context.Background(), "n1", func(st models.OCRStatus) { seen = append(seen, st) })
	require.NoError(t, err)
	assert.Equal(t, models.OCRCompleted, n.OCRStatus)
	assert.Equal(t, []models.OCRStatus{models.OCRPending, models.OCRProcessing, models.OCRCompleted}, seen)
	assert.Equal(t, int32(4), f.getCalls.Load())
}

func TestWithPollInterval_IgnoresNonPositive(t *testing.T) {
	for _, d := range []time.Duration{0, -time.Second} {
		f := &fakeNoteAPI{note: &models.Note{PublicID: "n1", OCRStatus: models.OCRCompleted}}
		s := NewNoteService(f, nil, WithPollInterval(d))
		assert.Equal(t, defaultPollInterval, s.pollInterval)

		n, err := s.WaitForOCR(context.Background(), "n1", nil)
		require.NoError(t, err)
		assert.Equal(t, models.OCRCompleted, n.OCRStatus)
	}
}

func TestWaitForOCR_ContextEnds(t *testing.T) {
	f := &fakeNoteAPI{note: &models.Note{PublicID: "n1", OCRStatus: models.OCRProcessing}}
	s := NewNoteService(f, nil, WithPollInterval(time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	n, err := s.WaitForOCR(ctx, "n1", nil)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, models.OCRProcessing, n.OCRStatus)
}
