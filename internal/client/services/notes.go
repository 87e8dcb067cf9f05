package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/notehub/internal/client/models"
	"github.com/dmitrijs2005/notehub/internal/logging"
)

// MaxUploadSize is the largest file the server accepts.
const MaxUploadSize = 20 << 20

var uploadExtensions = []string{".pdf", ".png", ".jpg", ".jpeg"}

// NoteAPI is the subset of the API used by NoteService.
type NoteAPI interface {
	GetNote(ctx context.Context, id string) (*models.Note, error)
	Comments(ctx context.Context, noteID string) ([]models.Comment, error)
	Reactions(ctx context.Context, noteID string) (models.Reactions, error)
	Collaborators(ctx context.Context, noteID string) ([]models.Collaborator, error)
	CreateNote(ctx context.Context, meta models.NoteUpload, fileName string, content io.Reader) (*models.Note, error)
}

type NoteService struct {
	api          NoteAPI
	log          logging.Logger
	pollInterval time.Duration
}

const defaultPollInterval = 3 * time.Second

type NoteOption func(*NoteService)

// WithPollInterval sets how often WaitForOCR re-reads the note.
// Non-positive durations keep the default.
func WithPollInterval(d time.Duration) NoteOption {
	return func(s *NoteService) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

func NewNoteService(api NoteAPI, log logging.Logger, opts ...NoteOption) *NoteService {
	if log == nil {
		log = logging.Nop()
	}
	s := &NoteService{api: api, log: log, pollInterval: defaultPollInterval}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Detail loads a note with its comments, reactions and collaborators. The
// four requests run concurrently; if any fails, Detail fails with the
// first error and discards the rest.
func (s *NoteService) Detail(ctx context.Context, id string) (*models.NoteDetail, error) {
	var (
		d models.NoteDetail
		g errgroup.Group
	)
	g.Go(func() (err error) {
		d.Note, err = s.api.GetNote(ctx, id)
		return err
	})
	g.Go(func() (err error) {
		d.Comments, err = s.api.Comments(ctx, id)
		return err
	})
	g.Go(func() (err error) {
		d.Reactions, err = s.api.Reactions(ctx, id)
		return err
	})
	g.Go(func() (err error) {
		d.Collaborators, err = s.api.Collaborators(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

// ValidateUpload checks a file before it is sent: known extension,
// non-empty, at most MaxUploadSize bytes.
func ValidateUpload(name string, size int64) error {
	ext := strings.ToLower(filepath.Ext(name))
	if !slices.Contains(uploadExtensions, ext) {
		return &models.ValidationError{Field: "file", Reason: fmt.Sprintf("unsupported type %q, want one of %s", ext, strings.Join(uploadExtensions, ", "))}
	}
	if size <= 0 {
		return &models.ValidationError{Field: "file", Reason: "is empty"}
	}
	if size > MaxUploadSize {
		return &models.ValidationError{Field: "file", Reason: fmt.Sprintf("is %d bytes, limit is %d", size, MaxUploadSize)}
	}
	return nil
}

// Upload validates the file at path and creates a note from it.
func (s *NoteService) Upload(ctx context.Context, meta models.NoteUpload, path string) (*models.Note, error) {
	if err := models.Validate(meta); err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, &models.ValidationError{Field: "file", Reason: "is a directory"}
	}
	if err := ValidateUpload(info.Name(), info.Size()); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	n, err := s.api.CreateNote(ctx, meta, info.Name(), f)
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "note uploaded", "note", n.PublicID, "file", info.Name(), "bytes", info.Size())
	return n, nil
}

// WaitForOCR polls the note until its OCR status is terminal or ctx ends.
// onChange, if set, is called whenever the status changes.
func (s *NoteService) WaitForOCR(ctx context.Context, id string, onChange func(models.OCRStatus)) (*models.Note, error) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	var last models.OCRStatus
	for {
		n, err := s.api.GetNote(ctx, id)
		if err != nil {
			return nil, err
		}
		if n.OCRStatus != last {
			last = n.OCRStatus
			s.log.Debug(ctx, "ocr status", "note", id, "status", last)
			if onChange != nil {
				onChange(last)
			}
		}
		if n.OCRStatus.Terminal() {
			return n, nil
		}

		select {
		case <-ctx.Done():
			return n, ctx.Err()
		case <-ticker.C:
		}
	}
}
