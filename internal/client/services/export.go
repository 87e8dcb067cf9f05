package services

import (
	"context"
	"fmt"
	"mime"

	"github.com/dmitrijs2005/notehub/internal/client/export"
	"github.com/dmitrijs2005/notehub/internal/client/models"
	"github.com/dmitrijs2005/notehub/internal/logging"
)

// DownloadAPI is the subset of the API used by ExportService.
type DownloadAPI interface {
	Download(ctx context.Context, id string, kind models.DownloadKind) (*models.Download, error)
}

// ExportService downloads note files and hands them to a Sink.
type ExportService struct {
	api  DownloadAPI
	sink export.Sink
	log  logging.Logger
}

func NewExportService(api DownloadAPI, sink export.Sink, log logging.Logger) *ExportService {
	if log == nil {
		log = logging.Nop()
	}
	return &ExportService{api: api, sink: sink, log: log}
}

// Export downloads note id as kind and returns where it was stored.
func (s *ExportService) Export(ctx context.Context, id string, kind models.DownloadKind) (string, error) {
	d, err := s.api.Download(ctx, id, kind)
	if err != nil {
		return "", err
	}

	name := d.FileName
	if name == "" {
		name = defaultFileName(id, kind, d.ContentType)
	}

	loc, err := s.sink.Put(ctx, name, d.Data, d.ContentType)
	if err != nil {
		return "", fmt.Errorf("export %s: %w", id, err)
	}
	s.log.Info(ctx, "note exported", "note", id, "kind", kind, "bytes", len(d.Data), "location", loc)
	return loc, nil
}

func defaultFileName(id string, kind models.DownloadKind, contentType string) string {
	if kind == models.DownloadMarkdown {
		return id + ".md"
	}
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		if exts, err := mime.ExtensionsByType(mt); err == nil && len(exts) > 0 {
			return id + exts[0]
		}
	}
	return id
}
