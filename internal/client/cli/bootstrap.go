package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/notehub/internal/client/api"
	"github.com/dmitrijs2005/notehub/internal/client/client"
	"github.com/dmitrijs2005/notehub/internal/client/config"
	"github.com/dmitrijs2005/notehub/internal/client/export"
	"github.com/dmitrijs2005/notehub/internal/client/models"
	"github.com/dmitrijs2005/notehub/internal/client/query"
	"github.com/dmitrijs2005/notehub/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/notehub/internal/client/services"
	"github.com/dmitrijs2005/notehub/internal/client/storage"
	"github.com/dmitrijs2005/notehub/internal/logging"
	"github.com/dmitrijs2005/notehub/internal/metrics"
)

// NewAppFromConfig opens the local database and builds every service the
// REPL uses. The returned closer releases the database.
func NewAppFromConfig(ctx context.Context, c *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, io.Closer, error) {
	repos, err := storage.InitDatabase(ctx, c.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing database: %w", err)
	}

	reg := prometheus.NewRegistry()
	tokens := metadata.NewTokenStore(repos.Metadata)
	hc := client.NewHTTPClient(c.BaseURL, tokens,
		client.WithTimeout(c.HTTPTimeout),
		client.WithLogger(log),
		client.WithMetrics(metrics.NewCollector(reg)),
	)
	apiClient := api.New(hc)
	engine := query.NewEngine(apiClient, log)

	var sink export.Sink = export.NewDirSink(c.ExportDir)
	if c.S3.Bucket != "" {
		s3sink, err := export.NewS3Sink(ctx, c.S3, &http.Client{Timeout: c.HTTPTimeout})
		if err != nil {
			_ = repos.Close()
			return nil, nil, err
		}
		sink = s3sink
	}

	app := NewApp(Deps{
		Auth:      services.NewAuthService(apiClient, tokens, log),
		Browser:   query.NewBrowser(engine, models.NewSearchQuery(c.PerPage)),
		Notes:     services.NewNoteService(apiClient, log),
		Bookmarks: services.NewBookmarkService(apiClient, log),
		Social:    services.NewSocialService(apiClient, c.ProfileCacheTTL, log),
		Catalog:   services.NewCatalogService(apiClient, repos.DB, engine, log),
		Export:    services.NewExportService(apiClient, sink, log),
		API:       apiClient,
		Gatherer:  reg,
		Log:       log,
	}, in, out)
	return app, repos, nil
}
