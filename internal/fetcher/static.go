package fetcher

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pagevet/pagevet/internal/common/errorwrapper"
	"github.com/pagevet/pagevet/internal/httpclient"
	"github.com/pagevet/pagevet/internal/models"
)

// StaticFetcher retrieves the page over the fast HTTP client and builds the
// snapshot from the served HTML without rendering. It backs the no-browser
// mode. Render metric sampling needs a live page, so snapshots from this path
// carry no font or tap target samples and the sample-backed checks degrade.
type StaticFetcher struct {
	client  *httpclient.Client
	builder *SnapshotBuilder
	logger  zerolog.Logger
}

// NewStaticFetcher creates a fetcher that does not render pages.
func NewStaticFetcher(client *httpclient.Client, cfg Config, logger zerolog.Logger) *StaticFetcher {
	componentLogger := logger.With().Str("component", "StaticFetcher").Logger()
	return &StaticFetcher{
		client:  client,
		builder: NewSnapshotBuilder(componentLogger, cfg.IncludeInlineScripts),
		logger:  componentLogger,
	}
}

// Fetch retrieves the page HTML and returns the parsed snapshot. A failure
// status on the page itself fails the fetch; nothing useful can be inspected
// on an error page.
func (sf *StaticFetcher) Fetch(ctx context.Context, pageURL string) (*models.PageSnapshot, error) {
	start := time.Now()

	resp, err := sf.client.Get(ctx, pageURL)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to fetch page")
	}
	if resp.StatusCode >= 400 {
		return nil, errorwrapper.NewHTTPErrorWithURL(resp.StatusCode, "page fetch returned failure status", pageURL)
	}

	finalURL := pageURL
	if resp.FinalURL != "" {
		finalURL = resp.FinalURL
	}

	snapshot, err := sf.builder.Build(pageURL, finalURL, string(resp.Body))
	if err != nil {
		return nil, err
	}
	snapshot.FetchedAt = start
	snapshot.LoadDuration = time.Since(start)

	sf.logger.Info().
		Str("url", pageURL).
		Str("final_url", finalURL).
		Int("status", resp.StatusCode).
		Dur("load_duration", snapshot.LoadDuration).
		Msg("Page fetched without rendering")

	return snapshot, nil
}
