package fetcher

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pagevet/pagevet/internal/browser"
	"github.com/pagevet/pagevet/internal/common/errorwrapper"
	"github.com/pagevet/pagevet/internal/models"
)

// PageFetcher loads a page in a headless browser and turns the settled DOM
// into an immutable snapshot
type PageFetcher struct {
	provider browser.SessionProvider
	builder  *SnapshotBuilder
	config   Config
	logger   zerolog.Logger
}

// NewPageFetcher creates a page fetcher backed by the given session provider
func NewPageFetcher(provider browser.SessionProvider, cfg Config, logger zerolog.Logger) *PageFetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.WaitCondition == "" {
		cfg.WaitCondition = DefaultConfig().WaitCondition
	}
	componentLogger := logger.With().Str("component", "PageFetcher").Logger()
	return &PageFetcher{
		provider: provider,
		builder:  NewSnapshotBuilder(componentLogger, cfg.IncludeInlineScripts),
		config:   cfg,
		logger:   componentLogger,
	}
}

// Fetch navigates to the URL, waits for the page to settle, and returns the
// parsed snapshot. The fetch fails as a whole when the page cannot be loaded;
// sampling failures only degrade the snapshot.
func (pf *PageFetcher) Fetch(ctx context.Context, pageURL string) (*models.PageSnapshot, error) {
	start := time.Now()

	session, err := pf.provider.OpenSession(ctx)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to open browser session")
	}
	defer func() {
		if err := session.Close(); err != nil {
			pf.logger.Warn().Err(err).Msg("Failed to close browser session")
		}
	}()

	nav, err := session.Navigate(ctx, pageURL, pf.config.WaitCondition, pf.config.Timeout)
	if err != nil {
		return nil, err
	}

	html, err := session.HTML(ctx)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to read page DOM")
	}

	finalURL := pageURL
	if nav != nil && nav.URL != "" {
		finalURL = nav.URL
	}

	snapshot, err := pf.builder.Build(pageURL, finalURL, html)
	if err != nil {
		return nil, err
	}
	snapshot.FetchedAt = start
	snapshot.LoadDuration = time.Since(start)

	if pf.config.CollectRenderMetrics {
		pf.collectRenderMetrics(ctx, session, snapshot)
	}

	pf.logger.Info().
		Str("url", pageURL).
		Str("final_url", finalURL).
		Int("status", navStatus(nav)).
		Dur("load_duration", snapshot.LoadDuration).
		Int("images", len(snapshot.Images)).
		Int("forms", len(snapshot.Forms)).
		Msg("Page fetched")

	return snapshot, nil
}

func navStatus(nav *browser.NavigationResponse) int {
	if nav == nil {
		return 0
	}
	return nav.StatusCode
}
