// Package scanner runs the inspection pipeline: validate the target URL,
// fetch and parse the page, extract its links, probe the target directly,
// evaluate the rule catalog, verify the links in batches, and assemble the
// final report. It is also the composition root that builds every component
// from the global configuration.
package scanner

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pagevet/pagevet/internal/browser"
	"github.com/pagevet/pagevet/internal/common/errorwrapper"
	"github.com/pagevet/pagevet/internal/config"
	"github.com/pagevet/pagevet/internal/extractor"
	"github.com/pagevet/pagevet/internal/fetcher"
	"github.com/pagevet/pagevet/internal/httpclient"
	"github.com/pagevet/pagevet/internal/linkchecker"
	"github.com/pagevet/pagevet/internal/models"
	"github.com/pagevet/pagevet/internal/probing"
	"github.com/pagevet/pagevet/internal/rslimiter"
	"github.com/pagevet/pagevet/internal/rules"
	"github.com/pagevet/pagevet/internal/urlhandler"
)

// snapshotSource loads the inspected page. The rendering fetcher and the
// static fetcher both implement it.
type snapshotSource interface {
	Fetch(ctx context.Context, pageURL string) (*models.PageSnapshot, error)
}

// linkVerifier resolves a list of links into one result per link.
type linkVerifier interface {
	RunAll(ctx context.Context, links []string) []models.LinkCheckResult
}

// targetProber issues the direct HTTP probe of the target.
type targetProber interface {
	Probe(ctx context.Context, targetURL string) (*models.PageProbe, error)
}

// Scanner orchestrates one inspection run.
type Scanner struct {
	config    *config.GlobalConfig
	logger    zerolog.Logger
	browsers  *browser.Manager
	limiter   *rslimiter.ResourceLimiter
	fetcher   snapshotSource
	extractor *extractor.LinkExtractor
	prober    targetProber
	catalog   *rules.Catalog
	verifier  linkVerifier
}

// NewScanner builds the full component graph from the global configuration.
// With the browser disabled, the page is fetched over the fast HTTP client
// and the link checker loses its fallback tier.
func NewScanner(globalConfig *config.GlobalConfig, logger zerolog.Logger) (*Scanner, error) {
	builder := NewConfigBuilder(globalConfig)

	browsers := browser.NewManager(builder.BuildBrowserConfig(), logger)
	limiter := rslimiter.NewResourceLimiter(builder.BuildLimiterConfig(), logger)

	var source snapshotSource
	var provider browser.SessionProvider
	if browsers.IsEnabled() {
		provider = browsers
		source = fetcher.NewPageFetcher(browsers, builder.BuildFetcherConfig(), logger)
	} else {
		client, err := httpclient.NewClient(builder.BuildHTTPClientConfig(), logger)
		if err != nil {
			return nil, errorwrapper.WrapError(err, "failed to build page fetch client")
		}
		source = fetcher.NewStaticFetcher(client, builder.BuildFetcherConfig(), logger)
	}

	linkConfig := builder.BuildLinkCheckerConfig()
	if !browsers.IsEnabled() {
		linkConfig.DisableBrowserFallback = true
	}
	resolver, err := linkchecker.NewLinkResolver(linkConfig, provider, limiter, logger)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to build link resolver")
	}

	var prober targetProber
	if globalConfig.ProbeConfig.Enabled {
		prober = probing.NewProber(builder.BuildProbeConfig(), logger)
	}

	return &Scanner{
		config:    globalConfig,
		logger:    logger.With().Str("component", "Scanner").Logger(),
		browsers:  browsers,
		limiter:   limiter,
		fetcher:   source,
		extractor: extractor.NewLinkExtractor(builder.BuildExtractorConfig(), logger),
		prober:    prober,
		catalog:   rules.NewCatalog(builder.BuildRulesConfig(), logger),
		verifier:  linkchecker.NewBatchScheduler(resolver, linkConfig, logger),
	}, nil
}

// Start launches the browser pool and the resource monitor. onExhausted runs
// when sustained resource pressure triggers auto-shutdown; the caller cancels
// the scan context there, which winds the run down into a partial report
// instead of crashing.
func (s *Scanner) Start(onExhausted func()) error {
	if onExhausted != nil {
		s.limiter.SetShutdownCallback(onExhausted)
	}
	s.limiter.Start()

	if err := s.browsers.Start(); err != nil {
		s.limiter.Stop()
		return errorwrapper.WrapError(err, "failed to start browser manager")
	}
	return nil
}

// Close releases the browser pool and stops the resource monitor.
func (s *Scanner) Close() {
	s.browsers.Stop()
	s.limiter.Stop()
}

// Scan inspects one page. The only fatal errors are a malformed target URL
// and a page that cannot be fetched; probe failures and broken links are
// recorded in the report instead.
func (s *Scanner) Scan(ctx context.Context, rawURL string) (*models.InspectionReport, error) {
	target, err := s.validateTarget(rawURL)
	if err != nil {
		return nil, err
	}

	startedAt := time.Now()
	s.logger.Info().Str("url", target).Msg("Inspection started")

	snapshot, err := s.fetcher.Fetch(ctx, target)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "page fetch failed")
	}

	links := s.extractor.ExtractLinks(snapshot)
	probe := s.probeTarget(ctx, target)

	checks := s.catalog.Evaluate(snapshot, probe)
	linkReport := s.verifyLinks(ctx, links)
	checks = append(checks, linkchecker.BuildLinkChecks(linkReport)...)

	report := &models.InspectionReport{
		RequestedURL: target,
		FinalURL:     snapshot.URL,
		StartedAt:    startedAt,
		Duration:     time.Since(startedAt),
		Page:         buildPageFacts(snapshot, links),
		Probe:        probe,
		Checks:       checks,
		Links:        linkReport,
	}
	report.BuildSummary()

	s.logger.Info().
		Str("url", target).
		Int("checks", report.Summary.ChecksTotal).
		Int("checks_failed", report.Summary.ChecksFailed).
		Int("links", report.Summary.LinksTotal).
		Int("links_broken", report.Summary.LinksBroken).
		Dur("duration", report.Duration).
		Msg("Inspection finished")

	return report, nil
}

// validateTarget rejects malformed input before any network traffic and
// returns the normalized target URL.
func (s *Scanner) validateTarget(rawURL string) (string, error) {
	if err := urlhandler.ValidateInputURL(rawURL); err != nil {
		return "", errorwrapper.WrapError(err, "invalid target URL")
	}
	return urlhandler.NormalizeURL(rawURL)
}

// probeTarget issues the direct HTTP probe. A failed or disabled probe
// degrades the probe-backed checks instead of failing the run.
func (s *Scanner) probeTarget(ctx context.Context, target string) *models.PageProbe {
	if s.prober == nil {
		s.logger.Debug().Msg("Probe disabled, probe-backed checks will degrade")
		return nil
	}

	probe, err := s.prober.Probe(ctx, target)
	if err != nil {
		s.logger.Warn().Err(err).Str("url", target).Msg("Page probe failed, probe-backed checks will degrade")
		return &models.PageProbe{
			InputURL:  target,
			Method:    s.config.ProbeConfig.Method,
			Timestamp: time.Now(),
			Error:     err.Error(),
		}
	}
	return probe
}

// verifyLinks resolves the extracted links and partitions the results.
func (s *Scanner) verifyLinks(ctx context.Context, links []models.Link) models.LinkReport {
	hrefs := make([]string, len(links))
	for i, link := range links {
		hrefs[i] = link.Href
	}
	return linkchecker.Aggregate(s.verifier.RunAll(ctx, hrefs))
}
