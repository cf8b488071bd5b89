// Package linkchecker verifies extracted links with a two-tier strategy: a
// fast HTTP GET for every link, then a headless browser navigation for the
// links the fast tier could not settle. Links are resolved in fixed-size
// concurrent batches with a pause between batches.
package linkchecker

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pagevet/pagevet/internal/browser"
	"github.com/pagevet/pagevet/internal/common/errorwrapper"
	"github.com/pagevet/pagevet/internal/httpclient"
	"github.com/pagevet/pagevet/internal/models"
	"github.com/pagevet/pagevet/internal/urlhandler"
)

// AdmissionChecker gates resource-heavy work. The resource limiter implements
// it; the resolver consults it before starting a browser fallback.
type AdmissionChecker interface {
	CheckAdmission() error
}

// LinkResolver classifies a single link as working or broken.
//
// The fast tier issues a GET with browser-like headers and follows redirects.
// A status in [200,400) settles the link as working and any other status as
// broken, except the configured ambiguous statuses: many sites reject plain
// HTTP clients with 403 or 400 while serving real browsers, so those escalate
// to the fallback tier together with transport failures. The fallback
// navigates the link in a headless browser and waits only for
// DOMContentLoaded, since the goal is reachability rather than full
// rendering.
type LinkResolver struct {
	client   *httpclient.Client
	provider browser.SessionProvider
	limiter  AdmissionChecker
	config   Config
	logger   zerolog.Logger
}

// NewLinkResolver builds a resolver with its own fast HTTP client. provider
// may be nil when the browser fallback is disabled; limiter may be nil to
// skip admission checks.
func NewLinkResolver(config Config, provider browser.SessionProvider, limiter AdmissionChecker, logger zerolog.Logger) (*LinkResolver, error) {
	config = config.withDefaults()

	client, err := httpclient.NewClientBuilder(logger).
		WithTimeout(config.FastTimeout).
		WithFollowRedirects(true).
		WithMaxRedirects(config.MaxRedirects).
		Build()
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to build link check client")
	}

	return &LinkResolver{
		client:   client,
		provider: provider,
		limiter:  limiter,
		config:   config,
		logger:   logger.With().Str("component", "LinkResolver").Logger(),
	}, nil
}

// Resolve classifies one link. It always returns a result: failures of either
// tier become a broken result with a cause, and a panic during resolution is
// recovered into one as well.
func (r *LinkResolver) Resolve(ctx context.Context, linkURL string) (result models.LinkCheckResult) {
	start := time.Now()
	result = models.LinkCheckResult{
		URL:         linkURL,
		ResolvedVia: models.ResolvedViaFastClient,
		CheckedAt:   start,
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error().
				Str("url", linkURL).
				Interface("panic", rec).
				Msg("Recovered panic during link resolution")
			result.Outcome = models.LinkOutcomeBroken
			result.Error = fmt.Sprintf("resolution panic: %v", rec)
		}
		result.Duration = time.Since(start).Seconds()
	}()

	fastCtx, cancel := context.WithTimeout(ctx, r.config.FastTimeout)
	resp, err := r.client.Get(fastCtx, linkURL)
	cancel()

	if err != nil {
		r.logger.Debug().
			Str("url", linkURL).
			Err(err).
			Msg("Fast client transport failure, escalating to browser fallback")
		r.resolveFallback(ctx, &result, 0, transportReason(err))
		return result
	}

	result.HTTPStatus = resp.StatusCode

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		result.Outcome = models.LinkOutcomeWorking
		if resp.FinalURL != "" && !sameURL(linkURL, resp.FinalURL) {
			result.RedirectTarget = resp.FinalURL
		}
	case r.isAmbiguous(resp.StatusCode):
		r.logger.Debug().
			Str("url", linkURL).
			Int("status", resp.StatusCode).
			Msg("Ambiguous status from fast client, escalating to browser fallback")
		r.resolveFallback(ctx, &result, resp.StatusCode, fmt.Sprintf("HTTP status %d", resp.StatusCode))
	default:
		result.Outcome = models.LinkOutcomeBroken
		result.Error = fmt.Sprintf("HTTP status %d", resp.StatusCode)
	}

	return result
}

// resolveFallback settles a link the fast tier could not. ambiguousStatus is
// the status that triggered the escalation, zero for transport failures, and
// reason describes the fast-tier failure. The outcome is written into result;
// a fallback that cannot start reports broken instead of failing the call.
func (r *LinkResolver) resolveFallback(ctx context.Context, result *models.LinkCheckResult, ambiguousStatus int, reason string) {
	broken := func(fallbackReason string) {
		result.Outcome = models.LinkOutcomeBroken
		if ambiguousStatus > 0 {
			result.Error = fmt.Sprintf("HTTP status %d", ambiguousStatus)
		} else {
			result.Error = fallbackReason
		}
	}

	if r.config.DisableBrowserFallback || r.provider == nil {
		broken(reason)
		return
	}

	result.ResolvedVia = models.ResolvedViaBrowserFallback

	if r.limiter != nil {
		if err := r.limiter.CheckAdmission(); err != nil {
			r.logger.Warn().
				Str("url", result.URL).
				Err(err).
				Msg("Browser fallback rejected by resource limiter")
			broken(fmt.Sprintf("browser fallback unavailable: %v", err))
			return
		}
	}

	session, err := r.provider.OpenSession(ctx)
	if err != nil {
		broken(fmt.Sprintf("browser fallback unavailable: %v", err))
		return
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			r.logger.Warn().
				Str("url", result.URL).
				Err(closeErr).
				Msg("Failed to close fallback browser session")
		}
	}()

	nav, err := session.Navigate(ctx, result.URL, browser.WaitDOMContentLoaded, r.config.FallbackTimeout)
	if err != nil {
		broken(fmt.Sprintf("browser navigation failed: %v", err))
		return
	}

	// Any navigation the browser completes counts as working, whatever the
	// document status was. A page a real visitor can load is not a broken
	// link even when it rejected the fast client.
	result.Outcome = models.LinkOutcomeWorking
	if nav.StatusCode > 0 {
		result.HTTPStatus = nav.StatusCode
	}
	if nav.URL != "" && !sameURL(result.URL, nav.URL) {
		result.RedirectTarget = nav.URL
	}
}

// isAmbiguous reports whether the status is configured to escalate to the
// browser fallback rather than settle the link.
func (r *LinkResolver) isAmbiguous(status int) bool {
	for _, candidate := range r.config.AmbiguousStatusCodes {
		if candidate == status {
			return true
		}
	}
	return false
}

// transportReason extracts a readable cause from a fast-client failure.
func transportReason(err error) string {
	var netErr *errorwrapper.NetworkError
	if errors.As(err, &netErr) && netErr.Wrapped != nil {
		return fmt.Sprintf("request failed: %v", netErr.Wrapped)
	}
	return err.Error()
}

// sameURL reports whether two URL strings identify the same resource after
// normalization. Browsers report an empty path as "/", so a bare host and
// its trailing-slash form compare equal.
func sameURL(a, b string) bool {
	return canonicalURL(a) == canonicalURL(b)
}

func canonicalURL(raw string) string {
	normalized, err := urlhandler.NormalizeURL(raw)
	if err != nil {
		return strings.TrimSpace(raw)
	}
	parsed, err := url.Parse(normalized)
	if err != nil {
		return normalized
	}
	if parsed.Path == "" {
		parsed.Path = "/"
	}
	return parsed.String()
}
