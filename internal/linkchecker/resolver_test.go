package linkchecker

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagevet/pagevet/internal/browser"
	"github.com/pagevet/pagevet/internal/models"
)

type fakeSession struct {
	nav        *browser.NavigationResponse
	navErr     error
	closed     bool
	gotURL     string
	gotWait    browser.WaitCondition
	gotTimeout time.Duration
}

func (s *fakeSession) Navigate(_ context.Context, url string, wait browser.WaitCondition, timeout time.Duration) (*browser.NavigationResponse, error) {
	s.gotURL = url
	s.gotWait = wait
	s.gotTimeout = timeout
	if s.navErr != nil {
		return nil, s.navErr
	}
	return s.nav, nil
}

func (s *fakeSession) Evaluate(context.Context, string) (string, error) { return "", nil }

func (s *fakeSession) HTML(context.Context) (string, error) { return "", nil }

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

type fakeSessionProvider struct {
	session *fakeSession
	openErr error
	opens   int
	panics  bool
}

func (p *fakeSessionProvider) OpenSession(context.Context) (browser.Session, error) {
	p.opens++
	if p.panics {
		panic("session provider exploded")
	}
	if p.openErr != nil {
		return nil, p.openErr
	}
	return p.session, nil
}

type fakeLimiter struct {
	err    error
	checks int
}

func (l *fakeLimiter) CheckAdmission() error {
	l.checks++
	return l.err
}

func newTestResolver(t *testing.T, config Config, provider browser.SessionProvider, limiter AdmissionChecker) *LinkResolver {
	t.Helper()
	resolver, err := NewLinkResolver(config, provider, limiter, zerolog.Nop())
	require.NoError(t, err)
	return resolver
}

func statusServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)
	return server
}

// deadServerURL returns a URL nothing listens on, producing a connection
// refused on the fast tier.
func deadServerURL(t *testing.T) string {
	t.Helper()
	server := httptest.NewServer(http.NotFoundHandler())
	deadURL := server.URL
	server.Close()
	return deadURL
}

func TestResolveWorkingOnFastTier(t *testing.T) {
	server := statusServer(t, http.StatusOK)
	provider := &fakeSessionProvider{}
	resolver := newTestResolver(t, Config{}, provider, nil)

	result := resolver.Resolve(context.Background(), server.URL)

	assert.Equal(t, server.URL, result.URL)
	assert.Equal(t, models.LinkOutcomeWorking, result.Outcome)
	assert.Equal(t, models.ResolvedViaFastClient, result.ResolvedVia)
	assert.Equal(t, http.StatusOK, result.HTTPStatus)
	assert.Empty(t, result.RedirectTarget)
	assert.Empty(t, result.Error)
	assert.False(t, result.CheckedAt.IsZero())
	assert.Greater(t, result.Duration, 0.0)
	assert.Zero(t, provider.opens)
}

func TestResolveRecordsRedirectTarget(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/end", http.StatusFound)
	})
	mux.HandleFunc("/end", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	resolver := newTestResolver(t, Config{}, nil, nil)
	result := resolver.Resolve(context.Background(), server.URL+"/start")

	assert.Equal(t, models.LinkOutcomeWorking, result.Outcome)
	assert.Equal(t, models.ResolvedViaFastClient, result.ResolvedVia)
	assert.Equal(t, http.StatusOK, result.HTTPStatus)
	assert.Equal(t, server.URL+"/end", result.RedirectTarget)
}

func TestResolveTerminalStatusSkipsFallback(t *testing.T) {
	server := statusServer(t, http.StatusInternalServerError)
	provider := &fakeSessionProvider{session: &fakeSession{nav: &browser.NavigationResponse{StatusCode: http.StatusOK}}}
	resolver := newTestResolver(t, Config{}, provider, nil)

	result := resolver.Resolve(context.Background(), server.URL)

	assert.Equal(t, models.LinkOutcomeBroken, result.Outcome)
	assert.Equal(t, models.ResolvedViaFastClient, result.ResolvedVia)
	assert.Equal(t, "HTTP status 500", result.Error)
	assert.Equal(t, http.StatusInternalServerError, result.HTTPStatus)
	assert.Zero(t, provider.opens, "terminal statuses must not reach the browser")
}

func TestResolveAmbiguousStatusRecoveredByFallback(t *testing.T) {
	server := statusServer(t, http.StatusForbidden)
	session := &fakeSession{nav: &browser.NavigationResponse{StatusCode: http.StatusOK}}
	provider := &fakeSessionProvider{session: session}
	limiter := &fakeLimiter{}
	resolver := newTestResolver(t, Config{}, provider, limiter)

	result := resolver.Resolve(context.Background(), server.URL)

	assert.Equal(t, models.LinkOutcomeWorking, result.Outcome)
	assert.Equal(t, models.ResolvedViaBrowserFallback, result.ResolvedVia)
	assert.Equal(t, http.StatusOK, result.HTTPStatus)
	assert.Empty(t, result.Error)
	assert.Equal(t, 1, limiter.checks)
	assert.Equal(t, 1, provider.opens)
	assert.True(t, session.closed, "fallback sessions are closed whatever the outcome")
	assert.Equal(t, server.URL, session.gotURL)
	assert.Equal(t, browser.WaitDOMContentLoaded, session.gotWait)
	assert.Equal(t, 15*time.Second, session.gotTimeout)
}

func TestResolveFallbackFailurePreservesAmbiguousStatus(t *testing.T) {
	server := statusServer(t, http.StatusForbidden)
	session := &fakeSession{navErr: errors.New("net::ERR_CONNECTION_RESET")}
	provider := &fakeSessionProvider{session: session}
	resolver := newTestResolver(t, Config{}, provider, nil)

	result := resolver.Resolve(context.Background(), server.URL)

	assert.Equal(t, models.LinkOutcomeBroken, result.Outcome)
	assert.Equal(t, models.ResolvedViaBrowserFallback, result.ResolvedVia)
	assert.Equal(t, "HTTP status 403", result.Error)
	assert.Equal(t, http.StatusForbidden, result.HTTPStatus)
	assert.True(t, session.closed)
}

func TestResolveTransportFailureRecoveredByFallback(t *testing.T) {
	deadURL := deadServerURL(t)
	session := &fakeSession{nav: &browser.NavigationResponse{URL: deadURL, StatusCode: http.StatusOK}}
	provider := &fakeSessionProvider{session: session}
	resolver := newTestResolver(t, Config{}, provider, nil)

	result := resolver.Resolve(context.Background(), deadURL)

	assert.Equal(t, models.LinkOutcomeWorking, result.Outcome)
	assert.Equal(t, models.ResolvedViaBrowserFallback, result.ResolvedVia)
	assert.Equal(t, http.StatusOK, result.HTTPStatus)
	assert.Empty(t, result.RedirectTarget, "navigating to the requested URL is not a redirect")
}

func TestResolveBothTiersFailing(t *testing.T) {
	deadURL := deadServerURL(t)
	session := &fakeSession{navErr: errors.New("net::ERR_CONNECTION_REFUSED")}
	provider := &fakeSessionProvider{session: session}
	resolver := newTestResolver(t, Config{}, provider, nil)

	result := resolver.Resolve(context.Background(), deadURL)

	assert.Equal(t, models.LinkOutcomeBroken, result.Outcome)
	assert.Contains(t, result.Error, "browser navigation failed")
	assert.Contains(t, result.Error, "net::ERR_CONNECTION_REFUSED")
	assert.Zero(t, result.HTTPStatus)
	assert.True(t, session.closed)
}

func TestResolveFallbackRecordsRedirect(t *testing.T) {
	server := statusServer(t, http.StatusForbidden)
	session := &fakeSession{nav: &browser.NavigationResponse{
		URL:        "https://www.example.com/landing",
		StatusCode: http.StatusOK,
	}}
	provider := &fakeSessionProvider{session: session}
	resolver := newTestResolver(t, Config{}, provider, nil)

	result := resolver.Resolve(context.Background(), server.URL)

	assert.Equal(t, models.LinkOutcomeWorking, result.Outcome)
	assert.Equal(t, "https://www.example.com/landing", result.RedirectTarget)
}

func TestResolveFallbackTrailingSlashIsNotARedirect(t *testing.T) {
	server := statusServer(t, http.StatusForbidden)
	session := &fakeSession{nav: &browser.NavigationResponse{
		URL:        server.URL + "/",
		StatusCode: http.StatusOK,
	}}
	provider := &fakeSessionProvider{session: session}
	resolver := newTestResolver(t, Config{}, provider, nil)

	result := resolver.Resolve(context.Background(), server.URL)

	assert.Equal(t, models.LinkOutcomeWorking, result.Outcome)
	assert.Empty(t, result.RedirectTarget)
}

func TestResolveFallbackWithoutDocumentStatusKeepsFastStatus(t *testing.T) {
	server := statusServer(t, http.StatusForbidden)
	session := &fakeSession{nav: &browser.NavigationResponse{}}
	provider := &fakeSessionProvider{session: session}
	resolver := newTestResolver(t, Config{}, provider, nil)

	result := resolver.Resolve(context.Background(), server.URL)

	assert.Equal(t, models.LinkOutcomeWorking, result.Outcome)
	assert.Equal(t, http.StatusForbidden, result.HTTPStatus,
		"last observed status stays on the result when the browser saw no document response")
}

func TestResolveFallbackUnavailableStillReturnsResult(t *testing.T) {
	server := statusServer(t, http.StatusForbidden)
	provider := &fakeSessionProvider{openErr: errors.New("browser pool exhausted")}
	resolver := newTestResolver(t, Config{}, provider, nil)

	result := resolver.Resolve(context.Background(), server.URL)

	assert.Equal(t, models.LinkOutcomeBroken, result.Outcome)
	assert.Equal(t, "HTTP status 403", result.Error)
	assert.Equal(t, http.StatusForbidden, result.HTTPStatus)
}

func TestResolveFallbackUnavailableAfterTransportFailure(t *testing.T) {
	deadURL := deadServerURL(t)
	provider := &fakeSessionProvider{openErr: errors.New("browser pool exhausted")}
	resolver := newTestResolver(t, Config{}, provider, nil)

	result := resolver.Resolve(context.Background(), deadURL)

	assert.Equal(t, models.LinkOutcomeBroken, result.Outcome)
	assert.Contains(t, result.Error, "browser fallback unavailable")
	assert.Contains(t, result.Error, "browser pool exhausted")
}

func TestResolveAdmissionDenialBlocksFallback(t *testing.T) {
	server := statusServer(t, http.StatusForbidden)
	provider := &fakeSessionProvider{session: &fakeSession{nav: &browser.NavigationResponse{StatusCode: http.StatusOK}}}
	limiter := &fakeLimiter{err: errors.New("memory limit exceeded: current 2048MB > limit 1024MB")}
	resolver := newTestResolver(t, Config{}, provider, limiter)

	result := resolver.Resolve(context.Background(), server.URL)

	assert.Equal(t, models.LinkOutcomeBroken, result.Outcome)
	assert.Equal(t, "HTTP status 403", result.Error)
	assert.Equal(t, 1, limiter.checks)
	assert.Zero(t, provider.opens, "denied admission must not open a session")
}

func TestResolveDisabledFallback(t *testing.T) {
	server := statusServer(t, http.StatusForbidden)
	resolver := newTestResolver(t, Config{DisableBrowserFallback: true}, nil, nil)

	result := resolver.Resolve(context.Background(), server.URL)

	assert.Equal(t, models.LinkOutcomeBroken, result.Outcome)
	assert.Equal(t, models.ResolvedViaFastClient, result.ResolvedVia)
	assert.Equal(t, "HTTP status 403", result.Error)
	assert.Equal(t, http.StatusForbidden, result.HTTPStatus)
}

func TestResolveDisabledFallbackTransportFailure(t *testing.T) {
	deadURL := deadServerURL(t)
	resolver := newTestResolver(t, Config{DisableBrowserFallback: true}, nil, nil)

	result := resolver.Resolve(context.Background(), deadURL)

	assert.Equal(t, models.LinkOutcomeBroken, result.Outcome)
	assert.Equal(t, models.ResolvedViaFastClient, result.ResolvedVia)
	assert.Contains(t, result.Error, "request failed")
	assert.Zero(t, result.HTTPStatus)
}

func TestResolveAmbiguousStatusesAreConfigurable(t *testing.T) {
	tooMany := statusServer(t, http.StatusTooManyRequests)
	forbidden := statusServer(t, http.StatusForbidden)
	session := &fakeSession{nav: &browser.NavigationResponse{StatusCode: http.StatusOK}}
	provider := &fakeSessionProvider{session: session}
	resolver := newTestResolver(t, Config{AmbiguousStatusCodes: []int{http.StatusTooManyRequests}}, provider, nil)

	escalated := resolver.Resolve(context.Background(), tooMany.URL)
	assert.Equal(t, models.LinkOutcomeWorking, escalated.Outcome)
	assert.Equal(t, models.ResolvedViaBrowserFallback, escalated.ResolvedVia)

	terminal := resolver.Resolve(context.Background(), forbidden.URL)
	assert.Equal(t, models.LinkOutcomeBroken, terminal.Outcome)
	assert.Equal(t, models.ResolvedViaFastClient, terminal.ResolvedVia)
	assert.Equal(t, "HTTP status 403", terminal.Error)
	assert.Equal(t, 1, provider.opens)
}

func TestResolveEmptyAmbiguousListDisablesEscalation(t *testing.T) {
	server := statusServer(t, http.StatusForbidden)
	provider := &fakeSessionProvider{}
	resolver := newTestResolver(t, Config{AmbiguousStatusCodes: []int{}}, provider, nil)

	result := resolver.Resolve(context.Background(), server.URL)

	assert.Equal(t, models.LinkOutcomeBroken, result.Outcome)
	assert.Equal(t, "HTTP status 403", result.Error)
	assert.Zero(t, provider.opens)
}

func TestResolveRecoversPanicIntoBrokenResult(t *testing.T) {
	server := statusServer(t, http.StatusForbidden)
	provider := &fakeSessionProvider{panics: true}
	resolver := newTestResolver(t, Config{}, provider, nil)

	var result models.LinkCheckResult
	require.NotPanics(t, func() {
		result = resolver.Resolve(context.Background(), server.URL)
	})

	assert.Equal(t, models.LinkOutcomeBroken, result.Outcome)
	assert.Contains(t, result.Error, "resolution panic")
	assert.Contains(t, result.Error, "session provider exploded")
	assert.Greater(t, result.Duration, 0.0)
}

func TestSameURL(t *testing.T) {
	assert.True(t, sameURL("https://example.com", "https://example.com/"))
	assert.True(t, sameURL("https://EXAMPLE.com/a", "https://example.com/a"))
	assert.True(t, sameURL("https://example.com/a#section", "https://example.com/a"))
	assert.False(t, sameURL("https://example.com/a", "https://example.com/b"))
	assert.False(t, sameURL("https://example.com", "http://example.com"))
}
