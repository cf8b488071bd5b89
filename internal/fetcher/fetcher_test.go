package fetcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagevet/pagevet/internal/browser"
)

type fakeSession struct {
	html        string
	htmlErr     error
	nav         *browser.NavigationResponse
	navErr      error
	evalResults []string
	evalErr     error
	closed      bool

	gotURL     string
	gotWait    browser.WaitCondition
	gotTimeout time.Duration
}

func (f *fakeSession) Navigate(ctx context.Context, url string, wait browser.WaitCondition, timeout time.Duration) (*browser.NavigationResponse, error) {
	f.gotURL = url
	f.gotWait = wait
	f.gotTimeout = timeout
	if f.navErr != nil {
		return nil, f.navErr
	}
	if f.nav != nil {
		return f.nav, nil
	}
	return &browser.NavigationResponse{URL: url, StatusCode: 200}, nil
}

func (f *fakeSession) Evaluate(ctx context.Context, js string) (string, error) {
	if f.evalErr != nil {
		return "", f.evalErr
	}
	if len(f.evalResults) == 0 {
		return "null", nil
	}
	next := f.evalResults[0]
	f.evalResults = f.evalResults[1:]
	return next, nil
}

func (f *fakeSession) HTML(ctx context.Context) (string, error) {
	return f.html, f.htmlErr
}

func (f *fakeSession) Close() error {
	f.closed = true
	return nil
}

type fakeProvider struct {
	session *fakeSession
	err     error
}

func (f *fakeProvider) OpenSession(ctx context.Context) (browser.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

const samplePageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<title>Acme Widgets</title>
<meta name="Description" content="Widgets for every need">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="twitter:card" content="summary">
<meta property="og:title" content="Acme Widgets Co">
<link rel="canonical" href="/widgets">
<link rel="icon" href="/favicon.ico">
<link rel="shortcut icon" href="/favicon.ico">
<script>console.log("inline");</script>
</head>
<body>
<h1>Widgets</h1>
<h2>Catalog</h2>
<h2>Contact</h2>
<img src="/img/hero.png" alt="Hero">
<img src="/img/decoration.png">
<form action="/login" method="post"><input type="password" name="pw"></form>
<form action="/search"><input type="text" name="q"></form>
</body>
</html>`

func TestFetchBuildsSnapshot(t *testing.T) {
	session := &fakeSession{
		html: samplePageHTML,
		nav:  &browser.NavigationResponse{URL: "https://example.com/home", StatusCode: 200},
		evalResults: []string{
			`{"sampled":120,"too_small":3,"min_px":11.5}`,
			`{"sampled":40,"too_small":2}`,
		},
	}
	pf := NewPageFetcher(&fakeProvider{session: session}, DefaultConfig(), zerolog.Nop())

	snapshot, err := pf.Fetch(context.Background(), "https://example.com")
	require.NoError(t, err)
	require.NotNil(t, snapshot)

	assert.Equal(t, "https://example.com", snapshot.RequestedURL)
	assert.Equal(t, "https://example.com/home", snapshot.URL)
	assert.Equal(t, "Acme Widgets", snapshot.Title)
	assert.Equal(t, "en", snapshot.Lang)
	assert.Equal(t, "HTML 5", snapshot.HTMLVersion)

	assert.Equal(t, []string{"Widgets"}, snapshot.Headings["h1"])
	assert.Equal(t, []string{"Catalog", "Contact"}, snapshot.Headings["h2"])

	assert.Equal(t, "Widgets for every need", snapshot.MetaContent("description"))
	assert.Equal(t, "width=device-width, initial-scale=1", snapshot.Viewport)
	assert.Equal(t, "Acme Widgets Co", snapshot.OpenGraph["og:title"])
	assert.Equal(t, "summary", snapshot.TwitterCard["twitter:card"])

	assert.Equal(t, "https://example.com/widgets", snapshot.CanonicalURL)
	assert.Equal(t, []string{"https://example.com/favicon.ico"}, snapshot.Favicons)

	require.Len(t, snapshot.Images, 2)
	assert.Equal(t, "https://example.com/img/hero.png", snapshot.Images[0].Src)
	assert.Equal(t, "Hero", snapshot.Images[0].Alt)
	assert.Empty(t, snapshot.Images[1].Alt)

	require.Len(t, snapshot.Forms, 2)
	assert.Equal(t, "https://example.com/login", snapshot.Forms[0].Action)
	assert.Equal(t, "POST", snapshot.Forms[0].Method)
	assert.True(t, snapshot.Forms[0].HasPasswordField)
	assert.False(t, snapshot.Forms[1].HasPasswordField)

	require.Len(t, snapshot.InlineScripts, 1)
	assert.Contains(t, snapshot.InlineScripts[0], "console.log")

	require.NotNil(t, snapshot.FontSample)
	assert.Equal(t, 120, snapshot.FontSample.Sampled)
	assert.Equal(t, 3, snapshot.FontSample.TooSmall)
	assert.InDelta(t, 11.5, snapshot.FontSample.MinPx, 0.001)

	require.NotNil(t, snapshot.TapTargetSample)
	assert.Equal(t, 40, snapshot.TapTargetSample.Sampled)
	assert.Equal(t, 2, snapshot.TapTargetSample.TooSmall)

	assert.False(t, snapshot.FetchedAt.IsZero())
	assert.True(t, session.closed)
	assert.Equal(t, browser.WaitNetworkIdle, session.gotWait)
	assert.Equal(t, 30*time.Second, session.gotTimeout)
}

func TestFetchNavigationFailure(t *testing.T) {
	session := &fakeSession{navErr: errors.New("net::ERR_NAME_NOT_RESOLVED")}
	pf := NewPageFetcher(&fakeProvider{session: session}, DefaultConfig(), zerolog.Nop())

	_, err := pf.Fetch(context.Background(), "https://nosuchhost.example")
	require.Error(t, err)
	assert.True(t, session.closed)
}

func TestFetchProviderFailure(t *testing.T) {
	pf := NewPageFetcher(&fakeProvider{err: errors.New("pool exhausted")}, DefaultConfig(), zerolog.Nop())

	_, err := pf.Fetch(context.Background(), "https://example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open browser session")
}

func TestFetchSamplingFailureIsNonFatal(t *testing.T) {
	session := &fakeSession{
		html:    "<html><head><title>t</title></head><body></body></html>",
		evalErr: errors.New("evaluation blocked"),
	}
	pf := NewPageFetcher(&fakeProvider{session: session}, DefaultConfig(), zerolog.Nop())

	snapshot, err := pf.Fetch(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.Nil(t, snapshot.FontSample)
	assert.Nil(t, snapshot.TapTargetSample)
}

func TestFetchSkipsSamplingWhenDisabled(t *testing.T) {
	session := &fakeSession{
		html:        "<html><head><title>t</title></head><body></body></html>",
		evalResults: []string{`{"sampled":10,"too_small":1}`},
	}
	cfg := DefaultConfig()
	cfg.CollectRenderMetrics = false
	pf := NewPageFetcher(&fakeProvider{session: session}, cfg, zerolog.Nop())

	snapshot, err := pf.Fetch(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.Nil(t, snapshot.FontSample)
	assert.Len(t, session.evalResults, 1, "evaluate should not have been called")
}
