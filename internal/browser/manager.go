package browser

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog"

	"github.com/pagevet/pagevet/internal/common/errorwrapper"
)

// poolAcquireTimeout bounds how long OpenSession waits for a free browser
const poolAcquireTimeout = 10 * time.Second

// documentResponseGrace bounds how long Navigate waits for the document
// response event after the wait condition has been met
const documentResponseGrace = 500 * time.Millisecond

// Manager owns a pool of headless browser instances and hands out
// page-scoped sessions
type Manager struct {
	config    Config
	logger    zerolog.Logger
	pool      chan *rod.Browser
	launcher  *launcher.Launcher
	mutex     sync.Mutex
	isRunning bool
}

// NewManager creates a browser manager from the given configuration
func NewManager(cfg Config, logger zerolog.Logger) *Manager {
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = DefaultConfig().PoolSize
	}
	if cfg.PageLoadTimeout <= 0 {
		cfg.PageLoadTimeout = DefaultConfig().PageLoadTimeout
	}
	return &Manager{
		config: cfg,
		logger: logger.With().Str("component", "BrowserManager").Logger(),
		pool:   make(chan *rod.Browser, cfg.PoolSize),
	}
}

// Start launches the browser process and fills the pool
func (m *Manager) Start() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.isRunning {
		return nil
	}

	if !m.config.Enabled {
		m.logger.Info().Msg("Headless browser is disabled in config")
		return nil
	}

	l := launcher.New()

	if m.config.ChromePath != "" {
		l = l.Bin(m.config.ChromePath)
	}

	if m.config.UserDataDir != "" {
		l = l.UserDataDir(m.config.UserDataDir)
	}

	l = l.
		Set("no-sandbox").
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("disable-web-security").
		Set("disable-features", "VizDisplayCompositor").
		Set("no-first-run").
		Set("disable-default-apps").
		Set("disable-sync")

	if m.config.DisableImages {
		l = l.Set("blink-settings", "imagesEnabled=false")
	}

	for _, arg := range m.config.BrowserArgs {
		name, value, hasValue := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		if name == "" {
			continue
		}
		if hasValue {
			l = l.Set(flags.Flag(name), value)
		} else {
			l = l.Set(flags.Flag(name))
		}
	}

	controlURL, err := l.Launch()
	if err != nil {
		return errorwrapper.WrapError(err, "failed to launch browser")
	}

	m.launcher = l

	connected := 0
	for i := 0; i < m.config.PoolSize; i++ {
		b := rod.New().ControlURL(controlURL)
		if err := b.Connect(); err != nil {
			m.logger.Error().Err(err).Int("browser_index", i).Msg("Failed to connect browser")
			continue
		}
		if m.config.IgnoreHTTPSErrors {
			if err := b.IgnoreCertErrors(true); err != nil {
				m.logger.Warn().Err(err).Msg("Failed to ignore certificate errors")
			}
		}
		m.pool <- b
		connected++
	}

	if connected == 0 {
		m.launcher.Cleanup()
		m.launcher = nil
		return errorwrapper.NewError("no browser instance could be connected")
	}

	m.isRunning = true
	m.logger.Info().Int("pool_size", connected).Msg("Browser manager started")
	return nil
}

// Stop closes all browser instances and the launcher
func (m *Manager) Stop() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if !m.isRunning {
		return
	}

	close(m.pool)
	for b := range m.pool {
		if b != nil {
			if err := b.Close(); err != nil {
				m.logger.Warn().Err(err).Msg("Failed to close browser")
			}
		}
	}

	if m.launcher != nil {
		m.launcher.Cleanup()
	}

	m.isRunning = false
	m.logger.Info().Msg("Browser manager stopped")
}

// IsEnabled returns whether the headless browser is enabled
func (m *Manager) IsEnabled() bool {
	return m.config.Enabled
}

// OpenSession acquires a browser from the pool and opens a fresh page on it.
// The caller must Close the session to return the browser.
func (m *Manager) OpenSession(ctx context.Context) (Session, error) {
	m.mutex.Lock()
	running := m.isRunning
	m.mutex.Unlock()

	if !m.config.Enabled || !running {
		return nil, errorwrapper.ErrBrowserUnavailable
	}

	var b *rod.Browser
	select {
	case b = <-m.pool:
		if b == nil {
			return nil, errorwrapper.ErrBrowserUnavailable
		}
	case <-time.After(poolAcquireTimeout):
		return nil, errorwrapper.WrapError(errorwrapper.ErrBrowserUnavailable, "timeout waiting for browser from pool")
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		m.returnBrowser(b)
		return nil, errorwrapper.WrapError(err, "failed to create page")
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:  m.config.WindowWidth,
		Height: m.config.WindowHeight,
	}); err != nil {
		m.logger.Warn().Err(err).Msg("Failed to set viewport")
	}

	if m.config.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent: m.config.UserAgent,
		}); err != nil {
			m.logger.Warn().Err(err).Msg("Failed to set user agent")
		}
	}

	return &rodSession{
		manager:       m,
		browser:       b,
		page:          page,
		waitAfterLoad: m.config.WaitAfterLoad,
		logger:        m.logger,
	}, nil
}

// returnBrowser puts a browser back into the pool, closing it when the pool
// is already full
func (m *Manager) returnBrowser(b *rod.Browser) {
	if b == nil {
		return
	}

	m.mutex.Lock()
	running := m.isRunning
	m.mutex.Unlock()

	if !running {
		_ = b.Close()
		return
	}

	select {
	case m.pool <- b:
	default:
		_ = b.Close()
	}
}

// rodSession is a Session backed by a single rod page
type rodSession struct {
	manager       *Manager
	browser       *rod.Browser
	page          *rod.Page
	waitAfterLoad time.Duration
	logger        zerolog.Logger
	closeOnce     sync.Once
}

// Navigate loads the URL and blocks until the wait condition is met. The
// status code of the document response is captured from the network events
// fired during the navigation.
func (s *rodSession) Navigate(ctx context.Context, targetURL string, wait WaitCondition, timeout time.Duration) (*NavigationResponse, error) {
	page := s.page.Context(ctx).Timeout(timeout)
	defer page.CancelTimeout()

	var (
		docStatus int
		docMime   string
	)
	resolved := make(chan struct{})
	waitDoc := page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type == proto.NetworkResourceTypeDocument && e.Response != nil {
			docStatus = e.Response.Status
			docMime = e.Response.MIMEType
			return true
		}
		return false
	})
	go func() {
		waitDoc()
		close(resolved)
	}()

	// Event waits must be armed before the navigation starts, otherwise a
	// fast page can fire the event before the subscription exists.
	waitReady, err := s.prepareWait(page, wait)
	if err != nil {
		return nil, err
	}

	if err := page.Navigate(targetURL); err != nil {
		return nil, errorwrapper.NewNavigationError(targetURL, "navigation failed", err)
	}

	if err := waitReady(); err != nil {
		return nil, errorwrapper.NewNavigationError(targetURL, "wait for "+string(wait)+" failed", err)
	}

	if s.waitAfterLoad > 0 {
		select {
		case <-time.After(s.waitAfterLoad):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	// The document response normally arrives well before the wait condition
	// fires. Pages restored from cache may never emit one; give up after a
	// short grace period and report status 0.
	select {
	case <-resolved:
	case <-time.After(documentResponseGrace):
	case <-ctx.Done():
	}

	finalURL := targetURL
	if info, err := page.Info(); err == nil && info != nil && info.URL != "" {
		finalURL = info.URL
	}

	resp := &NavigationResponse{URL: finalURL}
	select {
	case <-resolved:
		resp.StatusCode = docStatus
		resp.MimeType = docMime
	default:
	}
	return resp, nil
}

// prepareWait arms the wait for the given condition and returns a function
// that blocks until the condition is met
func (s *rodSession) prepareWait(page *rod.Page, wait WaitCondition) (func() error, error) {
	switch wait {
	case WaitDOMContentLoaded:
		waitEvent := page.WaitEvent(&proto.PageDomContentEventFired{})
		return func() error {
			waitEvent()
			return nil
		}, nil
	case WaitNetworkIdle:
		return func() error {
			if err := page.WaitLoad(); err != nil {
				return err
			}
			page.WaitRequestIdle(300*time.Millisecond, nil, nil, nil)()
			return nil
		}, nil
	case WaitLoad, "":
		return page.WaitLoad, nil
	default:
		return nil, errorwrapper.NewError("unknown wait condition: %s", string(wait))
	}
}

// Evaluate runs a JavaScript function expression and returns its result as JSON
func (s *rodSession) Evaluate(ctx context.Context, js string) (string, error) {
	obj, err := s.page.Context(ctx).Eval(js)
	if err != nil {
		return "", errorwrapper.WrapError(err, "failed to evaluate script")
	}
	return obj.Value.JSON("", ""), nil
}

// HTML returns the serialized DOM of the current page
func (s *rodSession) HTML(ctx context.Context) (string, error) {
	html, err := s.page.Context(ctx).HTML()
	if err != nil {
		return "", errorwrapper.WrapError(err, "failed to get page HTML")
	}
	return html, nil
}

// Close closes the page and returns the browser to the pool
func (s *rodSession) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.page.Close()
		s.manager.returnBrowser(s.browser)
	})
	return err
}
