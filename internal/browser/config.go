package browser

import "time"

// Config holds headless browser settings
type Config struct {
	Enabled           bool
	ChromePath        string
	UserDataDir       string
	WindowWidth       int
	WindowHeight      int
	PoolSize          int
	PageLoadTimeout   time.Duration
	WaitAfterLoad     time.Duration
	DisableImages     bool
	IgnoreHTTPSErrors bool
	UserAgent         string
	BrowserArgs       []string
}

// DefaultConfig returns the default browser configuration
func DefaultConfig() Config {
	return Config{
		Enabled:           true,
		WindowWidth:       1920,
		WindowHeight:      1080,
		PoolSize:          2,
		PageLoadTimeout:   30 * time.Second,
		WaitAfterLoad:     500 * time.Millisecond,
		DisableImages:     true,
		IgnoreHTTPSErrors: true,
		UserAgent:         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	}
}
