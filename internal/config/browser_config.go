package config

// BrowserConfig controls the headless browser used for page rendering and
// fallback link checks.
type BrowserConfig struct {
	Enabled           bool     `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	ChromePath        string   `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"`
	UserDataDir       string   `json:"user_data_dir,omitempty" yaml:"user_data_dir,omitempty"`
	PoolSize          int      `json:"pool_size,omitempty" yaml:"pool_size,omitempty" validate:"omitempty,min=1,max=16"`
	WindowWidth       int      `json:"window_width,omitempty" yaml:"window_width,omitempty" validate:"omitempty,min=100"`
	WindowHeight      int      `json:"window_height,omitempty" yaml:"window_height,omitempty" validate:"omitempty,min=100"`
	PageLoadTimeout   int      `json:"page_load_timeout_secs,omitempty" yaml:"page_load_timeout_secs,omitempty" validate:"omitempty,min=1"`
	DisableImages     bool     `json:"disable_images,omitempty" yaml:"disable_images,omitempty"`
	IgnoreHTTPSErrors bool     `json:"ignore_https_errors,omitempty" yaml:"ignore_https_errors,omitempty"`
	UserAgent         string   `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	BrowserArgs       []string `json:"browser_args,omitempty" yaml:"browser_args,omitempty"`
}

// NewDefaultBrowserConfig creates default browser configuration.
func NewDefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		Enabled:           true,
		PoolSize:          2,
		WindowWidth:       1920,
		WindowHeight:      1080,
		PageLoadTimeout:   30,
		DisableImages:     true,
		IgnoreHTTPSErrors: true,
	}
}
