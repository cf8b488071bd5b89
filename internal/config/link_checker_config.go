package config

// LinkCheckerConfig controls link verification: batching, the fast tier,
// and the browser fallback tier.
type LinkCheckerConfig struct {
	BatchSize              int   `json:"batch_size,omitempty" yaml:"batch_size,omitempty" validate:"omitempty,min=1"`
	InterBatchDelayMs      int   `json:"inter_batch_delay_ms,omitempty" yaml:"inter_batch_delay_ms,omitempty" validate:"omitempty,min=0"`
	FastTimeoutSecs        int   `json:"fast_timeout_secs,omitempty" yaml:"fast_timeout_secs,omitempty" validate:"omitempty,min=1"`
	FallbackTimeoutSecs    int   `json:"fallback_timeout_secs,omitempty" yaml:"fallback_timeout_secs,omitempty" validate:"omitempty,min=1"`
	MaxRedirects           int   `json:"max_redirects,omitempty" yaml:"max_redirects,omitempty" validate:"omitempty,min=0"`
	AmbiguousStatusCodes   []int `json:"ambiguous_status_codes,omitempty" yaml:"ambiguous_status_codes,omitempty" validate:"omitempty,dive,min=100,max=599"`
	DisableBrowserFallback bool  `json:"disable_browser_fallback,omitempty" yaml:"disable_browser_fallback,omitempty"`
}

// NewDefaultLinkCheckerConfig creates default link checker configuration.
func NewDefaultLinkCheckerConfig() LinkCheckerConfig {
	return LinkCheckerConfig{
		BatchSize:            5,
		InterBatchDelayMs:    1000,
		FastTimeoutSecs:      10,
		FallbackTimeoutSecs:  15,
		MaxRedirects:         5,
		AmbiguousStatusCodes: []int{400, 403},
	}
}
