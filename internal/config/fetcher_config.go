package config

// FetcherConfig controls how the inspected page itself is loaded.
type FetcherConfig struct {
	TimeoutSecs          int     `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"omitempty,min=1"`
	WaitCondition        string  `json:"wait_condition,omitempty" yaml:"wait_condition,omitempty" validate:"omitempty,waitcondition"`
	IncludeInlineScripts bool    `json:"include_inline_scripts,omitempty" yaml:"include_inline_scripts,omitempty"`
	CollectRenderMetrics bool    `json:"collect_render_metrics,omitempty" yaml:"collect_render_metrics,omitempty"`
	FontSizeThresholdPx  float64 `json:"font_size_threshold_px,omitempty" yaml:"font_size_threshold_px,omitempty" validate:"omitempty,gt=0"`
	TapTargetMinPx       float64 `json:"tap_target_min_px,omitempty" yaml:"tap_target_min_px,omitempty" validate:"omitempty,gt=0"`
}

// NewDefaultFetcherConfig creates default fetcher configuration.
func NewDefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		TimeoutSecs:          30,
		WaitCondition:        "network-idle",
		IncludeInlineScripts: true,
		CollectRenderMetrics: true,
		FontSizeThresholdPx:  12,
		TapTargetMinPx:       48,
	}
}
