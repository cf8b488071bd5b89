package config

// ProbeConfig controls the direct HTTP probe of the inspection target.
type ProbeConfig struct {
	Enabled         bool              `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Method          string            `json:"method,omitempty" yaml:"method,omitempty" validate:"omitempty,oneof=GET HEAD POST"`
	TimeoutSecs     int               `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"omitempty,min=1"`
	Retries         int               `json:"retries,omitempty" yaml:"retries,omitempty" validate:"omitempty,min=0"`
	Threads         int               `json:"threads,omitempty" yaml:"threads,omitempty" validate:"omitempty,min=1"`
	FollowRedirects bool              `json:"follow_redirects,omitempty" yaml:"follow_redirects,omitempty"`
	TechDetect      bool              `json:"tech_detect,omitempty" yaml:"tech_detect,omitempty"`
	ExtractBody     bool              `json:"extract_body,omitempty" yaml:"extract_body,omitempty"`
	RateLimit       int               `json:"rate_limit,omitempty" yaml:"rate_limit,omitempty" validate:"omitempty,min=0"`
	CustomHeaders   map[string]string `json:"custom_headers,omitempty" yaml:"custom_headers,omitempty"`
}

// NewDefaultProbeConfig creates default probe configuration.
func NewDefaultProbeConfig() ProbeConfig {
	return ProbeConfig{
		Enabled:         true,
		Method:          "GET",
		TimeoutSecs:     10,
		Retries:         1,
		Threads:         1,
		FollowRedirects: true,
		TechDetect:      true,
	}
}
