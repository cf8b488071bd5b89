package config

// ExtractorConfig controls link extraction from the page snapshot.
type ExtractorConfig struct {
	// EnableScriptAnalysis runs the script mining pass over inline script
	// bodies as an additional discovery source.
	EnableScriptAnalysis bool     `json:"enable_script_analysis,omitempty" yaml:"enable_script_analysis,omitempty"`
	CustomRegexes        []string `json:"custom_regexes,omitempty" yaml:"custom_regexes,omitempty" validate:"omitempty,dive,required"`
	MaxLinksPerPage      int      `json:"max_links_per_page,omitempty" yaml:"max_links_per_page,omitempty" validate:"omitempty,min=0"`
}

// NewDefaultExtractorConfig creates default extractor configuration.
func NewDefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		EnableScriptAnalysis: false,
		MaxLinksPerPage:      0,
	}
}
