package extractor

// Config holds link extractor settings
type Config struct {
	// EnableScriptAnalysis runs jsluice over inline script bodies as an
	// additional discovery pass
	EnableScriptAnalysis bool
	// CustomRegexes are additional patterns applied to the raw HTML; every
	// match is treated as a link candidate
	CustomRegexes []string
	// MaxLinksPerPage caps the number of distinct links kept, 0 means no cap
	MaxLinksPerPage int
}

// DefaultConfig returns the default extractor configuration
func DefaultConfig() Config {
	return Config{
		EnableScriptAnalysis: false,
		MaxLinksPerPage:      0,
	}
}
