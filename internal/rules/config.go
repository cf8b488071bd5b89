package rules

// Config holds the tunable thresholds of the rule catalog. Rules read their
// limits from here so inspection policy is data, not code.
type Config struct {
	// TitleMinLength and TitleMaxLength bound the page title length in
	// characters for the title length check.
	TitleMinLength int
	TitleMaxLength int
	// DescriptionMinLength and DescriptionMaxLength bound the meta
	// description length in characters.
	DescriptionMinLength int
	DescriptionMaxLength int
	// AltTextThreshold is the minimum fraction of images that must carry
	// alt text.
	AltTextThreshold float64
	// TitleSimilarityThreshold is the minimum similarity between the page
	// title and og:title before the two count as diverged.
	TitleSimilarityThreshold float64
	// FontSizeThreshold is the minimum fraction of sampled text nodes that
	// must render at a legible size.
	FontSizeThreshold float64
	// TapTargetThreshold is the minimum fraction of sampled tap targets
	// that must meet the minimum hit size.
	TapTargetThreshold float64
}

// DefaultConfig returns the catalog defaults.
func DefaultConfig() Config {
	return Config{
		TitleMinLength:           10,
		TitleMaxLength:           70,
		DescriptionMinLength:     50,
		DescriptionMaxLength:     160,
		AltTextThreshold:         0.9,
		TitleSimilarityThreshold: 0.6,
		FontSizeThreshold:        0.9,
		TapTargetThreshold:       0.8,
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.TitleMinLength <= 0 {
		c.TitleMinLength = defaults.TitleMinLength
	}
	if c.TitleMaxLength <= 0 {
		c.TitleMaxLength = defaults.TitleMaxLength
	}
	if c.DescriptionMinLength <= 0 {
		c.DescriptionMinLength = defaults.DescriptionMinLength
	}
	if c.DescriptionMaxLength <= 0 {
		c.DescriptionMaxLength = defaults.DescriptionMaxLength
	}
	if c.AltTextThreshold <= 0 {
		c.AltTextThreshold = defaults.AltTextThreshold
	}
	if c.TitleSimilarityThreshold <= 0 {
		c.TitleSimilarityThreshold = defaults.TitleSimilarityThreshold
	}
	if c.FontSizeThreshold <= 0 {
		c.FontSizeThreshold = defaults.FontSizeThreshold
	}
	if c.TapTargetThreshold <= 0 {
		c.TapTargetThreshold = defaults.TapTargetThreshold
	}
	return c
}
