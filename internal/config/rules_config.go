package config

// RulesConfig holds the rule catalog thresholds.
type RulesConfig struct {
	TitleMinLength           int     `json:"title_min_length,omitempty" yaml:"title_min_length,omitempty" validate:"omitempty,min=1"`
	TitleMaxLength           int     `json:"title_max_length,omitempty" yaml:"title_max_length,omitempty" validate:"omitempty,min=1"`
	DescriptionMinLength     int     `json:"description_min_length,omitempty" yaml:"description_min_length,omitempty" validate:"omitempty,min=1"`
	DescriptionMaxLength     int     `json:"description_max_length,omitempty" yaml:"description_max_length,omitempty" validate:"omitempty,min=1"`
	AltTextThreshold         float64 `json:"alt_text_threshold,omitempty" yaml:"alt_text_threshold,omitempty" validate:"omitempty,gt=0,lte=1"`
	TitleSimilarityThreshold float64 `json:"title_similarity_threshold,omitempty" yaml:"title_similarity_threshold,omitempty" validate:"omitempty,gt=0,lte=1"`
	FontSizeThreshold        float64 `json:"font_size_threshold,omitempty" yaml:"font_size_threshold,omitempty" validate:"omitempty,gt=0,lte=1"`
	TapTargetThreshold       float64 `json:"tap_target_threshold,omitempty" yaml:"tap_target_threshold,omitempty" validate:"omitempty,gt=0,lte=1"`
}

// NewDefaultRulesConfig creates default rule thresholds.
func NewDefaultRulesConfig() RulesConfig {
	return RulesConfig{
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
