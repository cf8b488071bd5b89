package config

// ReporterConfig controls report rendering.
type ReporterConfig struct {
	// Format selects the stdout rendering: "console" or "json".
	Format string `json:"format,omitempty" yaml:"format,omitempty" validate:"omitempty,reportformat"`
	// OutputFile writes the JSON report document to a file in addition to
	// the stdout rendering.
	OutputFile string `json:"output_file,omitempty" yaml:"output_file,omitempty"`
}

// NewDefaultReporterConfig creates default reporter configuration.
func NewDefaultReporterConfig() ReporterConfig {
	return ReporterConfig{
		Format: "console",
	}
}
