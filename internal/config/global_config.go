// Package config defines the application configuration: one GlobalConfig
// with a section per component, loaded from YAML or JSON and validated
// before anything else starts. Sections are plain data; the scanner maps
// them onto component configs when it assembles the pipeline.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pagevet/pagevet/internal/common/errorwrapper"
)

// GlobalConfig contains all configuration sections for the application.
type GlobalConfig struct {
	LogConfig             LogConfig             `json:"log_config,omitempty" yaml:"log_config,omitempty"`
	HTTPClientConfig      HTTPClientConfig      `json:"http_client_config,omitempty" yaml:"http_client_config,omitempty"`
	BrowserConfig         BrowserConfig         `json:"browser_config,omitempty" yaml:"browser_config,omitempty"`
	ResourceLimiterConfig ResourceLimiterConfig `json:"resource_limiter_config,omitempty" yaml:"resource_limiter_config,omitempty"`
	FetcherConfig         FetcherConfig         `json:"fetcher_config,omitempty" yaml:"fetcher_config,omitempty"`
	ExtractorConfig       ExtractorConfig       `json:"extractor_config,omitempty" yaml:"extractor_config,omitempty"`
	LinkCheckerConfig     LinkCheckerConfig     `json:"link_checker_config,omitempty" yaml:"link_checker_config,omitempty"`
	RulesConfig           RulesConfig           `json:"rules_config,omitempty" yaml:"rules_config,omitempty"`
	ProbeConfig           ProbeConfig           `json:"probe_config,omitempty" yaml:"probe_config,omitempty"`
	ReporterConfig        ReporterConfig        `json:"reporter_config,omitempty" yaml:"reporter_config,omitempty"`
}

// NewDefaultGlobalConfig creates a GlobalConfig with default values for
// every section.
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		LogConfig:             NewDefaultLogConfig(),
		HTTPClientConfig:      NewDefaultHTTPClientConfig(),
		BrowserConfig:         NewDefaultBrowserConfig(),
		ResourceLimiterConfig: NewDefaultResourceLimiterConfig(),
		FetcherConfig:         NewDefaultFetcherConfig(),
		ExtractorConfig:       NewDefaultExtractorConfig(),
		LinkCheckerConfig:     NewDefaultLinkCheckerConfig(),
		RulesConfig:           NewDefaultRulesConfig(),
		ProbeConfig:           NewDefaultProbeConfig(),
		ReporterConfig:        NewDefaultReporterConfig(),
	}
}

// LoadGlobalConfig loads the configuration from the given path, or from the
// default locations when the path is empty. A missing config file is not an
// error; the defaults apply. File values override defaults section by
// section, so a partial file is fine.
func LoadGlobalConfig(providedPath string) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		if providedPath != "" {
			return nil, errorwrapper.NewValidationError("config_file", providedPath, "config file does not exist")
		}
		return cfg, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to read config file")
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseConfigContent parses the config content based on file extension.
// YAML is assumed for .yaml/.yml, JSON otherwise.
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	if isYAMLFile(filepath.Ext(filePath)) {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return errorwrapper.NewError("failed to unmarshal YAML from '%s': %v", filePath, err)
		}
		return nil
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return errorwrapper.NewError("failed to unmarshal JSON from '%s': %v", filePath, err)
	}
	return nil
}

func isYAMLFile(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}
