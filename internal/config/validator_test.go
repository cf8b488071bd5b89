package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfigDefaults(t *testing.T) {
	assert.NoError(t, ValidateConfig(NewDefaultGlobalConfig()))
}

func TestValidateConfigBadLogLevel(t *testing.T) {
	cfg := NewDefaultGlobalConfig()
	cfg.LogConfig.LogLevel = "verbose"

	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LogConfig.LogLevel")
	assert.Contains(t, err.Error(), "loglevel")
}

func TestValidateConfigThresholdOutOfRange(t *testing.T) {
	cfg := NewDefaultGlobalConfig()
	cfg.RulesConfig.AltTextThreshold = 1.5

	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RulesConfig.AltTextThreshold")
}

func TestValidateConfigBadStatusCode(t *testing.T) {
	cfg := NewDefaultGlobalConfig()
	cfg.LinkCheckerConfig.AmbiguousStatusCodes = []int{99}

	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AmbiguousStatusCodes")
}

func TestValidateConfigBadReportFormat(t *testing.T) {
	cfg := NewDefaultGlobalConfig()
	cfg.ReporterConfig.Format = "xml"

	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reportformat")
}

func TestValidateConfigCollectsAllViolations(t *testing.T) {
	cfg := NewDefaultGlobalConfig()
	cfg.LogConfig.LogFormat = "xml"
	cfg.BrowserConfig.PoolSize = 64

	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LogConfig.LogFormat")
	assert.Contains(t, err.Error(), "BrowserConfig.PoolSize")
}
