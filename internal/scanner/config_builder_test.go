package scanner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pagevet/pagevet/internal/browser"
	"github.com/pagevet/pagevet/internal/config"
	"github.com/pagevet/pagevet/internal/reporter"
)

func TestBuildFetcherConfigConvertsUnits(t *testing.T) {
	cfg := config.NewDefaultGlobalConfig()
	cfg.FetcherConfig.TimeoutSecs = 45
	cfg.FetcherConfig.WaitCondition = "domcontentloaded"

	built := NewConfigBuilder(cfg).BuildFetcherConfig()

	assert.Equal(t, 45*time.Second, built.Timeout)
	assert.Equal(t, browser.WaitDOMContentLoaded, built.WaitCondition)
	assert.True(t, built.IncludeInlineScripts)
	assert.Equal(t, 12.0, built.FontSizeThresholdPx)
}

func TestWaitConditionMapping(t *testing.T) {
	assert.Equal(t, browser.WaitLoad, waitConditionFromString("load"))
	assert.Equal(t, browser.WaitDOMContentLoaded, waitConditionFromString("domcontentloaded"))
	assert.Equal(t, browser.WaitNetworkIdle, waitConditionFromString("network-idle"))
	assert.Equal(t, browser.WaitNetworkIdle, waitConditionFromString(""))
}

func TestBuildLinkCheckerConfigConvertsUnits(t *testing.T) {
	cfg := config.NewDefaultGlobalConfig()
	cfg.LinkCheckerConfig.InterBatchDelayMs = 250
	cfg.LinkCheckerConfig.FastTimeoutSecs = 5

	built := NewConfigBuilder(cfg).BuildLinkCheckerConfig()

	assert.Equal(t, 250*time.Millisecond, built.InterBatchDelay)
	assert.Equal(t, 5*time.Second, built.FastTimeout)
	assert.Equal(t, 15*time.Second, built.FallbackTimeout)
	assert.Equal(t, []int{400, 403}, built.AmbiguousStatusCodes)
}

func TestBuildHTTPClientConfigOverlaysDefaults(t *testing.T) {
	cfg := config.NewDefaultGlobalConfig()
	cfg.HTTPClientConfig.CustomHeaders = map[string]string{"X-Inspection": "pagevet"}

	built := NewConfigBuilder(cfg).BuildHTTPClientConfig()

	// Unset section values leave the browser-like client defaults in place.
	assert.Contains(t, built.UserAgent, "Mozilla/5.0")
	assert.Equal(t, "pagevet", built.CustomHeaders["X-Inspection"])
	assert.Equal(t, "*/*", built.CustomHeaders["Accept"])
	assert.Equal(t, 10*time.Second, built.Timeout)
	assert.True(t, built.FollowRedirects)
}

func TestBuildHTTPClientConfigSectionOverrides(t *testing.T) {
	cfg := config.NewDefaultGlobalConfig()
	cfg.HTTPClientConfig.TimeoutSecs = 3
	cfg.HTTPClientConfig.UserAgent = "pagevet/1.0"

	built := NewConfigBuilder(cfg).BuildHTTPClientConfig()

	assert.Equal(t, 3*time.Second, built.Timeout)
	assert.Equal(t, "pagevet/1.0", built.UserAgent)
}

func TestBuildBrowserConfigConvertsTimeout(t *testing.T) {
	cfg := config.NewDefaultGlobalConfig()
	cfg.BrowserConfig.PageLoadTimeout = 20

	built := NewConfigBuilder(cfg).BuildBrowserConfig()

	assert.Equal(t, 20*time.Second, built.PageLoadTimeout)
	assert.True(t, built.Enabled)
	assert.Equal(t, 2, built.PoolSize)
}

func TestBuildReporterConfigParsesFormat(t *testing.T) {
	cfg := config.NewDefaultGlobalConfig()
	cfg.ReporterConfig.Format = "json"
	cfg.ReporterConfig.OutputFile = "out/report.json"

	built := NewConfigBuilder(cfg).BuildReporterConfig()

	assert.Equal(t, reporter.FormatJSON, built.Format)
	assert.Equal(t, "out/report.json", built.OutputFile)
}
