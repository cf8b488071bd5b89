package scanner

import (
	"time"

	"github.com/pagevet/pagevet/internal/browser"
	"github.com/pagevet/pagevet/internal/config"
	"github.com/pagevet/pagevet/internal/extractor"
	"github.com/pagevet/pagevet/internal/fetcher"
	"github.com/pagevet/pagevet/internal/httpclient"
	"github.com/pagevet/pagevet/internal/linkchecker"
	"github.com/pagevet/pagevet/internal/probing"
	"github.com/pagevet/pagevet/internal/reporter"
	"github.com/pagevet/pagevet/internal/rslimiter"
	"github.com/pagevet/pagevet/internal/rules"
)

// ConfigBuilder maps the global configuration sections onto component
// configurations. The config package stays plain data; this is the one place
// that knows both sides of the mapping, including unit conversions.
type ConfigBuilder struct {
	global *config.GlobalConfig
}

// NewConfigBuilder creates a configuration builder over the global config.
func NewConfigBuilder(global *config.GlobalConfig) *ConfigBuilder {
	return &ConfigBuilder{global: global}
}

// BuildBrowserConfig creates the browser manager configuration.
func (cb *ConfigBuilder) BuildBrowserConfig() browser.Config {
	section := cb.global.BrowserConfig
	cfg := browser.DefaultConfig()
	cfg.Enabled = section.Enabled
	cfg.ChromePath = section.ChromePath
	cfg.UserDataDir = section.UserDataDir
	cfg.PoolSize = section.PoolSize
	cfg.WindowWidth = section.WindowWidth
	cfg.WindowHeight = section.WindowHeight
	cfg.PageLoadTimeout = time.Duration(section.PageLoadTimeout) * time.Second
	cfg.DisableImages = section.DisableImages
	cfg.IgnoreHTTPSErrors = section.IgnoreHTTPSErrors
	if section.UserAgent != "" {
		cfg.UserAgent = section.UserAgent
	}
	cfg.BrowserArgs = section.BrowserArgs
	return cfg
}

// BuildHTTPClientConfig creates the fast-tier HTTP client configuration. The
// section overlays the client defaults, so the browser-like header set and
// connection pool tuning survive unless overridden.
func (cb *ConfigBuilder) BuildHTTPClientConfig() httpclient.HTTPClientConfig {
	section := cb.global.HTTPClientConfig
	cfg := httpclient.DefaultHTTPClientConfig()
	if section.TimeoutSecs > 0 {
		cfg.Timeout = time.Duration(section.TimeoutSecs) * time.Second
	}
	cfg.FollowRedirects = section.FollowRedirects
	if section.MaxRedirects > 0 {
		cfg.MaxRedirects = section.MaxRedirects
	}
	if section.UserAgent != "" {
		cfg.UserAgent = section.UserAgent
	}
	cfg.InsecureSkipVerify = section.InsecureSkipVerify
	cfg.Proxy = section.Proxy
	for key, value := range section.CustomHeaders {
		if cfg.CustomHeaders == nil {
			cfg.CustomHeaders = make(map[string]string)
		}
		cfg.CustomHeaders[key] = value
	}
	return cfg
}

// BuildLimiterConfig creates the resource limiter configuration.
func (cb *ConfigBuilder) BuildLimiterConfig() rslimiter.ResourceLimiterConfig {
	section := cb.global.ResourceLimiterConfig
	return rslimiter.ResourceLimiterConfig{
		MaxMemoryMB:        section.MaxMemoryMB,
		MaxGoroutines:      section.MaxGoroutines,
		CheckInterval:      time.Duration(section.CheckIntervalSecs) * time.Second,
		MemoryThreshold:    section.MemoryThreshold,
		GoroutineWarning:   section.GoroutineWarning,
		SystemMemThreshold: section.SystemMemThreshold,
		CPUThreshold:       section.CPUThreshold,
		EnableAutoShutdown: section.EnableAutoShutdown,
	}
}

// BuildFetcherConfig creates the page fetcher configuration.
func (cb *ConfigBuilder) BuildFetcherConfig() fetcher.Config {
	section := cb.global.FetcherConfig
	return fetcher.Config{
		Timeout:              time.Duration(section.TimeoutSecs) * time.Second,
		WaitCondition:        waitConditionFromString(section.WaitCondition),
		IncludeInlineScripts: section.IncludeInlineScripts,
		CollectRenderMetrics: section.CollectRenderMetrics,
		FontSizeThresholdPx:  section.FontSizeThresholdPx,
		TapTargetMinPx:       section.TapTargetMinPx,
	}
}

// BuildExtractorConfig creates the link extractor configuration.
func (cb *ConfigBuilder) BuildExtractorConfig() extractor.Config {
	section := cb.global.ExtractorConfig
	return extractor.Config{
		EnableScriptAnalysis: section.EnableScriptAnalysis,
		CustomRegexes:        section.CustomRegexes,
		MaxLinksPerPage:      section.MaxLinksPerPage,
	}
}

// BuildLinkCheckerConfig creates the link checker configuration.
func (cb *ConfigBuilder) BuildLinkCheckerConfig() linkchecker.Config {
	section := cb.global.LinkCheckerConfig
	return linkchecker.Config{
		BatchSize:              section.BatchSize,
		InterBatchDelay:        time.Duration(section.InterBatchDelayMs) * time.Millisecond,
		FastTimeout:            time.Duration(section.FastTimeoutSecs) * time.Second,
		FallbackTimeout:        time.Duration(section.FallbackTimeoutSecs) * time.Second,
		MaxRedirects:           section.MaxRedirects,
		AmbiguousStatusCodes:   section.AmbiguousStatusCodes,
		DisableBrowserFallback: section.DisableBrowserFallback,
	}
}

// BuildRulesConfig creates the rule catalog thresholds.
func (cb *ConfigBuilder) BuildRulesConfig() rules.Config {
	section := cb.global.RulesConfig
	return rules.Config{
		TitleMinLength:           section.TitleMinLength,
		TitleMaxLength:           section.TitleMaxLength,
		DescriptionMinLength:     section.DescriptionMinLength,
		DescriptionMaxLength:     section.DescriptionMaxLength,
		AltTextThreshold:         section.AltTextThreshold,
		TitleSimilarityThreshold: section.TitleSimilarityThreshold,
		FontSizeThreshold:        section.FontSizeThreshold,
		TapTargetThreshold:       section.TapTargetThreshold,
	}
}

// BuildProbeConfig creates the page prober configuration.
func (cb *ConfigBuilder) BuildProbeConfig() probing.Config {
	section := cb.global.ProbeConfig
	return probing.Config{
		Enabled:         section.Enabled,
		Method:          section.Method,
		TimeoutSecs:     section.TimeoutSecs,
		Retries:         section.Retries,
		Threads:         section.Threads,
		FollowRedirects: section.FollowRedirects,
		TechDetect:      section.TechDetect,
		ExtractBody:     section.ExtractBody,
		RateLimit:       section.RateLimit,
		CustomHeaders:   section.CustomHeaders,
	}
}

// BuildReporterConfig creates the reporter configuration.
func (cb *ConfigBuilder) BuildReporterConfig() reporter.Config {
	section := cb.global.ReporterConfig
	return reporter.Config{
		Format:     reporter.ParseFormat(section.Format),
		OutputFile: section.OutputFile,
	}
}

// waitConditionFromString maps the config value onto the browser wait
// condition, defaulting to network idle.
func waitConditionFromString(value string) browser.WaitCondition {
	switch value {
	case "load":
		return browser.WaitLoad
	case "domcontentloaded":
		return browser.WaitDOMContentLoaded
	default:
		return browser.WaitNetworkIdle
	}
}
