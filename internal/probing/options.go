package probing

import (
	"github.com/projectdiscovery/httpx/common/customheader"
	"github.com/projectdiscovery/httpx/runner"
	"github.com/rs/zerolog"
)

// buildOptions converts the probe configuration into httpx engine options for
// a single target. The engine runs silent; results arrive through the
// callback and logging stays with our logger.
func buildOptions(config Config, target string, onResult func(runner.Result), logger zerolog.Logger) *runner.Options {
	options := &runner.Options{
		Methods:         config.Method,
		Silent:          true,
		NoColor:         true,
		Timeout:         config.TimeoutSecs,
		Retries:         config.Retries,
		Threads:         config.Threads,
		FollowRedirects: config.FollowRedirects,
		RespectHSTS:     true,
		RateLimit:       config.RateLimit,

		InputTargetHost: []string{target},
		OnResult:        onResult,

		// Response facts the rule catalog consumes.
		StatusCode:              true,
		ContentLength:           true,
		ExtractTitle:            true,
		Location:                true,
		OutputContentType:       true,
		OutputServerHeader:      true,
		OutputIP:                true,
		ResponseHeadersInStdout: true,
		ChainInStdout:           true,
		TechDetect:              config.TechDetect,
		OmitBody:                !config.ExtractBody,
		HostMaxErrors:           -1,
	}

	if len(config.CustomHeaders) > 0 {
		headers := customheader.CustomHeaders{}
		for key, value := range config.CustomHeaders {
			headerValue := key + ": " + value
			if err := headers.Set(headerValue); err != nil {
				logger.Warn().
					Str("header", headerValue).
					Err(err).
					Msg("Failed to set custom probe header")
				continue
			}
		}
		options.CustomHeaders = headers
	}

	return options
}
