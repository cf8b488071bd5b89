// Package probing issues a direct HTTP probe against the inspection target
// using the httpx engine. The probe supplements the rendered snapshot with
// transport facts the browser does not expose: raw response headers, the
// server banner, resolved addresses and detected technologies.
package probing

import (
	"context"
	"sync"
	"time"

	"github.com/projectdiscovery/httpx/runner"
	"github.com/rs/zerolog"

	"github.com/pagevet/pagevet/internal/common/errorwrapper"
	"github.com/pagevet/pagevet/internal/models"
)

// Prober runs single-target probes.
type Prober struct {
	config Config
	mapper *resultMapper
	logger zerolog.Logger
}

// NewProber creates a prober from the given configuration.
func NewProber(config Config, logger zerolog.Logger) *Prober {
	defaults := DefaultConfig()
	if config.Method == "" {
		config.Method = defaults.Method
	}
	if config.TimeoutSecs <= 0 {
		config.TimeoutSecs = defaults.TimeoutSecs
	}
	if config.Threads <= 0 {
		config.Threads = defaults.Threads
	}

	return &Prober{
		config: config,
		mapper: newResultMapper(logger),
		logger: logger.With().Str("component", "Prober").Logger(),
	}
}

// Probe runs one probe against targetURL and returns the mapped result. A
// probe that reached the target but got a failure status still returns
// normally with the status recorded; the error return covers engine failures
// and cancellation.
func (p *Prober) Probe(ctx context.Context, targetURL string) (*models.PageProbe, error) {
	if targetURL == "" {
		return nil, errorwrapper.NewError("probe target URL is empty")
	}

	var mu sync.Mutex
	var probes []*models.PageProbe
	collect := func(res runner.Result) {
		probe := p.mapper.mapResult(res)
		mu.Lock()
		probes = append(probes, probe)
		mu.Unlock()
	}

	options := buildOptions(p.config, targetURL, collect, p.logger)
	engine, err := runner.New(options)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to create probe engine")
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		engine.RunEnumeration()
		engine.Close()
	}()

	select {
	case <-done:
	case <-ctx.Done():
		// The enumeration keeps running until its own timeout; with a
		// single target that is bounded by TimeoutSecs and Retries.
		return nil, errorwrapper.WrapError(ctx.Err(), "page probe cancelled")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(probes) == 0 {
		return nil, errorwrapper.NewError("probe produced no result for %s", targetURL)
	}

	probe := probes[0]
	if probe.Timestamp.IsZero() {
		probe.Timestamp = time.Now()
	}

	p.logger.Info().
		Str("url", targetURL).
		Int("status", probe.StatusCode).
		Str("webserver", probe.WebServer).
		Int("technologies", len(probe.Technologies)).
		Msg("Probe completed")

	return probe, nil
}
