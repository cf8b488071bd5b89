package linkchecker

import (
	"net/http"
	"time"
)

// Config controls link verification: the fast HTTP tier, the browser
// fallback tier, and the batch schedule.
type Config struct {
	// BatchSize is the number of links resolved concurrently in one batch.
	BatchSize int
	// InterBatchDelay is the pause between consecutive batches. It bounds
	// the outbound request rate against the target hosts; zero means no
	// pause.
	InterBatchDelay time.Duration
	// FastTimeout bounds one fast-client GET, including redirects.
	FastTimeout time.Duration
	// FallbackTimeout bounds one browser fallback navigation.
	FallbackTimeout time.Duration
	// MaxRedirects is the redirect ceiling for the fast client.
	MaxRedirects int
	// AmbiguousStatusCodes lists statuses that commonly mean the fast
	// client was rejected rather than the page being gone; they escalate
	// to the browser fallback instead of failing the link outright. A nil
	// slice gets the default list; an empty slice disables escalation by
	// status entirely.
	AmbiguousStatusCodes []int
	// DisableBrowserFallback turns off the second tier. Ambiguous statuses
	// and transport failures are then reported as broken directly.
	DisableBrowserFallback bool
}

// DefaultConfig returns the link checker defaults.
func DefaultConfig() Config {
	return Config{
		BatchSize:            5,
		InterBatchDelay:      1 * time.Second,
		FastTimeout:          10 * time.Second,
		FallbackTimeout:      15 * time.Second,
		MaxRedirects:         5,
		AmbiguousStatusCodes: []int{http.StatusBadRequest, http.StatusForbidden},
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.BatchSize <= 0 {
		c.BatchSize = defaults.BatchSize
	}
	if c.FastTimeout <= 0 {
		c.FastTimeout = defaults.FastTimeout
	}
	if c.FallbackTimeout <= 0 {
		c.FallbackTimeout = defaults.FallbackTimeout
	}
	if c.MaxRedirects <= 0 {
		c.MaxRedirects = defaults.MaxRedirects
	}
	if c.AmbiguousStatusCodes == nil {
		c.AmbiguousStatusCodes = defaults.AmbiguousStatusCodes
	}
	return c
}
