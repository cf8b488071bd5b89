package fetcher

import (
	"time"

	"github.com/pagevet/pagevet/internal/browser"
)

// Config holds page fetcher settings
type Config struct {
	// Timeout bounds the whole navigation including the wait condition
	Timeout time.Duration
	// WaitCondition selects when the page is considered settled
	WaitCondition browser.WaitCondition
	// IncludeInlineScripts records the bodies of inline <script> elements
	// in the snapshot
	IncludeInlineScripts bool
	// CollectRenderMetrics runs in-page sampling of font sizes and tap
	// target dimensions after the page settles
	CollectRenderMetrics bool
	// FontSizeThresholdPx is the computed font size below which sampled
	// text counts as too small
	FontSizeThresholdPx float64
	// TapTargetMinPx is the minimum width and height for a sampled
	// clickable element
	TapTargetMinPx float64
}

// DefaultConfig returns the default fetcher configuration
func DefaultConfig() Config {
	return Config{
		Timeout:              30 * time.Second,
		WaitCondition:        browser.WaitNetworkIdle,
		IncludeInlineScripts: true,
		CollectRenderMetrics: true,
		FontSizeThresholdPx:  12,
		TapTargetMinPx:       48,
	}
}
