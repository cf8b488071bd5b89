package models

import "time"

// LinkOutcome is the terminal classification of one link resolution.
type LinkOutcome string

const (
	LinkOutcomeWorking LinkOutcome = "working"
	LinkOutcomeBroken  LinkOutcome = "broken"
)

// ResolutionTier identifies which tier produced the final classification.
type ResolutionTier string

const (
	ResolvedViaFastClient      ResolutionTier = "fast-client"
	ResolvedViaBrowserFallback ResolutionTier = "browser-fallback"
)

// LinkCheckResult is the outcome of resolving one link.
//
// Invariants: Outcome is working iff a resolution produced an HTTP status in
// [200,400) or a browser navigation produced any response; HTTPStatus is set
// whenever a request completed, even with a failure status; Error is set iff
// the outcome is broken.
type LinkCheckResult struct {
	URL     string      `json:"url"`
	Outcome LinkOutcome `json:"outcome"`
	// HTTPStatus is zero when no request completed (for example a DNS
	// failure followed by a failed browser navigation).
	HTTPStatus     int            `json:"http_status,omitempty"`
	RedirectTarget string         `json:"redirect_target,omitempty"`
	ResolvedVia    ResolutionTier `json:"resolved_via"`
	Error          string         `json:"error,omitempty"`
	CheckedAt      time.Time      `json:"checked_at"`
	Duration       float64        `json:"duration_seconds,omitempty"`
}

// IsWorking reports whether the link resolved successfully.
func (r *LinkCheckResult) IsWorking() bool {
	return r.Outcome == LinkOutcomeWorking
}
