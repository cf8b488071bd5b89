package browser

import (
	"context"
	"time"
)

// WaitCondition selects how long a navigation waits before the page is
// considered ready
type WaitCondition string

const (
	// WaitDOMContentLoaded waits for the DOMContentLoaded event only
	WaitDOMContentLoaded WaitCondition = "dom-content-loaded"
	// WaitLoad waits for the window load event
	WaitLoad WaitCondition = "load"
	// WaitNetworkIdle waits for load plus a quiet period with no in-flight requests
	WaitNetworkIdle WaitCondition = "network-idle"
)

// NavigationResponse describes the document response observed during a
// navigation. StatusCode is 0 when no document response was seen, which
// happens for pages served entirely from cache or non-HTTP schemes.
type NavigationResponse struct {
	URL        string
	StatusCode int
	MimeType   string
}

// Session is a single browser page. Implementations are not safe for
// concurrent use; callers hold one session per goroutine.
type Session interface {
	// Navigate loads the URL and blocks until the wait condition is met or
	// the timeout elapses
	Navigate(ctx context.Context, url string, wait WaitCondition, timeout time.Duration) (*NavigationResponse, error)
	// Evaluate runs a JavaScript function expression in the page and returns
	// the result encoded as JSON
	Evaluate(ctx context.Context, js string) (string, error)
	// HTML returns the serialized DOM of the current page
	HTML(ctx context.Context) (string, error)
	// Close releases the page
	Close() error
}

// SessionProvider opens browser sessions
type SessionProvider interface {
	OpenSession(ctx context.Context) (Session, error)
}
