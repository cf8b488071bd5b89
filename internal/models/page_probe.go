package models

import (
	"strings"
	"time"
)

// PageProbe holds the facts from a direct HTTP probe of the inspection target.
// The probe supplements the rendered snapshot with transport-level data the
// browser does not expose: raw response headers, the server banner and
// detected technologies. A failed probe is recorded, not fatal; rules that
// need probe facts degrade when Completed reports false.
type PageProbe struct {
	InputURL  string    `json:"input_url"`
	FinalURL  string    `json:"final_url,omitempty"`
	Method    string    `json:"method"`
	Timestamp time.Time `json:"timestamp"`
	Duration  float64   `json:"duration,omitempty"`
	Error     string    `json:"error,omitempty"`

	StatusCode    int    `json:"status_code,omitempty"`
	ContentLength int64  `json:"content_length,omitempty"`
	ContentType   string `json:"content_type,omitempty"`
	WebServer     string `json:"webserver,omitempty"`

	// ResponseHeaders maps header names to their joined values.
	ResponseHeaders map[string]string `json:"response_headers,omitempty"`

	Technologies []string `json:"technologies,omitempty"`
	IPs          []string `json:"ips,omitempty"`
}

// Completed reports whether the probe finished a request against the target.
func (p *PageProbe) Completed() bool {
	return p != nil && p.StatusCode > 0
}

// Header returns the named response header, matched case-insensitively.
func (p *PageProbe) Header(name string) string {
	if p == nil || len(p.ResponseHeaders) == 0 {
		return ""
	}
	for k, v := range p.ResponseHeaders {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}
