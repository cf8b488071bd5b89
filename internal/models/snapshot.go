package models

import "time"

// PageSnapshot is the immutable record of one page fetch. It is created once
// per inspection run and never mutated afterwards; every downstream component
// (extractor, rule catalog, reporter) reads from it.
type PageSnapshot struct {
	// RequestedURL is the URL the inspection was asked to load.
	RequestedURL string `json:"requested_url"`
	// URL is the final document URL after any page-level redirects.
	URL string `json:"url"`

	HTML  string `json:"-"`
	Title string `json:"title,omitempty"`
	Lang  string `json:"lang,omitempty"`
	// HTMLVersion is derived from the doctype declaration ("HTML 5",
	// "HTML 4.01 Strict", "unknown", ...).
	HTMLVersion string `json:"html_version,omitempty"`

	// Headings maps a heading level ("h1".."h6") to the ordered list of
	// heading texts at that level.
	Headings map[string][]string `json:"headings,omitempty"`
	// Meta maps meta tag names to their content, last write wins on
	// duplicate names.
	Meta map[string]string `json:"meta,omitempty"`
	// OpenGraph and TwitterCard carry the property->content maps of the
	// og:* and twitter:* tag families.
	OpenGraph   map[string]string `json:"open_graph,omitempty"`
	TwitterCard map[string]string `json:"twitter_card,omitempty"`

	CanonicalURL string   `json:"canonical_url,omitempty"`
	Viewport     string   `json:"viewport,omitempty"`
	Favicons     []string `json:"favicons,omitempty"`

	Links  []Link      `json:"links"`
	Images []ImageInfo `json:"images,omitempty"`
	Forms  []FormInfo  `json:"forms,omitempty"`

	// InlineScripts holds the bodies of <script> elements without a src
	// attribute, in document order.
	InlineScripts []string `json:"-"`

	// FontSample and TapTargetSample are collected by in-page evaluation at
	// fetch time; nil when the fetch ran without a rendering engine.
	FontSample      *FontSample      `json:"font_sample,omitempty"`
	TapTargetSample *TapTargetSample `json:"tap_target_sample,omitempty"`

	FetchedAt    time.Time     `json:"fetched_at"`
	LoadDuration time.Duration `json:"load_duration_ns,omitempty"`
}

// ImageInfo describes one <img> element.
type ImageInfo struct {
	Src string `json:"src"`
	Alt string `json:"alt,omitempty"`
}

// FormInfo describes one <form> element with the facts the rule catalog needs.
type FormInfo struct {
	Action           string `json:"action,omitempty"`
	Method           string `json:"method,omitempty"`
	HasPasswordField bool   `json:"has_password_field"`
	// Inputs counts the visible form controls; UnlabeledInputs counts those
	// without an associated label, aria attribute, or title.
	Inputs          int `json:"inputs,omitempty"`
	UnlabeledInputs int `json:"unlabeled_inputs,omitempty"`
}

// FontSample summarizes computed font sizes sampled from the rendered page.
type FontSample struct {
	Sampled  int     `json:"sampled"`
	TooSmall int     `json:"too_small"`
	MinPx    float64 `json:"min_px,omitempty"`
}

// TapTargetSample summarizes clickable-element hit sizes sampled from the
// rendered page.
type TapTargetSample struct {
	Sampled  int `json:"sampled"`
	TooSmall int `json:"too_small"`
}

// MetaContent returns the content of a named meta tag, empty when absent.
func (s *PageSnapshot) MetaContent(name string) string {
	if s.Meta == nil {
		return ""
	}
	return s.Meta[name]
}

// HeadingCount returns the number of headings at the given level.
func (s *PageSnapshot) HeadingCount(level string) int {
	if s.Headings == nil {
		return 0
	}
	return len(s.Headings[level])
}
