package extractor

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/pagevet/pagevet/internal/models"
	"github.com/pagevet/pagevet/internal/urlhandler"
)

// LinkExtractor discovers hyperlinks in a page snapshot. It layers several
// passes over the same document: a DOM pass over live anchor elements, a
// regex pass over the raw HTML that catches anchors the parser mangled, an
// attribute scan for URLs stored outside href, and an optional script pass.
// The passes feed one deduplicating collector, so a URL found by several
// passes yields a single link with all sources recorded.
type LinkExtractor struct {
	config        Config
	logger        zerolog.Logger
	customRegexes []*regexp.Regexp
}

// NewLinkExtractor creates a link extractor. Invalid custom regexes are
// logged and skipped.
func NewLinkExtractor(cfg Config, logger zerolog.Logger) *LinkExtractor {
	le := &LinkExtractor{
		config: cfg,
		logger: logger.With().Str("component", "LinkExtractor").Logger(),
	}

	for _, pattern := range cfg.CustomRegexes {
		re, err := regexp.Compile(pattern)
		if err != nil {
			le.logger.Error().Err(err).Str("regex", pattern).Msg("Failed to compile custom regex, skipping")
			continue
		}
		le.customRegexes = append(le.customRegexes, re)
	}

	return le
}

// ExtractLinks runs every discovery pass over the snapshot and returns the
// deduplicated links in first-seen order. Repeated calls over the same
// snapshot return the same result.
func (le *LinkExtractor) ExtractLinks(snapshot *models.PageSnapshot) []models.Link {
	base, err := url.Parse(snapshot.URL)
	if err != nil {
		le.logger.Warn().Err(err).Str("url", snapshot.URL).Msg("Failed to parse page URL, relative links will be dropped")
		base = nil
	}

	collector := newLinkCollector(base, le.config.MaxLinksPerPage, le.logger)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snapshot.HTML))
	if err != nil {
		le.logger.Error().Err(err).Msg("Failed to parse HTML, falling back to regex pass only")
		doc = nil
	}

	if doc != nil {
		le.domPass(doc, collector)
	}
	le.regexPass(snapshot.HTML, collector)
	if doc != nil {
		le.attributeScanPass(doc, collector)
	}
	if le.config.EnableScriptAnalysis {
		le.scriptPass(snapshot.InlineScripts, collector)
	}

	links := collector.result()
	le.logger.Debug().
		Str("url", snapshot.URL).
		Int("link_count", len(links)).
		Msg("Link extraction finished")
	return links
}

// candidate is one raw discovery before normalization and deduplication
type candidate struct {
	href   string
	text   string
	rel    string
	source models.DiscoverySource
}

// linkCollector normalizes candidates and merges duplicates, preserving
// first-seen order
type linkCollector struct {
	base        *url.URL
	limit       int
	logger      zerolog.Logger
	seen        map[string]int
	links       []models.Link
	limitWarned bool
}

func newLinkCollector(base *url.URL, limit int, logger zerolog.Logger) *linkCollector {
	return &linkCollector{
		base:   base,
		limit:  limit,
		logger: logger,
		seen:   make(map[string]int),
	}
}

// add normalizes the candidate href and merges it into the collected set
func (lc *linkCollector) add(c candidate) {
	href := strings.TrimSpace(c.href)
	if shouldSkipHref(href) {
		return
	}

	normalized, err := lc.normalize(href)
	if err != nil || normalized == "" {
		return
	}

	if idx, exists := lc.seen[normalized]; exists {
		link := &lc.links[idx]
		link.AddSource(c.source)
		if link.Text == "" && c.text != "" {
			link.Text = c.text
		}
		if link.Rel == "" && c.rel != "" {
			link.Rel = c.rel
		}
		return
	}

	if lc.limit > 0 && len(lc.links) >= lc.limit {
		if !lc.limitWarned {
			lc.limitWarned = true
			lc.logger.Warn().Int("limit", lc.limit).Msg("Link cap reached, dropping further discoveries")
		}
		return
	}

	lc.seen[normalized] = len(lc.links)
	lc.links = append(lc.links, models.Link{
		Href:     normalized,
		Text:     c.text,
		Rel:      c.rel,
		Sources:  []models.DiscoverySource{c.source},
		Internal: urlhandler.IsInternalURL(normalized, lc.base),
	})
}

func (lc *linkCollector) normalize(href string) (string, error) {
	if lc.base != nil {
		return urlhandler.ResolveURL(href, lc.base)
	}
	if urlhandler.IsAbsoluteHTTPURL(href) {
		return urlhandler.NormalizeURL(href)
	}
	return "", nil
}

func (lc *linkCollector) result() []models.Link {
	return lc.links
}

// shouldSkipHref filters references that are not checkable hyperlinks
func shouldSkipHref(href string) bool {
	if href == "" || strings.HasPrefix(href, "#") {
		return true
	}
	lower := strings.ToLower(href)
	for _, prefix := range []string{"javascript:", "mailto:", "tel:", "data:", "about:"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
