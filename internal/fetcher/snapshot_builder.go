package fetcher

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/pagevet/pagevet/internal/common/errorwrapper"
	"github.com/pagevet/pagevet/internal/models"
	"github.com/pagevet/pagevet/internal/urlhandler"
)

var doctypePatterns = []struct {
	re      *regexp.Regexp
	version string
}{
	{regexp.MustCompile(`(?i)<!doctype\s+html\s*>`), "HTML 5"},
	{regexp.MustCompile(`(?i)html\s+4\.01.*strict`), "HTML 4.01 Strict"},
	{regexp.MustCompile(`(?i)html\s+4\.01.*transitional`), "HTML 4.01 Transitional"},
	{regexp.MustCompile(`(?i)html\s+4\.01.*frameset`), "HTML 4.01 Frameset"},
	{regexp.MustCompile(`(?i)xhtml\s+1\.1`), "XHTML 1.1"},
	{regexp.MustCompile(`(?i)xhtml\s+1\.0.*strict`), "XHTML 1.0 Strict"},
	{regexp.MustCompile(`(?i)xhtml\s+1\.0.*transitional`), "XHTML 1.0 Transitional"},
	{regexp.MustCompile(`(?i)xhtml\s+1\.0.*frameset`), "XHTML 1.0 Frameset"},
}

// SnapshotBuilder parses serialized page HTML into a PageSnapshot
type SnapshotBuilder struct {
	logger               zerolog.Logger
	includeInlineScripts bool
}

// NewSnapshotBuilder creates a snapshot builder
func NewSnapshotBuilder(logger zerolog.Logger, includeInlineScripts bool) *SnapshotBuilder {
	return &SnapshotBuilder{
		logger:               logger.With().Str("component", "SnapshotBuilder").Logger(),
		includeInlineScripts: includeInlineScripts,
	}
}

// Build parses the HTML and assembles the snapshot. Link extraction is not
// part of the build; the extractor fills Links from the snapshot afterwards.
func (sb *SnapshotBuilder) Build(requestedURL, finalURL, html string) (*models.PageSnapshot, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to parse page HTML")
	}

	base, err := url.Parse(finalURL)
	if err != nil {
		sb.logger.Warn().Err(err).Str("url", finalURL).Msg("Failed to parse final URL, relative references stay unresolved")
		base = nil
	}

	snapshot := &models.PageSnapshot{
		RequestedURL: requestedURL,
		URL:          finalURL,
		HTML:         html,
		Title:        strings.TrimSpace(doc.Find("title").First().Text()),
		Lang:         strings.TrimSpace(doc.Find("html").AttrOr("lang", "")),
		HTMLVersion:  detectHTMLVersion(html),
	}

	sb.extractHeadings(doc, snapshot)
	sb.extractMeta(doc, snapshot)
	sb.extractHead(doc, base, snapshot)
	sb.extractImages(doc, base, snapshot)
	sb.extractForms(doc, base, snapshot)

	if sb.includeInlineScripts {
		sb.extractInlineScripts(doc, snapshot)
	}

	return snapshot, nil
}

// detectHTMLVersion inspects the doctype declaration at the top of the document
func detectHTMLVersion(html string) string {
	head := html
	if len(head) > 1024 {
		head = head[:1024]
	}

	if !strings.Contains(strings.ToLower(head), "<!doctype") {
		return "unknown"
	}

	for _, p := range doctypePatterns {
		if p.re.MatchString(head) {
			return p.version
		}
	}
	return "unknown"
}

func (sb *SnapshotBuilder) extractHeadings(doc *goquery.Document, snapshot *models.PageSnapshot) {
	headings := make(map[string][]string)
	for _, level := range []string{"h1", "h2", "h3", "h4", "h5", "h6"} {
		doc.Find(level).Each(func(i int, s *goquery.Selection) {
			headings[level] = append(headings[level], strings.TrimSpace(s.Text()))
		})
	}
	if len(headings) > 0 {
		snapshot.Headings = headings
	}
}

func (sb *SnapshotBuilder) extractMeta(doc *goquery.Document, snapshot *models.PageSnapshot) {
	meta := make(map[string]string)
	openGraph := make(map[string]string)
	twitterCard := make(map[string]string)

	doc.Find("meta").Each(func(i int, s *goquery.Selection) {
		content := s.AttrOr("content", "")

		if name, ok := s.Attr("name"); ok {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				return
			}
			meta[name] = content
			if strings.HasPrefix(name, "twitter:") {
				twitterCard[name] = content
			}
			return
		}

		if property, ok := s.Attr("property"); ok {
			property = strings.ToLower(strings.TrimSpace(property))
			if strings.HasPrefix(property, "og:") {
				openGraph[property] = content
			}
		}
	})

	if len(meta) > 0 {
		snapshot.Meta = meta
		snapshot.Viewport = meta["viewport"]
	}
	if len(openGraph) > 0 {
		snapshot.OpenGraph = openGraph
	}
	if len(twitterCard) > 0 {
		snapshot.TwitterCard = twitterCard
	}
}

// extractHead collects canonical and favicon references from <link> elements
func (sb *SnapshotBuilder) extractHead(doc *goquery.Document, base *url.URL, snapshot *models.PageSnapshot) {
	seen := make(map[string]struct{})

	doc.Find("link[rel]").Each(func(i int, s *goquery.Selection) {
		rel := strings.ToLower(s.AttrOr("rel", ""))
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" {
			return
		}

		resolved := sb.resolve(href, base)
		if resolved == "" {
			return
		}

		switch {
		case rel == "canonical":
			if snapshot.CanonicalURL == "" {
				snapshot.CanonicalURL = resolved
			}
		case strings.Contains(rel, "icon"):
			if _, dup := seen[resolved]; !dup {
				seen[resolved] = struct{}{}
				snapshot.Favicons = append(snapshot.Favicons, resolved)
			}
		}
	})
}

func (sb *SnapshotBuilder) extractImages(doc *goquery.Document, base *url.URL, snapshot *models.PageSnapshot) {
	doc.Find("img").Each(func(i int, s *goquery.Selection) {
		src := strings.TrimSpace(s.AttrOr("src", ""))
		if src == "" {
			return
		}
		if !strings.HasPrefix(src, "data:") {
			if resolved := sb.resolve(src, base); resolved != "" {
				src = resolved
			}
		}
		snapshot.Images = append(snapshot.Images, models.ImageInfo{
			Src: src,
			Alt: s.AttrOr("alt", ""),
		})
	})
}

func (sb *SnapshotBuilder) extractForms(doc *goquery.Document, base *url.URL, snapshot *models.PageSnapshot) {
	doc.Find("form").Each(func(i int, s *goquery.Selection) {
		action := strings.TrimSpace(s.AttrOr("action", ""))
		if action != "" {
			if resolved := sb.resolve(action, base); resolved != "" {
				action = resolved
			}
		}

		inputs, unlabeled := sb.countFormControls(doc, s)

		snapshot.Forms = append(snapshot.Forms, models.FormInfo{
			Action:           action,
			Method:           strings.ToUpper(s.AttrOr("method", "GET")),
			HasPasswordField: s.Find(`input[type="password"]`).Length() > 0,
			Inputs:           inputs,
			UnlabeledInputs:  unlabeled,
		})
	})
}

// countFormControls counts the user-facing controls of a form and how many of
// them lack any label association (label[for], wrapping label, aria-label,
// aria-labelledby, or title).
func (sb *SnapshotBuilder) countFormControls(doc *goquery.Document, form *goquery.Selection) (inputs, unlabeled int) {
	form.Find("input, select, textarea").Each(func(i int, control *goquery.Selection) {
		if control.Is("input") {
			switch strings.ToLower(control.AttrOr("type", "text")) {
			case "hidden", "submit", "button", "reset", "image":
				return
			}
		}
		inputs++

		if control.AttrOr("aria-label", "") != "" ||
			control.AttrOr("aria-labelledby", "") != "" ||
			control.AttrOr("title", "") != "" {
			return
		}
		if control.ParentsFiltered("label").Length() > 0 {
			return
		}
		if id := strings.TrimSpace(control.AttrOr("id", "")); id != "" {
			if doc.Find(`label[for="` + id + `"]`).Length() > 0 {
				return
			}
		}
		unlabeled++
	})
	return inputs, unlabeled
}

func (sb *SnapshotBuilder) extractInlineScripts(doc *goquery.Document, snapshot *models.PageSnapshot) {
	doc.Find("script").Each(func(i int, s *goquery.Selection) {
		if _, hasSrc := s.Attr("src"); hasSrc {
			return
		}
		body := strings.TrimSpace(s.Text())
		if body == "" {
			return
		}
		snapshot.InlineScripts = append(snapshot.InlineScripts, body)
	})
}

// resolve makes href absolute against the page URL, returning "" for
// references that cannot be resolved
func (sb *SnapshotBuilder) resolve(href string, base *url.URL) string {
	if base == nil {
		if urlhandler.IsAbsoluteHTTPURL(href) {
			return href
		}
		return ""
	}
	resolved, err := urlhandler.ResolveURL(href, base)
	if err != nil {
		return ""
	}
	return resolved
}
