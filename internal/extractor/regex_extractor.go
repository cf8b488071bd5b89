package extractor

import (
	"html"
	"regexp"
	"strings"

	"github.com/pagevet/pagevet/internal/models"
)

// linkPattern matches anchor href attributes in raw HTML regardless of quote
// style. The three alternatives capture double-quoted, single-quoted, and
// bare values.
var linkPattern = regexp.MustCompile(`(?i)<a[^>]*?\bhref\s*=\s*("([^"]*)"|'([^']*)'|([^\s"'>]+))`)

// regexPass scans the raw HTML for anchors. It catches markup the DOM parser
// repaired away, such as anchors inside commented-out sections or foster
// parented table content.
func (le *LinkExtractor) regexPass(rawHTML string, collector *linkCollector) {
	for _, m := range linkPattern.FindAllStringSubmatch(rawHTML, -1) {
		href := ""
		switch {
		case len(m) >= 3 && m[2] != "":
			href = m[2]
		case len(m) >= 4 && m[3] != "":
			href = m[3]
		case len(m) >= 5 && m[4] != "":
			href = m[4]
		}
		collector.add(candidate{
			href:   html.UnescapeString(strings.TrimSpace(href)),
			source: models.DiscoverySourceRegex,
		})
	}

	for _, re := range le.customRegexes {
		for _, match := range re.FindAllString(rawHTML, -1) {
			collector.add(candidate{
				href:   html.UnescapeString(strings.TrimSpace(match)),
				source: models.DiscoverySourceRegex,
			})
		}
	}
}
