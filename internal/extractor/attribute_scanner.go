package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pagevet/pagevet/internal/models"
	"github.com/pagevet/pagevet/internal/urlhandler"
)

// navigationAttributes are attribute names that carry link targets by
// convention; their values are accepted even when relative
var navigationAttributes = map[string]struct{}{
	"data-href":         {},
	"data-url":          {},
	"data-link":         {},
	"data-redirect-url": {},
	"ping":              {},
}

// attributeScanPass recovers URLs stored outside href attributes. Named
// navigation attributes are always considered; any other data-* or aria-label
// attribute contributes only when its value is already an absolute HTTP URL,
// which keeps asset references (src, srcset, action) out of the link set.
func (le *LinkExtractor) attributeScanPass(doc *goquery.Document, collector *linkCollector) {
	doc.Find("*").Each(func(i int, s *goquery.Selection) {
		if len(s.Nodes) == 0 {
			return
		}
		for _, attr := range s.Nodes[0].Attr {
			name := strings.ToLower(attr.Key)
			value := strings.TrimSpace(attr.Val)
			if value == "" {
				continue
			}

			if _, ok := navigationAttributes[name]; ok {
				collector.add(candidate{href: value, source: models.DiscoverySourceAttributeScan})
				continue
			}

			if (strings.HasPrefix(name, "data-") || name == "aria-label") && urlhandler.IsAbsoluteHTTPURL(value) {
				collector.add(candidate{href: value, source: models.DiscoverySourceAttributeScan})
			}
		}
	})
}
