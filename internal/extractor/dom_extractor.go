package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pagevet/pagevet/internal/models"
)

// domPass walks the parsed anchor elements. This is the primary pass and the
// only one that sees link text and rel attributes.
func (le *LinkExtractor) domPass(doc *goquery.Document, collector *linkCollector) {
	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		collector.add(candidate{
			href:   href,
			text:   collapseWhitespace(s.Text()),
			rel:    s.AttrOr("rel", ""),
			source: models.DiscoverySourceDOM,
		})
	})
}

// collapseWhitespace trims and squeezes runs of whitespace to single spaces
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
