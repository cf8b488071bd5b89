package extractor

import (
	"github.com/BishopFox/jsluice"

	"github.com/pagevet/pagevet/internal/models"
)

// scriptPass mines inline script bodies with jsluice's AST-based URL
// matchers. Disabled by default; enabling it widens the link set beyond the
// markup-visible hyperlinks.
func (le *LinkExtractor) scriptPass(scripts []string, collector *linkCollector) {
	for _, body := range scripts {
		if body == "" {
			continue
		}
		analyzer := jsluice.NewAnalyzer([]byte(body))
		for _, res := range analyzer.GetURLs() {
			collector.add(candidate{
				href:   res.URL,
				source: models.DiscoverySourceScript,
			})
		}
	}
}
