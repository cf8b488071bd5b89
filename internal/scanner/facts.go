package scanner

import "github.com/pagevet/pagevet/internal/models"

// buildPageFacts digests the snapshot and the extracted links into the page
// section of the report.
func buildPageFacts(snapshot *models.PageSnapshot, links []models.Link) models.PageFacts {
	headingCounts := make(map[string]int, len(snapshot.Headings))
	for level, texts := range snapshot.Headings {
		headingCounts[level] = len(texts)
	}

	internal := 0
	sourceCounts := make(map[string]int)
	for _, link := range links {
		if link.Internal {
			internal++
		}
		for _, source := range link.Sources {
			sourceCounts[string(source)]++
		}
	}

	return models.PageFacts{
		Title:           snapshot.Title,
		MetaDescription: snapshot.MetaContent("description"),
		Lang:            snapshot.Lang,
		HTMLVersion:     snapshot.HTMLVersion,
		CanonicalURL:    snapshot.CanonicalURL,
		HeadingCounts:   headingCounts,
		ImageCount:      len(snapshot.Images),
		LinkCount:       len(links),
		InternalLinks:   internal,
		ExternalLinks:   len(links) - internal,
		LinkSources:     sourceCounts,
	}
}
