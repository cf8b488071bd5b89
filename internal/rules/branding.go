package rules

import (
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/pagevet/pagevet/internal/models"
)

func (c *Catalog) brandingChecks(snapshot *models.PageSnapshot) []models.CheckResult {
	return []models.CheckResult{
		c.checkOpenGraph(snapshot),
		c.checkTwitterCard(snapshot),
		c.checkFavicon(snapshot),
		c.checkTitleConsistency(snapshot),
	}
}

func (c *Catalog) checkOpenGraph(snapshot *models.PageSnapshot) models.CheckResult {
	const test = "open graph tags"

	var missing []string
	for _, property := range []string{"og:title", "og:description", "og:image"} {
		if strings.TrimSpace(snapshot.OpenGraph[property]) == "" {
			missing = append(missing, property)
		}
	}

	if len(missing) > 0 {
		return fail(test, models.CheckCategoryBranding, "missing open graph tags: %s", strings.Join(missing, ", "))
	}
	return pass(test, models.CheckCategoryBranding, "core open graph tags present")
}

func (c *Catalog) checkTwitterCard(snapshot *models.PageSnapshot) models.CheckResult {
	const test = "twitter card"

	card := strings.TrimSpace(snapshot.TwitterCard["twitter:card"])
	if card == "" {
		return warn(test, models.CheckCategoryBranding, "page declares no twitter:card tag")
	}
	return pass(test, models.CheckCategoryBranding, "twitter card declared: %s", card)
}

func (c *Catalog) checkFavicon(snapshot *models.PageSnapshot) models.CheckResult {
	const test = "favicon"

	if len(snapshot.Favicons) == 0 {
		return warn(test, models.CheckCategoryBranding, "page declares no favicon")
	}
	return pass(test, models.CheckCategoryBranding, "%d favicon reference(s) declared", len(snapshot.Favicons))
}

// checkTitleConsistency compares the document title with og:title. Social
// previews use og:title, so a diverged pair means the page presents itself
// differently in shares than in the browser tab.
func (c *Catalog) checkTitleConsistency(snapshot *models.PageSnapshot) models.CheckResult {
	const test = "title consistency"

	title := strings.TrimSpace(snapshot.Title)
	ogTitle := strings.TrimSpace(snapshot.OpenGraph["og:title"])
	switch {
	case title == "" && ogTitle == "":
		return warn(test, models.CheckCategoryBranding, "neither page title nor og:title present to compare")
	case title == "":
		return warn(test, models.CheckCategoryBranding, "page title missing, og:title cannot be cross-checked")
	case ogTitle == "":
		return warn(test, models.CheckCategoryBranding, "og:title missing, page title cannot be cross-checked")
	}

	similarity := textSimilarity(title, ogTitle)
	if similarity < c.config.TitleSimilarityThreshold {
		return fail(test, models.CheckCategoryBranding,
			"page title and og:title diverge (similarity %.2f below %.2f)", similarity, c.config.TitleSimilarityThreshold)
	}
	return pass(test, models.CheckCategoryBranding, "page title and og:title agree (similarity %.2f)", similarity)
}

// textSimilarity scores two strings in [0,1] from their Levenshtein distance,
// case-insensitively. 1 means equal, 0 means nothing in common.
func textSimilarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return 1
	}

	longest := utf8.RuneCountInString(a)
	if l := utf8.RuneCountInString(b); l > longest {
		longest = l
	}
	if longest == 0 {
		return 1
	}

	dmp := diffmatchpatch.New()
	distance := dmp.DiffLevenshtein(dmp.DiffMain(a, b, false))
	return 1 - float64(distance)/float64(longest)
}
