package rules

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pagevet/pagevet/internal/models"
)

func (c *Catalog) seoChecks(snapshot *models.PageSnapshot) []models.CheckResult {
	return []models.CheckResult{
		c.checkTitle(snapshot),
		c.checkMetaDescription(snapshot),
		c.checkSingleH1(snapshot),
		c.checkHeadingOrder(snapshot),
		c.checkCanonical(snapshot),
		c.checkDoctype(snapshot),
	}
}

func (c *Catalog) checkTitle(snapshot *models.PageSnapshot) models.CheckResult {
	const test = "page title"

	title := strings.TrimSpace(snapshot.Title)
	if title == "" {
		return fail(test, models.CheckCategorySEO, "page has no title")
	}

	length := utf8.RuneCountInString(title)
	switch {
	case length < c.config.TitleMinLength:
		return warn(test, models.CheckCategorySEO,
			"title length %d is below the recommended minimum of %d", length, c.config.TitleMinLength)
	case length > c.config.TitleMaxLength:
		return warn(test, models.CheckCategorySEO,
			"title length %d exceeds the recommended maximum of %d", length, c.config.TitleMaxLength)
	default:
		return pass(test, models.CheckCategorySEO, "title present with length %d", length)
	}
}

func (c *Catalog) checkMetaDescription(snapshot *models.PageSnapshot) models.CheckResult {
	const test = "meta description"

	description := strings.TrimSpace(snapshot.MetaContent("description"))
	if description == "" {
		return fail(test, models.CheckCategorySEO, "page has no meta description")
	}

	length := utf8.RuneCountInString(description)
	switch {
	case length < c.config.DescriptionMinLength:
		return warn(test, models.CheckCategorySEO,
			"meta description length %d is below the recommended minimum of %d", length, c.config.DescriptionMinLength)
	case length > c.config.DescriptionMaxLength:
		return warn(test, models.CheckCategorySEO,
			"meta description length %d exceeds the recommended maximum of %d", length, c.config.DescriptionMaxLength)
	default:
		return pass(test, models.CheckCategorySEO, "meta description present with length %d", length)
	}
}

func (c *Catalog) checkSingleH1(snapshot *models.PageSnapshot) models.CheckResult {
	const test = "single h1"

	switch count := snapshot.HeadingCount("h1"); count {
	case 0:
		return fail(test, models.CheckCategorySEO, "page has no h1 heading")
	case 1:
		return pass(test, models.CheckCategorySEO, "page has exactly one h1 heading")
	default:
		return fail(test, models.CheckCategorySEO, "page has %d h1 headings, expected exactly one", count)
	}
}

// checkHeadingOrder flags gaps between the heading levels in use, such as an
// h4 on a page whose deepest preceding level is h2. Whether the page starts
// at h1 is the single-h1 check's concern.
func (c *Catalog) checkHeadingOrder(snapshot *models.PageSnapshot) models.CheckResult {
	const test = "heading order"

	var used []int
	for level := 1; level <= 6; level++ {
		if snapshot.HeadingCount(fmt.Sprintf("h%d", level)) > 0 {
			used = append(used, level)
		}
	}

	var skips []string
	for i := 1; i < len(used); i++ {
		if used[i] > used[i-1]+1 {
			skips = append(skips, fmt.Sprintf("h%d to h%d", used[i-1], used[i]))
		}
	}

	if len(skips) > 0 {
		return fail(test, models.CheckCategorySEO, "heading levels skip: %s", strings.Join(skips, ", "))
	}
	return pass(test, models.CheckCategorySEO, "no heading level skips")
}

func (c *Catalog) checkCanonical(snapshot *models.PageSnapshot) models.CheckResult {
	const test = "canonical url"

	if snapshot.CanonicalURL == "" {
		return warn(test, models.CheckCategorySEO, "page declares no canonical URL")
	}
	return pass(test, models.CheckCategorySEO, "canonical URL declared: %s", snapshot.CanonicalURL)
}

func (c *Catalog) checkDoctype(snapshot *models.PageSnapshot) models.CheckResult {
	const test = "doctype"

	switch snapshot.HTMLVersion {
	case "HTML 5":
		return pass(test, models.CheckCategorySEO, "HTML5 doctype declared")
	case "unknown", "":
		return fail(test, models.CheckCategorySEO, "no doctype declaration detected")
	default:
		return warn(test, models.CheckCategorySEO, "legacy doctype in use: %s", snapshot.HTMLVersion)
	}
}
