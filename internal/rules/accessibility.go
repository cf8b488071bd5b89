package rules

import (
	"strings"

	"github.com/pagevet/pagevet/internal/models"
)

func (c *Catalog) accessibilityChecks(snapshot *models.PageSnapshot) []models.CheckResult {
	return []models.CheckResult{
		c.checkImageAltText(snapshot),
		c.checkFormLabels(snapshot),
		c.checkLinkText(snapshot),
		c.checkLang(snapshot),
	}
}

func (c *Catalog) checkImageAltText(snapshot *models.PageSnapshot) models.CheckResult {
	const test = "image alt text"

	total := len(snapshot.Images)
	if total == 0 {
		return pass(test, models.CheckCategoryAccessibility, "no images on the page")
	}

	withAlt := 0
	for _, image := range snapshot.Images {
		if strings.TrimSpace(image.Alt) != "" {
			withAlt++
		}
	}

	ratio := float64(withAlt) / float64(total)
	if ratio < c.config.AltTextThreshold {
		return fail(test, models.CheckCategoryAccessibility,
			"%d of %d images lack alt text (coverage %.0f%% below %.0f%%)",
			total-withAlt, total, ratio*100, c.config.AltTextThreshold*100)
	}
	if withAlt < total {
		return pass(test, models.CheckCategoryAccessibility, "%d of %d images have alt text", withAlt, total)
	}
	return pass(test, models.CheckCategoryAccessibility, "all %d images have alt text", total)
}

func (c *Catalog) checkFormLabels(snapshot *models.PageSnapshot) models.CheckResult {
	const test = "form labels"

	var inputs, unlabeled int
	for _, form := range snapshot.Forms {
		inputs += form.Inputs
		unlabeled += form.UnlabeledInputs
	}

	if inputs == 0 {
		return pass(test, models.CheckCategoryAccessibility, "no form controls on the page")
	}
	if unlabeled > 0 {
		return fail(test, models.CheckCategoryAccessibility,
			"%d of %d form controls have no associated label", unlabeled, inputs)
	}
	return pass(test, models.CheckCategoryAccessibility, "all %d form controls are labeled", inputs)
}

// checkLinkText judges only anchors read from the DOM; links mined from
// scripts or raw HTML have no anchor text to begin with.
func (c *Catalog) checkLinkText(snapshot *models.PageSnapshot) models.CheckResult {
	const test = "link text"

	var anchors, empty int
	for i := range snapshot.Links {
		link := &snapshot.Links[i]
		if !link.HasSource(models.DiscoverySourceDOM) {
			continue
		}
		anchors++
		if strings.TrimSpace(link.Text) == "" {
			empty++
		}
	}

	if anchors == 0 {
		return pass(test, models.CheckCategoryAccessibility, "no anchor links on the page")
	}
	if empty > 0 {
		return fail(test, models.CheckCategoryAccessibility,
			"%d of %d anchor links have no discernible text", empty, anchors)
	}
	return pass(test, models.CheckCategoryAccessibility, "all %d anchor links carry text", anchors)
}

func (c *Catalog) checkLang(snapshot *models.PageSnapshot) models.CheckResult {
	const test = "lang attribute"

	if strings.TrimSpace(snapshot.Lang) == "" {
		return fail(test, models.CheckCategoryAccessibility, "html element has no lang attribute")
	}
	return pass(test, models.CheckCategoryAccessibility, "document language declared: %s", snapshot.Lang)
}
