package rules

import (
	"strings"

	"github.com/pagevet/pagevet/internal/models"
)

func (c *Catalog) mobileChecks(snapshot *models.PageSnapshot) []models.CheckResult {
	return []models.CheckResult{
		c.checkViewport(snapshot),
		c.checkFontSizes(snapshot),
		c.checkTapTargets(snapshot),
	}
}

func (c *Catalog) checkViewport(snapshot *models.PageSnapshot) models.CheckResult {
	const test = "viewport"

	viewport := strings.TrimSpace(snapshot.Viewport)
	if viewport == "" {
		return fail(test, models.CheckCategoryMobile, "no viewport meta tag")
	}
	if !strings.Contains(strings.ToLower(viewport), "width=device-width") {
		return warn(test, models.CheckCategoryMobile,
			"viewport does not set width=device-width: %q", viewport)
	}
	return pass(test, models.CheckCategoryMobile, "viewport configured for device width")
}

func (c *Catalog) checkFontSizes(snapshot *models.PageSnapshot) models.CheckResult {
	const test = "font size"

	sample := snapshot.FontSample
	if sample == nil || sample.Sampled == 0 {
		return warn(test, models.CheckCategoryMobile, "not evaluated: page rendered without font sampling")
	}

	legible := sample.Sampled - sample.TooSmall
	ratio := float64(legible) / float64(sample.Sampled)
	if ratio < c.config.FontSizeThreshold {
		return fail(test, models.CheckCategoryMobile,
			"%d of %d sampled text nodes render too small (smallest %.3gpx)",
			sample.TooSmall, sample.Sampled, sample.MinPx)
	}
	if sample.TooSmall > 0 {
		return pass(test, models.CheckCategoryMobile,
			"%d of %d sampled text nodes at legible size", legible, sample.Sampled)
	}
	return pass(test, models.CheckCategoryMobile,
		"all %d sampled text nodes at legible size", sample.Sampled)
}

func (c *Catalog) checkTapTargets(snapshot *models.PageSnapshot) models.CheckResult {
	const test = "tap targets"

	sample := snapshot.TapTargetSample
	if sample == nil || sample.Sampled == 0 {
		return warn(test, models.CheckCategoryMobile, "not evaluated: page rendered without tap target sampling")
	}

	adequate := sample.Sampled - sample.TooSmall
	ratio := float64(adequate) / float64(sample.Sampled)
	if ratio < c.config.TapTargetThreshold {
		return fail(test, models.CheckCategoryMobile,
			"%d of %d sampled tap targets below the minimum hit size", sample.TooSmall, sample.Sampled)
	}
	if sample.TooSmall > 0 {
		return pass(test, models.CheckCategoryMobile,
			"%d of %d sampled tap targets meet the minimum hit size", adequate, sample.Sampled)
	}
	return pass(test, models.CheckCategoryMobile,
		"all %d sampled tap targets meet the minimum hit size", sample.Sampled)
}
