// Package rules evaluates the inspection rule catalog against a page
// snapshot and its probe. Every rule is a pure predicate over the collected
// facts; rules never touch the network, so the catalog can run after the
// fetch completes regardless of what happened to the target since.
//
// Rules that depend on probe facts degrade to a warn result when the probe
// is missing or did not complete, never to a hard failure.
package rules

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pagevet/pagevet/internal/models"
)

// Catalog runs the inspection rules in a fixed order: seo, branding,
// accessibility, security, mobile.
type Catalog struct {
	config Config
	logger zerolog.Logger
}

// NewCatalog creates a rule catalog with the given thresholds.
func NewCatalog(config Config, logger zerolog.Logger) *Catalog {
	return &Catalog{
		config: config.withDefaults(),
		logger: logger.With().Str("component", "RuleCatalog").Logger(),
	}
}

// Evaluate runs every rule against the snapshot and probe. The probe may be
// nil or incomplete; the snapshot must not be nil. The result order is stable
// across runs.
func (c *Catalog) Evaluate(snapshot *models.PageSnapshot, probe *models.PageProbe) []models.CheckResult {
	var results []models.CheckResult
	results = append(results, c.seoChecks(snapshot)...)
	results = append(results, c.brandingChecks(snapshot)...)
	results = append(results, c.accessibilityChecks(snapshot)...)
	results = append(results, c.securityChecks(snapshot, probe)...)
	results = append(results, c.mobileChecks(snapshot)...)

	var passed, failed, warned int
	for _, r := range results {
		switch r.Status {
		case models.CheckStatusPass:
			passed++
		case models.CheckStatusFail:
			failed++
		case models.CheckStatusWarn:
			warned++
		}
	}
	c.logger.Info().
		Str("url", snapshot.URL).
		Int("passed", passed).
		Int("failed", failed).
		Int("warnings", warned).
		Msg("Rule catalog evaluated")

	return results
}

func pass(test string, category models.CheckCategory, format string, args ...any) models.CheckResult {
	return models.NewCheckResult(test, category, models.CheckStatusPass, fmt.Sprintf(format, args...))
}

func fail(test string, category models.CheckCategory, format string, args ...any) models.CheckResult {
	return models.NewCheckResult(test, category, models.CheckStatusFail, fmt.Sprintf(format, args...))
}

func warn(test string, category models.CheckCategory, format string, args ...any) models.CheckResult {
	return models.NewCheckResult(test, category, models.CheckStatusWarn, fmt.Sprintf(format, args...))
}
