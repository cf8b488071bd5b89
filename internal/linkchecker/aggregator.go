package linkchecker

import (
	"fmt"

	"github.com/pagevet/pagevet/internal/models"
)

// Aggregate partitions link results by outcome. Both partitions preserve the
// relative order of the input sequence.
func Aggregate(results []models.LinkCheckResult) models.LinkReport {
	report := models.LinkReport{
		Working:    make([]models.LinkCheckResult, 0, len(results)),
		NotWorking: make([]models.LinkCheckResult, 0),
	}
	for _, result := range results {
		if result.IsWorking() {
			report.Working = append(report.Working, result)
		} else {
			report.NotWorking = append(report.NotWorking, result)
		}
	}
	return report
}

// BuildLinkChecks renders the partition as two catalog check entries so link
// verification fits the generic check-result format used by the report.
func BuildLinkChecks(report models.LinkReport) []models.CheckResult {
	total := report.Total()

	working := models.NewCheckResult(
		"working links",
		models.CheckCategoryLinks,
		models.CheckStatusPass,
		fmt.Sprintf("%d of %d links working", len(report.Working), total),
	)
	working.Details = map[string]any{"links": report.Working}

	brokenStatus := models.CheckStatusPass
	brokenMessage := "no broken links found"
	if len(report.NotWorking) > 0 {
		brokenStatus = models.CheckStatusFail
		brokenMessage = fmt.Sprintf("%d of %d links broken", len(report.NotWorking), total)
	}
	broken := models.NewCheckResult("broken links", models.CheckCategoryLinks, brokenStatus, brokenMessage)
	broken.Details = map[string]any{"links": report.NotWorking}

	return []models.CheckResult{working, broken}
}
