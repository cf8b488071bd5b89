package models

// CheckStatus is the outcome of one catalog check.
type CheckStatus string

const (
	CheckStatusPass CheckStatus = "pass"
	CheckStatusFail CheckStatus = "fail"
	CheckStatusWarn CheckStatus = "warn"
)

// CheckCategory groups catalog checks for reporting.
type CheckCategory string

const (
	CheckCategorySEO           CheckCategory = "seo"
	CheckCategoryBranding      CheckCategory = "branding"
	CheckCategoryAccessibility CheckCategory = "accessibility"
	CheckCategorySecurity      CheckCategory = "security"
	CheckCategoryMobile        CheckCategory = "mobile"
	CheckCategoryLinks         CheckCategory = "links"
)

// CheckResult is the generic result record produced by every check, including
// the two link-verification entries assembled by the aggregator.
type CheckResult struct {
	Test     string         `json:"test"`
	Category CheckCategory  `json:"category"`
	Status   CheckStatus    `json:"status"`
	Message  string         `json:"message"`
	Details  map[string]any `json:"details,omitempty"`
}

// NewCheckResult builds a result without details.
func NewCheckResult(test string, category CheckCategory, status CheckStatus, message string) CheckResult {
	return CheckResult{
		Test:     test,
		Category: category,
		Status:   status,
		Message:  message,
	}
}
