package models

import "time"

// LinkReport partitions link resolution outcomes, preserving the relative
// order of the original link sequence within each partition.
type LinkReport struct {
	Working    []LinkCheckResult `json:"working"`
	NotWorking []LinkCheckResult `json:"not_working"`
}

// Total returns the number of resolved links across both partitions.
func (lr *LinkReport) Total() int {
	return len(lr.Working) + len(lr.NotWorking)
}

// PageFacts is the snapshot digest embedded in the report. The raw HTML and
// script bodies stay out of the report output.
type PageFacts struct {
	Title           string         `json:"title,omitempty"`
	MetaDescription string         `json:"meta_description,omitempty"`
	Lang            string         `json:"lang,omitempty"`
	HTMLVersion     string         `json:"html_version,omitempty"`
	CanonicalURL    string         `json:"canonical_url,omitempty"`
	HeadingCounts   map[string]int `json:"heading_counts,omitempty"`
	ImageCount      int            `json:"image_count"`
	LinkCount       int            `json:"link_count"`
	InternalLinks   int            `json:"internal_links"`
	ExternalLinks   int            `json:"external_links"`

	// LinkSources counts the discovered links per extraction pass; a link
	// seen by several passes counts under each of them.
	LinkSources map[string]int `json:"link_sources,omitempty"`
}

// ReportSummary carries the counters rendered at the top of the report.
type ReportSummary struct {
	ChecksTotal  int `json:"checks_total"`
	ChecksPassed int `json:"checks_passed"`
	ChecksFailed int `json:"checks_failed"`
	ChecksWarned int `json:"checks_warned"`
	LinksTotal   int `json:"links_total"`
	LinksWorking int `json:"links_working"`
	LinksBroken  int `json:"links_broken"`
}

// InspectionReport is the full output of one inspection run.
type InspectionReport struct {
	RequestedURL string        `json:"requested_url"`
	FinalURL     string        `json:"final_url,omitempty"`
	StartedAt    time.Time     `json:"started_at"`
	Duration     time.Duration `json:"duration_ns"`

	Page    PageFacts     `json:"page"`
	Probe   *PageProbe    `json:"probe,omitempty"`
	Checks  []CheckResult `json:"checks"`
	Links   LinkReport    `json:"links"`
	Summary ReportSummary `json:"summary"`
}

// BuildSummary recomputes the summary counters from the report content.
func (r *InspectionReport) BuildSummary() {
	summary := ReportSummary{
		ChecksTotal:  len(r.Checks),
		LinksTotal:   r.Links.Total(),
		LinksWorking: len(r.Links.Working),
		LinksBroken:  len(r.Links.NotWorking),
	}
	for _, check := range r.Checks {
		switch check.Status {
		case CheckStatusPass:
			summary.ChecksPassed++
		case CheckStatusFail:
			summary.ChecksFailed++
		case CheckStatusWarn:
			summary.ChecksWarned++
		}
	}
	r.Summary = summary
}
