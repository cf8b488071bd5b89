package reporter

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rodaine/table"

	"github.com/pagevet/pagevet/internal/models"
)

var headingLevels = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

var linkSourceOrder = []string{"dom", "regex", "attribute-scan", "script"}

// WriteConsole renders the human-readable report: a header, the page facts,
// the check results grouped by category and the link summary with broken-link
// detail. Write failures on a console stream are not actionable, so the
// sections write unchecked.
func WriteConsole(w io.Writer, report *models.InspectionReport) error {
	writeHeader(w, report)
	writePageFacts(w, report)
	writeChecks(w, report)
	writeLinks(w, report)
	return nil
}

func writeHeader(w io.Writer, report *models.InspectionReport) {
	fmt.Fprintf(w, "\npagevet inspection of %s\n", report.RequestedURL)
	if report.FinalURL != "" && report.FinalURL != report.RequestedURL {
		fmt.Fprintf(w, "final URL: %s\n", report.FinalURL)
	}
	fmt.Fprintf(w, "started %s, finished in %s\n",
		report.StartedAt.Format(time.RFC3339),
		report.Duration.Round(time.Millisecond))
}

func writePageFacts(w io.Writer, report *models.InspectionReport) {
	facts := report.Page

	fmt.Fprintf(w, "\nPAGE\n")
	writeFact(w, "Title", facts.Title)
	writeFact(w, "Meta description", facts.MetaDescription)
	writeFact(w, "Language", facts.Lang)
	writeFact(w, "HTML version", facts.HTMLVersion)
	writeFact(w, "Canonical URL", facts.CanonicalURL)
	writeFact(w, "Headings", formatHeadingCounts(facts.HeadingCounts))
	writeFact(w, "Images", strconv.Itoa(facts.ImageCount))
	writeFact(w, "Links", fmt.Sprintf("%d (%d internal, %d external)",
		facts.LinkCount, facts.InternalLinks, facts.ExternalLinks))
	writeFact(w, "Link sources", formatLinkSources(facts.LinkSources))

	if report.Probe.Completed() {
		server := report.Probe.WebServer
		if server == "" {
			server = "-"
		}
		writeFact(w, "Server", server)
		if len(report.Probe.Technologies) > 0 {
			writeFact(w, "Technologies", strings.Join(report.Probe.Technologies, ", "))
		}
	}
}

func writeFact(w io.Writer, label, value string) {
	if value == "" {
		value = "-"
	}
	fmt.Fprintf(w, "  %-18s %s\n", label+":", value)
}

func formatHeadingCounts(counts map[string]int) string {
	var parts []string
	for _, level := range headingLevels {
		if n := counts[level]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", level, n))
		}
	}
	return strings.Join(parts, " ")
}

func formatLinkSources(counts map[string]int) string {
	var parts []string
	for _, source := range linkSourceOrder {
		if n := counts[source]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", source, n))
		}
	}
	return strings.Join(parts, " ")
}

func writeChecks(w io.Writer, report *models.InspectionReport) {
	summary := report.Summary
	fmt.Fprintf(w, "\nCHECKS  %d total: %d passed, %d failed, %d warnings\n",
		summary.ChecksTotal, summary.ChecksPassed, summary.ChecksFailed, summary.ChecksWarned)

	// Results arrive in catalog order, so rows stay contiguous per category.
	tbl := table.New("Category", "Check", "Status", "Message").WithWriter(w)
	for _, check := range report.Checks {
		tbl.AddRow(string(check.Category), check.Test, strings.ToUpper(string(check.Status)), check.Message)
	}
	tbl.Print()
}

func writeLinks(w io.Writer, report *models.InspectionReport) {
	summary := report.Summary
	fmt.Fprintf(w, "\nLINKS  %d checked: %d working, %d broken\n",
		summary.LinksTotal, summary.LinksWorking, summary.LinksBroken)

	if len(report.Links.NotWorking) == 0 {
		return
	}

	tbl := table.New("Broken URL", "Status", "Via", "Error").WithWriter(w)
	for _, result := range report.Links.NotWorking {
		tbl.AddRow(result.URL, statusCell(result.HTTPStatus), string(result.ResolvedVia), result.Error)
	}
	tbl.Print()
}

func statusCell(status int) string {
	if status == 0 {
		return "-"
	}
	return strconv.Itoa(status)
}
