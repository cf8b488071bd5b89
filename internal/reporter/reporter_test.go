package reporter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagevet/pagevet/internal/models"
)

func sampleReport() *models.InspectionReport {
	report := &models.InspectionReport{
		RequestedURL: "https://example.com",
		FinalURL:     "https://example.com/home",
		StartedAt:    time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		Duration:     1200 * time.Millisecond,
		Page: models.PageFacts{
			Title:           "Example Domain",
			MetaDescription: "An example page",
			Lang:            "en",
			HTMLVersion:     "HTML 5",
			HeadingCounts:   map[string]int{"h1": 1, "h2": 3},
			ImageCount:      4,
			LinkCount:       3,
			InternalLinks:   2,
			ExternalLinks:   1,
			LinkSources:     map[string]int{"dom": 3, "regex": 1},
		},
		Probe: &models.PageProbe{
			InputURL:     "https://example.com",
			StatusCode:   200,
			WebServer:    "nginx",
			Technologies: []string{"Nginx", "Bootstrap"},
		},
		Checks: []models.CheckResult{
			models.NewCheckResult("page title", models.CheckCategorySEO, models.CheckStatusPass, "title present with length 14"),
			models.NewCheckResult("https", models.CheckCategorySecurity, models.CheckStatusPass, "page served over https"),
			models.NewCheckResult("viewport", models.CheckCategoryMobile, models.CheckStatusFail, "no viewport meta tag"),
		},
		Links: models.LinkReport{
			Working: []models.LinkCheckResult{
				{URL: "https://example.com/about", Outcome: models.LinkOutcomeWorking, HTTPStatus: 200, ResolvedVia: models.ResolvedViaFastClient},
				{URL: "https://example.com/docs", Outcome: models.LinkOutcomeWorking, HTTPStatus: 200, ResolvedVia: models.ResolvedViaFastClient},
			},
			NotWorking: []models.LinkCheckResult{
				{URL: "https://example.com/gone", Outcome: models.LinkOutcomeBroken, HTTPStatus: 404, ResolvedVia: models.ResolvedViaFastClient, Error: "HTTP status 404"},
			},
		},
	}
	report.BuildSummary()
	return report
}

func TestWriteJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleReport()))

	var decoded models.InspectionReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "https://example.com", decoded.RequestedURL)
	assert.Len(t, decoded.Checks, 3)
	assert.Equal(t, 1, decoded.Summary.LinksBroken)
	assert.Equal(t, "nginx", decoded.Probe.WebServer)
}

func TestWriteConsoleSections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteConsole(&buf, sampleReport()))
	output := buf.String()

	assert.Contains(t, output, "pagevet inspection of https://example.com")
	assert.Contains(t, output, "final URL: https://example.com/home")
	assert.Contains(t, output, "Example Domain")
	assert.Contains(t, output, "h1:1 h2:3")
	assert.Contains(t, output, "3 (2 internal, 1 external)")
	assert.Contains(t, output, "dom:3 regex:1")
	assert.Contains(t, output, "nginx")
	assert.Contains(t, output, "3 total: 2 passed, 1 failed, 0 warnings")
	assert.Contains(t, output, "no viewport meta tag")
	assert.Contains(t, output, "FAIL")
	assert.Contains(t, output, "3 checked: 2 working, 1 broken")
	assert.Contains(t, output, "https://example.com/gone")
	assert.Contains(t, output, "HTTP status 404")
}

func TestWriteConsoleNoBrokenLinksOmitsTable(t *testing.T) {
	report := sampleReport()
	report.Links.NotWorking = nil
	report.BuildSummary()

	var buf bytes.Buffer
	require.NoError(t, WriteConsole(&buf, report))

	assert.Contains(t, buf.String(), "2 checked: 2 working, 0 broken")
	assert.NotContains(t, buf.String(), "Broken URL")
}

func TestWriteConsoleWithoutProbe(t *testing.T) {
	report := sampleReport()
	report.Probe = nil

	var buf bytes.Buffer
	require.NoError(t, WriteConsole(&buf, report))

	assert.NotContains(t, buf.String(), "Server:")
}

func TestReportConsoleFormatToWriter(t *testing.T) {
	var buf bytes.Buffer
	r := New(Config{Format: FormatConsole}, zerolog.Nop())
	r.out = &buf

	require.NoError(t, r.Report(sampleReport()))
	assert.Contains(t, buf.String(), "CHECKS")
}

func TestReportJSONFormatToWriter(t *testing.T) {
	var buf bytes.Buffer
	r := New(Config{Format: FormatJSON}, zerolog.Nop())
	r.out = &buf

	require.NoError(t, r.Report(sampleReport()))
	assert.Contains(t, buf.String(), `"requested_url": "https://example.com"`)
}

func TestReportWritesJSONOutputFile(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "reports", "run.json")

	var buf bytes.Buffer
	r := New(Config{Format: FormatConsole, OutputFile: outputFile}, zerolog.Nop())
	r.out = &buf

	require.NoError(t, r.Report(sampleReport()))

	// stdout stays human readable, the file gets the JSON document
	assert.Contains(t, buf.String(), "PAGE")

	content, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var decoded models.InspectionReport
	require.NoError(t, json.Unmarshal(content, &decoded))
	assert.Equal(t, 3, decoded.Summary.ChecksTotal)
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatConsole, ParseFormat("console"))
	assert.Equal(t, FormatConsole, ParseFormat(""))
}
