package linkchecker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagevet/pagevet/internal/models"
)

func TestAggregatePartitionsPreservingOrder(t *testing.T) {
	results := []models.LinkCheckResult{
		{URL: "https://a.example.com", Outcome: models.LinkOutcomeWorking},
		{URL: "https://b.example.com", Outcome: models.LinkOutcomeBroken, Error: "HTTP status 500"},
		{URL: "https://c.example.com", Outcome: models.LinkOutcomeWorking},
		{URL: "https://d.example.com", Outcome: models.LinkOutcomeBroken, Error: "HTTP status 404"},
		{URL: "https://e.example.com", Outcome: models.LinkOutcomeWorking},
	}

	report := Aggregate(results)

	require.Len(t, report.Working, 3)
	require.Len(t, report.NotWorking, 2)
	assert.Equal(t, "https://a.example.com", report.Working[0].URL)
	assert.Equal(t, "https://c.example.com", report.Working[1].URL)
	assert.Equal(t, "https://e.example.com", report.Working[2].URL)
	assert.Equal(t, "https://b.example.com", report.NotWorking[0].URL)
	assert.Equal(t, "https://d.example.com", report.NotWorking[1].URL)
	assert.Equal(t, 5, report.Total())
}

func TestAggregateEmpty(t *testing.T) {
	report := Aggregate(nil)

	assert.NotNil(t, report.Working)
	assert.NotNil(t, report.NotWorking)
	assert.Zero(t, report.Total())
}

func TestBuildLinkChecksAllWorking(t *testing.T) {
	report := Aggregate([]models.LinkCheckResult{
		{URL: "https://a.example.com", Outcome: models.LinkOutcomeWorking},
		{URL: "https://b.example.com", Outcome: models.LinkOutcomeWorking},
	})

	checks := BuildLinkChecks(report)

	require.Len(t, checks, 2)
	assert.Equal(t, "working links", checks[0].Test)
	assert.Equal(t, models.CheckCategoryLinks, checks[0].Category)
	assert.Equal(t, models.CheckStatusPass, checks[0].Status)
	assert.Equal(t, "2 of 2 links working", checks[0].Message)

	assert.Equal(t, "broken links", checks[1].Test)
	assert.Equal(t, models.CheckStatusPass, checks[1].Status)
	assert.Equal(t, "no broken links found", checks[1].Message)
}

func TestBuildLinkChecksWithBroken(t *testing.T) {
	report := Aggregate([]models.LinkCheckResult{
		{URL: "https://a.example.com", Outcome: models.LinkOutcomeWorking},
		{URL: "https://b.example.com", Outcome: models.LinkOutcomeBroken, Error: "HTTP status 500"},
		{URL: "https://c.example.com", Outcome: models.LinkOutcomeBroken, Error: "HTTP status 404"},
	})

	checks := BuildLinkChecks(report)

	require.Len(t, checks, 2)
	assert.Equal(t, "1 of 3 links working", checks[0].Message)
	assert.Equal(t, models.CheckStatusFail, checks[1].Status)
	assert.Equal(t, "2 of 3 links broken", checks[1].Message)

	links, ok := checks[1].Details["links"].([]models.LinkCheckResult)
	require.True(t, ok)
	require.Len(t, links, 2)
	assert.Equal(t, "https://b.example.com", links[0].URL)
	assert.Equal(t, "https://c.example.com", links[1].URL)
}
