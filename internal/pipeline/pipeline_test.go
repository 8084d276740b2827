package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leasehawk/server/config"
	"leasehawk/server/internal/models"
)

var testNow = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func testOptions() Options {
	cfg := config.DefaultScoringConfig()
	return Options{
		RelevanceThreshold: cfg.RelevanceThreshold,
		Urgency:            cfg.Urgency,
	}
}

func prospectus(id int64, number string, value float64, daysOut int) models.Prospectus {
	return models.Prospectus{
		ID:                  id,
		ProspectusNumber:    number,
		Agency:              "General Services Administration",
		Location:            "Denver",
		State:               "CO",
		EstimatedSqft:       25000,
		EstimatedAnnualCost: value,
		LeaseExpiration:     models.KnownExpiration(testNow.AddDate(0, 0, daysOut)),
	}
}

func TestBuildMatchStatistics(t *testing.T) {
	p := prospectus(1, "PCO-0001-DE26", 1000000, 300)
	matches := map[int64][]models.Match{
		1: {
			{ProspectusID: 1, PropertyID: 10, TotalScore: 90},
			{ProspectusID: 1, PropertyID: 11, TotalScore: 60},
		},
	}

	result := Build([]models.Prospectus{p}, matches, testNow, testOptions())
	require.Len(t, result.Opportunities, 1)

	op := result.Opportunities[0]
	assert.Equal(t, 2, op.MatchCount)
	assert.Equal(t, 90.0, op.BestMatchScore)
	assert.Equal(t, 75.0, op.AvgMatchScore)
	assert.Equal(t, "Denver, CO", op.Location)
	assert.Equal(t, "Medium", op.Urgency)
	require.NotNil(t, op.DaysUntilExpiration)
	assert.Equal(t, 300, *op.DaysUntilExpiration)
}

func TestBuildIncludesProspectusWithoutMatches(t *testing.T) {
	p := prospectus(1, "PCO-0001-DE26", 500000, 700)

	result := Build([]models.Prospectus{p}, nil, testNow, testOptions())
	require.Len(t, result.Opportunities, 1)

	op := result.Opportunities[0]
	assert.Equal(t, 0, op.MatchCount)
	assert.Equal(t, 0.0, op.BestMatchScore)
	assert.Equal(t, 0.0, op.AvgMatchScore)
}

func TestBuildSummary(t *testing.T) {
	prospectuses := []models.Prospectus{
		prospectus(1, "A", 1000000, 30),  // High
		prospectus(2, "B", 2000000, 300), // Medium
		prospectus(3, "C", 500000, 700),  // Low
	}
	// Unknown expiration counts as Low
	tbd := prospectus(4, "D", 250000, 0)
	tbd.LeaseExpiration = models.ParseExpiration("TBD")
	prospectuses = append(prospectuses, tbd)

	result := Build(prospectuses, nil, testNow, testOptions())

	assert.Equal(t, 4, result.Summary.TotalOpportunities)
	assert.Equal(t, 3750000.0, result.Summary.TotalAnnualValue)
	assert.Equal(t, 1, result.Summary.HighUrgency)
	assert.Equal(t, 1, result.Summary.MediumUrgency)
	assert.Equal(t, 2, result.Summary.LowUrgency)
}

func TestBuildSummaryValueIndependentOfMatches(t *testing.T) {
	p := prospectus(1, "A", 1000000, 300)

	withMatches := Build([]models.Prospectus{p}, map[int64][]models.Match{
		1: {{ProspectusID: 1, PropertyID: 10, TotalScore: 95}},
	}, testNow, testOptions())
	withoutMatches := Build([]models.Prospectus{p}, nil, testNow, testOptions())

	assert.Equal(t, withMatches.Summary.TotalAnnualValue, withoutMatches.Summary.TotalAnnualValue)
}

func TestSortByValue(t *testing.T) {
	prospectuses := []models.Prospectus{
		prospectus(1, "A", 500000, 300),
		prospectus(2, "B", 2000000, 300),
		prospectus(3, "C", 1000000, 300),
	}

	opts := testOptions()
	opts.Sort = SortValue
	result := Build(prospectuses, nil, testNow, opts)

	require.Len(t, result.Opportunities, 3)
	assert.Equal(t, "B", result.Opportunities[0].ProspectusNumber)
	assert.Equal(t, "C", result.Opportunities[1].ProspectusNumber)
	assert.Equal(t, "A", result.Opportunities[2].ProspectusNumber)
}

func TestSortByUrgency(t *testing.T) {
	prospectuses := []models.Prospectus{
		prospectus(1, "A", 500000, 700),  // Low
		prospectus(2, "B", 1000000, 30),  // High, lower value
		prospectus(3, "C", 2000000, 30),  // High, higher value
		prospectus(4, "D", 1000000, 300), // Medium
	}

	opts := testOptions()
	opts.Sort = SortUrgency
	result := Build(prospectuses, nil, testNow, opts)

	got := make([]string, 0, 4)
	for _, op := range result.Opportunities {
		got = append(got, op.ProspectusNumber)
	}
	assert.Equal(t, []string{"C", "B", "D", "A"}, got)
}

func TestSortStability(t *testing.T) {
	// Equal values keep insertion order
	prospectuses := []models.Prospectus{
		prospectus(1, "first", 1000000, 300),
		prospectus(2, "second", 1000000, 300),
		prospectus(3, "third", 1000000, 300),
	}

	opts := testOptions()
	opts.Sort = SortValue
	result := Build(prospectuses, nil, testNow, opts)

	assert.Equal(t, "first", result.Opportunities[0].ProspectusNumber)
	assert.Equal(t, "second", result.Opportunities[1].ProspectusNumber)
	assert.Equal(t, "third", result.Opportunities[2].ProspectusNumber)
}

func TestRelevanceThreshold(t *testing.T) {
	p := prospectus(1, "A", 1000000, 300)
	matches := map[int64][]models.Match{
		1: {
			{ProspectusID: 1, PropertyID: 10, TotalScore: 80},
			{ProspectusID: 1, PropertyID: 11, TotalScore: 40},
			{ProspectusID: 1, PropertyID: 12, TotalScore: 0},
		},
	}

	opts := testOptions()
	opts.RelevanceThreshold = 50
	result := Build([]models.Prospectus{p}, matches, testNow, opts)

	op := result.Opportunities[0]
	assert.Equal(t, 1, op.MatchCount)
	assert.Equal(t, 80.0, op.BestMatchScore)
}

func TestParseSortCriterion(t *testing.T) {
	for _, valid := range []string{"", "created", "value", "size", "matches", "urgency"} {
		_, err := ParseSortCriterion(valid)
		assert.NoError(t, err, "criterion %q", valid)
	}

	_, err := ParseSortCriterion("price")
	assert.Error(t, err)
}

func TestTruncatedSpecialRequirements(t *testing.T) {
	p := prospectus(1, "A", 1000000, 300)
	long := make([]byte, 150)
	for i := range long {
		long[i] = 'x'
	}
	p.SpecialRequirements = string(long)

	result := Build([]models.Prospectus{p}, nil, testNow, testOptions())
	assert.Len(t, result.Opportunities[0].SpecialRequirements, 103)
}
