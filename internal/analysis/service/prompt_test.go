package service

import (
	"testing"
	"time"

	"github.com/starloomhq/starloom/internal/analysis/domain"
	chartdomain "github.com/starloomhq/starloom/internal/chart/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChart(id string) *chartdomain.ChartPayload {
	return &chartdomain.ChartPayload{
		ID: id,
		BirthData: chartdomain.BirthSubject{
			Name:      "Jane Doe",
			BirthDate: time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC),
			BirthTime: "12:00",
			Latitude:  42.6977,
			Longitude: 23.3219,
			Location:  "Sofia, Bulgaria",
		},
		PlanetaryPositions: map[chartdomain.Planet]chartdomain.Placement{
			chartdomain.PlanetSun:     {Sign: "Taurus", Degree: 24, House: 10},
			chartdomain.PlanetMoon:    {Sign: "Cancer", Degree: 22, House: 4},
			chartdomain.PlanetMercury: {Sign: "Aries", Degree: 8, House: 1},
			chartdomain.PlanetVenus:   {Sign: "Pisces", Degree: 28, House: 12},
			chartdomain.PlanetMars:    {Sign: "Taurus", Degree: 5, House: 2},
			chartdomain.PlanetJupiter: {Sign: "Sagittarius", Degree: 12, House: 9},
			chartdomain.PlanetSaturn:  {Sign: "Capricorn", Degree: 18, House: 10},
			chartdomain.PlanetUranus:  {Sign: "Aquarius", Degree: 3, House: 11},
			chartdomain.PlanetNeptune: {Sign: "Pisces", Degree: 25, House: 12},
			chartdomain.PlanetPluto:   {Sign: "Capricorn", Degree: 29, House: 10},
		},
		Houses: []chartdomain.HouseCusp{
			{House: 1, Sign: "Aries", Degree: 12}, {House: 2, Sign: "Taurus", Degree: 3},
			{House: 3, Sign: "Gemini", Degree: 7}, {House: 4, Sign: "Cancer", Degree: 19},
			{House: 5, Sign: "Leo", Degree: 22}, {House: 6, Sign: "Virgo", Degree: 1},
			{House: 7, Sign: "Libra", Degree: 14}, {House: 8, Sign: "Scorpio", Degree: 9},
			{House: 9, Sign: "Sagittarius", Degree: 27}, {House: 10, Sign: "Capricorn", Degree: 5},
			{House: 11, Sign: "Aquarius", Degree: 16}, {House: 12, Sign: "Pisces", Degree: 21},
		},
		Aspects: []chartdomain.Aspect{
			{Planet1: chartdomain.PlanetSun, Planet2: chartdomain.PlanetMoon, Type: "Conjunction", Orb: 7},
		},
		CalculatedAt: time.Now().UTC(),
	}
}

var promptNow = time.Date(2024, 4, 25, 12, 0, 0, 0, time.UTC)

func TestBuildPrompt_ComprehensiveRequiresPartner(t *testing.T) {
	_, err := BuildPrompt(testChart("chart_1"), nil, domain.TierComprehensive, promptNow)
	assert.ErrorIs(t, err, domain.ErrMissingPartnerData)

	prompt, err := BuildPrompt(testChart("chart_1"), testChart("chart_2"), domain.TierComprehensive, promptNow)
	require.NoError(t, err)
	assert.Contains(t, prompt, "Partner Birth Chart Data")
	assert.Contains(t, prompt, "Synastry")
}

func TestBuildPrompt_TierOutlines(t *testing.T) {
	chart := testChart("chart_1")

	basic, err := BuildPrompt(chart, nil, domain.TierBasic, promptNow)
	require.NoError(t, err)
	for _, section := range basicSections {
		assert.Contains(t, basic, section)
	}
	assert.NotContains(t, basic, "Shadow Work & Healing")

	detailed, err := BuildPrompt(chart, nil, domain.TierDetailed, promptNow)
	require.NoError(t, err)
	for _, section := range detailedSections {
		assert.Contains(t, detailed, section)
	}

	comprehensive, err := BuildPrompt(chart, testChart("chart_2"), domain.TierComprehensive, promptNow)
	require.NoError(t, err)
	for _, section := range comprehensiveSections {
		assert.Contains(t, comprehensive, section)
	}
}

func TestBuildPrompt_ChartDataRendered(t *testing.T) {
	prompt, err := BuildPrompt(testChart("chart_1"), nil, domain.TierBasic, promptNow)
	require.NoError(t, err)

	assert.Contains(t, prompt, "- Sun: Taurus 24° (House 10)")
	assert.Contains(t, prompt, "- Location: Sofia, Bulgaria")
	assert.Contains(t, prompt, "- Sun Conjunction Moon (7° orb)")
	assert.Contains(t, prompt, "- House 12: Pisces 21°")
	// age is derived from the injected timestamp, not the wall clock
	assert.Contains(t, prompt, "- Age: 34 years")
}
