package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/starloomhq/starloom/internal/analysis/domain"
	chartdomain "github.com/starloomhq/starloom/internal/chart/domain"
)

// Section outlines per tier. The downstream model is instructed to produce
// each section; the demo-mode reports carry the same headers so the content
// contract holds on both paths.
var (
	basicSections = []string{
		"Core Personality",
		"Life Purpose",
		"Relationships & Career",
		"Current Growth",
	}

	detailedSections = []string{
		"Complete Personality Profile",
		"Soul Mission & Karmic Patterns",
		"Relationship Blueprint",
		"Career & Life Purpose",
		"Complete House Analysis",
		"Advanced Aspect Analysis",
		"Life Cycles & Timing",
		"Shadow Work & Healing",
		"Practical Application",
		"Future Guidance",
	}

	comprehensiveSections = []string{
		"Overall Compatibility Assessment",
		"Communication & Mental Connection",
		"Emotional & Intimate Connection",
		"Power Dynamics & Life Goals",
		"Practical & Daily Life",
		"Spiritual & Growth Connection",
		"Challenges & Growth Areas",
		"Harmonious Aspects & Strengths",
		"Timing & Relationship Phases",
		"Practical Recommendations",
		"Future Potential & Guidance",
	}
)

func sectionsFor(tier domain.Tier) []string {
	switch tier {
	case domain.TierDetailed:
		return detailedSections
	case domain.TierComprehensive:
		return comprehensiveSections
	default:
		return basicSections
	}
}

// BuildPrompt renders chart data as plain bullet text and appends the
// tier-specific instruction outline. Comprehensive requires a partner chart.
// The subject's age is computed against now, the generation timestamp.
func BuildPrompt(chart *chartdomain.ChartPayload, partner *chartdomain.ChartPayload, tier domain.Tier, now time.Time) (string, error) {
	if tier == domain.TierComprehensive && partner == nil {
		return "", domain.ErrMissingPartnerData
	}

	var b strings.Builder
	writeChartInfo(&b, "Birth Chart Data", chart, now)

	switch tier {
	case domain.TierBasic:
		b.WriteString(`
You are an expert astrologer providing a BASIC astrological reading. Focus on essential insights that are immediately practical and actionable.

Please provide a concise, beginner-friendly analysis covering:

1. **Core Personality (2-3 paragraphs)** - main character traits based on Sun, Moon, and Ascendant, how they naturally express themselves, key strengths
2. **Life Purpose (1-2 paragraphs)** - main life lessons and soul mission, simple guidance for direction
3. **Relationships & Career (2-3 paragraphs)** - basic relationship patterns and needs, career inclinations and work style
4. **Current Growth (1-2 paragraphs)** - what they are learning now, with 3-5 practical tips for personal development

Keep the tone warm, encouraging, and easy to understand. Avoid complex astrological jargon.`)

	case domain.TierDetailed:
		b.WriteString(`
You are an expert astrologer providing a DETAILED astrological reading. This is a comprehensive analysis that goes deeper into psychological patterns and life themes.

Please provide an in-depth analysis covering:

1. **Complete Personality Profile (4-5 paragraphs)** - exhaustive personality analysis using all planets, psychological archetypes, cognitive processes, emotional intelligence
2. **Soul Mission & Karmic Patterns (3-4 paragraphs)** - deep soul lessons, evolutionary purpose, what they are here to heal and transform
3. **Relationship Blueprint (4-5 paragraphs)** - complete relationship patterns, partnership compatibility factors, family dynamics, how they give and receive love
4. **Career & Life Purpose (4-5 paragraphs)** - career paths, professional strengths, financial patterns, public image
5. **Complete House Analysis (3-4 paragraphs)** - house-by-house interpretation and how the houses interact
6. **Advanced Aspect Analysis (3-4 paragraphs)** - all major aspects, aspect patterns, and how to work with challenging aspects
7. **Life Cycles & Timing (3-4 paragraphs)** - current life phase, major transitions, Saturn returns and other cycles
8. **Shadow Work & Healing (3-4 paragraphs)** - shadow patterns, self-sabotage, healing opportunities and integration
9. **Practical Application (4-5 paragraphs)** - 15-20 specific actionable recommendations, daily practices, long-term growth strategy
10. **Future Guidance (2-3 paragraphs)** - upcoming opportunities and challenges, long-term vision

Use advanced astrological concepts while maintaining clarity. This should be a complete life blueprint they can reference for years.`)

	case domain.TierComprehensive:
		writeChartInfo(&b, "Partner Birth Chart Data", partner, now)
		b.WriteString(`
You are a master astrologer providing a COMPREHENSIVE RELATIONSHIP COMPATIBILITY ANALYSIS (Synastry). This is the most detailed relationship analysis possible.

Please provide a complete, master-level relationship analysis covering:

1. **Overall Compatibility Assessment (3-4 paragraphs)** - relationship potential, key strengths and challenges, karmic connection
2. **Communication & Mental Connection (3-4 paragraphs)** - Mercury-Mercury aspects, intellectual compatibility, communication challenges and solutions
3. **Emotional & Intimate Connection (3-4 paragraphs)** - Venus-Mars attraction, Moon aspects, emotional needs and mutual support
4. **Power Dynamics & Life Goals (3-4 paragraphs)** - Sun-Sun aspects, leadership roles, shared aspirations
5. **Practical & Daily Life (3-4 paragraphs)** - Saturn aspects and commitment, routines, financial and material security
6. **Spiritual & Growth Connection (3-4 paragraphs)** - Neptune and Jupiter aspects, shared beliefs, mutual evolution
7. **Challenges & Growth Areas (3-4 paragraphs)** - Mars conflicts, Saturn lessons, Pluto transformation, working through difficulty together
8. **Harmonious Aspects & Strengths (3-4 paragraphs)** - trines, sextiles and conjunctions, natural talents and shared abilities
9. **Timing & Relationship Phases (3-4 paragraphs)** - current phase, milestones, when to make major decisions
10. **Practical Recommendations (4-5 paragraphs)** - 15-20 specific recommendations, communication strategies, conflict resolution
11. **Future Potential & Guidance (2-3 paragraphs)** - long-term potential, how to maintain and deepen the connection

Use advanced synastry concepts while maintaining clarity. This should be a complete relationship guide for their journey together.`)
	}

	return b.String(), nil
}

func writeChartInfo(b *strings.Builder, title string, chart *chartdomain.ChartPayload, now time.Time) {
	data := chart.BirthData
	age := now.Year() - data.BirthDate.Year()

	fmt.Fprintf(b, "%s:\n", title)
	fmt.Fprintf(b, "- Date: %s\n", data.BirthDate.Format("January 2, 2006"))
	fmt.Fprintf(b, "- Time: %s\n", data.BirthTime)
	fmt.Fprintf(b, "- Location: %s\n", data.Location)
	fmt.Fprintf(b, "- Age: %d years\n\n", age)

	b.WriteString("Key Planetary Positions:\n")
	for _, planet := range chartdomain.Planets {
		if pos, ok := chart.PlanetaryPositions[planet]; ok {
			fmt.Fprintf(b, "- %s: %s %.0f° (House %d)\n", planet, pos.Sign, pos.Degree, pos.House)
		}
	}

	b.WriteString("\nImportant Aspects:\n")
	for _, aspect := range chart.Aspects {
		fmt.Fprintf(b, "- %s %s %s (%.0f° orb)\n", aspect.Planet1, aspect.Type, aspect.Planet2, aspect.Orb)
	}

	b.WriteString("\nHouses:\n")
	for _, house := range chart.Houses {
		fmt.Fprintf(b, "- House %d: %s %.0f°\n", house.House, house.Sign, house.Degree)
	}
	b.WriteString("\n")
}
