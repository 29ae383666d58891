package service

import (
	"fmt"
	"strings"

	"github.com/starloomhq/starloom/internal/analysis/domain"
	chartdomain "github.com/starloomhq/starloom/internal/chart/domain"
)

// Demo-mode reports, returned when no completion credentials are configured.
// Each report carries every section header of its tier's outline.

func mockModel(tier domain.Tier) string {
	return fmt.Sprintf("gpt-4-mock-%s", tier)
}

func mockContent(chart *chartdomain.ChartPayload, tier domain.Tier) string {
	var b strings.Builder

	title := map[domain.Tier]string{
		domain.TierBasic:         "Basic Reading",
		domain.TierDetailed:      "Detailed Reading",
		domain.TierComprehensive: "Comprehensive Reading",
	}[tier]

	data := chart.BirthData
	fmt.Fprintf(&b, "🌟 **AI Astrological Analysis - %s**\n\n", title)
	fmt.Fprintf(&b, "**Birth Details:** %s at %s in %s\n",
		data.BirthDate.Format("January 2, 2006"), data.BirthTime, data.Location)

	for _, section := range sectionsFor(tier) {
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", section, mockSectionBody(chart, section))
	}

	b.WriteString("\nRemember, you have everything you need within you to create the life you desire. Trust the journey and embrace your growth! ✨\n")
	return b.String()
}

func mockSectionBody(chart *chartdomain.ChartPayload, section string) string {
	sign := func(p chartdomain.Planet, fallback string) string {
		if pos, ok := chart.PlanetaryPositions[p]; ok {
			return pos.Sign
		}
		return fallback
	}

	switch section {
	case "Core Personality", "Complete Personality Profile":
		return fmt.Sprintf("Your %s Sun placement reveals a natural leader with strong determination. "+
			"Combined with your %s Moon, you have a unique blend of confidence and emotional sensitivity "+
			"that makes you both inspiring and approachable. You naturally express yourself through your "+
			"%s Mercury, making you excellent at connecting with others and sharing your ideas.",
			sign(chartdomain.PlanetSun, "Sun"), sign(chartdomain.PlanetMoon, "Moon"), sign(chartdomain.PlanetMercury, "Mercury"))
	case "Life Purpose", "Soul Mission & Karmic Patterns":
		return fmt.Sprintf("Your soul has chosen this incarnation to learn important lessons about %s "+
			"and %s. You are here to develop your gifts and share your wisdom with others, balancing "+
			"natural leadership with humility and service.",
			sign(chartdomain.PlanetSaturn, "responsibility"), sign(chartdomain.PlanetJupiter, "expansion"))
	case "Relationships & Career", "Relationship Blueprint":
		return fmt.Sprintf("In relationships, your %s Venus shows you seek harmony and mutual respect. "+
			"You value deep connections and need partners who appreciate your emotional depth. Your %s "+
			"Mars energy drives you toward dynamic work where you can make a difference.",
			sign(chartdomain.PlanetVenus, "Venus"), sign(chartdomain.PlanetMars, "Mars"))
	case "Career & Life Purpose":
		return fmt.Sprintf("Your %s Mars drives you toward careers that combine creativity with helping "+
			"others. Your work style is characterized by deep focus and emotional investment, and learning "+
			"to value your worth is an important step in your financial growth.",
			sign(chartdomain.PlanetMars, "Mars"))
	case "Complete House Analysis":
		first, tenth := "1st house", "10th house"
		if len(chart.Houses) == 12 {
			first = chart.Houses[0].Sign
			tenth = chart.Houses[9].Sign
		}
		return fmt.Sprintf("Your %s first house emphasizes self-identity and personal development, while "+
			"the %s tenth house reveals career aspirations and the public role you are meant to grow into. "+
			"Creating a nurturing home base remains crucial for your emotional well-being.", first, tenth)
	case "Advanced Aspect Analysis", "Harmonious Aspects & Strengths":
		if len(chart.Aspects) > 0 {
			a := chart.Aspects[0]
			return fmt.Sprintf("The %s-%s %s creates a powerful dynamic between your conscious and "+
				"unconscious mind, giving you unique insight into human nature and a naturally intuitive "+
				"approach to the people around you.", a.Planet1, a.Planet2, strings.ToLower(a.Type))
		}
		return "Your chart's major aspects create a powerful dynamic between your conscious and unconscious mind."
	case "Life Cycles & Timing", "Timing & Relationship Phases":
		return "You are currently in a period of significant transformation. Major transitions are unfolding " +
			"in relationships, career, and personal development; important decisions deserve careful timing " +
			"and trust in your inner guidance."
	case "Shadow Work & Healing", "Challenges & Growth Areas":
		return "Your shadow side may show up as perfectionism, self-criticism, and difficulty trusting the " +
			"unknown. Healing comes through self-compassion, honest boundaries, and embracing imperfection " +
			"as part of the journey."
	case "Practical Application", "Practical Recommendations", "Current Growth":
		return "Focus on the practices that ground your growth:\n" +
			"1. Start each day with 10 minutes of meditation\n" +
			"2. Journal your thoughts and feelings regularly\n" +
			"3. Practice active listening in conversations\n" +
			"4. Set clear goals and take small steps toward them\n" +
			"5. Surround yourself with supportive people"
	case "Future Guidance", "Future Potential & Guidance":
		return "The coming years bring opportunities for meaningful connection, recognition of your gifts, " +
			"and deep personal healing. Prepare by continuing your inner work and staying open to growth."
	case "Overall Compatibility Assessment":
		return fmt.Sprintf("Your %s Sun meeting your partner's chart creates a connection with strong "+
			"long-term potential. The partnership carries both natural harmony and the productive friction "+
			"that fuels mutual growth.", sign(chartdomain.PlanetSun, "Sun"))
	case "Communication & Mental Connection":
		return fmt.Sprintf("Your %s Mercury shapes how the two of you think and talk together. "+
			"Intellectual curiosity is a shared strength; the challenge is slowing down enough to truly "+
			"hear each other.", sign(chartdomain.PlanetMercury, "Mercury"))
	case "Emotional & Intimate Connection":
		return fmt.Sprintf("Venus in %s and Mars in %s describe a warm, physical attraction anchored by "+
			"genuine emotional safety. Tending to each other's Moon needs keeps the connection nourished.",
			sign(chartdomain.PlanetVenus, "Venus"), sign(chartdomain.PlanetMars, "Mars"))
	case "Power Dynamics & Life Goals":
		return "Your core identities complement rather than compete. Leadership flows between you depending " +
			"on the arena, and your individual aspirations are broad enough to hold a shared direction."
	case "Practical & Daily Life":
		return fmt.Sprintf("Saturn in %s speaks to commitment built through routine: shared finances, "+
			"shared mornings, shared responsibility. Stability here is earned daily rather than assumed.",
			sign(chartdomain.PlanetSaturn, "Saturn"))
	case "Spiritual & Growth Connection":
		return fmt.Sprintf("Neptune in %s and Jupiter in %s open a channel for shared meaning — beliefs, "+
			"practices, and the quiet sense that you are each other's teachers.",
			sign(chartdomain.PlanetNeptune, "Neptune"), sign(chartdomain.PlanetJupiter, "Jupiter"))
	default:
		return "This area of your chart points toward steady growth and self-understanding."
	}
}
