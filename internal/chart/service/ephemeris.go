package service

import (
	"time"

	"github.com/starloomhq/starloom/internal/chart/domain"
)

// StaticEphemeris returns the same placements for every birth moment.
// It stands in for a real ephemeris engine (e.g. Swiss Ephemeris), which is
// an external integration behind the domain.Ephemeris interface.
type StaticEphemeris struct{}

func NewStaticEphemeris() domain.Ephemeris {
	return StaticEphemeris{}
}

func (StaticEphemeris) Positions(time.Time, float64, float64) map[domain.Planet]domain.Placement {
	return map[domain.Planet]domain.Placement{
		domain.PlanetSun:     {Sign: "Aries", Degree: 15, House: 1},
		domain.PlanetMoon:    {Sign: "Cancer", Degree: 22, House: 4},
		domain.PlanetMercury: {Sign: "Aries", Degree: 8, House: 1},
		domain.PlanetVenus:   {Sign: "Pisces", Degree: 28, House: 12},
		domain.PlanetMars:    {Sign: "Taurus", Degree: 5, House: 2},
		domain.PlanetJupiter: {Sign: "Sagittarius", Degree: 12, House: 9},
		domain.PlanetSaturn:  {Sign: "Capricorn", Degree: 18, House: 10},
		domain.PlanetUranus:  {Sign: "Aquarius", Degree: 3, House: 11},
		domain.PlanetNeptune: {Sign: "Pisces", Degree: 25, House: 12},
		domain.PlanetPluto:   {Sign: "Capricorn", Degree: 29, House: 10},
	}
}
