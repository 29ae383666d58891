package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidBirthDate = errors.New("birth date must be between 1900 and today")
	ErrInvalidBirthTime = errors.New("birth time must be in HH:MM format")
	ErrInvalidLatitude  = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude = errors.New("longitude must be between -180 and 180")
	ErrMissingLocation  = errors.New("birth location is required")
)

type Planet string

const (
	PlanetSun     Planet = "Sun"
	PlanetMoon    Planet = "Moon"
	PlanetMercury Planet = "Mercury"
	PlanetVenus   Planet = "Venus"
	PlanetMars    Planet = "Mars"
	PlanetJupiter Planet = "Jupiter"
	PlanetSaturn  Planet = "Saturn"
	PlanetUranus  Planet = "Uranus"
	PlanetNeptune Planet = "Neptune"
	PlanetPluto   Planet = "Pluto"
)

// Planets lists the ten bodies every chart must place, in traditional order.
var Planets = []Planet{
	PlanetSun, PlanetMoon, PlanetMercury, PlanetVenus, PlanetMars,
	PlanetJupiter, PlanetSaturn, PlanetUranus, PlanetNeptune, PlanetPluto,
}

// ZodiacSigns in ecliptic order, used for house cusp assignment.
var ZodiacSigns = []string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

type BirthSubject struct {
	Name      string    `json:"name"`
	BirthDate time.Time `json:"birthDate"`
	BirthTime string    `json:"birthTime"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Location  string    `json:"location"`
}

type Placement struct {
	Sign   string  `json:"sign"`
	Degree float64 `json:"degree"`
	House  int     `json:"house"`
}

type HouseCusp struct {
	House  int     `json:"house"`
	Sign   string  `json:"sign"`
	Degree float64 `json:"degree"`
}

type Aspect struct {
	Planet1 Planet  `json:"planet1"`
	Planet2 Planet  `json:"planet2"`
	Type    string  `json:"type"`
	Orb     float64 `json:"orb"`
}

type ChartPayload struct {
	ID                 string               `json:"id"`
	BirthData          BirthSubject         `json:"birthData"`
	PlanetaryPositions map[Planet]Placement `json:"planetaryPositions"`
	Houses             []HouseCusp          `json:"houses"`
	Aspects            []Aspect             `json:"aspects"`
	CalculatedAt       time.Time            `json:"calculatedAt"`
}

// Ephemeris supplies planetary placements for a birth moment. The shipped
// implementation is a static table; a real astronomical engine is an
// external dependency to integrate behind this interface.
type Ephemeris interface {
	Positions(birthDate time.Time, latitude, longitude float64) map[Planet]Placement
}

type Generator interface {
	Generate(ctx context.Context, subject BirthSubject) (*ChartPayload, error)
}
