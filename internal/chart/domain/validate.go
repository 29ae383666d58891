package domain

import (
	"regexp"
	"strings"
	"time"
)

var birthTimeRe = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

var minBirthDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// Validate checks the range and format constraints a subject must satisfy
// before a chart can be generated.
func (s BirthSubject) Validate(now time.Time) error {
	if s.BirthDate.Before(minBirthDate) || s.BirthDate.After(now) {
		return ErrInvalidBirthDate
	}
	if !birthTimeRe.MatchString(s.BirthTime) {
		return ErrInvalidBirthTime
	}
	if s.Latitude < -90 || s.Latitude > 90 {
		return ErrInvalidLatitude
	}
	if s.Longitude < -180 || s.Longitude > 180 {
		return ErrInvalidLongitude
	}
	if strings.TrimSpace(s.Location) == "" {
		return ErrMissingLocation
	}
	return nil
}
