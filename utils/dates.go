package utils

import (
	"log"
	"time"
)

const DateLayout = "2006-01-02"

// IST is used when the configured timezone cannot be loaded.
var IST = time.FixedZone("IST", 5*60*60+30*60)

// LoadLocation resolves a timezone name, falling back to IST.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return IST
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("[Config] Unknown timezone %q, using IST: %v", name, err)
		return IST
	}
	return loc
}

// Clock returns the current time. Services take one so tests can pin "today".
type Clock func() time.Time

// Today formats the calendar date of now in loc.
func Today(now time.Time, loc *time.Location) string {
	return now.In(loc).Format(DateLayout)
}

// DaysBefore returns the calendar date n days before the date of now in loc.
func DaysBefore(now time.Time, loc *time.Location, n int) string {
	t := now.In(loc)
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return day.AddDate(0, 0, -n).Format(DateLayout)
}
