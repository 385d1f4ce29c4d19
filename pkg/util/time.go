package util

import (
	"time"
)

// DateAtCivilTime combines the date of day with a wall clock time in the
// given location, returning the absolute instant.
func DateAtCivilTime(day time.Time, hours int, minutes int, location *time.Location) time.Time {
	localDay := day.In(location)

	return time.Date(localDay.Year(), localDay.Month(), localDay.Day(), hours, minutes, 0, 0, location)
}

func TruncateToMinute(dateTime time.Time) time.Time {
	return dateTime.Truncate(time.Minute)
}

// WholeMinutesBetween returns to - from in whole minutes, floored towards
// negative infinity so that an early-running train gets -1 rather than 0.
func WholeMinutesBetween(from time.Time, to time.Time) int {
	difference := to.Sub(from)

	minutes := difference / time.Minute
	if difference < 0 && difference%time.Minute != 0 {
		minutes -= 1
	}

	return int(minutes)
}
