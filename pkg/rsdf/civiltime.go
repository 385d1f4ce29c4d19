package rsdf

import (
	"time"

	"github.com/togsim/togsim/pkg/util"
)

// CivilTime is a wall clock time in the railway's local timezone, as
// stored on Stop Templates.
type CivilTime struct {
	Hours   int `groups:"basic" json:"hours"`
	Minutes int `groups:"basic" json:"minutes"`
}

func NewCivilTime(dateTime time.Time, location *time.Location) CivilTime {
	localDateTime := dateTime.In(location)

	return CivilTime{
		Hours:   localDateTime.Hour(),
		Minutes: localDateTime.Minute(),
	}
}

// OnDay returns the absolute instant of this wall clock time on the day
// containing dateTime in the given location.
func (c CivilTime) OnDay(dateTime time.Time, location *time.Location) time.Time {
	return util.DateAtCivilTime(dateTime, c.Hours, c.Minutes, location)
}

func (c CivilTime) Valid() bool {
	return c.Hours >= 0 && c.Hours <= 23 && c.Minutes >= 0 && c.Minutes <= 59
}
