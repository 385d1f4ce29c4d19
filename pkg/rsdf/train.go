package rsdf

import (
	"time"

	"golang.org/x/exp/slices"
)

// Physical location types a stop can have. Blokkpost is the brief-stop
// kind whose passage is inferred from the clock once the previous stop
// has been passed.
const (
	StopLocationTypeStation      = "stasjon"
	StopLocationTypeStopPlace    = "stoppested"
	StopLocationTypeHalt         = "holdeplass"
	StopLocationTypeBlockPost    = "blokkpost"
	StopLocationTypeShuntingYard = "skifteområde"
	StopLocationTypeSiding       = "sidespor"
)

// StopTemplate is a single entry of a train's static daily schedule,
// with wall clock times in the local timezone. Only the administrative
// API edits these.
type StopTemplate struct {
	Name string `groups:"basic" json:"name"`
	Code string `groups:"basic" json:"code"`
	Type string `groups:"basic" json:"type"`

	Track string `groups:"basic" json:"track"`

	Arrival   CivilTime `groups:"basic" json:"arrival"`
	Departure CivilTime `groups:"basic" json:"departure"`

	StopType string `groups:"basic" json:"stopType"`

	Passed             bool `groups:"basic" json:"passed"`
	CancelledAtStation bool `groups:"basic" json:"cancelledAtStation"`
}

// StopInstance is the realized version of a StopTemplate for today, with
// absolute instants and mutable status flags.
type StopInstance struct {
	Name string `groups:"basic" json:"name"`
	Code string `groups:"basic" json:"code"`
	Type string `groups:"basic" json:"type"`

	Track string `groups:"basic" json:"track"`

	Arrival   time.Time `groups:"basic" json:"arrival"`
	Departure time.Time `groups:"basic" json:"departure"`

	StopType string `groups:"basic" json:"stopType"`

	Passed             bool `groups:"basic" json:"passed"`
	CancelledAtStation bool `groups:"basic" json:"cancelledAtStation"`
}

type Train struct {
	TrainNumber string `groups:"basic" json:"trainNumber"`
	Operator    string `groups:"basic" json:"operator"`

	// ExtraTrain marks a one-off train deleted at the day boundary
	// instead of being regenerated.
	ExtraTrain bool `groups:"basic" json:"extraTrain"`

	RouteNumber string `groups:"basic" json:"routeNumber,omitempty" bson:",omitempty"`

	DefaultRoute []StopTemplate `groups:"detailed" json:"defaultRoute"`
	CurrentRoute []StopInstance `groups:"basic" json:"currentRoute"`

	CurrentFormation map[string]interface{} `groups:"detailed" json:"currentFormation"`
	Position         []interface{}          `groups:"detailed" json:"position"`
}

// BuildCurrentRoute realizes the Live Route skeleton for the day
// containing now from the train's Stop Template sequence.
func (train *Train) BuildCurrentRoute(now time.Time, location *time.Location) []StopInstance {
	currentRoute := make([]StopInstance, 0, len(train.DefaultRoute))

	for _, templateStop := range train.DefaultRoute {
		currentRoute = append(currentRoute, StopInstance{
			Name:  templateStop.Name,
			Code:  templateStop.Code,
			Type:  templateStop.Type,
			Track: templateStop.Track,

			Arrival:   templateStop.Arrival.OnDay(now, location),
			Departure: templateStop.Departure.OnDay(now, location),

			StopType: templateStop.StopType,

			Passed:             templateStop.Passed,
			CancelledAtStation: templateStop.CancelledAtStation,
		})
	}

	return currentRoute
}

// FindTemplateStop returns the Stop Template matching a station code, or
// nil if the template and live route have drifted apart.
func (train *Train) FindTemplateStop(code string) *StopTemplate {
	index := slices.IndexFunc(train.DefaultRoute, func(stop StopTemplate) bool {
		return stop.Code == code
	})

	if index == -1 {
		return nil
	}

	return &train.DefaultRoute[index]
}

// ValidateRoute checks a Stop Template sequence before any mutation is
// applied, so a bad request fails atomically.
func ValidateRoute(route []StopTemplate) error {
	if len(route) == 0 {
		return ValidationError{Field: "defaultRoute", Message: "must contain at least one stop"}
	}

	for _, stop := range route {
		if stop.Name == "" {
			return ValidationError{Field: "defaultRoute", Message: "missing name"}
		}
		if stop.Code == "" {
			return ValidationError{Field: "defaultRoute", Message: "missing code"}
		}
		if stop.Type == "" {
			return ValidationError{Field: "defaultRoute", Message: "missing type"}
		}
		if stop.Track == "" {
			return ValidationError{Field: "defaultRoute", Message: "missing track"}
		}
		if stop.StopType == "" {
			return ValidationError{Field: "defaultRoute", Message: "missing stopType"}
		}

		if !stop.Arrival.Valid() || !stop.Departure.Valid() {
			return ValidationError{Field: "defaultRoute", Message: "invalid arrival or departure time"}
		}
	}

	return nil
}
