package rsdf

import (
	"time"
)

// BoardEntry is one train's row on a station's arrivals or departures
// board. Entries are derived during every aggregation run and published
// wholesale; they are never persisted.
type BoardEntry struct {
	TrainNumber string `groups:"basic" json:"trainNumber"`
	Operator    string `groups:"basic" json:"operator"`
	ExtraTrain  bool   `groups:"basic" json:"extraTrain"`
	RouteNumber string `groups:"basic" json:"routeNumber,omitempty"`

	Type     string `groups:"basic" json:"type"`
	StopType string `groups:"basic" json:"stopType"`

	Passed    bool `groups:"basic" json:"passed"`
	Cancelled bool `groups:"basic" json:"cancelled"`

	Track          string `groups:"basic" json:"track"`
	ScheduledTrack string `groups:"basic" json:"scheduledTrack"`

	Arrival   time.Time `groups:"basic" json:"arrival"`
	Departure time.Time `groups:"basic" json:"departure"`

	ScheduledArrival   time.Time `groups:"basic" json:"scheduledArrival"`
	ScheduledDeparture time.Time `groups:"basic" json:"scheduledDeparture"`

	ArrivalCivil   CivilTime `groups:"basic" json:"arrivalCivil"`
	DepartureCivil CivilTime `groups:"basic" json:"departureCivil"`

	ScheduledArrivalCivil   CivilTime `groups:"basic" json:"scheduledArrivalCivil"`
	ScheduledDepartureCivil CivilTime `groups:"basic" json:"scheduledDepartureCivil"`

	// Delays in whole minutes, floored.
	ArrivalDelay   int `groups:"basic" json:"arrivalDelay"`
	DepartureDelay int `groups:"basic" json:"departureDelay"`

	// Full Live Route for downstream detail views.
	CurrentRoute []StopInstance `groups:"detailed" json:"currentRoute,omitempty"`
}
