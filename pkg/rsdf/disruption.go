package rsdf

import (
	"time"
)

type DisruptionText struct {
	Title       string `groups:"basic" json:"title"`
	Description string `groups:"basic" json:"description"`
}

type DisruptionInternalInfo struct {
	From        string    `groups:"detailed" json:"from"`
	To          string    `groups:"detailed" json:"to"`
	Consequence string    `groups:"detailed" json:"consequence"`
	Reason      string    `groups:"detailed" json:"reason"`
	Action      string    `groups:"detailed" json:"action"`
	Forecast    string    `groups:"detailed" json:"forecast"`
	NextUpdate  time.Time `groups:"detailed" json:"nextUpdate"`
}

// Disruption is an operational message shown alongside the boards for
// the stations and lines it names.
type Disruption struct {
	MessageName string `groups:"basic" json:"messageName"`

	Stations []string `groups:"basic" json:"stations"`
	Lines    []string `groups:"basic" json:"lines"`

	MainMessageAt []string `groups:"basic" json:"mainMessageAt"`

	Disruption bool `groups:"basic" json:"disruption"`

	InternalInfo DisruptionInternalInfo `groups:"detailed" json:"internalInfo"`

	Norwegian DisruptionText `groups:"basic" json:"NOR" bson:"norwegian"`
	English   DisruptionText `groups:"basic" json:"ENG" bson:"english"`

	StartDate time.Time `groups:"basic" json:"startDate"`
	EndDate   time.Time `groups:"basic" json:"endDate"`
}
