package rsdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTemplate() []StopTemplate {
	return []StopTemplate{
		{Name: "Oslo S", Code: "OSL", Type: StopLocationTypeStation, Track: "3", StopType: "passenger", Arrival: CivilTime{Hours: 6, Minutes: 30}, Departure: CivilTime{Hours: 6, Minutes: 35}},
		{Name: "Brobekk", Code: "BRO", Type: StopLocationTypeBlockPost, Track: "1", StopType: "passage", Arrival: CivilTime{Hours: 6, Minutes: 50}, Departure: CivilTime{Hours: 6, Minutes: 50}},
		{Name: "Lillestrøm", Code: "LLS", Type: StopLocationTypeStation, Track: "2", StopType: "passenger", Arrival: CivilTime{Hours: 7, Minutes: 10}, Departure: CivilTime{Hours: 7, Minutes: 12}},
	}
}

func TestBuildCurrentRoute(t *testing.T) {
	train := &Train{
		TrainNumber:  "402",
		DefaultRoute: validTemplate(),
	}

	now := time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)
	currentRoute := train.BuildCurrentRoute(now, time.UTC)

	require.Len(t, currentRoute, len(train.DefaultRoute))

	for index, stop := range currentRoute {
		assert.Equal(t, train.DefaultRoute[index].Code, stop.Code)
		assert.Equal(t, train.DefaultRoute[index].Name, stop.Name)
		assert.Equal(t, train.DefaultRoute[index].Track, stop.Track)
		assert.False(t, stop.Passed)
		assert.False(t, stop.CancelledAtStation)
	}

	assert.Equal(t, time.Date(2026, time.August, 29, 6, 30, 0, 0, time.UTC), currentRoute[0].Arrival)
	assert.Equal(t, time.Date(2026, time.August, 29, 7, 12, 0, 0, time.UTC), currentRoute[2].Departure)
}

func TestBuildCurrentRouteUsesLocalDate(t *testing.T) {
	oslo, err := time.LoadLocation("Europe/Oslo")
	require.NoError(t, err)

	train := &Train{
		TrainNumber:  "404",
		DefaultRoute: validTemplate()[:1],
	}

	// 23:30 UTC on the 28th is already the 29th in Oslo; the realized
	// stop must land on the local day.
	now := time.Date(2026, time.August, 28, 23, 30, 0, 0, time.UTC)
	currentRoute := train.BuildCurrentRoute(now, oslo)

	assert.Equal(t, time.Date(2026, time.August, 29, 6, 30, 0, 0, oslo), currentRoute[0].Arrival)
}

func TestFindTemplateStop(t *testing.T) {
	train := &Train{DefaultRoute: validTemplate()}

	stop := train.FindTemplateStop("BRO")
	require.NotNil(t, stop)
	assert.Equal(t, "Brobekk", stop.Name)

	assert.Nil(t, train.FindTemplateStop("XX"))
}

func TestValidateRoute(t *testing.T) {
	assert.NoError(t, ValidateRoute(validTemplate()))

	assert.Error(t, ValidateRoute(nil))

	missingCode := validTemplate()
	missingCode[1].Code = ""
	assert.Error(t, ValidateRoute(missingCode))

	badTime := validTemplate()
	badTime[0].Departure = CivilTime{Hours: 24, Minutes: 0}
	err := ValidateRoute(badTime)
	require.Error(t, err)

	var validationError ValidationError
	assert.ErrorAs(t, err, &validationError)
}
