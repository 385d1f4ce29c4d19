package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/togsim/togsim/pkg/rsdf"
)

func at(hours int, minutes int) time.Time {
	return time.Date(2026, time.August, 29, hours, minutes, 0, 0, time.UTC)
}

// aggregationTrain builds a consistent template/live route pair the way
// the day reset job would have seeded it.
func aggregationTrain() *rsdf.Train {
	train := &rsdf.Train{
		TrainNumber: "402",
		Operator:    "Vy",
		RouteNumber: "L1",
		DefaultRoute: []rsdf.StopTemplate{
			{Name: "Oslo S", Code: "OSL", Type: rsdf.StopLocationTypeStation, Track: "3", StopType: "passenger", Arrival: rsdf.CivilTime{Hours: 10, Minutes: 0}, Departure: rsdf.CivilTime{Hours: 10, Minutes: 5}},
			{Name: "Brobekk", Code: "BRO", Type: rsdf.StopLocationTypeBlockPost, Track: "1", StopType: "passage", Arrival: rsdf.CivilTime{Hours: 10, Minutes: 20}, Departure: rsdf.CivilTime{Hours: 10, Minutes: 20}},
			{Name: "Lillestrøm", Code: "LLS", Type: rsdf.StopLocationTypeStation, Track: "2", StopType: "passenger", Arrival: rsdf.CivilTime{Hours: 10, Minutes: 40}, Departure: rsdf.CivilTime{Hours: 10, Minutes: 45}},
		},
	}

	train.CurrentRoute = train.BuildCurrentRoute(at(0, 0), time.UTC)

	return train
}

func TestAggregateTrainBoardPartition(t *testing.T) {
	train := aggregationTrain()

	stops, changed := AggregateTrain(train, at(9, 0), true, time.UTC, &OperationsConfig{})

	assert.False(t, changed)
	require.Len(t, stops, 3)

	// Origin never appears on arrivals, destination never on departures.
	assert.False(t, stops[0].OnArrivals)
	assert.True(t, stops[0].OnDepartures)
	assert.True(t, stops[1].OnArrivals)
	assert.True(t, stops[1].OnDepartures)
	assert.True(t, stops[2].OnArrivals)
	assert.False(t, stops[2].OnDepartures)
}

func TestAggregateTrainEntryFields(t *testing.T) {
	train := aggregationTrain()

	stops, _ := AggregateTrain(train, at(9, 0), true, time.UTC, &OperationsConfig{})
	require.Len(t, stops, 3)

	entry := stops[0].Entry
	assert.Equal(t, "402", entry.TrainNumber)
	assert.Equal(t, "Vy", entry.Operator)
	assert.Equal(t, "L1", entry.RouteNumber)
	assert.Equal(t, "OSL", stops[0].StationCode)
	assert.Equal(t, at(10, 0), entry.ScheduledArrival)
	assert.Equal(t, at(10, 5), entry.ScheduledDeparture)
	assert.Equal(t, rsdf.CivilTime{Hours: 10, Minutes: 0}, entry.ScheduledArrivalCivil)
	assert.Equal(t, 0, entry.ArrivalDelay)
	assert.Equal(t, 0, entry.DepartureDelay)
	assert.Equal(t, train.CurrentRoute, entry.CurrentRoute)
}

func TestAggregateTrainWorkforceGateCancelsOverdueTrain(t *testing.T) {
	train := aggregationTrain()

	// Scheduled to have left two hours ago, never passed, nobody
	// operating the railway: the whole train is void.
	stops, changed := AggregateTrain(train, at(12, 0), false, time.UTC, &OperationsConfig{})

	assert.True(t, changed)
	require.Len(t, stops, 3)

	for _, stop := range train.CurrentRoute {
		assert.True(t, stop.CancelledAtStation, "stop %s not cancelled", stop.Code)
	}
}

func TestAggregateTrainWorkforceGateSparesRunningTrain(t *testing.T) {
	train := aggregationTrain()
	train.CurrentRoute[0].Passed = true

	_, _ = AggregateTrain(train, at(12, 0), false, time.UTC, &OperationsConfig{})

	// A train already under way is not the gate's business.
	assert.False(t, train.CurrentRoute[1].CancelledAtStation)
	assert.False(t, train.CurrentRoute[2].CancelledAtStation)
}

func TestAggregateTrainWorkforceGateSparesFutureTrain(t *testing.T) {
	train := aggregationTrain()

	_, changed := AggregateTrain(train, at(9, 0), false, time.UTC, &OperationsConfig{})

	assert.False(t, changed)
	for _, stop := range train.CurrentRoute {
		assert.False(t, stop.CancelledAtStation)
	}
}

func TestAggregateTrainBlockPostAutoPassage(t *testing.T) {
	train := aggregationTrain()
	train.CurrentRoute[0].Passed = true

	_, changed := AggregateTrain(train, at(10, 25), true, time.UTC, &OperationsConfig{})

	assert.True(t, changed)
	assert.True(t, train.CurrentRoute[1].Passed)
	assert.False(t, train.CurrentRoute[2].Passed)
}

func TestAggregateTrainBlockPostWaitsForPreviousStop(t *testing.T) {
	train := aggregationTrain()

	// Departure is due but the previous stop has not been passed, so
	// the block post cannot have been passed either. The stale clamp
	// advances its departure instead.
	_, _ = AggregateTrain(train, at(10, 25), true, time.UTC, &OperationsConfig{})

	assert.False(t, train.CurrentRoute[1].Passed)
	assert.Equal(t, at(10, 25), train.CurrentRoute[1].Departure)
}

func TestAggregateTrainClockControlledPassage(t *testing.T) {
	train := aggregationTrain()
	config := &OperationsConfig{ClockControlledStations: []string{"LLS"}}

	_, changed := AggregateTrain(train, at(10, 50), true, time.UTC, config)

	assert.True(t, changed)
	assert.True(t, train.CurrentRoute[2].Passed)
}

func TestAggregateTrainStaleDepartureClamp(t *testing.T) {
	train := aggregationTrain()

	stops, changed := AggregateTrain(train, at(10, 9), true, time.UTC, &OperationsConfig{})

	assert.True(t, changed)

	// Nobody marked the origin as passed, so its departure is pulled
	// forward to now; arrival is left alone.
	assert.Equal(t, at(10, 9), train.CurrentRoute[0].Departure)
	assert.Equal(t, at(10, 0), train.CurrentRoute[0].Arrival)

	require.Len(t, stops, 3)
	assert.Equal(t, 4, stops[0].Entry.DepartureDelay)
	assert.Equal(t, 0, stops[0].Entry.ArrivalDelay)
}

func TestAggregateTrainPassedStopNotClamped(t *testing.T) {
	train := aggregationTrain()
	train.CurrentRoute[0].Passed = true

	_, changed := AggregateTrain(train, at(10, 9), true, time.UTC, &OperationsConfig{})

	assert.False(t, changed)
	assert.Equal(t, at(10, 5), train.CurrentRoute[0].Departure)
}

func TestAggregateTrainIdempotentWithinMinute(t *testing.T) {
	train := aggregationTrain()
	train.CurrentRoute[0].Passed = true
	config := &OperationsConfig{ClockControlledStations: []string{"LLS"}}

	// First run advances flags and clamps times.
	firstStops, firstChanged := AggregateTrain(train, at(10, 50), true, time.UTC, config)
	assert.True(t, firstChanged)

	// A second run with no wall clock progress mutates nothing and
	// derives identical board entries, even off the minute.
	secondStops, secondChanged := AggregateTrain(train, at(10, 50).Add(40*time.Second), true, time.UTC, config)
	assert.False(t, secondChanged)
	assert.Equal(t, firstStops, secondStops)
}

func TestAggregateTrainCancellationIsMonotonic(t *testing.T) {
	train := aggregationTrain()
	train.CurrentRoute[1].CancelledAtStation = true
	train.CurrentRoute[0].Passed = true
	config := &OperationsConfig{ClockControlledStations: []string{"BRO"}}

	// Neither the block post rule nor the clock-controlled rule may
	// resurrect a cancelled stop.
	stops, _ := AggregateTrain(train, at(11, 0), true, time.UTC, config)

	assert.True(t, train.CurrentRoute[1].CancelledAtStation)
	assert.False(t, train.CurrentRoute[1].Passed)

	require.Len(t, stops, 3)
	assert.True(t, stops[1].Entry.Cancelled)
}

func TestAggregateTrainSkipsDriftedStop(t *testing.T) {
	train := aggregationTrain()
	train.CurrentRoute[1].Code = "GONE"

	stops, _ := AggregateTrain(train, at(9, 0), true, time.UTC, &OperationsConfig{})

	// The drifted stop has no template match and is skipped, the rest
	// of the route still aggregates.
	require.Len(t, stops, 2)
	assert.Equal(t, "OSL", stops[0].StationCode)
	assert.Equal(t, "LLS", stops[1].StationCode)
}

func TestAggregateTrainSkipsMissingTimes(t *testing.T) {
	train := aggregationTrain()
	train.CurrentRoute[1].Arrival = time.Time{}

	stops, _ := AggregateTrain(train, at(9, 0), true, time.UTC, &OperationsConfig{})

	require.Len(t, stops, 2)
}

func TestAggregateTrainDelayFigures(t *testing.T) {
	train := aggregationTrain()
	train.ApplyDelay(10, false)

	stops, changed := AggregateTrain(train, at(9, 0), true, time.UTC, &OperationsConfig{})

	assert.False(t, changed)
	require.Len(t, stops, 3)

	for _, stop := range stops {
		assert.Equal(t, 10, stop.Entry.ArrivalDelay)
		assert.Equal(t, 10, stop.Entry.DepartureDelay)
	}
}
