package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/togsim/togsim/pkg/rsdf"
	"gopkg.in/yaml.v3"
)

func TestOperationsConfigYAML(t *testing.T) {
	configYaml := `
clock_controlled_stations:
  - BRO
  - SKI
auto_cancellation_windows:
  - station_code: LLS
    start: 2026-08-29T06:00:00Z
    end: 2026-08-29T09:00:00Z
    route_number: L2
  - station_code: OSL
    start: 2026-08-29T00:00:00Z
    end: 2026-08-29T23:59:00Z
    train_number: "1502"
`

	var config OperationsConfig
	require.NoError(t, yaml.Unmarshal([]byte(configYaml), &config))

	assert.True(t, config.IsClockControlled("BRO"))
	assert.True(t, config.IsClockControlled("SKI"))
	assert.False(t, config.IsClockControlled("OSL"))

	require.Len(t, config.AutoCancellationWindows, 2)
	assert.Equal(t, "L2", config.AutoCancellationWindows[0].RouteNumber)
	assert.Equal(t, time.Date(2026, time.August, 29, 6, 0, 0, 0, time.UTC), config.AutoCancellationWindows[0].Start)

	assert.Len(t, config.WindowsForStation("LLS"), 1)
	assert.Empty(t, config.WindowsForStation("EVL"))
}

func TestAutoCancellationWindowMatching(t *testing.T) {
	train := &rsdf.Train{TrainNumber: "1502", RouteNumber: "L2"}

	allTrains := AutoCancellationWindow{StationCode: "LLS"}
	assert.True(t, allTrains.MatchesTrain(train))

	byRoute := AutoCancellationWindow{StationCode: "LLS", RouteNumber: "L2"}
	assert.True(t, byRoute.MatchesTrain(train))

	otherRoute := AutoCancellationWindow{StationCode: "LLS", RouteNumber: "L9"}
	assert.False(t, otherRoute.MatchesTrain(train))

	// Train number filter wins over route number.
	byTrain := AutoCancellationWindow{StationCode: "LLS", RouteNumber: "L9", TrainNumber: "1502"}
	assert.True(t, byTrain.MatchesTrain(train))
}

func TestAutoCancellationWindowContainsInstant(t *testing.T) {
	window := AutoCancellationWindow{Start: at(6, 0), End: at(7, 0)}

	assert.True(t, window.ContainsInstant(at(6, 30)))
	assert.True(t, window.ContainsInstant(at(6, 0)))
	assert.True(t, window.ContainsInstant(at(7, 0)))
	assert.False(t, window.ContainsInstant(at(5, 59)))
	assert.False(t, window.ContainsInstant(at(7, 1)))
}
