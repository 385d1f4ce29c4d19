package scheduler

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/togsim/togsim/pkg/rsdf"
	"github.com/togsim/togsim/pkg/util"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// AutoCancellationWindow declares a maintenance style blanket
// cancellation at one station during a time window. The filter narrows
// it to a route number or a single train; with neither set it matches
// all trains.
type AutoCancellationWindow struct {
	StationCode string `yaml:"station_code"`

	Start time.Time `yaml:"start"`
	End   time.Time `yaml:"end"`

	RouteNumber string `yaml:"route_number"`
	TrainNumber string `yaml:"train_number"`
}

func (w *AutoCancellationWindow) MatchesTrain(train *rsdf.Train) bool {
	if w.TrainNumber != "" {
		return w.TrainNumber == train.TrainNumber
	}

	if w.RouteNumber != "" {
		return w.RouteNumber == train.RouteNumber
	}

	return true
}

func (w *AutoCancellationWindow) ContainsInstant(dateTime time.Time) bool {
	return !dateTime.Before(w.Start) && !dateTime.After(w.End)
}

// OperationsConfig is the static operational configuration both periodic
// jobs run against. It is loaded once at startup and passed in
// explicitly so tests can substitute windows and station lists freely.
type OperationsConfig struct {
	// Station codes whose passage is always inferred from the clock,
	// never signalled externally.
	ClockControlledStations []string `yaml:"clock_controlled_stations"`

	AutoCancellationWindows []AutoCancellationWindow `yaml:"auto_cancellation_windows"`
}

func (c *OperationsConfig) IsClockControlled(stationCode string) bool {
	return slices.Contains(c.ClockControlledStations, stationCode)
}

func (c *OperationsConfig) WindowsForStation(stationCode string) []AutoCancellationWindow {
	var windows []AutoCancellationWindow

	for _, window := range c.AutoCancellationWindows {
		if window.StationCode == stationCode {
			windows = append(windows, window)
		}
	}

	return windows
}

// LoadOperationsConfig reads the YAML file named by
// TOGSIM_OPERATIONS_CONFIG. An unset variable yields an empty config.
func LoadOperationsConfig() *OperationsConfig {
	operationsConfig := &OperationsConfig{}

	env := util.GetEnvironmentVariables()
	path := env["TOGSIM_OPERATIONS_CONFIG"]

	if path == "" {
		return operationsConfig
	}

	configYaml, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to read operations config")
	}

	err = yaml.Unmarshal(configYaml, operationsConfig)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to parse operations config")
	}

	log.Info().
		Int("clockcontrolled", len(operationsConfig.ClockControlledStations)).
		Int("autocancellationwindows", len(operationsConfig.AutoCancellationWindows)).
		Msg("Loaded operations config")

	return operationsConfig
}
