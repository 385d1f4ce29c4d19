package scheduler

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/togsim/togsim/pkg/util"
)

// The aggregation job runs off the exact minute so it never races the
// midnight day reset boundary.
const aggregationOffset = 40 * time.Second

// StartAggregationLoop runs the location aggregation job once per
// minute, aligned to the offset past the minute. Blocks forever.
func StartAggregationLoop(config *OperationsConfig) {
	log.Info().Dur("offset", aggregationOffset).Msg("Starting location aggregation loop")

	for {
		now := time.Now()

		next := util.TruncateToMinute(now).Add(aggregationOffset)
		if !next.After(now) {
			next = next.Add(time.Minute)
		}

		time.Sleep(next.Sub(now))

		if err := RunLocationAggregation(config); err != nil {
			log.Error().Err(err).Msg("Location aggregation failed")
		}
	}
}

// StartDayResetLoop runs the day reset job at every local midnight.
// Blocks forever.
func StartDayResetLoop(config *OperationsConfig) {
	location := util.GetLocation()

	log.Info().Str("timezone", location.String()).Msg("Starting day reset loop")

	for {
		now := time.Now().In(location)
		nextMidnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, location).AddDate(0, 0, 1)

		time.Sleep(nextMidnight.Sub(now))

		if err := RunDayReset(config); err != nil {
			log.Error().Err(err).Msg("Day reset failed")
		}
	}
}
