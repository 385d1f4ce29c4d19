package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/togsim/togsim/pkg/database"
	"github.com/togsim/togsim/pkg/rsdf"
	"github.com/togsim/togsim/pkg/util"
	"go.mongodb.org/mongo-driver/bson"
)

// AggregatedStop is one stop's board entry together with which boards it
// belongs on. The origin never appears on its station's arrivals board
// and the destination never appears on its station's departures board.
type AggregatedStop struct {
	StationCode string
	Entry       *rsdf.BoardEntry

	OnArrivals   bool
	OnDepartures bool
}

// AggregateTrain advances one train's status flags for the current
// minute and derives its board entries.
//
// now is floored to the whole minute before any comparison, so two runs
// within the same minute make identical decisions. The returned changed
// flag is true iff some stop's flags or times were mutated and the train
// needs persisting.
func AggregateTrain(train *rsdf.Train, now time.Time, gateActive bool, location *time.Location, config *OperationsConfig) ([]AggregatedStop, bool) {
	now = util.TruncateToMinute(now)

	changed := false

	// Nobody is operating the railway, so a train that should already be
	// running is void: the gate check looks at the first stop only,
	// asking whether the train ought to have started.
	if !gateActive && len(train.CurrentRoute) > 0 {
		firstStop := train.CurrentRoute[0]

		if firstStop.Arrival.Before(now) && !firstStop.Passed && !firstStop.CancelledAtStation {
			for index := range train.CurrentRoute {
				stop := &train.CurrentRoute[index]

				if !stop.Passed && !stop.CancelledAtStation {
					stop.CancelledAtStation = true
					changed = true
				}
			}
		}
	}

	var aggregatedStops []AggregatedStop

	for index := range train.CurrentRoute {
		stop := &train.CurrentRoute[index]

		if stop.Arrival.IsZero() || stop.Departure.IsZero() {
			continue
		}

		// Template and live route can drift when the day reset overlaps
		// an aggregation run; an unmatched stop is skipped, not fatal.
		templateStop := train.FindTemplateStop(stop.Code)
		if templateStop == nil {
			log.Debug().
				Str("train", train.TrainNumber).
				Str("code", stop.Code).
				Msg("No template stop for live stop")
			continue
		}

		// Block posts have no signalled passage events: once the
		// previous stop is passed and the scheduled departure is due,
		// the train is taken to have passed through.
		if stop.Type == rsdf.StopLocationTypeBlockPost &&
			index > 0 && train.CurrentRoute[index-1].Passed &&
			!stop.Passed && !stop.CancelledAtStation &&
			!stop.Departure.After(now) {
			stop.Passed = true
			changed = true
		}

		// Clock-controlled stations likewise pass on schedule.
		if config.IsClockControlled(stop.Code) &&
			!stop.Passed && !stop.CancelledAtStation &&
			!stop.Departure.After(now) {
			stop.Passed = true
			changed = true
		}

		// A stop nobody marked as passed must not drift into the past,
		// or the delay figures go wrong. Arrival is left alone.
		if !stop.Passed && !stop.CancelledAtStation && stop.Departure.Before(now) {
			stop.Departure = now
			changed = true
		}

		if !templateStop.Arrival.Valid() || !templateStop.Departure.Valid() {
			log.Error().
				Str("train", train.TrainNumber).
				Str("code", stop.Code).
				Msg("Template stop has invalid scheduled time")
			continue
		}

		scheduledArrival := templateStop.Arrival.OnDay(now, location)
		scheduledDeparture := templateStop.Departure.OnDay(now, location)

		entry := &rsdf.BoardEntry{
			TrainNumber: train.TrainNumber,
			Operator:    train.Operator,
			ExtraTrain:  train.ExtraTrain,
			RouteNumber: train.RouteNumber,

			Type:     stop.Type,
			StopType: stop.StopType,

			Passed:    stop.Passed,
			Cancelled: stop.CancelledAtStation,

			Track:          stop.Track,
			ScheduledTrack: templateStop.Track,

			Arrival:   stop.Arrival,
			Departure: stop.Departure,

			ScheduledArrival:   scheduledArrival,
			ScheduledDeparture: scheduledDeparture,

			ArrivalCivil:   rsdf.NewCivilTime(stop.Arrival, location),
			DepartureCivil: rsdf.NewCivilTime(stop.Departure, location),

			ScheduledArrivalCivil:   templateStop.Arrival,
			ScheduledDepartureCivil: templateStop.Departure,

			ArrivalDelay:   util.WholeMinutesBetween(scheduledArrival, stop.Arrival),
			DepartureDelay: util.WholeMinutesBetween(scheduledDeparture, stop.Departure),

			CurrentRoute: train.CurrentRoute,
		}

		aggregatedStops = append(aggregatedStops, AggregatedStop{
			StationCode: stop.Code,
			Entry:       entry,

			OnArrivals:   index > 0,
			OnDepartures: index < len(train.CurrentRoute)-1,
		})
	}

	return aggregatedStops, changed
}

// RunLocationAggregation performs one aggregation pass over every train:
// status flags advance, stale departures are clamped, delays are
// recomputed and both boards are rebuilt and atomically republished.
// Modified trains are persisted concurrently.
func RunLocationAggregation(config *OperationsConfig) error {
	startTime := time.Now()
	location := util.GetLocation()

	gateActive, err := WorkforceGateActive()
	if err != nil {
		// Failing open avoids mass-cancelling every train over a
		// transient read error.
		log.Error().Err(err).Msg("Failed to read workforce gate, treating as active")
		gateActive = true
	}

	trainsCollection := database.GetCollection("trains")

	cursor, err := trainsCollection.Find(context.Background(), bson.M{})
	if err != nil {
		return err
	}
	defer cursor.Close(context.Background())

	boards := NewStationBoards()

	var modifiedTrains []*rsdf.Train
	trainCount := 0

	for cursor.Next(context.Background()) {
		var train rsdf.Train
		if err := cursor.Decode(&train); err != nil {
			log.Error().Err(err).Msg("Failed to decode train")
			continue
		}

		trainCount += 1

		aggregatedStops, changed := AggregateTrain(&train, startTime, gateActive, location, config)

		for _, aggregatedStop := range aggregatedStops {
			if aggregatedStop.OnArrivals {
				boards.Arrivals[aggregatedStop.StationCode] = append(boards.Arrivals[aggregatedStop.StationCode], aggregatedStop.Entry)
			}
			if aggregatedStop.OnDepartures {
				boards.Departures[aggregatedStop.StationCode] = append(boards.Departures[aggregatedStop.StationCode], aggregatedStop.Entry)
			}
		}

		if changed {
			modifiedTrains = append(modifiedTrains, &train)
		}
	}

	persistPool := pool.New().WithMaxGoroutines(16)

	for _, train := range modifiedTrains {
		persistPool.Go(func() {
			_, err := trainsCollection.UpdateOne(context.Background(),
				bson.M{"trainnumber": train.TrainNumber},
				bson.M{"$set": bson.M{"currentroute": train.CurrentRoute}},
			)
			if err != nil {
				// Not durable this run; the next pass recomputes it.
				log.Error().Err(err).Str("train", train.TrainNumber).Msg("Failed to persist train")
			}
		})
	}

	persistPool.Wait()

	boards.Sort()
	publishStationBoards(boards)

	if GlobalBoardCache != nil {
		GlobalBoardCache.PublishBoards(boards)
	}

	log.Info().
		Int("trains", trainCount).
		Int("modified", len(modifiedTrains)).
		Int("stations", len(boards.Departures)).
		Bool("workforce", gateActive).
		Str("duration", time.Since(startTime).String()).
		Msg("Location aggregation complete")

	return nil
}
