package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/togsim/togsim/pkg/database"
	"github.com/togsim/togsim/pkg/rsdf"
	"github.com/togsim/togsim/pkg/util"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ResetTrain rebuilds the train's Live Route for the day containing now
// from its Stop Template sequence and clears the current formation.
//
// Stops whose scheduled departure already lies in the past are cancelled
// retroactively, covering a reset that runs late; the rule is
// departure-based and applied per stop. Matching auto-cancellation
// windows are applied last.
func ResetTrain(train *rsdf.Train, now time.Time, location *time.Location, config *OperationsConfig) {
	train.CurrentRoute = train.BuildCurrentRoute(now, location)
	train.CurrentFormation = map[string]interface{}{}

	for index := range train.CurrentRoute {
		stop := &train.CurrentRoute[index]

		if stop.Departure.Before(now) {
			stop.CancelledAtStation = true
		}

		for _, window := range config.WindowsForStation(stop.Code) {
			if window.MatchesTrain(train) && window.ContainsInstant(stop.Departure) {
				stop.CancelledAtStation = true
			}
		}
	}
}

// RunDayReset regenerates every train's Live Route for the new day and
// permanently deletes one-off trains. It is the sole writer of the day's
// route skeleton; every later mutation acts on the instances it creates.
func RunDayReset(config *OperationsConfig) error {
	startTime := time.Now()
	location := util.GetLocation()

	trainsCollection := database.GetCollection("trains")

	cursor, err := trainsCollection.Find(context.Background(), bson.M{})
	if err != nil {
		return err
	}
	defer cursor.Close(context.Background())

	var trainOperations []mongo.WriteModel
	resetCount := 0
	deletedCount := 0

	for cursor.Next(context.Background()) {
		var train rsdf.Train
		if err := cursor.Decode(&train); err != nil {
			log.Error().Err(err).Msg("Failed to decode train")
			continue
		}

		if train.ExtraTrain {
			deleteModel := mongo.NewDeleteOneModel()
			deleteModel.SetFilter(bson.M{"trainnumber": train.TrainNumber})

			trainOperations = append(trainOperations, deleteModel)
			deletedCount += 1

			continue
		}

		ResetTrain(&train, startTime, location, config)

		bsonRep, err := bson.Marshal(bson.M{"$set": bson.M{
			"currentroute":     train.CurrentRoute,
			"currentformation": train.CurrentFormation,
		}})
		if err != nil {
			log.Error().Err(err).Str("train", train.TrainNumber).Msg("Failed to marshal train update")
			continue
		}

		updateModel := mongo.NewUpdateOneModel()
		updateModel.SetFilter(bson.M{"trainnumber": train.TrainNumber})
		updateModel.SetUpdate(bsonRep)

		trainOperations = append(trainOperations, updateModel)
		resetCount += 1
	}

	if len(trainOperations) > 0 {
		_, err := trainsCollection.BulkWrite(context.Background(), trainOperations, &options.BulkWriteOptions{})
		if err != nil {
			return err
		}
	}

	log.Info().
		Int("reset", resetCount).
		Int("deleted", deletedCount).
		Str("duration", time.Since(startTime).String()).
		Msg("Day reset complete")

	return nil
}
