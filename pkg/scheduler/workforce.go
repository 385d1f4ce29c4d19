package scheduler

import (
	"context"

	"github.com/togsim/togsim/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ActiveWorkerCount sums the active workers reported by every registered
// worker node.
func ActiveWorkerCount() (int, error) {
	workerNodesCollection := database.GetCollection("worker_nodes")

	cursor, err := workerNodesCollection.Aggregate(context.Background(), mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$activeworkers"}}},
		}}},
	})
	if err != nil {
		return 0, err
	}
	defer cursor.Close(context.Background())

	var result struct {
		Total int `bson:"total"`
	}

	if cursor.Next(context.Background()) {
		if err := cursor.Decode(&result); err != nil {
			return 0, err
		}
	}

	return result.Total, nil
}

// WorkforceGateActive reports whether anyone is operating the simulated
// railway. Trains that should already be running are auto-cancelled by
// the aggregation job while the gate is inactive.
func WorkforceGateActive() (bool, error) {
	total, err := ActiveWorkerCount()
	if err != nil {
		return false, err
	}

	return total > 0, nil
}
