package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func createIndexes() {
	createTrainsIndexes()
	createWorkerNodesIndexes()
	createDisruptionsIndexes()
}

func createTrainsIndexes() {
	trainsCollection := GetCollection("trains")
	trainsIndex := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "trainnumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "routenumber", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "currentroute.code", Value: 1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := trainsCollection.Indexes().CreateMany(context.Background(), trainsIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createWorkerNodesIndexes() {
	workerNodesCollection := GetCollection("worker_nodes")
	workerNodesIndex := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "jobid", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	opts := options.CreateIndexes()
	_, err := workerNodesCollection.Indexes().CreateMany(context.Background(), workerNodesIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createDisruptionsIndexes() {
	disruptionsCollection := GetCollection("disruptions")
	disruptionsIndex := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "messagename", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "enddate", Value: 1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := disruptionsCollection.Indexes().CreateMany(context.Background(), disruptionsIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}
