package database

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/togsim/togsim/pkg/util"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoInstance struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var MongoGlobalInstance *MongoInstance

const defaultMongoConnectionString = "mongodb://localhost:27017/"
const defaultMongoDatabase = "togsim"

func Connect() error {
	connectionString := defaultMongoConnectionString
	dbName := defaultMongoDatabase

	env := util.GetEnvironmentVariables()

	if env["TOGSIM_MONGODB_CONNECTION"] != "" {
		connectionString = env["TOGSIM_MONGODB_CONNECTION"]
	}

	if env["TOGSIM_MONGODB_DATABASE"] != "" {
		dbName = env["TOGSIM_MONGODB_DATABASE"]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connectionString))
	if err != nil {
		return err
	}

	MongoGlobalInstance = &MongoInstance{
		Client:   client,
		Database: client.Database(dbName),
	}

	connectBackoff := backoff.NewExponentialBackOff()
	connectBackoff.MaxElapsedTime = 2 * time.Minute

	err = backoff.Retry(func() error {
		return client.Ping(context.Background(), nil)
	}, connectBackoff)
	if err != nil {
		return err
	}

	createIndexes()

	return nil
}

func GetCollection(collectionName string) *mongo.Collection {
	return MongoGlobalInstance.Database.Collection(collectionName)
}
