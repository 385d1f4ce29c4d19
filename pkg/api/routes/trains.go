package routes

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/togsim/togsim/pkg/database"
	"github.com/togsim/togsim/pkg/rsdf"
	"github.com/togsim/togsim/pkg/util"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TrainsRouter(router fiber.Router) {
	router.Post("/", RequireAPIKey(), createTrain)
	router.Get("/:trainNumber", getTrain)
	router.Patch("/:trainNumber", RequireAPIKey(), updateTrain)
	router.Patch("/:trainNumber/delay", RequireAPIKey(), delayTrain)
	router.Patch("/:trainNumber/cancel", RequireAPIKey(), cancelTrain)
	router.Delete("/:trainNumber", RequireAPIKey(), deleteTrain)
}

func findTrain(trainNumber string) (*rsdf.Train, error) {
	trainsCollection := database.GetCollection("trains")

	var train *rsdf.Train
	err := trainsCollection.FindOne(context.Background(), bson.M{"trainnumber": trainNumber}).Decode(&train)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, rsdf.ErrTrainNotFound
	} else if err != nil {
		return nil, err
	}

	return train, nil
}

func marshalTrain(c *fiber.Ctx, train *rsdf.Train) error {
	trainReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic", "detailed"},
	}, train)

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sorry, could not marshal the train",
		})
	}

	return c.JSON(trainReduced)
}

type createTrainRequest struct {
	TrainNumber  string              `json:"trainNumber"`
	Operator     string              `json:"operator"`
	ExtraTrain   *bool               `json:"extraTrain"`
	RouteNumber  string              `json:"routeNumber"`
	DefaultRoute []rsdf.StopTemplate `json:"defaultRoute"`
}

func createTrain(c *fiber.Ctx) error {
	var request createTrainRequest
	if err := c.BodyParser(&request); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if request.TrainNumber == "" || request.Operator == "" || request.ExtraTrain == nil || request.DefaultRoute == nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	if err := rsdf.ValidateRoute(request.DefaultRoute); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	trainsCollection := database.GetCollection("trains")

	var existingTrain *rsdf.Train
	trainsCollection.FindOne(context.Background(), bson.M{"trainnumber": request.TrainNumber}).Decode(&existingTrain)

	if existingTrain != nil {
		c.SendStatus(fiber.StatusConflict)
		return c.JSON(fiber.Map{
			"error": "Train number already exists",
		})
	}

	train := &rsdf.Train{
		TrainNumber: request.TrainNumber,
		Operator:    request.Operator,
		ExtraTrain:  *request.ExtraTrain,
		RouteNumber: request.RouteNumber,

		DefaultRoute: request.DefaultRoute,

		CurrentFormation: map[string]interface{}{},
		Position:         []interface{}{},
	}
	train.CurrentRoute = train.BuildCurrentRoute(time.Now(), util.GetLocation())

	_, err := trainsCollection.InsertOne(context.Background(), train)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.SendStatus(fiber.StatusCreated)
	return marshalTrain(c, train)
}

func getTrain(c *fiber.Ctx) error {
	train, err := findTrain(c.Params("trainNumber"))

	if errors.Is(err, rsdf.ErrTrainNotFound) {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Train not found",
		})
	} else if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return marshalTrain(c, train)
}

func updateTrain(c *fiber.Ctx) error {
	var updates map[string]interface{}
	if err := c.BodyParser(&updates); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	trainsCollection := database.GetCollection("trains")

	returnDocument := options.After
	var updatedTrain *rsdf.Train
	err := trainsCollection.FindOneAndUpdate(
		context.Background(),
		bson.M{"trainnumber": c.Params("trainNumber")},
		bson.M{"$set": updates},
		&options.FindOneAndUpdateOptions{ReturnDocument: &returnDocument},
	).Decode(&updatedTrain)

	if errors.Is(err, mongo.ErrNoDocuments) {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Train not found",
		})
	} else if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return marshalTrain(c, updatedTrain)
}

type delayTrainRequest struct {
	Delay         *int `json:"delay"`
	EditStopTimes bool `json:"editStopTimes"`
}

func delayTrain(c *fiber.Ctx) error {
	var request delayTrainRequest
	if err := c.BodyParser(&request); err != nil || request.Delay == nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Missing delay",
		})
	}

	train, err := findTrain(c.Params("trainNumber"))

	if errors.Is(err, rsdf.ErrTrainNotFound) {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Train not found",
		})
	} else if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	train.ApplyDelay(*request.Delay, request.EditStopTimes)

	if err := persistCurrentRoute(train); err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return marshalTrain(c, train)
}

type cancelTrainRequest struct {
	StartLocation string `json:"startLocation"`
}

func cancelTrain(c *fiber.Ctx) error {
	var request cancelTrainRequest
	if err := c.BodyParser(&request); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	train, err := findTrain(c.Params("trainNumber"))

	if errors.Is(err, rsdf.ErrTrainNotFound) {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Train not found",
		})
	} else if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := train.ApplyCancellation(request.StartLocation); err != nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Start location not found on route",
		})
	}

	if err := persistCurrentRoute(train); err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return marshalTrain(c, train)
}

func persistCurrentRoute(train *rsdf.Train) error {
	trainsCollection := database.GetCollection("trains")

	_, err := trainsCollection.UpdateOne(
		context.Background(),
		bson.M{"trainnumber": train.TrainNumber},
		bson.M{"$set": bson.M{"currentroute": train.CurrentRoute}},
	)

	return err
}

func deleteTrain(c *fiber.Ctx) error {
	trainsCollection := database.GetCollection("trains")

	err := trainsCollection.FindOneAndDelete(context.Background(), bson.M{"trainnumber": c.Params("trainNumber")}).Err()

	if errors.Is(err, mongo.ErrNoDocuments) {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Train not found",
		})
	} else if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
