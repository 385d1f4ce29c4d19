package routes

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/togsim/togsim/pkg/database"
	"github.com/togsim/togsim/pkg/rsdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func DisruptionsRouter(router fiber.Router) {
	router.Get("/", listDisruptions)
	router.Get("/:messageName", getDisruption)
	router.Post("/", RequireAPIKey(), createDisruption)
	router.Delete("/:messageName", RequireAPIKey(), deleteDisruption)
}

func listDisruptions(c *fiber.Ctx) error {
	disruptionsCollection := database.GetCollection("disruptions")

	disruptions := []rsdf.Disruption{}

	cursor, err := disruptionsCollection.Find(context.Background(), bson.M{})
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	defer cursor.Close(context.Background())

	for cursor.Next(context.Background()) {
		var disruption rsdf.Disruption
		if err := cursor.Decode(&disruption); err != nil {
			continue
		}

		disruptions = append(disruptions, disruption)
	}

	disruptionsReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, disruptions)

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sorry, could not marshal the disruptions",
		})
	}

	return c.JSON(disruptionsReduced)
}

func getDisruption(c *fiber.Ctx) error {
	disruptionsCollection := database.GetCollection("disruptions")

	var disruption *rsdf.Disruption
	err := disruptionsCollection.FindOne(context.Background(), bson.M{"messagename": c.Params("messageName")}).Decode(&disruption)

	if errors.Is(err, mongo.ErrNoDocuments) {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Disruption not found",
		})
	} else if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	disruptionReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic", "detailed"},
	}, disruption)

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sorry, could not marshal the disruption",
		})
	}

	return c.JSON(disruptionReduced)
}

func createDisruption(c *fiber.Ctx) error {
	var disruption rsdf.Disruption
	if err := c.BodyParser(&disruption); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if disruption.MessageName == "" || disruption.StartDate.IsZero() || disruption.EndDate.IsZero() {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	disruptionsCollection := database.GetCollection("disruptions")

	var existingDisruption *rsdf.Disruption
	disruptionsCollection.FindOne(context.Background(), bson.M{"messagename": disruption.MessageName}).Decode(&existingDisruption)

	if existingDisruption != nil {
		c.SendStatus(fiber.StatusConflict)
		return c.JSON(fiber.Map{
			"error": "Disruption message name already exists",
		})
	}

	if _, err := disruptionsCollection.InsertOne(context.Background(), disruption); err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.SendStatus(fiber.StatusCreated)
	return c.JSON(disruption)
}

func deleteDisruption(c *fiber.Ctx) error {
	disruptionsCollection := database.GetCollection("disruptions")

	err := disruptionsCollection.FindOneAndDelete(context.Background(), bson.M{"messagename": c.Params("messageName")}).Err()

	if errors.Is(err, mongo.ErrNoDocuments) {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Disruption not found",
		})
	} else if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
