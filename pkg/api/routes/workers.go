package routes

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/togsim/togsim/pkg/database"
	"github.com/togsim/togsim/pkg/rsdf"
	"github.com/togsim/togsim/pkg/scheduler"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func WorkersRouter(router fiber.Router) {
	router.Get("/", listWorkerNodes)
	router.Put("/:jobId", RequireAPIKey(), updateWorkerNode)
	router.Delete("/:jobId", RequireAPIKey(), deleteWorkerNode)
}

func listWorkerNodes(c *fiber.Ctx) error {
	workerNodesCollection := database.GetCollection("worker_nodes")

	workerNodes := []rsdf.WorkerNode{}

	cursor, err := workerNodesCollection.Find(context.Background(), bson.M{})
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	defer cursor.Close(context.Background())

	for cursor.Next(context.Background()) {
		var workerNode rsdf.WorkerNode
		if err := cursor.Decode(&workerNode); err != nil {
			continue
		}

		workerNodes = append(workerNodes, workerNode)
	}

	total, err := scheduler.ActiveWorkerCount()
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"nodes":              workerNodes,
		"totalActiveWorkers": total,
	})
}

type updateWorkerNodeRequest struct {
	ActiveWorkers *int `json:"activeWorkers"`
}

func updateWorkerNode(c *fiber.Ctx) error {
	var request updateWorkerNodeRequest
	if err := c.BodyParser(&request); err != nil || request.ActiveWorkers == nil || *request.ActiveWorkers < 0 {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "activeWorkers must be a non-negative integer",
		})
	}

	workerNode := rsdf.WorkerNode{
		JobID:         c.Params("jobId"),
		ActiveWorkers: *request.ActiveWorkers,
	}

	workerNodesCollection := database.GetCollection("worker_nodes")

	updateOptions := options.Update().SetUpsert(true)
	_, err := workerNodesCollection.UpdateOne(
		context.Background(),
		bson.M{"jobid": workerNode.JobID},
		bson.M{"$set": workerNode},
		updateOptions,
	)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(workerNode)
}

func deleteWorkerNode(c *fiber.Ctx) error {
	workerNodesCollection := database.GetCollection("worker_nodes")

	err := workerNodesCollection.FindOneAndDelete(context.Background(), bson.M{"jobid": c.Params("jobId")}).Err()

	if errors.Is(err, mongo.ErrNoDocuments) {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Worker node not found",
		})
	} else if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
