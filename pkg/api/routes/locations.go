package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/togsim/togsim/pkg/rsdf"
	"github.com/togsim/togsim/pkg/scheduler"
)

// OperationsConfig is set once at startup and used when a caller forces
// an aggregation pass.
var OperationsConfig *scheduler.OperationsConfig

func LocationsRouter(router fiber.Router) {
	router.Get("/:stationCode/arrivals", getArrivalsBoard)
	router.Get("/:stationCode/departures", getDeparturesBoard)
	router.Post("/", RequireAPIKey(), forceAggregation)
}

// Board reads prefer the locally published snapshot and fall back to the
// redis cache when the scheduler runs in a separate process.
func getBoard(c *fiber.Ctx, boardType string, localBoard map[string][]*rsdf.BoardEntry) error {
	stationCode := c.Params("stationCode")

	entries := localBoard[stationCode]

	if entries == nil && scheduler.GlobalBoardCache != nil {
		entries = scheduler.GlobalBoardCache.GetBoard(boardType, stationCode)
	}

	if len(entries) == 0 {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Station not found or no trains going through this station",
		})
	}

	entriesReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, entries)

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sorry, could not marshal the board",
		})
	}

	return c.JSON(entriesReduced)
}

func getArrivalsBoard(c *fiber.Ctx) error {
	return getBoard(c, "arrivals", scheduler.PublishedBoards().Arrivals)
}

func getDeparturesBoard(c *fiber.Ctx) error {
	return getBoard(c, "departures", scheduler.PublishedBoards().Departures)
}

func forceAggregation(c *fiber.Ctx) error {
	if err := scheduler.RunLocationAggregation(OperationsConfig); err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status": "Locations updated",
	})
}
