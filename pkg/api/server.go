package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/togsim/togsim/pkg/api/routes"
)

func SetupServer(listen string) error {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	webApp.Get("/status", routes.Status)

	routes.TrainsRouter(webApp.Group("/trains"))
	routes.LocationsRouter(webApp.Group("/locations"))
	routes.WorkersRouter(webApp.Group("/workers"))
	routes.DisruptionsRouter(webApp.Group("/disruptions"))

	return webApp.Listen(listen)
}
