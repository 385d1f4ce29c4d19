package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/togsim/togsim/pkg/util"
)

func Status(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "Running",
	})
}

// RequireAPIKey guards mutating routes with the shared key header.
func RequireAPIKey() fiber.Handler {
	return func(c *fiber.Ctx) error {
		env := util.GetEnvironmentVariables()

		if env["TOGSIM_API_KEY"] == "" || c.Get("key") != env["TOGSIM_API_KEY"] {
			c.SendStatus(fiber.StatusUnauthorized)
			return c.JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		return c.Next()
	}
}
