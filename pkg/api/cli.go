package api

import (
	"github.com/rs/zerolog/log"
	"github.com/togsim/togsim/pkg/api/routes"
	"github.com/togsim/togsim/pkg/database"
	"github.com/togsim/togsim/pkg/redis_client"
	"github.com/togsim/togsim/pkg/scheduler"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Provides the trains and station boards web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}

					if err := redis_client.Connect(); err != nil {
						log.Warn().Err(err).Msg("Redis unavailable, no board cache fallback")
					} else {
						scheduler.SetupBoardCache()
					}

					routes.OperationsConfig = scheduler.LoadOperationsConfig()

					return SetupServer(c.String("listen"))
				},
			},
		},
	}
}
