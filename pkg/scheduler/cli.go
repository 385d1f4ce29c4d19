package scheduler

import (
	"github.com/rs/zerolog/log"
	"github.com/togsim/togsim/pkg/database"
	"github.com/togsim/togsim/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "scheduler",
		Usage: "Periodic schedule state recomputation jobs",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run the day reset and location aggregation jobs",
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}

					if err := redis_client.Connect(); err != nil {
						log.Warn().Err(err).Msg("Redis unavailable, boards will not be cached")
					} else {
						SetupBoardCache()
					}

					config := LoadOperationsConfig()

					go StartDayResetLoop(config)
					StartAggregationLoop(config)

					return nil
				},
			},
			{
				Name:  "day-reset",
				Usage: "regenerate every train's live route for today once",
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}

					return RunDayReset(LoadOperationsConfig())
				},
			},
			{
				Name:  "aggregate",
				Usage: "run a single location aggregation pass",
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}

					if err := redis_client.Connect(); err != nil {
						log.Warn().Err(err).Msg("Redis unavailable, boards will not be cached")
					} else {
						SetupBoardCache()
					}

					return RunLocationAggregation(LoadOperationsConfig())
				},
			},
		},
	}
}
