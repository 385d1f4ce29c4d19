package util

import (
	"time"

	"github.com/rs/zerolog/log"
)

const defaultTimezone = "Europe/Oslo"

var cachedLocation *time.Location

// GetLocation returns the local civil timezone the railway operates in,
// configurable with TOGSIM_TIMEZONE.
func GetLocation() *time.Location {
	if cachedLocation != nil {
		return cachedLocation
	}

	timezone := defaultTimezone

	env := GetEnvironmentVariables()
	if env["TOGSIM_TIMEZONE"] != "" {
		timezone = env["TOGSIM_TIMEZONE"]
	}

	location, err := time.LoadLocation(timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", timezone).Msg("Unknown timezone")
	}

	cachedLocation = location

	return cachedLocation
}
