package rsdf

import (
	"time"
)

// Dwell time at a stop can shrink while absorbing delay, but never below
// one minute.
const minimumDwellMinutes = 1

// ApplyDelay redistributes a reported delay across the remainder of the
// route, starting at the first stop that is neither passed nor cancelled.
//
// With editStopTimes set, a stop with more than a minute of dwell time
// absorbs part of the delay: its arrival shifts by the full remaining
// delay while its departure shifts by less, shrinking the dwell down to
// the one minute floor. The reduced delay carries on to the next stop.
// Without editStopTimes every eligible stop shifts by the full input
// delay and dwell times are untouched.
//
// The mutation is in-memory only; the caller persists the train.
func (train *Train) ApplyDelay(delayMinutes int, editStopTimes bool) {
	delayLeft := delayMinutes

	for index := range train.CurrentRoute {
		stop := &train.CurrentRoute[index]

		if stop.Passed || stop.CancelledAtStation {
			continue
		}

		if !editStopTimes {
			if delayMinutes <= 0 {
				break
			}

			stop.Arrival = stop.Arrival.Add(time.Duration(delayMinutes) * time.Minute)
			stop.Departure = stop.Departure.Add(time.Duration(delayMinutes) * time.Minute)

			continue
		}

		if delayLeft <= 0 {
			break
		}

		dwellMinutes := int(stop.Departure.Sub(stop.Arrival) / time.Minute)

		if dwellMinutes > minimumDwellMinutes {
			reduction := dwellMinutes - minimumDwellMinutes
			if delayLeft < reduction {
				reduction = delayLeft
			}

			stop.Arrival = stop.Arrival.Add(time.Duration(delayLeft) * time.Minute)
			stop.Departure = stop.Departure.Add(time.Duration(delayLeft-reduction) * time.Minute)

			delayLeft -= reduction
		} else {
			stop.Arrival = stop.Arrival.Add(time.Duration(delayLeft) * time.Minute)
			stop.Departure = stop.Departure.Add(time.Duration(delayLeft) * time.Minute)
		}
	}
}
