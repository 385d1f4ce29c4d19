package rsdf

import (
	"golang.org/x/exp/slices"
)

// ApplyCancellation marks a suffix of the Live Route as cancelled.
//
// With an empty startCode every unpassed stop on the route is cancelled.
// Otherwise every stop from the first occurrence of startCode to the end
// of the route is cancelled regardless of passed state, and
// ErrStopNotFound is returned when the code is not on the route.
//
// Cancellation is one-way: the aggregation job never clears the flag,
// only an administrative update can.
func (train *Train) ApplyCancellation(startCode string) error {
	if startCode == "" {
		for index := range train.CurrentRoute {
			if !train.CurrentRoute[index].Passed {
				train.CurrentRoute[index].CancelledAtStation = true
			}
		}

		return nil
	}

	startIndex := slices.IndexFunc(train.CurrentRoute, func(stop StopInstance) bool {
		return stop.Code == startCode
	})

	if startIndex == -1 {
		return ErrStopNotFound
	}

	for index := startIndex; index < len(train.CurrentRoute); index++ {
		train.CurrentRoute[index].CancelledAtStation = true
	}

	return nil
}
