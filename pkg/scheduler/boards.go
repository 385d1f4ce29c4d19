package scheduler

import (
	"sort"
	"sync/atomic"

	"github.com/togsim/togsim/pkg/rsdf"
)

// StationBoards is one fully built generation of every station's
// arrivals and departures board. A generation is immutable once
// published; each aggregation run builds a fresh one and swaps the
// pointer, so readers never observe a partially rebuilt board.
type StationBoards struct {
	Arrivals   map[string][]*rsdf.BoardEntry
	Departures map[string][]*rsdf.BoardEntry
}

func NewStationBoards() *StationBoards {
	return &StationBoards{
		Arrivals:   map[string][]*rsdf.BoardEntry{},
		Departures: map[string][]*rsdf.BoardEntry{},
	}
}

// Sort orders every arrivals board by scheduled arrival and every
// departures board by scheduled departure, ascending.
func (b *StationBoards) Sort() {
	for _, entries := range b.Arrivals {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].ScheduledArrival.Before(entries[j].ScheduledArrival)
		})
	}

	for _, entries := range b.Departures {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].ScheduledDeparture.Before(entries[j].ScheduledDeparture)
		})
	}
}

var publishedBoards atomic.Pointer[StationBoards]

func init() {
	publishedBoards.Store(NewStationBoards())
}

// PublishedBoards returns the latest published generation. Never nil.
func PublishedBoards() *StationBoards {
	return publishedBoards.Load()
}

func publishStationBoards(boards *StationBoards) {
	publishedBoards.Store(boards)
}
