package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/rs/zerolog/log"
	"github.com/togsim/togsim/pkg/redis_client"
	"github.com/togsim/togsim/pkg/rsdf"
)

// BoardCache write-through publishes each station's boards into redis so
// a separately deployed API process can serve boards computed here.
type BoardCache struct {
	Cache *cache.Cache[string]
}

var GlobalBoardCache *BoardCache

func SetupBoardCache() {
	redisStore := redisstore.NewRedis(redis_client.Client, store.WithExpiration(10*time.Minute))

	GlobalBoardCache = &BoardCache{
		Cache: cache.New[string](redisStore),
	}
}

func boardCacheKey(boardType string, stationCode string) string {
	return fmt.Sprintf("togsim:board:%s:%s", boardType, stationCode)
}

func (b *BoardCache) PublishBoards(boards *StationBoards) {
	b.publishBoardMap("arrivals", boards.Arrivals)
	b.publishBoardMap("departures", boards.Departures)
}

func (b *BoardCache) publishBoardMap(boardType string, boardMap map[string][]*rsdf.BoardEntry) {
	for stationCode, entries := range boardMap {
		entriesJSON, err := json.Marshal(entries)
		if err != nil {
			log.Error().Err(err).Str("station", stationCode).Msg("Failed to marshal board")
			continue
		}

		err = b.Cache.Set(context.Background(), boardCacheKey(boardType, stationCode), string(entriesJSON))
		if err != nil {
			log.Error().Err(err).Str("station", stationCode).Msg("Failed to cache board")
		}
	}
}

func (b *BoardCache) GetBoard(boardType string, stationCode string) []*rsdf.BoardEntry {
	boardCacheValue, err := b.Cache.Get(context.Background(), boardCacheKey(boardType, stationCode))
	if err != nil {
		return nil
	}

	var entries []*rsdf.BoardEntry
	if err := json.Unmarshal([]byte(boardCacheValue), &entries); err != nil {
		return nil
	}

	return entries
}
