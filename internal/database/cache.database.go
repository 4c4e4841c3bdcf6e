package database

import (
	"context"
	"fmt"
	"time"

	"inventory/config"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/valkey-io/valkey-go"
)

// Valkey database indexes. Each category gets its own logical database.
const (
	// General purpose caching.
	GENERAL_CACHE_INDEX = iota

	// Websocket session bookkeeping.
	SESSION_CACHE_INDEX

	// User profiles keyed by token subject.
	USER_CACHE_INDEX

	// Pub/sub channels for activity events.
	EVENTS_CACHE_INDEX
)

func newCacheClient(address string, port int, index int) (CacheClient, error) {
	return valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{fmt.Sprintf("%s:%d", address, port)},
		SelectDB:    index,
	})
}

func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")
	log.Info("initializing cache database")

	address := config.DatabaseCacheAddress
	port := config.DatabaseCachePort
	if address == "" || port == 0 {
		return log.Errorf("failed to initialize cache database", "address or port is empty")
	}

	var cacheDB Cache
	var err error

	if cacheDB.General, err = newCacheClient(address, port, GENERAL_CACHE_INDEX); err != nil {
		return log.Err("failed to create general valkey client", err)
	}
	if cacheDB.Session, err = newCacheClient(address, port, SESSION_CACHE_INDEX); err != nil {
		return log.Err("failed to create session valkey client", err)
	}
	if cacheDB.User, err = newCacheClient(address, port, USER_CACHE_INDEX); err != nil {
		return log.Err("failed to create user valkey client", err)
	}
	if cacheDB.Events, err = newCacheClient(address, port, EVENTS_CACHE_INDEX); err != nil {
		return log.Err("failed to create events valkey client", err)
	}

	s.Cache = cacheDB

	if config.DatabaseCacheReset != -1 {
		go clearCacheDB(config.DatabaseCacheReset, cacheDB)
	}

	return nil
}

func (c Cache) byIndex(index int) (CacheClient, string) {
	switch index {
	case GENERAL_CACHE_INDEX:
		return c.General, "General"
	case SESSION_CACHE_INDEX:
		return c.Session, "Session"
	case USER_CACHE_INDEX:
		return c.User, "User"
	case EVENTS_CACHE_INDEX:
		return c.Events, "Events"
	}
	return nil, ""
}

func clearCacheDB(index int, cacheDB Cache) {
	log := logger.New("database").File("cache.database").Function("clearCacheDB")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, dbName := cacheDB.byIndex(index)
	if client == nil {
		log.Warn("Invalid cache database index", "index", index)
		return
	}

	if err := client.Do(ctx, client.B().Flushdb().Build()).Error(); err != nil {
		log.Er("Failed to clear cache database", err, "index", index, "dbName", dbName)
		return
	}

	log.Info("Successfully cleared cache database", "index", index, "dbName", dbName)
}
