package main

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/text/language"

	"github.com/megabonk/catalog-api/internal/catalogstore"
	"github.com/megabonk/catalog-api/internal/clients/source"
	"github.com/megabonk/catalog-api/internal/engine/query"
	"github.com/megabonk/catalog-api/internal/orchestrators/browse"
	"github.com/megabonk/catalog-api/internal/pkg/clock"
	"github.com/megabonk/catalog-api/internal/pkg/idgen"
	"github.com/megabonk/catalog-api/internal/redis"
	"github.com/megabonk/catalog-api/internal/repositories/announcements"
	"github.com/megabonk/catalog-api/internal/repositories/favorites"
)

// cliSearchDelay keeps single-shot invocations snappy; the browse
// orchestrator still exercises the same debounce path.
const cliSearchDelay = time.Millisecond

// app wires the store, engine, repositories, and orchestrator for one
// CLI invocation.
type app struct {
	service browse.Service
	store   *catalogstore.Store
}

func newApp(ctx context.Context) (*app, error) {
	src, err := source.New(&source.Config{DataDir: dataDir})
	if err != nil {
		return nil, err
	}

	collections, err := src.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	store := catalogstore.New()
	for _, coll := range collections {
		if err := store.Put(coll); err != nil {
			return nil, err
		}
	}

	favRepo, annRepo := newRepositories(ctx)

	service, err := browse.NewOrchestrator(&browse.Config{
		Store:         store,
		Engine:        query.New(language.English),
		Favorites:     favRepo,
		Announcements: annRepo,
		IDGenerator:   idgen.NewUUID("session"),
		Clock:         clock.New(),
		SearchDelay:   cliSearchDelay,
	})
	if err != nil {
		return nil, err
	}

	return &app{service: service, store: store}, nil
}

// newRepositories connects to Redis, falling back to session-only
// repositories when it is unreachable. The favorite feature degrades
// silently per its contract.
func newRepositories(ctx context.Context) (favorites.Repository, announcements.Repository) {
	client, err := redis.NewClient(redisAddr, nil)
	if err == nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		err = client.Ping(pingCtx).Err()
	}
	if err != nil {
		slog.Warn("redis unreachable, favorites are session-only", "error", err)
		return favorites.NewInMemory(), announcements.NewInMemory()
	}

	favRepo, err := favorites.NewRedis(&favorites.RedisConfig{Client: client})
	if err != nil {
		slog.Warn("favorites repository unavailable, using session-only", "error", err)
		return favorites.NewInMemory(), announcements.NewInMemory()
	}

	annRepo, err := announcements.NewRedis(&announcements.RedisConfig{Client: client})
	if err != nil {
		slog.Warn("announcements repository unavailable, using session-only", "error", err)
		return favRepo, announcements.NewInMemory()
	}

	return favRepo, annRepo
}

// waitForSearch lets the debounce window elapse before reading results in
// one-shot commands.
func waitForSearch() {
	time.Sleep(20 * cliSearchDelay)
}
