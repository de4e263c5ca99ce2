// Package app assembles the venue pipeline from configuration. The HTTP
// server and the CLI share it so both run the same stack.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"adventure-us/cache"
	"adventure-us/clients"
	"adventure-us/config"
	"adventure-us/logger"
	"adventure-us/services"
)

const connectTimeout = 5 * time.Second

// App holds the wired services and whatever backing connections they own.
type App struct {
	Config     *config.Config
	Logger     *logger.Logger
	Memo       *cache.Memo
	Venues     *services.VenueService
	Categories *services.CategoryService

	redis *redis.Client
	mongo *services.MongoCategoryStore
}

// New builds the pipeline. Redis and MongoDB are optional: when they are not
// configured, or cannot be reached, the in-memory implementations are used.
func New(ctx context.Context, cfg *config.Config, l *logger.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: l}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	common := []clients.Option{
		clients.WithHTTPClient(httpClient),
		clients.WithLogger(l.Named("clients")),
		clients.WithRateLimit(cfg.RequestsPerSec),
	}
	geocoder := clients.NewGeocodingClient(cfg.MapboxToken,
		append(common, clients.WithBaseURL(cfg.MapboxBaseURL))...)
	places := clients.NewPlacesClient(cfg.FoursquareToken,
		append(common, clients.WithBaseURL(cfg.FoursquareURL))...)

	a.Memo = cache.NewMemo(a.memoStore(ctx), l.Named("memo"))

	store, err := a.categoryStore(ctx)
	if err != nil {
		return nil, err
	}
	a.Categories = services.NewCategoryService(store)

	a.Venues = services.NewVenueService(geocoder, places,
		services.WithMemo(a.Memo),
		services.WithDefaultRadius(cfg.DefaultRadiusMil),
		services.WithServiceLogger(l.Named("venues")),
	)
	return a, nil
}

func (a *App) memoStore(ctx context.Context) cache.Store {
	if a.Config.RedisAddr == "" {
		return cache.NewMemoryStore(a.Config.MemoSize)
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	client, err := cache.NewRedisClient(ctx, a.Config.RedisAddr, a.Config.RedisDB)
	if err != nil {
		a.Logger.Warn("redis unavailable, using in-memory memo", zap.Error(err))
		return cache.NewMemoryStore(a.Config.MemoSize)
	}
	a.redis = client
	store := cache.NewRedisStore(client, a.Config.MemoTTL)
	a.Logger.Info("memo backed by redis", zap.String("addr", a.Config.RedisAddr), zap.String("prefix", store.Prefix()))
	return store
}

func (a *App) categoryStore(ctx context.Context) (services.CategoryStore, error) {
	seed, err := services.SeedCategories()
	if err != nil {
		return nil, fmt.Errorf("loading category seed: %w", err)
	}
	if a.Config.MongoURI == "" {
		return services.NewMemoryCategoryStore(seed), nil
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	store, err := services.NewMongoCategoryStore(ctx, a.Config.MongoURI, a.Config.MongoDatabase, seed)
	if err != nil {
		a.Logger.Warn("mongodb unavailable, using embedded categories", zap.Error(err))
		return services.NewMemoryCategoryStore(seed), nil
	}
	a.mongo = store
	a.Logger.Info("categories backed by mongodb", zap.String("database", a.Config.MongoDatabase))
	return store, nil
}

// Close ends the memo session and releases backing connections.
func (a *App) Close(ctx context.Context) {
	if err := a.Memo.Reset(ctx); err != nil {
		a.Logger.Warn("failed to reset memo", zap.Error(err))
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.Logger.Warn("failed to close redis", zap.Error(err))
		}
	}
	if a.mongo != nil {
		if err := a.mongo.Close(ctx); err != nil {
			a.Logger.Warn("failed to close mongodb", zap.Error(err))
		}
	}
}
