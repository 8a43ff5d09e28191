// @title                      Inventory API
// @version                    1.0
// @description                Inventory tracking with role-based access and filtered listings.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/inventrack/inventory-api/internal/api"
	"github.com/inventrack/inventory-api/internal/api/handler"
	"github.com/inventrack/inventory-api/internal/api/metrics"
	"github.com/inventrack/inventory-api/internal/core/ports"
	"github.com/inventrack/inventory-api/internal/core/query"
	"github.com/inventrack/inventory-api/internal/core/service"
	"github.com/inventrack/inventory-api/internal/core/token"
	"github.com/inventrack/inventory-api/internal/infrastructure/config"
	"github.com/inventrack/inventory-api/internal/infrastructure/db/memory"
	mongostore "github.com/inventrack/inventory-api/internal/infrastructure/db/mongo"
	redisstore "github.com/inventrack/inventory-api/internal/infrastructure/db/redis"
	"github.com/inventrack/inventory-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

type stores struct {
	users       ports.AuthRepository
	items       ports.ItemRepository
	revocations ports.RevocationStore
	checks      []handler.DependencyCheck
	close       func(context.Context)
}

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "inventory-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store).Msg("failed to open stores")
	}

	codec, err := token.NewCodec([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build token codec")
	}

	authSvc := service.NewAuthService(st.users, codec, st.revocations, cfg.Auth.BcryptCost,
		log.With().Str("component", "auth").Logger(),
		service.WithRevokeHook(metrics.TokensRevokedTotal.Inc),
	)
	itemSvc := service.NewItemService(st.items, st.users, log.With().Str("component", "items").Logger())

	if cfg.Bootstrap.Enabled() {
		if err := authSvc.EnsureAdmin(ctx, cfg.Bootstrap.Name, cfg.Bootstrap.Email, cfg.Bootstrap.Password); err != nil {
			log.Fatal().Err(err).Msg("failed to seed bootstrap admin")
		}
	}

	e := api.NewRouter(api.Deps{
		AuthService:  authSvc,
		ItemService:  itemSvc,
		Tokens:       codec,
		Revocations:  st.revocations,
		Queries:      query.NewBuilder(cfg.Items.DefaultLimit, cfg.Items.MaxLimit),
		HealthChecks: st.checks,
		Logger:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.Store).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}
	st.close(shutdownCtx)
	log.Info().Msg("server stopped")
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	if cfg.Store == config.StoreMemory {
		log.Warn().Msg("using in-memory stores, data is lost on restart")
		return &stores{
			users:       memory.NewUserStore(),
			items:       memory.NewItemStore(),
			revocations: memory.NewRevocationStore(),
			close:       func(context.Context) {},
		}, nil
	}

	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "inventory-api",
	})
	if err != nil {
		return nil, err
	}
	users := mongostore.NewAuthRepository(db)
	items := mongostore.NewItemRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	if err := items.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &stores{
		users:       users,
		items:       items,
		revocations: redisstore.NewRevocationStore(rdb),
		checks:      []handler.DependencyCheck{handler.MongoCheck(db), handler.RedisCheck(rdb)},
		close: func(ctx context.Context) {
			if err := rdb.Close(); err != nil {
				log.Warn().Err(err).Msg("redis close failed")
			}
			if err := client.Disconnect(ctx); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect failed")
			}
		},
	}, nil
}
