// @title                       Trip Planner Field Lock API
// @version                     1.0
// @description                 Per-user governed fields that seal on first write, with admin edit overrides.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/hikeplan/trip-planner/internal/api"
	"github.com/hikeplan/trip-planner/internal/api/handler"
	"github.com/hikeplan/trip-planner/internal/core/domain"
	"github.com/hikeplan/trip-planner/internal/core/ports"
	"github.com/hikeplan/trip-planner/internal/core/service"
	"github.com/hikeplan/trip-planner/internal/infrastructure/db/memory"
	mongodb "github.com/hikeplan/trip-planner/internal/infrastructure/db/mongo"
	"github.com/hikeplan/trip-planner/internal/infrastructure/db/postgres"
	redisdb "github.com/hikeplan/trip-planner/internal/infrastructure/db/redis"
	"github.com/hikeplan/trip-planner/internal/infrastructure/queue"
	"github.com/hikeplan/trip-planner/internal/infrastructure/store"
	"github.com/hikeplan/trip-planner/internal/pkg/config"
	"github.com/hikeplan/trip-planner/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "trip-planner",
		Env:     cfg.Env,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// backend groups the storage collaborators of one STORE_BACKEND.
type backend struct {
	rows      ports.RowStore
	roles     ports.RoleRepository
	audit     ports.AuditRepository
	readiness map[string]handler.Pinger
	close     func(context.Context)
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer be.close(context.Background())

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}

	var kv ports.KeyValueStore
	switch {
	case rdb != nil:
		defer rdb.Close()
		be.readiness["redis"] = handler.RedisPinger(rdb)
		kv = store.New(be.rows, redisdb.NewNotifier(rdb, log), log)
	default:
		if mem, ok := be.rows.(*memory.Store); ok {
			kv = mem
		} else {
			kv = store.New(be.rows, memory.NewBroker(), log)
		}
		log.Warn().Msg("REDIS_ADDR not set, change notifications stay in-process")
	}

	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, be.audit, log)
	dispatcher.Start(ctx)

	defaults := domain.Defaults{PoliceStation: cfg.DefaultPoliceStation}
	fields := service.NewFieldService(kv, dispatcher, defaults, log)
	overrides := service.NewOverrideService(kv, dispatcher, log)
	admins := service.NewAdminService(kv, be.roles, dispatcher, log)

	e := api.NewRouter(api.Dependencies{
		Fields:    fields,
		Overrides: overrides,
		Admins:    admins,
		JWTSecret: cfg.JWTSecret,
		Readiness: be.readiness,
		Logger:    log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreBackend).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func openBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backend, error) {
	switch cfg.StoreBackend {
	case config.BackendMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &backend{
			rows:      mongodb.NewUserDataRepository(db),
			roles:     mongodb.NewRoleRepository(db),
			audit:     mongodb.NewAuditRepository(db),
			readiness: map[string]handler.Pinger{"mongodb": handler.MongoPinger(db)},
			close: func(ctx context.Context) {
				if err := client.Disconnect(ctx); err != nil {
					log.Warn().Err(err).Msg("mongo disconnect")
				}
			},
		}, nil

	case config.BackendPostgres:
		db, err := postgres.Open(ctx, postgres.Config{DSN: cfg.Postgres.DSN})
		if err != nil {
			return nil, err
		}
		if err := postgres.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &backend{
			rows:      postgres.NewUserDataRepository(db),
			roles:     postgres.NewRoleRepository(db),
			audit:     postgres.NewAuditRepository(db),
			readiness: map[string]handler.Pinger{"postgres": handler.SQLPinger(db)},
			close: func(context.Context) {
				if err := db.Close(); err != nil {
					log.Warn().Err(err).Msg("postgres close")
				}
			},
		}, nil

	case config.BackendMemory:
		return &backend{
			rows:      memory.NewStore(),
			roles:     memory.NewRoleRepository(),
			audit:     memory.NewAuditRepository(),
			readiness: map[string]handler.Pinger{},
			close:     func(context.Context) {},
		}, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
