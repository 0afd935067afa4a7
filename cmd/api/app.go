package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/BruksfildServices01/workshop-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/workshop-scheduler/internal/db"
	"github.com/BruksfildServices01/workshop-scheduler/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/workshop-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/workshop-scheduler/internal/infra/supabase"
	"github.com/BruksfildServices01/workshop-scheduler/internal/logger"
	"github.com/BruksfildServices01/workshop-scheduler/internal/routes"
	ucAppointment "github.com/BruksfildServices01/workshop-scheduler/internal/usecase/appointment"
)

// app holds the collaborators shared by every command.
type app struct {
	cfg   *config.Config
	log   *logger.Logger
	store routes.Store
	cache *cache.AvailabilityCache

	closers []func()
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg: cfg,
		log: logger.New(os.Stderr, logger.ParseLevel(cfg.LogLevel)),
	}

	switch cfg.StoreDriver {
	case config.DriverSupabase:
		store, err := supabase.New(cfg.SupabaseURL, cfg.SupabaseKey, cfg.DefaultOffsetMinutes)
		if err != nil {
			return nil, err
		}
		a.store = store
	default:
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			return nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			a.closers = append(a.closers, func() { _ = sqlDB.Close() })
		}
		a.store = infraRepo.NewAppointmentGormRepository(db)
	}

	if cfg.CacheEnabled() {
		rdb := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()

		if err := cache.Ping(pingCtx, rdb); err != nil {
			// availability still works straight from the store
			a.log.Warn("availability cache disabled: %v", err)
			_ = rdb.Close()
		} else {
			a.cache = cache.NewAvailabilityCache(rdb, cfg.CacheTTL())
			a.closers = append(a.closers, func() { _ = rdb.Close() })
		}
	}

	a.log.Info("store=%s cache=%t offset=%d increment=%s",
		cfg.StoreDriver, a.cache != nil, cfg.DefaultOffsetMinutes, cfg.SlotIncrement())

	return a, nil
}

// deps builds the use case collaborators; audit and metrics are added by serve.
func (a *app) deps() ucAppointment.Deps {
	d := ucAppointment.Deps{
		Repo:                 a.store,
		Log:                  a.log,
		DefaultOffsetMinutes: a.cfg.DefaultOffsetMinutes,
		SlotIncrement:        a.cfg.SlotIncrement(),
	}
	if a.cache != nil {
		d.Cache = a.cache
	}
	return d
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func mustDriver(cfg *config.Config, want string) error {
	if cfg.StoreDriver != want {
		return fmt.Errorf("command requires STORE_DRIVER=%s, got %s", want, cfg.StoreDriver)
	}
	return nil
}
