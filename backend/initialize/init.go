package initialize

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"monitor-hub/backend/app/controllers"
	"monitor-hub/backend/app/db"
	jwtutil "monitor-hub/backend/app/jwt"
	"monitor-hub/backend/app/middleware"
	"monitor-hub/backend/app/repo"
	"monitor-hub/backend/app/services"
	"monitor-hub/backend/config"
	"monitor-hub/backend/global"
	"monitor-hub/backend/router"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	Cfg     *config.Config
	DB      *gorm.DB
	Redis   *redis.Client
	Router  http.Handler
	Sweeper *services.Sweeper
}

// Build loads configuration and wires storage, services and the router.
func Build(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	global.Config = *cfg
	SetupLogger(cfg.Log)

	gdb, err := db.Connect(db.Config{
		Driver:   cfg.DB.Driver,
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Pass,
		DBName:   cfg.DB.Name,
		DSN:      cfg.DB.DSN,
		Path:     cfg.DB.Path,
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	if err := db.Migrate(gdb); err != nil {
		return nil, err
	}
	global.Mdb = gdb
	global.Logger.Info().Str("driver", cfg.DB.Driver).Msg("database ready")

	return NewApp(cfg, gdb)
}

// NewApp wires an App on top of an open, migrated database.
func NewApp(cfg *config.Config, gdb *gorm.DB) (*App, error) {
	app := &App{Cfg: cfg, DB: gdb}

	var notifier services.AlertNotifier = services.NopNotifier{}
	if cfg.Redis.Addr != "" {
		app.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := app.Redis.Ping(ctx).Err(); err != nil {
			global.Logger.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable; alerts will be published once it is up")
		}
		cancel()
		global.Rdb = app.Redis
		notifier = services.NewRedisNotifier(app.Redis, cfg.Redis.Channel)
	}

	// Repositories
	deviceRepo := repo.NewDeviceRepository(gdb)
	siteRepo := repo.NewBlockedSiteRepository(gdb)
	alertRepo := repo.NewAlertRepository(gdb)
	activityRepo := repo.NewActivityRepository(gdb)
	userRepo := repo.NewUserRepository(gdb)

	// Services
	presence := services.NewPresenceService(deviceRepo, nil)
	policies := services.NewPolicyService(siteRepo, nil)
	activity := services.NewActivityService(services.ActivityDeps{
		Activities: activityRepo,
		Sites:      siteRepo,
		Alerts:     alertRepo,
		Presence:   presence,
		Notifier:   notifier,
	})
	alerts := services.NewAlertService(alertRepo)
	users := services.NewUserService(userRepo)
	if cfg.Auth.Enabled {
		if err := users.EnsureAdmin(context.Background(), cfg.Auth.AdminUser, cfg.Auth.AdminPass); err != nil {
			return nil, fmt.Errorf("ensure admin: %w", err)
		}
	}
	app.Sweeper = services.NewSweeper(presence, cfg.Presence.SweepInterval, cfg.Presence.StaleAfter)

	// Controllers
	signer := &jwtutil.Signer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer, ExpMin: cfg.JWT.ExpMin}
	mw := &middleware.Auth{Signer: signer, Enabled: cfg.Auth.Enabled}
	app.Router = router.NewRouter(router.Controllers{
		Activity:     controllers.NewActivityController(activity),
		Devices:      controllers.NewDeviceController(presence),
		BlockedSites: controllers.NewBlockedSiteController(policies),
		Alerts:       controllers.NewAlertController(alerts),
		Auth:         controllers.NewAuthController(users, signer),
		Health:       controllers.NewHealthController(gdb),
	}, mw)

	return app, nil
}

// Close releases the database and redis connections.
func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
