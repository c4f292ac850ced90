package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type DB struct {
	Driver string
	Host   string
	Port   int
	User   string
	Pass   string
	Name   string
	DSN    string
	Path   string
}

type Presence struct {
	SweepInterval time.Duration
	StaleAfter    time.Duration
}

type Auth struct {
	Enabled   bool
	AdminUser string
	AdminPass string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

type Log struct {
	Level  string
	Format string
}

type Config struct {
	Host     string
	Port     int
	DB       DB
	Presence Presence
	Auth     Auth
	Redis    Redis
	Log      Log
	JWT      struct {
		Secret string
		Issuer string
		ExpMin int
	}
}

// Addr returns the HTTP listen address.
func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// Load reads the YAML file at path (a missing file keeps the defaults) and
// applies MONITOR_* environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("MONITOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("backend.port", "MONITOR_BACKEND_PORT", "PORT")

	// Defaults
	v.SetDefault("backend.host", "0.0.0.0")
	v.SetDefault("backend.port", 3000)
	v.SetDefault("backend.db.driver", "sqlite")
	v.SetDefault("backend.db.host", "127.0.0.1")
	v.SetDefault("backend.db.port", 3306)
	v.SetDefault("backend.db.user", "root")
	v.SetDefault("backend.db.pass", "")
	v.SetDefault("backend.db.name", "monitor")
	v.SetDefault("backend.db.dsn", "")
	v.SetDefault("backend.db.path", "monitor.db")
	v.SetDefault("backend.presence.sweep_interval", "60s")
	v.SetDefault("backend.presence.stale_after", "120s")
	v.SetDefault("backend.auth.enabled", false)
	v.SetDefault("backend.auth.admin_user", "admin")
	v.SetDefault("backend.auth.admin_pass", "admin123")
	v.SetDefault("backend.redis.addr", "")
	v.SetDefault("backend.redis.db", 0)
	v.SetDefault("backend.redis.channel", "monitor:alerts")
	v.SetDefault("backend.log.level", "info")
	v.SetDefault("backend.log.format", "console")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !isMissing(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Host: v.GetString("backend.host"),
		Port: v.GetInt("backend.port"),
		DB: DB{
			Driver: strings.ToLower(v.GetString("backend.db.driver")),
			Host:   v.GetString("backend.db.host"),
			Port:   v.GetInt("backend.db.port"),
			User:   v.GetString("backend.db.user"),
			Pass:   v.GetString("backend.db.pass"),
			Name:   v.GetString("backend.db.name"),
			DSN:    v.GetString("backend.db.dsn"),
			Path:   v.GetString("backend.db.path"),
		},
		Presence: Presence{
			SweepInterval: v.GetDuration("backend.presence.sweep_interval"),
			StaleAfter:    v.GetDuration("backend.presence.stale_after"),
		},
		Auth: Auth{
			Enabled:   v.GetBool("backend.auth.enabled"),
			AdminUser: v.GetString("backend.auth.admin_user"),
			AdminPass: v.GetString("backend.auth.admin_pass"),
		},
		Redis: Redis{
			Addr:     v.GetString("backend.redis.addr"),
			Password: v.GetString("backend.redis.password"),
			DB:       v.GetInt("backend.redis.db"),
			Channel:  v.GetString("backend.redis.channel"),
		},
		Log: Log{
			Level:  v.GetString("backend.log.level"),
			Format: v.GetString("backend.log.format"),
		},
	}
	if cfg.Presence.SweepInterval <= 0 {
		cfg.Presence.SweepInterval = time.Minute
	}
	if cfg.Presence.StaleAfter <= 0 {
		cfg.Presence.StaleAfter = 2 * cfg.Presence.SweepInterval
	}
	cfg.JWT.Secret = v.GetString("backend.jwt.secret")
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "dev-secret"
	}
	cfg.JWT.Issuer = v.GetString("backend.jwt.issuer")
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "monitor-hub"
	}
	cfg.JWT.ExpMin = v.GetInt("backend.jwt.exp_min")
	if cfg.JWT.ExpMin <= 0 {
		cfg.JWT.ExpMin = 60
	}
	return cfg, nil
}

func isMissing(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}
