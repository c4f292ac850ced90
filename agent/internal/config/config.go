package config

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	BackendURL        string
	User              string
	HeartbeatInterval time.Duration
	MonitorPaths      []string
	LogPath           string
}

var cfg AppConfig

// Init reads the agent section of the YAML file at path. A missing file keeps
// the defaults; MONITOR_AGENT_* variables override either.
func Init(path string) (AppConfig, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("MONITOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// defaults
	v.SetDefault("agent.backend.url", "http://127.0.0.1:3000")
	v.SetDefault("agent.user", defaultUser())
	v.SetDefault("agent.heartbeat_interval", "30s")
	v.SetDefault("agent.monitor_paths", []string{})
	v.SetDefault("agent.log_path", "")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return AppConfig{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg = AppConfig{
		BackendURL:        strings.TrimRight(v.GetString("agent.backend.url"), "/"),
		User:              v.GetString("agent.user"),
		HeartbeatInterval: v.GetDuration("agent.heartbeat_interval"),
		MonitorPaths:      v.GetStringSlice("agent.monitor_paths"),
		LogPath:           v.GetString("agent.log_path"),
	}
	if cfg.User == "" {
		cfg.User = defaultUser()
	}
	if cfg.HeartbeatInterval <= 0 {
		cfg.HeartbeatInterval = 30 * time.Second
	}
	return cfg, nil
}

func Get() AppConfig { return cfg }

// defaultUser identifies the endpoint as user@hostname.
func defaultUser() string {
	host, _ := os.Hostname()
	name := "unknown"
	if u, err := user.Current(); err == nil && u.Username != "" {
		name = u.Username
	}
	if host == "" {
		return name
	}
	return name + "@" + host
}
