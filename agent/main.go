package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"monitor-hub/agent/internal/config"
	"monitor-hub/agent/internal/logger"
	"monitor-hub/agent/internal/monitor"
	"monitor-hub/agent/internal/reporter"
	"monitor-hub/agent/internal/sysinfo"
)

const agentVersion = "0.1.0"

func main() {
	cfgPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Init(*cfgPath)
	if err != nil {
		logger.Errorf("config: %v", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.LogPath); err != nil {
		logger.Errorf("open log file: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := reporter.New(cfg.BackendURL, cfg.User)
	logger.Infof("agent %s reporting as %s to %s", agentVersion, cfg.User, cfg.BackendURL)

	var events <-chan monitor.FileEvent
	if len(cfg.MonitorPaths) > 0 {
		fm, err := monitor.NewFileMonitor(cfg.MonitorPaths)
		if err != nil {
			logger.Errorf("file monitor: %v", err)
		} else {
			defer fm.Close()
			events = fm.Events()
			logger.Infof("watching %v", cfg.MonitorPaths)
		}
	}

	run(ctx, client, cfg.HeartbeatInterval, events)

	// Request context is gone by now; give the final status its own deadline.
	offCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.SendStatus(offCtx, false); err != nil {
		logger.Warnf("report offline: %v", err)
	}
	logger.Infof("agent stopped")
}

func run(ctx context.Context, client *reporter.Client, interval time.Duration, events <-chan monitor.FileEvent) {
	heartbeat(ctx, client)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	host, _ := os.Hostname()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			heartbeat(ctx, client)
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			err := client.SendFsEvent(ctx, reporter.FsEvent{
				TS:       ev.Timestamp.UTC(),
				Hostname: host,
				Event:    ev.Event,
				Path:     ev.Path,
			})
			if err != nil {
				logger.Warnf("report fs %s %s: %v", ev.Event, ev.Path, err)
			}
		}
	}
}

func heartbeat(ctx context.Context, client *reporter.Client) {
	info := sysinfo.Collect()
	err := client.SendHeartbeat(ctx, reporter.Heartbeat{
		Hostname: info.Hostname,
		Platform: info.Platform,
		CPUs:     info.CPUs,
		FreeMem:  info.FreeMem,
		TotalMem: info.TotalMem,
		Extra:    map[string]any{"agentVersion": agentVersion},
	})
	if err != nil {
		logger.Warnf("heartbeat: %v", err)
	}
}
