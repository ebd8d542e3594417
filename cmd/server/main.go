package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ctkqiang/redrtc/internal/config"
	"github.com/ctkqiang/redrtc/internal/dispatch"
	"github.com/ctkqiang/redrtc/internal/ingress"
	"github.com/ctkqiang/redrtc/internal/rtlog"
	"github.com/ctkqiang/redrtc/internal/signaling"
	wstransport "github.com/ctkqiang/redrtc/internal/transport/websocket"
)

func main() {
	var configPath string
	var override config.Config
	flag.StringVar(&configPath, "config", "", "path to a YAML config file")
	flag.StringVar(&override.Addr, "addr", "", "HTTP listen address")
	flag.IntVar(&override.MaxClients, "max-clients", 0, "maximum simultaneous clients")
	flag.IntVar(&override.MaxRooms, "max-rooms", 0, "maximum simultaneous rooms")
	flag.DurationVar(&override.ClientIdleTimeout, "client-idle-timeout", 0, "client idle timeout before reaping")
	flag.IntVar(&override.IngressCapacity, "ingress-capacity", 0, "ingress queue capacity")
	flag.StringVar(&override.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	flag.Parse()

	bootLogger := rtlog.New("info")

	cfg, resolvedPath, err := config.Load(bootLogger, configPath)
	if err != nil {
		bootLogger.Fatal().Err(err).Msg("failed to load configuration")
	}
	// CLI flags take precedence over the config file and environment,
	// since UpdateFrom only overwrites fields override actually set.
	cfg.UpdateFrom(override)
	if err := cfg.Validate(); err != nil {
		bootLogger.Fatal().Err(err).Msg("invalid configuration")
	}

	log := rtlog.New(cfg.LogLevel)
	log.Info().Str("config_path", resolvedPath).Str("addr", cfg.Addr).Msg("starting redrtc signaling server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	core := signaling.New(cfg.MaxClients, cfg.MaxRooms)
	queue := ingress.New(cfg.IngressCapacity)
	wsServer := wstransport.NewServer(queue, wstransport.DefaultRateLimitConfig(), nil, log)

	httpServer := &http.Server{Addr: cfg.Addr, Handler: wsServer}
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server exited with error")
		}
	}()

	dispatcher := dispatch.New(core, queue, int64(cfg.ClientIdleTimeout.Seconds()), log)
	go dispatcher.Run(ctx)

	<-ctx.Done()

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http server shutdown error")
	}

	log.Info().Msg("server stopped")
}
