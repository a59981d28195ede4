// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ReaQwQ/CurseForgeProxyServer/pkg/config"
	"github.com/ReaQwQ/CurseForgeProxyServer/pkg/curseforge"
	"github.com/ReaQwQ/CurseForgeProxyServer/pkg/metrics"
	"github.com/ReaQwQ/CurseForgeProxyServer/pkg/proxy"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("log_level", cfg.LogLevel).Msg("invalid log level")
	}
	log.Logger = log.Level(level)

	m := metrics.New()
	client := curseforge.New(cfg, m)

	servers := []*http.Server{{
		Addr:         cfg.ListenAddr(),
		Handler:      proxy.New(cfg, client, m),
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}}
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		servers = append(servers, &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		})
	}

	logBanner(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, servers, cfg.GracefulShutdownTimeout); err != nil {
		log.Error().Err(err).Msg("proxy exited unexpectedly")
		stop()
		os.Exit(1)
	}

	log.Info().Msg("proxy stopped")
}

// run serves every server until ctx is cancelled or one of them fails, then
// shuts all of them down within timeout.
func run(ctx context.Context, servers []*http.Server, timeout time.Duration) error {
	g, gCtx := errgroup.WithContext(ctx)

	for _, srv := range servers {
		g.Go(func() error {
			log.Info().Str("addr", srv.Addr).Msg("listening")
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve %s: %w", srv.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gCtx.Done()
		log.Info().Msg("shutting down proxy")
		shutdown(servers, timeout)
		return nil
	})

	return g.Wait()
}

func shutdown(servers []*http.Server, timeout time.Duration) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Str("addr", srv.Addr).Msg("graceful shutdown failed; forcing close")
			if closeErr := srv.Close(); closeErr != nil {
				log.Error().Err(closeErr).Str("addr", srv.Addr).Msg("forced close failed")
			}
		}
	}
}

// logBanner reports the effective setup once at startup.
func logBanner(cfg config.Config) {
	healthURL := fmt.Sprintf("http://localhost:%d/health", cfg.Port)

	event := log.Info().
		Str("listen_addr", cfg.ListenAddr()).
		Str("upstream", cfg.Upstream.String()).
		Bool("api_key_configured", cfg.APIKeyConfigured()).
		Strs("allowed_origins", cfg.AllowedOrigins()).
		Str("health_check", healthURL)
	if cfg.PublicURL != "" {
		event = event.Str("public_health_check", cfg.PublicURL+"/health")
	}
	if cfg.MetricsAddr != "" {
		event = event.Str("metrics_addr", cfg.MetricsAddr)
	}
	event.Msg("starting CurseForge proxy")

	if !cfg.APIKeyConfigured() {
		log.Warn().Msg("CURSEFORGE_API is not set; upstream calls will be rejected")
	}
	if cfg.PublicURL == "" {
		log.Info().Msg("set NGROK_URL or PUBLIC_URL to allow access from a public URL")
	}
}
