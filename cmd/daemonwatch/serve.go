package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"daemonwatch/internal/config"
	"daemonwatch/internal/controller"
	"daemonwatch/internal/runqueue"
	"daemonwatch/internal/server"
	"daemonwatch/internal/storage"
)

func newServeCmd(log zerolog.Logger) *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the daemons and the dashboard API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(log, configPath, addr)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "config.yaml", "path to configuration file (YAML)")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "address for the dashboard API")
	return cmd
}

func runServe(log zerolog.Logger, configPath, addr string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log.Info().Int("targets", len(cfg.Targets)).Str("config", configPath).Msg("configuration loaded")

	store, err := storage.NewHeartbeatStore(filepath.Join(cfg.DataDirectory, "heartbeats.json"))
	if err != nil {
		return err
	}
	runLog, err := storage.NewRunLog(filepath.Join(cfg.DataDirectory, "runs.json"), cfg.RunHistoryMax)
	if err != nil {
		return err
	}

	queue := runqueue.New()
	ctrl, err := controller.New(cfg, queue, store, runLog, log)
	if err != nil {
		return err
	}
	ctrl.Start()
	defer ctrl.Stop()

	srv := server.New(addr, cfg, store, runLog, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown")
		}
	}()

	log.Info().Str("addr", addr).Msg("daemonwatch listening")
	if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
