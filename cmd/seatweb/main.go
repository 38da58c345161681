package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"seatapp-web/config"
	"seatapp-web/internal/api"
	"seatapp-web/internal/logging"
	"seatapp-web/internal/upstream"
)

const shutdownTimeout = 5 * time.Second

func main() {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}

	app := &cli.Command{
		Name:  "seatweb",
		Usage: "Server-rendered web front end for the SeatApp API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "./config/config.yaml",
				Sources: cli.EnvVars("CONFIG_PATH"),
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Listen port, overrides the configuration and WEB_PORT",
			},
		},
		Action: serve,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logging.Fatal().Err(err).Msg("seatweb exited")
	}
}

func serve(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration from %s: %w", configPath, err)
	}
	if port := int(cmd.Int("port")); port > 0 {
		cfg.Server.Port = port
	}

	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	client := upstream.NewClient(cfg.Upstream)
	logging.Info().
		Str("config", configPath).
		Str("upstream", client.BaseURL()).
		Msg("configuration loaded")

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           api.NewRouter(cfg, client),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logging.Info().Int("port", cfg.Server.Port).Msg("web server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}
	logging.Info().Msg("shutdown signal received, stopping server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	logging.Info().Msg("server gracefully stopped")
	return nil
}
