package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fightlight/fightlight/internal/app"
	"github.com/fightlight/fightlight/internal/config"
	"github.com/fightlight/fightlight/internal/lib/logger/slogpretty"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func newServeCommand() *cobra.Command {
	var configFlag string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg *config.Config
			if configFlag != "" {
				cfg = config.MustLoadPath(configFlag)
			} else {
				cfg = config.MustLoad()
			}

			log := setupLogger(cfg.Env)

			log.Info("starting fightlight", slog.String("env", cfg.Env))
			log.Debug("debug messages are enabled")

			// ensure working directories exist
			for _, dir := range []string{cfg.MediaDir, cfg.ExportsDir} {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}

			httpApplication := app.New(
				log,
				cfg.Address,
				cfg.StatePath,
				cfg.ExportsDir,
			)

			// Run server
			go func() {
				httpApplication.Router.MustRun()
			}()

			// Graceful shutdown
			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

			<-stop

			httpApplication.Router.Stop()
			log.Info("Gracefully stopped")

			return nil
		},
	}

	cmd.Flags().StringVarP(&configFlag, "config", "c", "", "path to config file (CONFIG_PATH otherwise)")

	return cmd
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
