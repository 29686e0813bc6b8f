package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"eventnotifier/cmd/fx/category_fx"
	"eventnotifier/cmd/fx/config_fx"
	"eventnotifier/cmd/fx/controllers_fx"
	"eventnotifier/cmd/fx/db_fx"
	"eventnotifier/cmd/fx/event_fx"
	"eventnotifier/cmd/fx/logger_fx"
	"eventnotifier/cmd/fx/seed_fx"
	"eventnotifier/internal/config"
	"eventnotifier/internal/services"
)

func main() {
	root := &cobra.Command{
		Use:           "eventnotifier",
		Short:         "Browse and manage festivals, pop-up stores and other dated events",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Seed an empty store, then serve the web UI",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Seed an empty store from the configured open-data dumps and exit",
			RunE:  runSeed,
		},
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func storeModules() fx.Option {
	return fx.Options(
		config_fx.Module,
		logger_fx.Module,
		db_fx.Module,
		category_fx.Module,
		event_fx.Module,
		seed_fx.Module,
	)
}

func runServe(cmd *cobra.Command, _ []string) error {
	app := fx.New(
		fx.NopLogger,
		storeModules(),
		controllers_fx.Module,

		fx.Invoke(SeedOnStart),
		fx.Invoke(StartServer),
	)
	if err := app.Err(); err != nil {
		return err
	}

	app.Run()
	return nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	var report *services.SeedReport
	app := fx.New(
		fx.NopLogger,
		storeModules(),
		fx.Invoke(func(seeder services.SeedServiceInterface) error {
			var err error
			report, err = seeder.Seed(cmd.Context())
			return err
		}),
	)
	if err := app.Err(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer app.Stop(ctx)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "categories inserted: %d\n", report.CategoriesInserted)
	if report.EventsPresent {
		fmt.Fprintln(out, "events already present, dumps not read")
	}
	for _, f := range report.Files {
		status := "ok"
		if f.Err != nil {
			status = f.Err.Error()
		}
		fmt.Fprintf(out, "%s: inserted %d, skipped %d (%s)\n", f.Path, f.Inserted, f.Skipped, status)
	}
	return nil
}

// SeedOnStart fills an empty store before the server accepts requests.
func SeedOnStart(cfg *config.Config, seeder services.SeedServiceInterface, log zerolog.Logger) error {
	if !cfg.SeedOnStart {
		log.Info().Msg("SEED_ON_START disabled, skipping seed")
		return nil
	}
	if _, err := seeder.Seed(context.Background()); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	return nil
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, log zerolog.Logger) {
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", server.Addr)
			if err != nil {
				return err
			}
			go func() {
				log.Info().Str("addr", server.Addr).Msg("starting HTTP server")
				if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error().Err(err).Msg("HTTP server stopped")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("stopping HTTP server")
			return server.Shutdown(ctx)
		},
	})
}
