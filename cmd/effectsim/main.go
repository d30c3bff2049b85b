package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/statfx/internal/anim"
	"github.com/udisondev/statfx/internal/config"
	"github.com/udisondev/statfx/internal/data"
	"github.com/udisondev/statfx/internal/db"
	"github.com/udisondev/statfx/internal/effect"
	"github.com/udisondev/statfx/internal/entity"
	"github.com/udisondev/statfx/internal/model"
)

const ConfigPath = "config/statfx.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	envErr := godotenv.Load()

	cfgPath := ConfigPath
	if p := os.Getenv("STATFX_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	if envErr != nil {
		slog.Debug("no .env file loaded", "err", envErr)
	}

	slog.Info("effectsim starting",
		"config", cfgPath,
		"log_level", cfg.LogLevel,
		"ticks_per_second", cfg.TicksPerSecond,
		"definitions", cfg.Definitions.Source)

	layout := cfg.StatLayout()
	tax := effect.NewTaxonomy(layout)

	lib, err := anim.LoadLibrary(cfg.AnimationsFile)
	if err != nil {
		return fmt.Errorf("loading animations: %w", err)
	}

	table := data.NewEffectTable(tax)
	switch cfg.Definitions.Source {
	case config.SourcePostgres:
		if err := loadFromPostgres(ctx, cfg, tax, table); err != nil {
			return err
		}
	default:
		if _, err := table.LoadDir(ctx, cfg.Definitions.Dir); err != nil {
			return fmt.Errorf("loading effect definitions: %w", err)
		}
	}

	stats := model.NewStats(layout, cfg.Simulation.BaseStats)
	actor := entity.NewActor("dummy", stats, effect.NewManager(tax, lib, cfg.TicksPerSecond))
	defer func() {
		actor.Close()
		slog.Info("effectsim stopped", "live_animations", lib.Live())
	}()

	sim := newSimulation(actor, table, tax, cfg.TicksPerSecond, cfg.Simulation.Steps)

	g, gctx := errgroup.WithContext(ctx)

	// Reload requests coalesce: one pending reload covers any number of events
	reloadCh := make(chan struct{}, 1)
	if cfg.Definitions.Watch && cfg.Definitions.Source == config.SourceYAML {
		watcher, err := data.NewWatcher(cfg.Definitions.Dir)
		if err != nil {
			return fmt.Errorf("starting definitions watcher: %w", err)
		}
		defer watcher.Close()

		g.Go(func() error {
			slog.Info("watching effect definitions", "dir", cfg.Definitions.Dir)
			return forwardReloads(gctx, watcher, reloadCh)
		})
	}

	g.Go(func() error {
		slog.Info("starting simulation", "ticks", cfg.Simulation.Ticks, "interval", cfg.Simulation.TickInterval)
		reload := func(ctx context.Context) error {
			_, err := table.LoadDir(ctx, cfg.Definitions.Dir)
			return err
		}
		if err := sim.Run(gctx, cfg.Simulation.Ticks, cfg.Simulation.TickInterval, reloadCh, reload); err != nil {
			return fmt.Errorf("simulation: %w", err)
		}
		return errSimulationDone
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errSimulationDone) {
		return err
	}
	return nil
}

// loadFromPostgres migrates the schema, optionally seeds it from the yaml
// dir and fills table from the database.
func loadFromPostgres(ctx context.Context, cfg config.Config, tax *effect.Taxonomy, table *data.EffectTable) error {
	dsn := cfg.Database.DSN()

	database, err := db.New(ctx, dsn, cfg.Database.MaxConns)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()
	slog.Info("database connected")

	if err := db.RunMigrations(ctx, dsn); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied")

	repo := database.Definitions()

	if cfg.Definitions.Seed {
		seed := data.NewEffectTable(tax)
		if _, err := seed.LoadDir(ctx, cfg.Definitions.Dir); err != nil {
			return fmt.Errorf("loading seed definitions: %w", err)
		}
		if err := repo.Upsert(ctx, tax, sortedDefinitions(seed.Definitions())); err != nil {
			return fmt.Errorf("seeding effect definitions: %w", err)
		}
		slog.Info("seeded effect definitions", "count", seed.Len())
	}

	defs, err := repo.LoadAll(ctx, tax)
	if err != nil {
		return fmt.Errorf("loading effect definitions: %w", err)
	}
	table.Replace(defs)
	return nil
}

func sortedDefinitions(defs effect.Definitions) []*effect.Definition {
	out := make([]*effect.Definition, 0, len(defs))
	for _, d := range defs {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b *effect.Definition) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// forwardReloads turns watcher events into pending reload requests.
func forwardReloads(ctx context.Context, w *data.Watcher, reloadCh chan<- struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case name, ok := <-w.Events:
			if !ok {
				return nil
			}
			slog.Debug("effect definition file changed", "file", name)
			select {
			case reloadCh <- struct{}{}:
			default:
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("definitions watcher error", "err", err)
		}
	}
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
