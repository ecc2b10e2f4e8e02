// Command arena runs a fight between the player prefab and the configured
// enemies, headless or in a debug window.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/milk9111/hollowblade/config"
	"github.com/milk9111/hollowblade/internal/arena"
	"github.com/milk9111/hollowblade/inventory"
	"github.com/milk9111/hollowblade/observability"
	"github.com/milk9111/hollowblade/prefabs"
)

func main() {
	configPath := flag.String("config", "", "path to arena config YAML (defaults only when empty)")
	windowed := flag.Bool("window", false, "open a debug window instead of running headless")
	debug := flag.Bool("debug", false, "draw physics shapes in the window")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, *windowed, *debug); err != nil {
		fmt.Fprintln(os.Stderr, "arena:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, windowed, debug bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if windowed {
		cfg.Sim.Headless = false
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var opts []arena.Option
	if cfg.Store.Enabled {
		store, err := inventory.NewRedisStore(ctx, cfg.Store.Addr, cfg.Store.KeyPrefix, logger)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, arena.WithStore(store))
	}
	if !cfg.Sim.Headless {
		opts = append(opts, arena.WithInput(NewInputSystem()))
	}

	a, err := arena.New(ctx, &cfg, logger, opts...)
	if err != nil {
		return err
	}
	logger.Info("arena ready",
		zap.Int("enemies", len(cfg.Arena.Enemies)),
		zap.Bool("headless", cfg.Sim.Headless),
		zap.Uint64("seed", cfg.Sim.Seed),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if cfg.Prefabs.HotReload {
		watcher, err := prefabs.NewWatcher(watchDirs(cfg.Prefabs.Dir)...)
		if err != nil {
			return fmt.Errorf("watch prefabs: %w", err)
		}
		a.WatchReloads(watcher.Events)
		g.Go(func() error {
			if err := watcher.Run(gctx); err != nil {
				return fmt.Errorf("prefab watcher: %w", err)
			}
			return nil
		})
	}

	if cfg.Sim.Headless {
		g.Go(func() error {
			defer cancel()
			return a.Run(gctx)
		})
	} else {
		// ebiten owns the main goroutine until the window closes
		ebiten.SetWindowSize(baseWidth, baseHeight)
		ebiten.SetWindowTitle("hollowblade arena")
		ebiten.SetTPS(cfg.Sim.TickRate)
		err := ebiten.RunGame(&window{arena: a, debug: debug})
		cancel()
		if err != nil && !errors.Is(err, ebiten.Termination) {
			_ = g.Wait()
			return fmt.Errorf("run window: %w", err)
		}
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return a.Close(context.Background())
}

// watchDirs is the prefab dir plus its scripts dir when present.
func watchDirs(dir string) []string {
	dirs := []string{dir}
	scripts := filepath.Join(dir, "scripts")
	if info, err := os.Stat(scripts); err == nil && info.IsDir() {
		dirs = append(dirs, scripts)
	}
	return dirs
}
