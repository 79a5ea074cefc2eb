// skirmish runs a tactical battle in the local terminal.
//
// Usage:
//
//	./skirmish [--class knight] [--encounter Coven] [--map arena.map] [--save battle.json] [--random] [--spectate :8080]
//
// Settings also come from the environment and a .env file; flags win.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"skirmish/internal/config"
	"skirmish/internal/game"
	"skirmish/internal/logger"
	"skirmish/internal/spectate"
	"skirmish/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flag.StringVar(&cfg.Class, "class", cfg.Class, "class picked by default on the class screen")
	flag.StringVar(&cfg.Encounter, "encounter", cfg.Encounter, "first encounter")
	flag.StringVar(&cfg.MapPath, "map", cfg.MapPath, "arena map file (bundled arena if empty)")
	flag.StringVar(&cfg.SavePath, "save", cfg.SavePath, "battle save file; resumed on start, written on quit")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = from the clock)")
	flag.BoolVar(&cfg.Random, "random", cfg.Random, "fight generated arenas instead of the sample encounters")
	flag.StringVar(&cfg.SpectateAddr, "spectate", cfg.SpectateAddr, "address of the spectator websocket hub")
	flag.BoolVar(&cfg.Telemetry, "telemetry", cfg.Telemetry, "export traces over OTLP/HTTP")
	flag.StringVar(&cfg.LogFile, "log", cfg.LogFile, "diagnostic log file (discarded if empty)")
	flag.Parse()

	// The screen is the terminal, so diagnostics go to a file or nowhere.
	var out io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := logger.OpenFile(cfg.LogFile)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		out = f
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat, out)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			return fmt.Errorf("telemetry: %w", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Log.WithError(err).Warn("telemetry shutdown")
			}
		}()
	}

	opts := game.Options{FrameDelay: game.DefaultFrameDelay, Name: "local"}
	if cfg.SpectateAddr != "" {
		hub := spectate.NewHub()
		go func() {
			if err := spectate.Serve(ctx, cfg.SpectateAddr, hub); err != nil {
				logger.Log.WithError(err).Error("spectator hub stopped")
			}
		}()
		opts.Watchers = hub
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	return game.New(screen, cfg, opts).Run(ctx)
}
