package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"tilestream/internal/app"
	"tilestream/internal/areagen"
	"tilestream/internal/session"
	"tilestream/internal/term"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	logPath := flag.String("log", "", "write logs to this file instead of discarding them")
	flag.Parse()

	// The terminal owns stdout and stderr while the viewer runs.
	logger := slog.New(slog.DiscardHandler)
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		level := slog.LevelInfo
		if cfg.Verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	}

	lvl, err := session.LevelFromPreset(cfg.Preset, cfg.PresetConfig())
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sess := session.New(areagen.New(areagen.WithLogger(logger)), logger)
	defer sess.Close()
	w, err := sess.Open(ctx, lvl, cfg.StartRow, cfg.StartCol)
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	viewer := term.NewViewer(screen, w, lvl.Name, term.WithLogger(logger),
		term.WithTPS(cfg.TPS), term.WithEvents(sess.Events))
	err = viewer.Run(ctx)
	screen.Fini()
	if err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "tileview: %v\n", err)
		os.Exit(1)
	}
}
