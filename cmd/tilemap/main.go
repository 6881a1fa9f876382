//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"tilestream/internal/app"
	"tilestream/internal/areagen"
	"tilestream/internal/session"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger := cfg.Logger()
	lvl, err := session.LevelFromPreset(cfg.Preset, cfg.PresetConfig())
	if err != nil {
		log.Fatal(err)
	}

	sess := session.New(areagen.New(areagen.WithLogger(logger)), logger)
	defer sess.Close()
	if _, err := sess.Open(context.Background(), lvl, cfg.StartRow, cfg.StartCol); err != nil {
		log.Fatal(err)
	}

	game := app.New(sess, cfg)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("tilestream - " + lvl.Name)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
