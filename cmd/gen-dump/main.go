package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"tilestream/internal/app"
	"tilestream/internal/areagen"
	"tilestream/internal/core"
	"tilestream/internal/term"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ";")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	preset := flag.String("preset", "islands", "world preset")
	row := flag.Int("row", 0, "tile row inside the center cell")
	col := flag.Int("col", 0, "tile column inside the center cell")
	whole := flag.Bool("whole", false, "generate the whole world instead of a 3x3 window")
	out := flag.String("out", "", "write the tile dump to this file")
	verbose := flag.Bool("v", false, "debug logging")
	var overrides, areaSpecs kvList
	flag.Var(&overrides, "set", "settings override in key=value form (repeatable)")
	flag.Var(&areaSpecs, "area", "area as id=..,coverage=..,min=..,max=.. (repeatable, replaces the preset areas)")
	flag.Parse()

	cfg := map[string]string{}
	for _, kv := range overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			log.Fatalf("bad override %q", kv)
		}
		cfg[key] = value
	}
	p, ok := areagen.LookupPreset(*preset, cfg)
	if !ok {
		log.Fatalf("unknown preset %q (have %s)", *preset, strings.Join(areagen.PresetNames(), ", "))
	}
	areas := p.Areas
	if len(areaSpecs) > 0 {
		areas = areas[:0:0]
		for _, spec := range areaSpecs {
			a, err := areagen.ParseArea(spec)
			if err != nil {
				log.Fatal(err)
			}
			areas = append(areas, a)
		}
	}

	for _, group := range p.Settings.Parameters().Groups {
		fmt.Printf("%s:", group.Name)
		for _, param := range group.Params {
			fmt.Printf(" %s=%s", param.Key, param.Value)
		}
		fmt.Println()
	}

	logCfg := app.NewConfig()
	logCfg.Verbose = *verbose
	gen := areagen.New(areagen.WithLogger(logCfg.Logger()))
	ctx := context.Background()

	var dump io.Writer = io.Discard
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		bw := bufio.NewWriter(f)
		defer bw.Flush()
		dump = bw
	}

	start := time.Now()
	if *whole {
		m, err := gen.GenerateMap(ctx, p.Settings, areas)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Generated %dx%d world (seed %d) in %s\n",
			m.World.TileColumns, m.World.TileRows, m.Seed, time.Since(start))
		reportShortfalls(m.Shortfalls)
		writeTiles(dump, "world", m.Grid.Tiles(), m.Grid.W)
		return
	}

	block, err := gen.GenerateWindow(ctx, p.Settings, areas, *col, *row)
	if err != nil {
		log.Fatal(err)
	}
	w := block.Meta.World
	fmt.Printf("World %dx%d tiles, %dx%d cells of %d tiles (seed %d)\n",
		w.TileColumns, w.TileRows, w.GridColumns, w.GridRows, w.TilesPerSide, block.Meta.Seed)
	fmt.Printf("Generated window around cell %d,%d in %s\n",
		block.Meta.Center.Row, block.Meta.Center.Column, time.Since(start))
	for i, c := range block.Cells {
		fmt.Printf("  [%d] cell %4d (%d,%d)", i, c.ID, c.GridRow, c.GridColumn)
		for _, a := range areas {
			fmt.Printf("  area %d %.3f/%.3f", a.ID, c.Coverage(a.ID), a.Coverage)
		}
		fmt.Println()
	}
	reportShortfalls(block.Meta.Shortfalls)
	for _, c := range block.Cells {
		writeTiles(dump, fmt.Sprintf("cell %d (%d,%d)", c.ID, c.GridRow, c.GridColumn), c.Surface, c.Side)
	}
}

func reportShortfalls(sfs []areagen.Shortfall) {
	for _, sf := range sfs {
		fmt.Printf("  shortfall: cell %d area %d reached %.3f of %.3f\n", sf.CellID, sf.AreaID, sf.Reached, sf.Target)
	}
}

func writeTiles(w io.Writer, title string, tiles []core.Tile, cols int) {
	fmt.Fprintf(w, "# %s\n", title)
	line := make([]rune, cols)
	for start := 0; start+cols <= len(tiles); start += cols {
		for i, t := range tiles[start : start+cols] {
			line[i] = term.Glyph(t)
		}
		fmt.Fprintln(w, string(line))
	}
}
