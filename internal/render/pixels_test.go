package render

import (
	"image/color"
	"testing"

	"tilestream/internal/core"
)

func TestPaletteStable(t *testing.T) {
	a := Palette(20)
	b := Palette(20)
	if len(a) != 20 {
		t.Fatalf("len = %d, want 20", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("entry %d differs between calls", i)
		}
		if a[i].A != 255 {
			t.Fatalf("entry %d not opaque: %+v", i, a[i])
		}
	}
	if Palette(0) != nil {
		t.Fatalf("Palette(0) not nil")
	}
}

func TestColorFor(t *testing.T) {
	pal := Palette(4)
	if got := ColorFor(core.Tile{}, pal); got != pal[0] {
		t.Fatalf("empty tile = %+v, want %+v", got, pal[0])
	}
	if got := ColorFor(core.Tile{ID: 99}, pal); got != pal[3] {
		t.Fatalf("overflow id = %+v, want last entry", got)
	}
	if got := ColorFor(core.Unknown, pal); got != UnknownColor {
		t.Fatalf("unknown = %+v", got)
	}
	plain := ColorFor(core.Tile{ID: 1}, pal)
	flagged := ColorFor(core.Tile{ID: 1, Flags: 2}, pal)
	if flagged == plain || flagged.R < plain.R {
		t.Fatalf("flagged %+v not lighter than %+v", flagged, plain)
	}
}

func TestFillTileRGBA(t *testing.T) {
	pal := []color.RGBA{{R: 1, G: 2, B: 3, A: 4}, {R: 10, G: 20, B: 30, A: 40}}
	tiles := []core.Tile{{ID: 1}, {}, core.Unknown}
	buf := make([]byte, 4*len(tiles))
	FillTileRGBA(buf, tiles, pal)
	want := []byte{10, 20, 30, 40, 1, 2, 3, 4, UnknownColor.R, UnknownColor.G, UnknownColor.B, UnknownColor.A}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("buf[%d] = %d, want %d", i, buf[i], want[i])
		}
	}

	FillTileRGBA(buf, tiles[:2], nil)
	for i := 0; i < 8; i++ {
		if buf[i] != 0 {
			t.Fatalf("buf[%d] = %d with empty palette", i, buf[i])
		}
	}
}
