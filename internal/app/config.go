package app

import (
	"flag"
	"log/slog"
	"os"
	"strconv"
)

// Config represents the command-line parameters for the viewers.
type Config struct {
	Preset   string
	Seed     int64
	Scale    int
	TPS      int
	Width    int
	Height   int
	StartRow int
	StartCol int
	Verbose  bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Preset: "islands", Seed: 1, Scale: 2, TPS: 30, Width: 640, Height: 480}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Preset, "preset", c.Preset, "world preset")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "world seed")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per tile")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.Width, "width", c.Width, "viewport width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "viewport height in pixels")
	fs.IntVar(&c.StartRow, "row", c.StartRow, "starting tile row")
	fs.IntVar(&c.StartCol, "col", c.StartCol, "starting tile column")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "debug logging")
}

// PresetConfig returns the preset overrides implied by the flags.
func (c *Config) PresetConfig() map[string]string {
	return map[string]string{"seed": strconv.FormatInt(c.Seed, 10)}
}

// Logger returns a text logger on stderr at the configured level.
func (c *Config) Logger() *slog.Logger {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
