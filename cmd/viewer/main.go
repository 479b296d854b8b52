// Command viewer shows the color field in a desktop window and lets the user
// explore it: pan and zoom, switch variation and coloring, toggle orbit traps.

package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	fractal "github.com/marben/dist_fractal"
	"github.com/marben/dist_fractal/internal/cliconfig"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %v", err)
	}
}

func run() error {
	workers := flag.Int("workers", 0, "Render goroutines (0 = GOMAXPROCS).")
	flags := cliconfig.Register(flag.CommandLine)
	flag.Parse()

	cfg, err := flags.Config()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	v := newViewer(fractal.NewController(&cfg), *workers)

	ebiten.SetWindowTitle("fractal viewer")
	ebiten.SetWindowSize(cfg.Grid.XSize, cfg.Grid.YSize)
	return ebiten.RunGame(v)
}
