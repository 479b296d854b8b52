package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	fractal "github.com/marben/dist_fractal"
	"github.com/marben/dist_fractal/render"
)

const (
	panStep  = 5   // percent of the span
	zoomStep = 0.1 // fraction of the span
)

// viewer implements ebiten.Game. All configuration changes go through ctl in
// Update; a frame is always rendered from one snapshot.
type viewer struct {
	ctl     *fractal.Controller
	workers int

	w, h   int
	frame  *ebiten.Image
	dirty  bool
	status string
}

func newViewer(ctl *fractal.Controller, workers int) *viewer {
	cfg := ctl.Snapshot()
	return &viewer{
		ctl:     ctl,
		workers: workers,
		w:       cfg.Grid.XSize,
		h:       cfg.Grid.YSize,
		dirty:   true,
	}
}

func (v *viewer) Update() error {
	v.handleInput()
	if !v.dirty {
		return nil
	}
	v.dirty = false

	cfg := v.ctl.Snapshot()
	start := time.Now()
	img, err := render.RenderImage(context.Background(), cfg, v.workers)
	if err != nil {
		v.status = err.Error()
		log.Printf("render: %v", err)
		return nil
	}
	if v.frame == nil {
		v.frame = ebiten.NewImage(v.w, v.h)
	}
	v.frame.WritePixels(img.Pix)
	v.status = describe(&cfg, time.Since(start))
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	if v.frame != nil {
		screen.DrawImage(v.frame, nil)
	}
	ebitenutil.DebugPrint(screen, v.status)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.w, v.h
}

func (v *viewer) handleInput() {
	region := func(fn func(fractal.Region) fractal.Region) {
		v.ctl.Update(func(cfg *fractal.Config) {
			cfg.Grid.Region = fn(cfg.Grid.Region)
			cfg.Grid3D.Region = cfg.Grid.Region
		})
		v.dirty = true
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		region(func(r fractal.Region) fractal.Region { return r.Pan(panStep, 0) })
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		region(func(r fractal.Region) fractal.Region { return r.Pan(-panStep, 0) })
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		region(func(r fractal.Region) fractal.Region { return r.Pan(0, -panStep) })
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		region(func(r fractal.Region) fractal.Region { return r.Pan(0, panStep) })
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		region(func(r fractal.Region) fractal.Region { return r.Zoom(zoomStep) })
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		region(func(r fractal.Region) fractal.Region { return r.Zoom(-zoomStep) })
	}

	pointKeys := [fractal.MaxPointTraps]ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3}
	for i, k := range pointKeys {
		if inpututil.IsKeyJustPressed(k) {
			if _, err := v.ctl.TogglePointTrap(i); err != nil {
				log.Printf("toggle point trap: %v", err)
			}
			v.dirty = true
		}
	}
	lineKeys := [fractal.MaxLineTraps]ebiten.Key{ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6}
	for i, k := range lineKeys {
		if inpututil.IsKeyJustPressed(k) {
			if _, err := v.ctl.ToggleLineTrap(i); err != nil {
				log.Printf("toggle line trap: %v", err)
			}
			v.dirty = true
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		v.ctl.Update(func(cfg *fractal.Config) {
			cfg.Coloring = (cfg.Coloring + 1) % fractal.Coloring(fractal.NumColorings)
		})
		v.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		v.ctl.Update(func(cfg *fractal.Config) {
			next := (cfg.Variation.Kind() + 1) % fractal.VariationKind(fractal.NumVariations)
			nv, err := fractal.NewVariation(next, fractal.DefaultVariationParams)
			if err != nil {
				log.Printf("variation: %v", err)
				return
			}
			cfg.Variation = nv
			cfg.Grid.Region = fractal.FullSet
			cfg.Grid3D.Region = fractal.FullSet
		})
		v.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.ctl.Update(func(cfg *fractal.Config) {
			grid := cfg.Grid
			*cfg = fractal.DefaultConfig()
			cfg.Grid.XSize, cfg.Grid.YSize = grid.XSize, grid.YSize
		})
		v.dirty = true
	}
}

func describe(cfg *fractal.Config, took time.Duration) string {
	traps := ""
	for i := range fractal.NumTraps {
		if cfg.Traps.At(i).IsActive() {
			traps += "*"
		} else {
			traps += "."
		}
	}
	x, y := cfg.Grid.Center()
	return fmt.Sprintf("%s / %s  traps %s  center %.6f%+.6fi  span %.3g  %s\n"+
		"arrows pan, =/- zoom, 1-6 traps, T coloring, X variation, R reset",
		cfg.Variation.Kind(), cfg.Coloring, traps, x, y, cfg.Grid.Width(), took.Round(time.Millisecond))
}
