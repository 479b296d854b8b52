// Command fractal renders the color field of an escape-time fractal to PNG and,
// optionally, its lit height field to a Wavefront OBJ file.

package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"os/signal"
	"time"

	fractal "github.com/marben/dist_fractal"
	"github.com/marben/dist_fractal/heightfield"
	"github.com/marben/dist_fractal/internal/cliconfig"
	"github.com/marben/dist_fractal/render"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %v", err)
	}
}

func run() error {
	out := flag.String("o", "fractal.png", "Output PNG file; empty to skip the 2D image.")
	meshOut := flag.String("mesh", "", "Output OBJ file for the height field; empty to skip.")
	workers := flag.Int("workers", 0, "Render goroutines (0 = GOMAXPROCS).")
	lightSteps := flag.Int("light-steps", 0, "Animation steps to advance the light before shading the mesh.")
	flags := cliconfig.Register(flag.CommandLine)
	flag.Parse()

	cfg, err := flags.Config()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *out != "" {
		if err := writeImage(ctx, cfg, *workers, *out); err != nil {
			return err
		}
	}
	if *meshOut != "" {
		light := fractal.DefaultLight()
		for range *lightSteps {
			light = light.Advance()
		}
		if err := writeMesh(ctx, cfg, light, *workers, *meshOut); err != nil {
			return err
		}
	}
	return nil
}

func writeImage(ctx context.Context, cfg fractal.Config, workers int, filename string) error {
	start := time.Now()
	img, err := render.RenderImage(ctx, cfg, workers)
	if err != nil {
		return err
	}
	log.Printf("rendered %dx%d in %s", cfg.Grid.XSize, cfg.Grid.YSize, time.Since(start))

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	log.Printf("image saved to %q", filename)
	return f.Close()
}

func writeMesh(ctx context.Context, cfg fractal.Config, light fractal.Light, workers int, filename string) error {
	if err := light.Validate(); err != nil {
		return err
	}

	start := time.Now()
	mesh, err := heightfield.Build(ctx, cfg, workers)
	if err != nil {
		return err
	}
	log.Printf("built %dx%d height field (%d triangles) in %s",
		mesh.XSize, mesh.YSize, len(mesh.Indices)/3, time.Since(start))

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create mesh file: %w", err)
	}
	defer f.Close()

	if err := mesh.WriteOBJ(f, mesh.Shade(light)); err != nil {
		return fmt.Errorf("failed to write OBJ: %w", err)
	}
	log.Printf("mesh saved to %q", filename)
	return f.Close()
}
