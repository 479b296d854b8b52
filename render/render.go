// Package render evaluates the 2D color field of a fractal.Config, either one
// tile at a time (RendererImpl, used by distributed workers) or as a whole image
// spread over a pool of goroutines (RenderImage).
package render

import (
	"context"
	"fmt"
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"

	fractal "github.com/marben/dist_fractal"
)

// RendererImpl renders tiles on the local CPU.
type RendererImpl struct {
	// OnTileRender, if set, is called before each tile is rendered.
	OnTileRender func(tile image.Rectangle)
}

var _ fractal.Renderer = RendererImpl{}

// RenderTile implements fractal.Renderer.
func (imp RendererImpl) RenderTile(cfg fractal.Config, tile image.Rectangle) (image.RGBA, error) {
	if err := cfg.Validate(); err != nil {
		return image.RGBA{}, err
	}
	bounds := image.Rect(0, 0, cfg.Grid.XSize, cfg.Grid.YSize)
	if !tile.In(bounds) || tile.Empty() {
		return image.RGBA{}, fmt.Errorf("tile %v outside of grid %v", tile, bounds)
	}
	if imp.OnTileRender != nil {
		imp.OnTileRender(tile)
	}

	// Image has global coordinates (tile.Min .. tile.Max)
	img := image.NewRGBA(tile)
	renderInto(&cfg, img, tile)
	return *img, nil
}

// RenderImage renders the whole cfg.Grid using up to workers goroutines
// (GOMAXPROCS when workers <= 0). Cancelling ctx abandons the frame.
func RenderImage(ctx context.Context, cfg fractal.Config, workers int) (*image.RGBA, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	img := image.NewRGBA(image.Rect(0, 0, cfg.Grid.XSize, cfg.Grid.YSize))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, tile := range SplitRect(img.Bounds(), TileSize, TileSize) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// tiles are disjoint, so workers never write the same pixels
			renderInto(&cfg, img, tile)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return img, nil
}

func renderInto(cfg *fractal.Config, img *image.RGBA, tile image.Rectangle) {
	for py := tile.Min.Y; py < tile.Max.Y; py++ {
		for px := tile.Min.X; px < tile.Max.X; px++ {
			s := fractal.EvaluatePixel(cfg, px, py)
			img.SetRGBA(px, py, fractal.Resolve(cfg, s).RGBA8())
		}
	}
}
