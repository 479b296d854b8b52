package render_test

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	fractal "github.com/marben/dist_fractal"
	"github.com/marben/dist_fractal/render"
)

func smallConfig(w, h int) fractal.Config {
	cfg := fractal.DefaultConfig()
	cfg.Grid.XSize, cfg.Grid.YSize = w, h
	cfg.MaxIter = 60
	return cfg
}

func TestRenderImage_SinglePixel(t *testing.T) {
	img, err := render.RenderImage(context.Background(), smallConfig(1, 1), 1)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 1, 1), img.Bounds())
	require.Equal(t, uint8(0xff), img.RGBAAt(0, 0).A)
}

func TestRenderImage_MatchesTiles(t *testing.T) {
	cfg := smallConfig(100, 70)
	full, err := render.RenderImage(context.Background(), cfg, 3)
	require.NoError(t, err)

	var r render.RendererImpl
	for _, tile := range render.SplitRect(full.Bounds(), 64, 64) {
		part, err := r.RenderTile(cfg, tile)
		require.NoError(t, err)
		require.Equal(t, tile, part.Bounds())
		for y := tile.Min.Y; y < tile.Max.Y; y++ {
			for x := tile.Min.X; x < tile.Max.X; x++ {
				require.Equal(t, full.RGBAAt(x, y), part.RGBAAt(x, y), "pixel (%d,%d)", x, y)
			}
		}
	}
}

func TestRenderImage_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := render.RenderImage(ctx, smallConfig(256, 256), 2)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRenderImage_InvalidConfig(t *testing.T) {
	cfg := smallConfig(8, 8)
	cfg.MaxIter = 0
	_, err := render.RenderImage(context.Background(), cfg, 0)
	require.ErrorIs(t, err, fractal.ErrInvalidConfig)
}

func TestRenderTile_Errors(t *testing.T) {
	cfg := smallConfig(64, 64)
	var calls int
	r := render.RendererImpl{OnTileRender: func(image.Rectangle) { calls++ }}

	_, err := r.RenderTile(cfg, image.Rect(32, 32, 96, 96))
	require.Error(t, err, "tile outside of grid")
	_, err = r.RenderTile(cfg, image.Rect(5, 5, 5, 9))
	require.Error(t, err, "empty tile")

	cfg.Coloring = 17
	_, err = r.RenderTile(cfg, image.Rect(0, 0, 8, 8))
	require.ErrorIs(t, err, fractal.ErrUnknownColoring)
	require.Zero(t, calls)

	cfg.Coloring = fractal.ColorStripe
	_, err = r.RenderTile(cfg, image.Rect(0, 0, 8, 8))
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}
