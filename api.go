package fractal

import (
	"image"
)

type ImgProvider interface {
	GetImage() (image.RGBA, error)
}

// Renderer renders one tile of cfg.Grid. The returned image has global
// coordinates (its Rect equals tile).
type Renderer interface {
	RenderTile(cfg Config, tile image.Rectangle) (image.RGBA, error)
}
