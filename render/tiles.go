package render

import "image"

// TileSize is the edge length of the square tiles an image is split into.
const TileSize = 64

// SplitRect splits r into tiles of size tileW × tileH.
// Tiles at the right and bottom edges are smaller if r is not divisible.
func SplitRect(r image.Rectangle, tileW, tileH int) []image.Rectangle {
	if tileW <= 0 || tileH <= 0 {
		panic("tile dimensions must be positive")
	}

	w := r.Dx()
	h := r.Dy()

	var tiles []image.Rectangle

	for oy := 0; oy < h; oy += tileH {
		th := min(tileH, h-oy)

		for ox := 0; ox < w; ox += tileW {
			tw := min(tileW, w-ox)

			tiles = append(tiles, image.Rect(
				r.Min.X+ox,
				r.Min.Y+oy,
				r.Min.X+ox+tw,
				r.Min.Y+oy+th,
			))
		}
	}

	return tiles
}
