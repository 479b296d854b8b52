package main

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"log"
	"sync"

	fractal "github.com/marben/dist_fractal"
	"github.com/marben/dist_fractal/render"
)

// imgWorkScheduler hands out the tiles of one frame to any number of renderers.
// Every renderer gets the same config snapshot.
type imgWorkScheduler struct {
	workers int
	cfg     fractal.Config
	img     *image.RGBA

	ctx       context.Context
	ctxCancel context.CancelFunc

	totalPixels    int
	finishedPixels int

	unstarted map[image.Rectangle]struct{}
	inProcess map[image.Rectangle]struct{}
	m         sync.Mutex
}

var _ fractal.ImgProvider = (*imgWorkScheduler)(nil)

func newImgWorkScheduler(cfg fractal.Config) *imgWorkScheduler {
	w, h := cfg.Grid.XSize, cfg.Grid.YSize
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	allTilesSlice := render.SplitRect(img.Bounds(), render.TileSize, render.TileSize)
	allTiles := make(map[image.Rectangle]struct{}, len(allTilesSlice))
	for _, t := range allTilesSlice {
		allTiles[t] = struct{}{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &imgWorkScheduler{
		cfg:         cfg,
		img:         img,
		unstarted:   allTiles,
		inProcess:   make(map[image.Rectangle]struct{}),
		totalPixels: w * h,
		ctx:         ctx,
		ctxCancel:   cancel,
	}
}

func (iws *imgWorkScheduler) popTile() (tile image.Rectangle, found bool) {
	iws.m.Lock()
	defer iws.m.Unlock()

	// Get unstarted tile
	if len(iws.unstarted) > 0 {
		for tile = range iws.unstarted {
			break
		}
		delete(iws.unstarted, tile)

		// Move popped tile to currently processed tiles
		iws.inProcess[tile] = struct{}{}
		return tile, true
	}

	// If there is no unstarted tile, we work again on a started one
	if len(iws.inProcess) > 0 {
		for tile = range iws.inProcess {
			break
		}

		return tile, true
	}

	return image.Rectangle{}, false
}

// GetImage implements fractal.ImgProvider. It blocks until the frame is complete.
func (iws *imgWorkScheduler) GetImage() (image.RGBA, error) {
	<-iws.ctx.Done()
	iws.m.Lock()
	defer iws.m.Unlock()
	return *iws.img, nil
}

// done is closed once every tile has been drawn.
func (iws *imgWorkScheduler) done() <-chan struct{} {
	return iws.ctx.Done()
}

func (iws *imgWorkScheduler) finished() float32 {
	iws.m.Lock()
	defer iws.m.Unlock()
	return float32(iws.finishedPixels) / float32(iws.totalPixels)
}

func (iws *imgWorkScheduler) tileFinished(tileImg image.RGBA) {
	defer func() { log.Printf("finished: %f", iws.finished()) }()

	rect := tileImg.Bounds()
	iws.m.Lock()
	defer iws.m.Unlock()

	_, found := iws.inProcess[rect]
	if !found {
		// another renderer already delivered this tile
		return
	}

	draw.Draw(
		iws.img,
		rect,     // destination rectangle (global coords)
		&tileImg, // source image
		rect.Min, // source start
		draw.Src,
	)

	iws.finishedPixels += rect.Dx() * rect.Dy()
	delete(iws.inProcess, rect)

	if len(iws.unstarted) == 0 && len(iws.inProcess) == 0 {
		iws.ctxCancel()
	}
}

func (iws *imgWorkScheduler) incActiveWorker() {
	iws.m.Lock()
	iws.workers++
	w := iws.workers
	iws.m.Unlock()

	log.Printf("workers: %d", w)
}

func (iws *imgWorkScheduler) decActiveWorkers() {
	iws.m.Lock()
	iws.workers--
	w := iws.workers
	iws.m.Unlock()

	log.Printf("workers: %d", w)
}

// render renders unfinished tiles on the provided Renderer until none are left.
// It can be called from multiple goroutines in parallel. A failing renderer is
// dropped with its error; its tile stays in process and is picked up by the others.
func (iws *imgWorkScheduler) render(renderer fractal.Renderer) error {
	iws.incActiveWorker()
	defer iws.decActiveWorkers()

	for {
		tile, found := iws.popTile()
		if !found {
			return nil
		}
		tileImg, err := renderer.RenderTile(iws.cfg, tile)
		if err != nil {
			return fmt.Errorf("render of tile %s failed: %w", tile, err)
		}
		iws.tileFinished(tileImg)
	}
}
