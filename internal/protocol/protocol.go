// Package protocol defines the JSON messages exchanged between the tile
// scheduler (cmd/server) and render workers (cmd/worker) over a websocket.
package protocol

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	fractal "github.com/marben/dist_fractal"
)

// Path of the worker websocket endpoint.
const Path = "/ws"

// MaxMessageSize bounds a single message: a 64x64 RGBA tile is 16KiB before
// base64, the config is a few hundred bytes.
const MaxMessageSize = 1 << 20

// Job asks a worker to render one tile of Config.Grid.
type Job struct {
	ID     uint64
	Config fractal.Config
	Tile   image.Rectangle
}

// Result carries the rendered tile back. Err is set instead of Pix when the
// worker failed to render.
type Result struct {
	ID     uint64
	Tile   image.Rectangle
	Stride int
	Pix    []byte
	Err    string `json:",omitempty"`
}

// Image rebuilds the tile image from the result.
func (r Result) Image() (image.RGBA, error) {
	if r.Err != "" {
		return image.RGBA{}, errors.New(r.Err)
	}
	if want := r.Tile.Dx() * r.Tile.Dy() * 4; len(r.Pix) != want || r.Stride != r.Tile.Dx()*4 {
		return image.RGBA{}, fmt.Errorf("tile %v: got %d bytes with stride %d", r.Tile, len(r.Pix), r.Stride)
	}
	return image.RGBA{Pix: r.Pix, Stride: r.Stride, Rect: r.Tile}, nil
}

// RemoteRenderer implements fractal.Renderer by sending jobs to a worker on
// the other side of conn. It serves one tile at a time.
type RemoteRenderer struct {
	Ctx  context.Context
	Conn *websocket.Conn

	next uint64
}

var _ fractal.Renderer = (*RemoteRenderer)(nil)

func (rr *RemoteRenderer) RenderTile(cfg fractal.Config, tile image.Rectangle) (image.RGBA, error) {
	rr.next++
	job := Job{ID: rr.next, Config: cfg, Tile: tile}
	if err := wsjson.Write(rr.Ctx, rr.Conn, job); err != nil {
		return image.RGBA{}, fmt.Errorf("send job: %w", err)
	}

	var res Result
	if err := wsjson.Read(rr.Ctx, rr.Conn, &res); err != nil {
		return image.RGBA{}, fmt.Errorf("read result: %w", err)
	}
	if res.ID != job.ID {
		return image.RGBA{}, fmt.Errorf("result %d for job %d", res.ID, job.ID)
	}
	return res.Image()
}

// Serve reads jobs from conn and answers each with renderer until the peer
// closes the connection or ctx ends. A normal closure returns nil.
func Serve(ctx context.Context, conn *websocket.Conn, renderer fractal.Renderer) error {
	for {
		var job Job
		if err := wsjson.Read(ctx, conn, &job); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				return nil
			}
			return fmt.Errorf("read job: %w", err)
		}

		res := Result{ID: job.ID, Tile: job.Tile}
		img, err := renderer.RenderTile(job.Config, job.Tile)
		if err != nil {
			res.Err = err.Error()
		} else {
			res.Pix, res.Stride = img.Pix, img.Stride
		}
		if err := wsjson.Write(ctx, conn, res); err != nil {
			return fmt.Errorf("send result: %w", err)
		}
	}
}
