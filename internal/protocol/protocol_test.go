package protocol_test

import (
	"context"
	"image"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/require"

	fractal "github.com/marben/dist_fractal"
	"github.com/marben/dist_fractal/internal/protocol"
	"github.com/marben/dist_fractal/render"
)

// startWorker serves render jobs on every websocket accepted by a test server.
// The returned channel yields the result of Serve.
func startWorker(t *testing.T) (*httptest.Server, <-chan error) {
	t.Helper()
	served := make(chan error, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, nil)
		if err != nil {
			served <- err
			return
		}
		defer c.CloseNow()
		c.SetReadLimit(protocol.MaxMessageSize)
		served <- protocol.Serve(r.Context(), c, render.RendererImpl{})
	}))
	t.Cleanup(srv.Close)
	return srv, served
}

func TestRemoteRenderer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	srv, served := startWorker(t)
	conn, _, err := websocket.Dial(ctx, srv.URL+protocol.Path, nil)
	require.NoError(t, err)
	defer conn.CloseNow()
	conn.SetReadLimit(protocol.MaxMessageSize)

	cfg := fractal.DefaultConfig()
	cfg.Grid.XSize, cfg.Grid.YSize = 80, 80
	cfg.MaxIter = 40
	cfg.Variation = fractal.Foam{Power: 2, Q: -0.5, W: 0.2}

	remote := &protocol.RemoteRenderer{Ctx: ctx, Conn: conn}
	var local render.RendererImpl
	for _, tile := range render.SplitRect(image.Rect(0, 0, 80, 80), render.TileSize, render.TileSize) {
		got, err := remote.RenderTile(cfg, tile)
		require.NoError(t, err)
		want, err := local.RenderTile(cfg, tile)
		require.NoError(t, err)
		require.Equal(t, want.Rect, got.Rect)
		require.Equal(t, want.Pix, got.Pix)
	}

	// a failed job is reported without dropping the connection
	_, err = remote.RenderTile(cfg, image.Rect(70, 70, 90, 90))
	require.Error(t, err)
	_, err = remote.RenderTile(cfg, image.Rect(0, 0, 4, 4))
	require.NoError(t, err)

	require.NoError(t, conn.Close(websocket.StatusNormalClosure, "done"))
	select {
	case err := <-served:
		require.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("worker did not stop")
	}
}

func TestResultImage(t *testing.T) {
	tile := image.Rect(2, 3, 4, 4)
	res := protocol.Result{Tile: tile, Stride: 8, Pix: make([]byte, 8)}
	img, err := res.Image()
	require.NoError(t, err)
	require.Equal(t, tile, img.Bounds())

	res.Pix = res.Pix[:4]
	_, err = res.Image()
	require.Error(t, err)

	_, err = protocol.Result{Tile: tile, Err: "boom"}.Image()
	require.EqualError(t, err, "boom")
}
