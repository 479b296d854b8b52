// Command worker is a render worker for the distributed fractal server.
// It connects to the server over a websocket and renders the tiles it is sent
// until the image is complete.

package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"

	"github.com/coder/websocket"

	"github.com/marben/dist_fractal/internal/protocol"
	"github.com/marben/dist_fractal/render"
)

// main is the entry point for the worker.
// It runs the worker logic and logs any fatal errors.
func main() {
	log.Printf("Starting render worker...")
	if err := run(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

// run connects to the server and serves render jobs until the server closes the connection.
func run() error {
	addr := flag.String("server", "localhost:8080", "Address of the fractal server.")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Step 1: Connect to the server
	url := "ws://" + *addr + protocol.Path
	log.Printf("Connecting to fractal server at %s...", url)
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer conn.CloseNow()
	conn.SetReadLimit(protocol.MaxMessageSize)

	// Step 2: Render every tile the server asks for using our CPU
	renderer := render.RendererImpl{OnTileRender: func(tile image.Rectangle) { log.Printf("Rendering tile: %s", tile) }}
	if err := protocol.Serve(ctx, conn, renderer); err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	log.Printf("Server reports the image complete")
	return nil
}
