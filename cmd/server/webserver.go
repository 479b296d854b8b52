package main

import (
	"fmt"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"github.com/marben/dist_fractal/internal/protocol"
)

// webServer serves the worker websocket endpoint and the rendered image.
func webServer(port int, iws *imgWorkScheduler) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc(protocol.Path, websocketHandler(iws))
	mux.HandleFunc("/image.png", imageHandler(iws))
	mux.HandleFunc("/progress", progressHandler(iws))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("listening on http://localhost:%d", port)
	return srv
}

// websocketHandler turns every accepted websocket into a tile renderer that
// works until the image is complete.
func websocketHandler(iws *imgWorkScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // TODO: tighten in prod
		})
		if err != nil {
			log.Println(err)
			return
		}
		defer c.CloseNow()
		c.SetReadLimit(protocol.MaxMessageSize)

		log.Printf("got connection from: %s", r.RemoteAddr)
		if err := iws.render(&protocol.RemoteRenderer{Ctx: r.Context(), Conn: c}); err != nil {
			log.Printf("worker %s dropped: %v", r.RemoteAddr, err)
			c.Close(websocket.StatusInternalError, "render failed")
			return
		}
		c.Close(websocket.StatusNormalClosure, "image complete")
	}
}

// imageHandler waits for the frame to complete and writes it as PNG.
func imageHandler(iws *imgWorkScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-iws.done():
		case <-r.Context().Done():
			return
		}

		img, err := iws.GetImage()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		if err := png.Encode(w, &img); err != nil {
			log.Printf("encode png: %v", err)
		}
	}
}

func progressHandler(iws *imgWorkScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "%.1f%%\n", 100*iws.finished())
	}
}
