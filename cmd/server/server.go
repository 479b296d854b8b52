package main

import (
	"flag"
	"fmt"
	"log"
	"sync"

	"github.com/marben/dist_fractal/internal/cliconfig"
	"github.com/marben/dist_fractal/render"
)

// main is the entry point for the fractal tile server.
// Tiles are rendered by connected workers and, optionally, by local goroutines.
func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	port := flag.Int("port", 8080, "HTTP port for workers (ws) and the finished image.")
	local := flag.Int("local", 0, "Number of local render goroutines.")
	flags := cliconfig.Register(flag.CommandLine)
	flag.Parse()

	cfg, err := flags.Config()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	imgWorkScheduler := newImgWorkScheduler(cfg)

	var wg sync.WaitGroup
	for range *local {
		wg.Go(func() {
			if err := imgWorkScheduler.render(render.RendererImpl{}); err != nil {
				log.Printf("local renderer: %v", err)
			}
		})
	}

	httpServer := webServer(*port, imgWorkScheduler)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil {
			log.Fatalf("httpServer: %v", err)
		}
	}()

	log.Printf("fractal server waiting for worker connections")
	<-imgWorkScheduler.done()
	wg.Wait()
	log.Printf("image complete, available at http://localhost:%d/image.png", *port)
	select {}
}
