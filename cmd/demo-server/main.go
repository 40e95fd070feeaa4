package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"qcomnews/internal/test"
)

func main() {
	port := flag.Int("port", 8080, "Port to run the demo server on")
	host := flag.String("host", "localhost", "Host to bind the demo server to")
	flag.Parse()

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", *host, *port),
		Handler: test.NewDemoHandler(time.Now),
	}

	go func() {
		log.Printf("Demo server starting on http://%s:%d", *host, *port)
		log.Printf("RSS feed available at: http://%s:%d/rss", *host, *port)
		log.Printf("Search feed available at: http://%s:%d/search?q=term", *host, *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down demo server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Demo server stopped")
}
