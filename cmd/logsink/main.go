package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/klauspost/compress/gzip"
)

// Options defines the command line arguments
type Options struct {
	Port int `long:"port" description:"Port number to listen on for HTTP" default:"8282"`
}

// LogServer counts incoming log records so a generator pointed at it can
// be checked for rate and shape.
type LogServer struct {
	mu       sync.Mutex
	total    int
	services map[string]int
	tracker  *RateTracker
}

func NewLogServer() *LogServer {
	return &LogServer{
		services: make(map[string]int),
		tracker:  NewRateTracker(),
	}
}

func (s *LogServer) ProcessBatch(records []map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total += len(records)
	for _, rec := range records {
		if svc, ok := rec["service"].(string); ok {
			s.services[svc]++
		}
	}
	s.tracker.Track(len(records))
}

func (s *LogServer) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := fmt.Sprintf("%d records received this session\n", s.total)
	names := make([]string, 0, len(s.services))
	for svc := range s.services {
		names = append(names, svc)
	}
	sort.Strings(names)
	for _, svc := range names {
		out += fmt.Sprintf("  %s: %d\n", svc, s.services[svc])
	}
	return out
}

func initHTTPReceiver(ctx context.Context, opts Options, s *LogServer) {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v2/logs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var reader io.ReadCloser = r.Body
		if r.Header.Get("Content-Encoding") == "gzip" {
			var err error
			reader, err = gzip.NewReader(r.Body)
			if err != nil {
				http.Error(w, "Failed to decompress gzip data: "+err.Error(), http.StatusBadRequest)
				return
			}
			defer reader.Close()
		}
		body, err := io.ReadAll(reader)
		if err != nil {
			http.Error(w, "Error reading request body", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		var records []map[string]any
		if err := json.Unmarshal(body, &records); err != nil {
			http.Error(w, "Invalid JSON data", http.StatusBadRequest)
			return
		}

		s.ProcessBatch(records)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("{}"))
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: mux,
	}

	go func() {
		log.Printf("HTTP server listening on port %d", opts.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	go func() {
		<-ctx.Done()
		log.Println("Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during server shutdown: %v", err)
		}
	}()
}

func main() {
	var opts Options

	parser := flags.NewParser(&opts, flags.Default)
	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		log.Fatalf("Error parsing flags: %v", err)
	}

	log.Printf("Starting log sink server on port %d\n", opts.Port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := NewLogServer()
	initHTTPReceiver(ctx, opts, s)

	<-ctx.Done()

	fmt.Printf("\n%s", s.Summary())
	log.Println("Shutting down gracefully...")
}
