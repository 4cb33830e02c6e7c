package main

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/soundfield/micview/internal/audiodat"
	"github.com/soundfield/micview/internal/mic"
	"github.com/soundfield/micview/internal/server"
)

// Server is the HTTP server behind the mic-array viewer. It owns the loaded
// array and the most recent audio data set; all access to either goes
// through s.mu since the underlying types do no locking of their own.
type Server struct {
	mu      sync.Mutex
	array   *mic.Array
	audio   audiodat.Data
	rate    float64
	version *VersionChecker

	subMu sync.Mutex
	subs  map[chan any]struct{}
}

// NewServer returns a new Server for the given array.
func NewServer(array *mic.Array) *Server {
	return &Server{
		array:   array,
		version: NewVersionChecker(),
		subs:    make(map[chan any]struct{}),
	}
}

// Start begins serving on addr and returns the underlying http.Server so the
// caller can shut it down.
func (s *Server) Start(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/array", s.handleAPIArray)
	mux.HandleFunc("/api/locations", s.handleAPILocations)
	mux.HandleFunc("/api/audio", s.handleAPIAudio)
	mux.HandleFunc("/api/plot.png", s.handleAPIPlot)
	mux.HandleFunc("/api/version", s.handleAPIVersion)
	mux.HandleFunc("/ws", s.handleWebSocket)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("viewer listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	return httpServer
}

// handleIndex serves the embedded viewer page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

// handleWebSocket pushes audio-data updates to the viewer page. Each
// connection gets a buffered send channel; a writer goroutine is the sole
// writer to the connection.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := server.UpgradeConnection(w, r)
	if err != nil {
		slog.Error("WebSocket upgrade failed", "error", err)
		return
	}

	send := make(chan any, 16)
	s.subscribe(send)

	// Writer goroutine - sole writer to the connection
	go func() {
		defer func() {
			if err := conn.Close(); err != nil {
				slog.Debug("WebSocket close error", "error", err)
			}
		}()
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}()

	// Reader loop - the page sends nothing; this just detects disconnect.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	s.unsubscribe(send)
}

func (s *Server) subscribe(ch chan any) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subs[ch] = struct{}{}
}

func (s *Server) unsubscribe(ch chan any) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	if _, ok := s.subs[ch]; ok {
		delete(s.subs, ch)
		close(ch)
	}
}

// broadcast sends a payload to every websocket subscriber. Slow subscribers
// drop messages rather than block the sender.
func (s *Server) broadcast(payload any) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- payload:
		default:
		}
	}
}
