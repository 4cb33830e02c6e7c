package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/soundfield/micview/internal/audiodat"
	"github.com/soundfield/micview/internal/mic"
	"github.com/soundfield/micview/internal/server"
)

// API response helpers

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// ArrayResponse describes the loaded array for the frontend.
type ArrayResponse struct {
	Channels   int        `json:"channels"`
	SampleRate int        `json:"fS"`          // Common rate; meaningless when CommonRate is false
	CommonRate bool       `json:"common_rate"` // Whether all mics share one rate
	NamesValid *bool      `json:"names_valid"` // nil until ValidateNames has run
	Mics       []*mic.Mic `json:"mics"`
}

// arrayResponseLocked builds an ArrayResponse. Caller must hold s.mu.
func (s *Server) arrayResponseLocked() ArrayResponse {
	rate, ok := s.array.SampleFreq()
	resp := ArrayResponse{
		Channels:   s.array.Channels(),
		SampleRate: rate,
		CommonRate: ok,
		Mics:       s.array.Mics(),
	}
	if valid, known := s.array.NamesValid(); known {
		resp.NamesValid = &valid
	}
	return resp
}

// handleAPIArray returns the loaded mic array.
// GET /api/array
func (s *Server) handleAPIArray(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.mu.Lock()
	s.array.ValidateNames()
	resp := s.arrayResponseLocked()
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, resp)
}

// handleAPILocations updates mic positions by name. Updates are in-memory
// only; the config file is never written back.
// POST /api/locations
func (s *Server) handleAPILocations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req server.LocationsUpdateRequest
	if err := server.DecodeAndValidate(r.Body, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	locs := make(map[mic.Name][]float64, len(req.Locations))
	for key, pos := range req.Locations {
		locs[mic.NameFromKey(key)] = pos
	}

	s.mu.Lock()
	err := s.array.SetLocations(locs)
	resp := s.arrayResponseLocked()
	s.mu.Unlock()

	if err != nil {
		var inputErr *mic.InputError
		if errors.As(err, &inputErr) {
			s.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// audioEvent is the websocket payload sent when a new audio data set arrives.
type audioEvent struct {
	Type       string               `json:"type"`
	SampleRate float64              `json:"fS"`
	Channels   map[string][]float64 `json:"channels"`
}

// handleAPIAudio stores a new audio data set and notifies subscribers.
// POST /api/audio
func (s *Server) handleAPIAudio(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req server.AudioUpdateRequest
	if err := server.DecodeAndValidate(r.Body, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	dat := make(audiodat.Data, len(req.Channels))
	for key, sig := range req.Channels {
		dat[mic.NameFromKey(key)] = sig
	}

	s.mu.Lock()
	s.audio = dat
	s.rate = req.SampleRate
	s.mu.Unlock()

	s.broadcast(audioEvent{Type: "audio", SampleRate: req.SampleRate, Channels: req.Channels})
	s.writeJSON(w, http.StatusOK, map[string]any{"channels": len(dat)})
}

// handleAPIPlot renders the current audio data set as a PNG.
// GET /api/plot.png
func (s *Server) handleAPIPlot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.mu.Lock()
	dat := s.audio
	rate := s.rate
	s.mu.Unlock()

	if len(dat) == 0 {
		s.writeError(w, http.StatusNotFound, "No audio data has been posted yet")
		return
	}

	// Render to a buffer first so an encoding failure can still produce a
	// clean error response.
	var buf bytes.Buffer
	if err := audiodat.Plot(&buf, dat, rate); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Debug("failed to write plot response", "error", err)
	}
}

// handleAPIVersion returns build and release information.
// GET /api/version
func (s *Server) handleAPIVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, s.version.Info())
}
