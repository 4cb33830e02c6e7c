package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/soundfield/micview/internal/mic"
)

const testCfg = `[
	{"name": "A", "fS": 16000, "pos": [0, 0, 0]},
	{"name": "B", "fS": 16000, "pos": [1, 0, 0]}
]`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	array, err := mic.Parse([]byte(testCfg))
	if err != nil {
		t.Fatal(err)
	}
	s := NewServer(array)
	t.Cleanup(s.version.Stop)
	return s
}

func TestHandleAPIArray(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.handleAPIArray(rec, httptest.NewRequest(http.MethodGet, "/api/array", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp ArrayResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Channels != 2 {
		t.Errorf("channels = %d, want 2", resp.Channels)
	}
	if !resp.CommonRate || resp.SampleRate != 16000 {
		t.Errorf("rate = (%d, %v), want (16000, true)", resp.SampleRate, resp.CommonRate)
	}
	if resp.NamesValid == nil || !*resp.NamesValid {
		t.Errorf("names_valid = %v, want true", resp.NamesValid)
	}
}

func TestHandleAPIArrayMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.handleAPIArray(rec, httptest.NewRequest(http.MethodPost, "/api/array", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestHandleAPILocations(t *testing.T) {
	s := newTestServer(t)

	body := strings.NewReader(`{"locations": {"A": [1, 2, 3]}}`)
	rec := httptest.NewRecorder()
	s.handleAPILocations(rec, httptest.NewRequest(http.MethodPost, "/api/locations", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	m, ok := s.array.Mic(mic.StringName("A"))
	if !ok || m.Pos[2] != 3 {
		t.Errorf("position not applied: %v", m.Pos)
	}
}

func TestHandleAPILocationsUnknownMic(t *testing.T) {
	s := newTestServer(t)

	body := strings.NewReader(`{"locations": {"C": [1, 2, 3]}}`)
	rec := httptest.NewRecorder()
	s.handleAPILocations(rec, httptest.NewRequest(http.MethodPost, "/api/locations", body))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "C") {
		t.Errorf("error should name the missing mic: %s", rec.Body.String())
	}
}

func TestHandleAPILocationsValidation(t *testing.T) {
	s := newTestServer(t)

	body := strings.NewReader(`{"locations": {"A": [1, 2]}}`)
	rec := httptest.NewRecorder()
	s.handleAPILocations(rec, httptest.NewRequest(http.MethodPost, "/api/locations", body))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleAPIAudioAndPlot(t *testing.T) {
	s := newTestServer(t)

	// No data posted yet
	rec := httptest.NewRecorder()
	s.handleAPIPlot(rec, httptest.NewRequest(http.MethodGet, "/api/plot.png", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("plot before audio: status = %d, want 404", rec.Code)
	}

	body := strings.NewReader(`{"fS": 16000, "channels": {"A": [0, 0.5, 1], "B": [1]}}`)
	rec = httptest.NewRecorder()
	s.handleAPIAudio(rec, httptest.NewRequest(http.MethodPost, "/api/audio", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("audio post: status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	s.handleAPIPlot(rec, httptest.NewRequest(http.MethodGet, "/api/plot.png", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("plot: status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte{0x89, 'P', 'N', 'G'}) {
		t.Error("plot response is not a PNG")
	}
}

func TestHandleAPIVersion(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.handleAPIVersion(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var info VersionInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatal(err)
	}
	if info.Current != "dev" {
		t.Errorf("current = %q, want dev", info.Current)
	}
}
