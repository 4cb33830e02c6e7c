package audiodat

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soundfield/micview/internal/mic"
)

func TestChannelsOrdering(t *testing.T) {
	dat := Data{
		mic.StringName("B"):  {1},
		mic.IndexName(10):    {2},
		mic.IndexName(2):     {3},
		mic.StringName("Aa"): {4},
	}
	got := dat.Channels()
	want := []mic.Name{mic.IndexName(2), mic.IndexName(10), mic.StringName("Aa"), mic.StringName("B")}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Channels() = %v, want %v", got, want)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audio.json")
	content := `{"fS": 16000, "channels": {"A": [0.5, -0.5], "1": [1.0]}}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	dat, rate, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if rate != 16000 {
		t.Errorf("rate = %v, want 16000", rate)
	}
	if len(dat) != 2 {
		t.Fatalf("got %d channels, want 2", len(dat))
	}
	if sig := dat[mic.StringName("A")]; len(sig) != 2 || sig[0] != 0.5 {
		t.Errorf("channel A = %v", sig)
	}
	// Integer-looking keys become integer names.
	if _, ok := dat[mic.IndexName(1)]; !ok {
		t.Error(`key "1" should load as the integer name 1`)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadFile(path); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestPPrint(t *testing.T) {
	dat := Data{
		mic.StringName("A"): {0.25, -0.25},
		mic.IndexName(0):    {1},
	}

	var buf bytes.Buffer
	if err := PPrint(&buf, dat); err != nil {
		t.Fatalf("PPrint: %v", err)
	}

	var back map[string][]float64
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(back) != 2 {
		t.Fatalf("got %d entries, want 2", len(back))
	}
	if back["A"][1] != -0.25 {
		t.Errorf(`entry "A" = %v`, back["A"])
	}
	if back["0"][0] != 1 {
		t.Errorf(`integer name should key as "0", got entries %v`, back)
	}
	if !strings.Contains(buf.String(), "\n    ") {
		t.Error("output should be indented")
	}
}

func TestSummary(t *testing.T) {
	dat := Data{mic.StringName("A"): {0.5, -0.9, 0.1}}
	var buf bytes.Buffer
	Summary(&buf, dat)
	out := buf.String()
	if !strings.Contains(out, "3 samples") || !strings.Contains(out, "0.9000") {
		t.Errorf("unexpected summary output: %q", out)
	}
}
