// Package audiodat provides display utilities for audio data maps: rendering
// time-series plots and pretty-printing signals. It performs no signal
// processing.
package audiodat

import (
	"encoding/json"
	"os"
	"slices"

	"github.com/soundfield/micview/internal/mic"
	"github.com/soundfield/micview/internal/util"
)

// Data maps a channel (mic or speaker) name to its signal samples.
type Data map[mic.Name][]float64

// Channels returns the channel names in a deterministic order (unset first,
// integer names numerically, string names lexically). Go maps have no
// iteration order, so every rendering path goes through this.
func (d Data) Channels() []mic.Name {
	names := make([]mic.Name, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	slices.SortFunc(names, mic.Compare)
	return names
}

// maxLen returns the longest signal length across channels.
func (d Data) maxLen() int {
	n := 0
	for _, sig := range d {
		n = max(n, len(sig))
	}
	return n
}

// file is the on-disk shape of an audio data set.
type file struct {
	SampleRate float64              `json:"fS"`
	Channels   map[string][]float64 `json:"channels"`
}

// LoadFile reads an audio data set of the form
// {"fS": 16000, "channels": {"A": [...], ...}}. The sample rate may be zero
// when the file omits it; callers supply their own for plotting then.
func LoadFile(path string) (Data, float64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, util.WrapError("read audio data", err)
	}
	var f file
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, 0, util.WrapError("parse audio data", err)
	}
	dat := make(Data, len(f.Channels))
	for key, sig := range f.Channels {
		dat[mic.NameFromKey(key)] = sig
	}
	return dat, f.SampleRate, nil
}
