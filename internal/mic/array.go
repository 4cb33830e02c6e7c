package mic

import (
	"encoding/json"
	"os"

	"github.com/soundfield/micview/internal/util"
)

// Array is an ordered collection of microphones loaded from a JSON
// configuration, with name-based lookup.
//
// An Array is not safe for concurrent mutation; a caller that shares one
// across goroutines must provide its own synchronization.
type Array struct {
	mics   []*Mic
	byName map[Name]*Mic

	// Tri-state ValidateNames cache: unknown until the first call.
	namesValid   bool
	namesChecked bool
}

// Load reads a mic array configuration file and parses it.
func Load(path string) (*Array, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, util.WrapError("read mic config", err)
	}
	return Parse(data)
}

// Parse builds an Array from a JSON array of mic objects. Element order is
// preserved. Mics without a name stay unnamed; call GenNames or ValidateNames
// as needed. When two mics share a name, the later one wins the index slot —
// ValidateNames is the surface that reports such collisions.
func Parse(data []byte) (*Array, error) {
	var rawMics []json.RawMessage
	if err := json.Unmarshal(data, &rawMics); err != nil {
		return nil, util.WrapError("parse mic config", err)
	}

	a := &Array{mics: make([]*Mic, 0, len(rawMics))}
	for _, raw := range rawMics {
		m, err := ParseMic(raw, Name{})
		if err != nil {
			return nil, err
		}
		a.mics = append(a.mics, m)
	}
	a.rebuildIndex()
	return a, nil
}

// rebuildIndex recomputes the name lookup table from the current mic names.
func (a *Array) rebuildIndex() {
	a.byName = make(map[Name]*Mic, len(a.mics))
	for _, m := range a.mics {
		a.byName[m.Name] = m
	}
}

// Channels returns the number of microphones in the array.
func (a *Array) Channels() int {
	return len(a.mics)
}

// Mics returns the array's microphones in configuration order. The slice is
// the array's own backing storage; mutate positions through SetLocations and
// names through GenNames so the lookup index stays consistent.
func (a *Array) Mics() []*Mic {
	return a.mics
}

// Mic returns the microphone with the given name, if any.
func (a *Array) Mic(name Name) (*Mic, bool) {
	m, ok := a.byName[name]
	return m, ok
}

// Contains reports whether a mic with the given name exists in the array.
func (a *Array) Contains(name Name) bool {
	_, ok := a.byName[name]
	return ok
}

// ValidateNames reports whether every mic has a distinct, set name. The
// result is cached; NamesValid exposes the cache. Name types are not checked
// for consistency (a mix of string and integer names still validates).
func (a *Array) ValidateNames() bool {
	a.namesChecked = true
	seen := make(map[Name]struct{}, len(a.mics))
	for _, m := range a.mics {
		if !m.Name.IsSet() {
			a.namesValid = false
			return false
		}
		if _, dup := seen[m.Name]; dup {
			a.namesValid = false
			return false
		}
		seen[m.Name] = struct{}{}
	}
	a.namesValid = true
	return true
}

// NamesValid returns the cached ValidateNames result. known is false until
// ValidateNames has been called.
func (a *Array) NamesValid() (valid, known bool) {
	return a.namesValid, a.namesChecked
}

// GenNames renames every mic to its 0-based position index, overwriting any
// existing names, and rebuilds the name index so lookups see the new names.
func (a *Array) GenNames() {
	for i, m := range a.mics {
		m.Name = IndexName(i)
	}
	a.rebuildIndex()
	a.namesChecked = false
}

// SampleFreq returns the sample rate shared by every mic in the array.
// ok is false when mics disagree or the array is empty.
func (a *Array) SampleFreq() (rate int, ok bool) {
	for i, m := range a.mics {
		if i > 0 && m.SampleRate != rate {
			return 0, false
		}
		rate = m.SampleRate
	}
	return rate, len(a.mics) > 0
}

// SetLocations updates mic positions from a name-to-coordinate map. Updates
// are applied eagerly per entry: when a name is unknown a *InputError is
// returned, but entries already processed in the same call keep their new
// positions. Map iteration order is unspecified, so which entries those are
// is unspecified too.
func (a *Array) SetLocations(locs map[Name][]float64) error {
	for name, pos := range locs {
		m, ok := a.byName[name]
		if !ok {
			return &InputError{Name: name}
		}
		m.Pos = pos
	}
	return nil
}
