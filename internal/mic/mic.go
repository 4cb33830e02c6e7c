// Package mic provides the microphone-array data model: single microphones,
// arrays loaded from JSON configuration, and name-based lookup.
package mic

import (
	"encoding/json"
	"fmt"
)

// requiredFields must be present in every mic config object.
var requiredFields = []string{"fS", "pos"}

// Mic is a single microphone in an array.
type Mic struct {
	Name       Name      `json:"name"`
	SampleRate int       `json:"fS"`  // Samples per second
	Pos        []float64 `json:"pos"` // 3D coordinate
}

// ParseMic builds a Mic from a raw JSON mic object. It fails with a
// *ConfigError when fS or pos is absent. When the object carries no name,
// defaultName is used (pass the zero Name to leave the mic unnamed).
// Field values are not range-checked here; see Array.ValidateStrict.
func ParseMic(raw json.RawMessage, defaultName Name) (*Mic, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse mic config object: %w", err)
	}

	for _, field := range requiredFields {
		if _, ok := fields[field]; !ok {
			return nil, &ConfigError{Field: field, Object: raw}
		}
	}

	m := &Mic{Name: defaultName}
	if err := json.Unmarshal(fields["fS"], &m.SampleRate); err != nil {
		return nil, fmt.Errorf("failed to parse mic field fS: %w", err)
	}
	if err := json.Unmarshal(fields["pos"], &m.Pos); err != nil {
		return nil, fmt.Errorf("failed to parse mic field pos: %w", err)
	}
	if rawName, ok := fields["name"]; ok {
		if err := json.Unmarshal(rawName, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to parse mic field name: %w", err)
		}
	}
	return m, nil
}
