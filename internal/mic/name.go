package mic

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// nameKind discriminates the variants of Name.
type nameKind uint8

// Declaration order defines the cross-kind sort rank used by Compare:
// unset, then integer, then string.
const (
	nameUnset nameKind = iota
	nameIndex
	nameString
)

// Name identifies a microphone. A name is either unset, a string, or an
// integer (integer names are what GenNames assigns). Name is comparable and
// can be used as a map key.
type Name struct {
	kind nameKind
	str  string
	idx  int
}

// StringName returns a Name holding the given string.
func StringName(s string) Name {
	return Name{kind: nameString, str: s}
}

// IndexName returns a Name holding the given integer.
func IndexName(i int) Name {
	return Name{kind: nameIndex, idx: i}
}

// IsSet reports whether the name holds a value.
func (n Name) IsSet() bool {
	return n.kind != nameUnset
}

// String renders the name for display and for JSON object keys. Unset names
// render as the empty string.
func (n Name) String() string {
	switch n.kind {
	case nameString:
		return n.str
	case nameIndex:
		return strconv.Itoa(n.idx)
	default:
		return ""
	}
}

// Compare orders names: unset first, then integer names numerically, then
// string names lexically.
func Compare(a, b Name) int {
	if a.kind != b.kind {
		return int(a.kind) - int(b.kind)
	}
	switch a.kind {
	case nameIndex:
		return a.idx - b.idx
	case nameString:
		return strings.Compare(a.str, b.str)
	default:
		return 0
	}
}

// NameFromKey converts a JSON object key to a Name. JSON keys are always
// strings, so keys that parse as integers are taken to be integer names;
// everything else is a string name. A mic whose string name looks like an
// integer must therefore be addressed by that integer over the wire.
func NameFromKey(key string) Name {
	if i, err := strconv.Atoi(key); err == nil {
		return IndexName(i)
	}
	return StringName(key)
}

// MarshalJSON encodes string names as JSON strings, integer names as JSON
// numbers, and unset names as null.
func (n Name) MarshalJSON() ([]byte, error) {
	switch n.kind {
	case nameString:
		return json.Marshal(n.str)
	case nameIndex:
		return json.Marshal(n.idx)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts a JSON string, an integral JSON number, or null.
func (n *Name) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*n = Name{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = StringName(s)
		return nil
	}
	var i int
	if err := json.Unmarshal(data, &i); err == nil {
		*n = IndexName(i)
		return nil
	}
	return fmt.Errorf("mic name must be a string or an integer, got %s", trimmed)
}
