package mic

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ConfigError reports a mic config object that is missing a required field.
// Object carries the offending JSON so the caller can see what was parsed.
type ConfigError struct {
	Field  string
	Object json.RawMessage
}

func (e *ConfigError) Error() string {
	var dump bytes.Buffer
	if err := json.Indent(&dump, e.Object, "", "    "); err != nil {
		dump.Reset()
		dump.Write(e.Object)
	}
	return fmt.Sprintf("mic config missing required field %q, attempted to parse object:\n%s", e.Field, dump.String())
}

// InputError reports a caller-supplied mic name that does not exist in the
// array.
type InputError struct {
	Name Name
}

func (e *InputError) Error() string {
	return fmt.Sprintf("mic name %q does not exist in the mic array", e.Name)
}

// FieldError describes a single strict-validation failure.
type FieldError struct {
	Mic     int    `json:"mic"`     // Index of the mic in the array
	Field   string `json:"field"`   // JSON field name (e.g. "fS")
	Message string `json:"message"` // Human-readable error message
}

// ValidationError collects strict-validation failures across an array.
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (v *ValidationError) Error() string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "mic array failed strict validation (%d problem(s))", len(v.Errors))
	for _, e := range v.Errors {
		fmt.Fprintf(&b, "\n  mic %d: %s %s", e.Mic, e.Field, e.Message)
	}
	return b.String()
}

func (v *ValidationError) add(mic int, field, message string) {
	v.Errors = append(v.Errors, FieldError{Mic: mic, Field: field, Message: message})
}
