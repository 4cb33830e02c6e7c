// Package server provides request decoding, validation, and the WebSocket
// upgrade path for the mic-array viewer.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/soundfield/micview/internal/util"
)

// validate is the shared validator instance for request validation.
var validate = util.NewValidator()

// DecodeAndValidate decodes a JSON request body into data and validates it.
// The returned error is suitable for an HTTP 400 payload.
func DecodeAndValidate[T any](body io.Reader, data *T) error {
	if err := json.NewDecoder(body).Decode(data); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := validate.Struct(data); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}
