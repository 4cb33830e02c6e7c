package mic

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/soundfield/micview/internal/util"
)

// validate is the shared validator instance for strict mic validation.
var validate = util.NewValidator()

// strictMic mirrors Mic with validation tags for the opt-in strict check.
// The default load path deliberately accepts out-of-range values.
type strictMic struct {
	SampleRate int       `json:"fS" validate:"required,gt=0"`
	Pos        []float64 `json:"pos" validate:"required,len=3"`
}

// ValidateStrict checks every mic for a positive sample rate and a 3-element
// position. It returns a *ValidationError listing all failures, or nil when
// the array is clean. Loading never runs this; callers opt in.
func (a *Array) ValidateStrict() error {
	verr := &ValidationError{}
	for i, m := range a.mics {
		s := strictMic{SampleRate: m.SampleRate, Pos: m.Pos}
		err := validate.Struct(s)
		if err == nil {
			continue
		}
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			verr.add(i, fe.Field(), describeTag(fe))
		}
	}
	if len(verr.Errors) > 0 {
		return verr
	}
	return nil
}

// describeTag turns a validator tag failure into a readable message.
func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "len":
		return fmt.Sprintf("must have exactly %s elements", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
