package mic

import (
	"errors"
	"testing"
)

func TestValidateStrictClean(t *testing.T) {
	a, err := Parse([]byte(twoMicCfg))
	if err != nil {
		t.Fatal(err)
	}
	if err := a.ValidateStrict(); err != nil {
		t.Errorf("ValidateStrict() = %v, want nil", err)
	}
}

func TestValidateStrictFindsProblems(t *testing.T) {
	a, err := Parse([]byte(`[
		{"name": "A", "fS": -8000, "pos": [0, 0, 0]},
		{"name": "B", "fS": 16000, "pos": [1, 0]}
	]`))
	if err != nil {
		t.Fatalf("Parse must accept out-of-range values: %v", err)
	}

	err = a.ValidateStrict()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("ValidateStrict() = %v, want *ValidationError", err)
	}
	if len(verr.Errors) != 2 {
		t.Fatalf("got %d field errors, want 2: %v", len(verr.Errors), verr)
	}

	first, second := verr.Errors[0], verr.Errors[1]
	if first.Mic != 0 || first.Field != "fS" {
		t.Errorf("first error = %+v, want mic 0 field fS", first)
	}
	if second.Mic != 1 || second.Field != "pos" {
		t.Errorf("second error = %+v, want mic 1 field pos", second)
	}
}
