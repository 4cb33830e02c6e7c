package mic

import (
	"encoding/json"
	"testing"
)

func TestNameJSONRoundTrip(t *testing.T) {
	cases := []struct {
		name Name
		want string
	}{
		{StringName("A"), `"A"`},
		{IndexName(3), `3`},
		{Name{}, `null`},
	}
	for _, c := range cases {
		out, err := json.Marshal(c.name)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", c.name, err)
		}
		if string(out) != c.want {
			t.Errorf("Marshal(%v) = %s, want %s", c.name, out, c.want)
		}

		var back Name
		if err := json.Unmarshal(out, &back); err != nil {
			t.Fatalf("Unmarshal(%s): %v", out, err)
		}
		if back != c.name {
			t.Errorf("round trip of %v gave %v", c.name, back)
		}
	}
}

func TestNameUnmarshalRejectsNonIntegral(t *testing.T) {
	var n Name
	if err := json.Unmarshal([]byte(`1.5`), &n); err == nil {
		t.Error("expected error for non-integral numeric name")
	}
	if err := json.Unmarshal([]byte(`[1]`), &n); err == nil {
		t.Error("expected error for array name")
	}
}

func TestNameString(t *testing.T) {
	if got := StringName("left").String(); got != "left" {
		t.Errorf("String() = %q, want %q", got, "left")
	}
	if got := IndexName(7).String(); got != "7" {
		t.Errorf("String() = %q, want %q", got, "7")
	}
	if got := (Name{}).String(); got != "" {
		t.Errorf("unset String() = %q, want empty", got)
	}
}

func TestNameFromKey(t *testing.T) {
	if got := NameFromKey("2"); got != IndexName(2) {
		t.Errorf("NameFromKey(\"2\") = %v, want integer name 2", got)
	}
	if got := NameFromKey("left"); got != StringName("left") {
		t.Errorf("NameFromKey(\"left\") = %v, want string name", got)
	}
}

func TestCompareOrdering(t *testing.T) {
	ordered := []Name{{}, IndexName(0), IndexName(10), StringName("A"), StringName("B")}
	for i := 0; i < len(ordered)-1; i++ {
		if Compare(ordered[i], ordered[i+1]) >= 0 {
			t.Errorf("Compare(%v, %v) >= 0, want < 0", ordered[i], ordered[i+1])
		}
	}
	if Compare(IndexName(5), IndexName(5)) != 0 {
		t.Error("equal integer names should compare 0")
	}
	// Cross-kind rank both ways: integer names sort before string names.
	if Compare(IndexName(10), StringName("A")) >= 0 {
		t.Error("integer name should sort before string name")
	}
	if Compare(StringName("A"), IndexName(10)) <= 0 {
		t.Error("string name should sort after integer name")
	}
}
