package common

import (
	"strings"
	"testing"
)

func TestCanonicalJSONIgnoresKeyOrder(t *testing.T) {
	a, err := CanonicalJSON(map[string]interface{}{"b": 1, "a": []int{1, 2}})
	if err != nil {
		t.Fatalf("CanonicalJSON() error = %v", err)
	}
	var parsed interface{}
	if err := ParseJSON(`{"a":[1,2],"b":1}`, &parsed); err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}
	b, err := CanonicalJSON(parsed)
	if err != nil {
		t.Fatalf("CanonicalJSON() error = %v", err)
	}
	if string(a) != string(b) {
		t.Errorf("canonical forms differ: %s vs %s", a, b)
	}
}

func TestCanonicalJSONNumberLiterals(t *testing.T) {
	canonical := func(in string) string {
		t.Helper()
		var v interface{}
		if err := ParseJSON(in, &v); err != nil {
			t.Fatalf("ParseJSON(%q) error = %v", in, err)
		}
		out, err := CanonicalJSON(v)
		if err != nil {
			t.Fatalf("CanonicalJSON() error = %v", err)
		}
		return string(out)
	}

	tests := []struct {
		name  string
		a, b  string
		equal bool
	}{
		{"whitespace ignored", `{"a":1}`, `{ "a" : 1 }`, true},
		{"large integers kept exact", `{"a":12345678901234567890}`, `{"a":12345678901234567890}`, true},
		{"literal form kept", `{"a":1}`, `{"a":1.0}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := canonical(tt.a) == canonical(tt.b); got != tt.equal {
				t.Errorf("canonical(%s) == canonical(%s) is %v, want %v", tt.a, tt.b, got, tt.equal)
			}
		})
	}
}

func TestDecodeJSONRejectsTrailingData(t *testing.T) {
	var v map[string]interface{}
	if err := DecodeJSON(strings.NewReader(`{"a":1} {"b":2}`), &v); err == nil {
		t.Error("DecodeJSON() error = nil for trailing data")
	}
	if err := DecodeJSON(strings.NewReader(`{"a":1}`+"\n"), &v); err != nil {
		t.Errorf("DecodeJSON() error = %v", err)
	}
}

func TestValidJSON(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{`{"a":1}`, true},
		{`[1,2]`, true},
		{`{"a":`, false},
		{``, false},
	}
	for _, tt := range tests {
		if got := ValidJSON([]byte(tt.in)); got != tt.want {
			t.Errorf("ValidJSON(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStringSliceToString(t *testing.T) {
	if got := StringSliceToString([]string{"a", "b"}, "ja"); got != "a、b" {
		t.Errorf("ja join = %q", got)
	}
	if got := StringSliceToString([]string{"a", "b"}, "en"); got != "a, b" {
		t.Errorf("en join = %q", got)
	}
	if got := StringSliceToString(nil, "en"); got != "" {
		t.Errorf("empty join = %q", got)
	}
}
