package admin

import (
	"encoding/json"
	"testing"
)

func TestIntUnmarshal(t *testing.T) {
	cases := map[string]Int{
		`5`:     5,
		`"12"`:  12,
		`null`:  0,
		`""`:    0,
		`3.6`:   4,
		`" 7 "`: 7,
	}
	for raw, want := range cases {
		var got Int
		if err := json.Unmarshal([]byte(raw), &got); err != nil {
			t.Fatalf("%s: unexpected error %v", raw, err)
		}
		if got != want {
			t.Fatalf("%s: expected %d, got %d", raw, want, got)
		}
	}
}

func TestIntRejectsText(t *testing.T) {
	var got Int
	if err := json.Unmarshal([]byte(`"doce"`), &got); err == nil {
		t.Fatalf("expected error for non numeric string")
	}
}

func TestNumberString(t *testing.T) {
	var n Number
	if err := json.Unmarshal([]byte(`"12.50"`), &n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.String() != "12.5" {
		t.Fatalf("expected 12.5, got %s", n.String())
	}
	if n.Float() != 12.5 {
		t.Fatalf("expected float 12.5, got %v", n.Float())
	}
}

func TestTextUnmarshal(t *testing.T) {
	cases := map[string]Text{
		`"hola"`: "hola",
		`42`:     "42",
		`true`:   "true",
		`null`:   "",
		`12.5`:   "12.5",
	}
	for raw, want := range cases {
		var got Text
		if err := json.Unmarshal([]byte(raw), &got); err != nil {
			t.Fatalf("%s: unexpected error %v", raw, err)
		}
		if got != want {
			t.Fatalf("%s: expected %q, got %q", raw, want, got)
		}
	}
}
