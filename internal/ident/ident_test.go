package ident

import (
	"regexp"
	"testing"
)

var uuidShape = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestNew_Shape(t *testing.T) {
	id := New()
	if !uuidShape.MatchString(id) {
		t.Errorf("id %q does not match UUIDv4 shape", id)
	}
}

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := New()
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}

func TestPseudoRandomID_Shape(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := pseudoRandomID()
		if !uuidShape.MatchString(id) {
			t.Errorf("fallback id %q does not match UUIDv4 shape", id)
		}
	}
}
