package irdoc

import (
	"strings"
	"testing"
)

type fixedClock string

func (c fixedClock) Now() string { return string(c) }

func TestIDMinter_MonotonicPerKind(t *testing.T) {
	m := NewIDMinter(fixedClock("2026-01-01T00:00:00Z"))

	first := m.Mint(IDElement)
	second := m.Mint(IDElement)
	if first == second {
		t.Fatalf("Mint(IDElement) returned the same id twice: %q", first)
	}
	if !strings.HasPrefix(first, "el_1_") || !strings.HasPrefix(second, "el_2_") {
		t.Fatalf("unexpected id shapes: %q, %q", first, second)
	}

	v := m.Mint(IDVariable)
	if !strings.HasPrefix(v, "var_1_") {
		t.Fatalf("IDVariable counter not independent of IDElement: %q", v)
	}
}

func TestIDMinter_EmbedsClockTimestamp(t *testing.T) {
	m := NewIDMinter(fixedClock("2026-07-30T12:00:00Z"))
	id := m.Mint(IDBinding)
	if !strings.HasSuffix(id, "2026-07-30T12:00:00Z") {
		t.Fatalf("id %q does not embed clock timestamp", id)
	}
}

func TestIDMinter_DefaultsToSystemClock(t *testing.T) {
	m := NewIDMinter(nil)
	id := m.Mint(IDConditional)
	if !strings.HasPrefix(id, "grp_1_") {
		t.Fatalf("unexpected id shape with default clock: %q", id)
	}
}
