package store

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusActive, StatusCompleted, true},
		{StatusActive, StatusInactive, true},
		{StatusActive, StatusActive, true},
		{StatusCompleted, StatusInactive, true},
		{StatusCompleted, StatusCompleted, true},
		{StatusCompleted, StatusActive, false},
		{StatusInactive, StatusActive, false},
		{StatusInactive, StatusCompleted, false},
		{StatusInactive, StatusInactive, true},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%v, %v) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestStatusString(t *testing.T) {
	if StatusActive.String() != "active" {
		t.Errorf("StatusActive.String() = %q", StatusActive.String())
	}
	if Status(42).String() != "unknown" {
		t.Errorf("Status(42).String() = %q", Status(42).String())
	}
}
