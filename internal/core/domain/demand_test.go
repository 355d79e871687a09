package domain

import "testing"

func TestDemandStatus_IsValid(t *testing.T) {
	for _, s := range []DemandStatus{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled} {
		if !s.IsValid() {
			t.Fatalf("expected %s to be valid", s)
		}
	}
	for _, s := range []DemandStatus{"", "pending", "done", "en attente"} {
		if s.IsValid() {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}

func TestDemandStatus_Transitions(t *testing.T) {
	cases := []struct {
		from, to DemandStatus
		allowed  bool
	}{
		{StatusPending, StatusInProgress, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, true},
		{StatusPending, StatusPending, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusInProgress, StatusPending, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusInProgress, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusInProgress, false},
		{StatusCancelled, StatusCompleted, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestDemandStatus_IsTerminal(t *testing.T) {
	if StatusPending.IsTerminal() || StatusInProgress.IsTerminal() {
		t.Fatalf("pending/in-progress must not be terminal")
	}
	if !StatusCompleted.IsTerminal() || !StatusCancelled.IsTerminal() {
		t.Fatalf("terminee/annulee must be terminal")
	}
}
