package domain

import "testing"

func TestParseStateAcceptsKnownStates(t *testing.T) {
	cases := map[string]State{
		"PENDING":     StatePending,
		"REACHED_OUT": StateReachedOut,
	}

	for raw, want := range cases {
		got, err := ParseState(raw)
		if err != nil {
			t.Fatalf("ParseState(%q) returned error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseState(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestParseStateRejectsUnknownValues(t *testing.T) {
	for _, raw := range []string{"", "pending", "reached_out", "DONE", "Pending "} {
		if _, err := ParseState(raw); err == nil {
			t.Fatalf("ParseState(%q) should have failed", raw)
		}
	}
}

func TestValidateTransitionAllowsPendingToReachedOut(t *testing.T) {
	if reason := ValidateTransition(StatePending, StateReachedOut); reason != "" {
		t.Fatalf("expected PENDING -> REACHED_OUT to be allowed, got %q", reason)
	}
}

func TestValidateTransitionRejectsReachedOutAsTerminal(t *testing.T) {
	if reason := ValidateTransition(StateReachedOut, StateReachedOut); reason == "" {
		t.Fatal("expected repeated REACHED_OUT transition to be rejected")
	}
	if reason := ValidateTransition(StateReachedOut, StatePending); reason == "" {
		t.Fatal("expected REACHED_OUT -> PENDING to be rejected")
	}
}

func TestValidateTransitionRejectsPendingToPending(t *testing.T) {
	if reason := ValidateTransition(StatePending, StatePending); reason == "" {
		t.Fatal("expected PENDING -> PENDING to be rejected")
	}
}
