package model

import "testing"

func TestTransitions_Table(t *testing.T) {
	t.Parallel()

	want := map[OrderStatus][]OrderStatus{
		StatusPending:   {StatusCooking, StatusCancelled},
		StatusCooking:   {StatusReady, StatusCancelled},
		StatusReady:     {StatusCompleted, StatusCancelled},
		StatusCompleted: {},
		StatusCancelled: {},
	}

	if len(NextStatuses) != len(want) {
		t.Fatalf("transition table has %d states, want %d", len(NextStatuses), len(want))
	}
	for from, nexts := range want {
		got := Transitions(from)
		if len(got) != len(nexts) {
			t.Fatalf("Transitions(%s)=%v, want %v", from, got, nexts)
		}
		for i := range nexts {
			if got[i] != nexts[i] {
				t.Fatalf("Transitions(%s)=%v, want %v", from, got, nexts)
			}
		}
	}
}

func TestTransitions_NoSelfLoops(t *testing.T) {
	t.Parallel()
	for from, nexts := range NextStatuses {
		for _, to := range nexts {
			if from == to {
				t.Fatalf("state %s transitions to itself", from)
			}
		}
	}
}

func TestCanTransition(t *testing.T) {
	t.Parallel()

	if !CanTransition(StatusPending, StatusCooking) {
		t.Fatalf("pending->cooking must be allowed")
	}
	if !CanTransition(StatusReady, StatusCancelled) {
		t.Fatalf("ready->cancelled must be allowed")
	}
	if CanTransition(StatusPending, StatusReady) {
		t.Fatalf("pending->ready must not be allowed")
	}
	if CanTransition(StatusCompleted, StatusPending) {
		t.Fatalf("completed is terminal")
	}
	if CanTransition("unknown", StatusCooking) {
		t.Fatalf("unknown state has no transitions")
	}
}

func TestTerminal(t *testing.T) {
	t.Parallel()

	for _, s := range []OrderStatus{StatusCompleted, StatusCancelled} {
		if !Terminal(s) {
			t.Fatalf("%s must be terminal", s)
		}
	}
	for _, s := range []OrderStatus{StatusPending, StatusCooking, StatusReady} {
		if Terminal(s) {
			t.Fatalf("%s must not be terminal", s)
		}
	}
	if Terminal("unknown") {
		t.Fatalf("unknown state is not terminal, it is unknown")
	}
}
