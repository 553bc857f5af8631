package rtc

import "testing"

func TestCanTransitionGuestPath(t *testing.T) {
	path := []State{StateIdle, StateOfferCreated, StateOfferSent, StateAnswerReceived, StateCandidateGathering, StateConnected}
	for i := 0; i+1 < len(path); i++ {
		if !canTransition(path[i], path[i+1]) {
			t.Fatalf("%s -> %s rejected", path[i], path[i+1])
		}
	}
}

func TestCanTransitionHostPath(t *testing.T) {
	path := []State{StateIdle, StateOfferReceived, StateAnswerCreated, StateAnswerSent, StateCandidateGathering, StateConnected}
	for i := 0; i+1 < len(path); i++ {
		if !canTransition(path[i], path[i+1]) {
			t.Fatalf("%s -> %s rejected", path[i], path[i+1])
		}
	}
}

func TestCanTransitionRejects(t *testing.T) {
	cases := []struct{ from, to State }{
		{StateIdle, StateConnected},
		{StateOfferSent, StateOfferReceived},
		{StateAnswerCreated, StateAnswerReceived},
		{StateFailed, StateIdle},
		{StateFailed, StateClosed},
		{StateClosed, StateFailed},
	}
	for _, c := range cases {
		if canTransition(c.from, c.to) {
			t.Errorf("%s -> %s accepted", c.from, c.to)
		}
	}
}

func TestFailedFromAnyLiveState(t *testing.T) {
	for s := StateIdle; s <= StateConnected; s++ {
		if !canTransition(s, StateFailed) {
			t.Errorf("%s -> failed rejected", s)
		}
	}
}

func TestStateString(t *testing.T) {
	if got := StateCandidateGathering.String(); got != "candidate-gathering" {
		t.Fatalf("got %q", got)
	}
	if got := State(42).String(); got != "state(42)" {
		t.Fatalf("got %q", got)
	}
}
