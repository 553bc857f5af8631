package rtc

import "fmt"

// State is where a Session is in the handshake.
type State int

const (
	StateIdle State = iota
	StateOfferCreated
	StateOfferSent
	StateOfferReceived
	StateAnswerCreated
	StateAnswerSent
	StateAnswerReceived
	StateCandidateGathering
	StateConnected
	StateFailed
	StateClosed
)

var stateNames = [...]string{
	StateIdle:               "idle",
	StateOfferCreated:       "offer-created",
	StateOfferSent:          "offer-sent",
	StateOfferReceived:      "offer-received",
	StateAnswerCreated:      "answer-created",
	StateAnswerSent:         "answer-sent",
	StateAnswerReceived:     "answer-received",
	StateCandidateGathering: "candidate-gathering",
	StateConnected:          "connected",
	StateFailed:             "failed",
	StateClosed:             "closed",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

func (s State) Terminal() bool { return s == StateFailed || s == StateClosed }

// edges lists the forward moves of both roles. Failed and Closed are
// reachable from every non-terminal state.
var edges = map[State][]State{
	StateIdle:               {StateOfferCreated, StateOfferReceived},
	StateOfferCreated:       {StateOfferSent},
	StateOfferSent:          {StateAnswerReceived},
	StateOfferReceived:      {StateAnswerCreated},
	StateAnswerCreated:      {StateAnswerSent},
	StateAnswerSent:         {StateCandidateGathering, StateConnected},
	StateAnswerReceived:     {StateCandidateGathering, StateConnected},
	StateCandidateGathering: {StateConnected},
}

func canTransition(from, to State) bool {
	if from.Terminal() {
		return false
	}
	if to.Terminal() {
		return true
	}
	for _, s := range edges[from] {
		if s == to {
			return true
		}
	}
	return false
}
