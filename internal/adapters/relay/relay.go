// Package relay is the client side of the signaling relay: the few calls a
// peer needs to find its partner and swap session descriptions.
package relay

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dkeye/arena/internal/domain"
	"github.com/pion/webrtc/v4"
)

//go:generate mockgen -destination=relaymock/relay.go -package=relaymock . Relay

var (
	ErrRejected = errors.New("relay rejected request")
	ErrClosed   = errors.New("relay connection closed")
)

// Relay forwards handshake messages between exactly two peers. Send calls
// may report a rejection directly or, for asynchronous transports, on Errors.
type Relay interface {
	Announce(ctx context.Context) (domain.PeerID, error)
	SendOffer(ctx context.Context, room domain.RoomID, offer webrtc.SessionDescription) error
	SendAnswer(ctx context.Context, to domain.PeerID, answer webrtc.SessionDescription) error
	SendCandidates(ctx context.Context, to domain.PeerID, candidates []webrtc.ICECandidateInit) error

	Offers() <-chan Offer
	Answers() <-chan Answer
	Candidates() <-chan Candidates
	Errors() <-chan error

	Close() error
}

type Offer struct {
	From        domain.PeerID
	Description webrtc.SessionDescription
}

type Answer struct {
	From        domain.PeerID
	Description webrtc.SessionDescription
}

type Candidates struct {
	From domain.PeerID
	List []webrtc.ICECandidateInit
}

// Message types on the relay wire.
const (
	TypeAnnounce   = "announce-available"
	TypeAssignedID = "assigned-id"
	TypeOffer      = "offer"
	TypeAnswer     = "answer"
	TypeCandidates = "candidates"
	TypeError      = "error"
	TypePeerLeft   = "peer-left"
	TypePing       = "ping"
	TypePong       = "pong"
)

// Envelope is one relay message. The relay fills From; peers fill To.
type Envelope struct {
	Type    string          `json:"type"`
	To      string          `json:"to,omitempty"`
	From    string          `json:"from,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

func NewEnvelope(typ, to string, payload any) (Envelope, error) {
	env := Envelope{Type: typ, To: to}
	if payload == nil {
		return env, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return env, err
	}
	env.Payload = raw
	return env, nil
}

func (e Envelope) Decode(v any) error {
	return json.Unmarshal(e.Payload, v)
}
