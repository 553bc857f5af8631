package app

import "github.com/dkeye/arena/internal/domain"

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	KickPeer
	DropFrame
)

// Policy decides what the relay does when a peer's send queue is full.
type Policy interface {
	OnBackPressure(peer domain.PeerID, frameType string) BackpressureAction
}

// SimplePolicy kicks slow peers.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(domain.PeerID, string) BackpressureAction {
	return KickPeer
}

// HandshakePolicy drops pong and peer-left frames and kicks the peer for
// anything else.
type HandshakePolicy struct{}

func (HandshakePolicy) OnBackPressure(_ domain.PeerID, frameType string) BackpressureAction {
	if frameType == "pong" || frameType == "peer-left" {
		return DropFrame
	}
	return KickPeer
}
