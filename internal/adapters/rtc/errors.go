package rtc

import (
	"errors"
	"fmt"
)

var (
	ErrHandshake      = errors.New("handshake failed")
	ErrTransport      = errors.New("transport lost")
	ErrChannelNotOpen = errors.New("channel not open")
	ErrChannelClosed  = errors.New("channel closed")
	ErrUnknownChannel = errors.New("unknown channel")
	ErrBadTransition  = errors.New("invalid session state transition")
	ErrSessionInUse   = errors.New("session already negotiating")
	ErrUnexpectedPeer = errors.New("message from unexpected peer")
	ErrUnknownCodec   = errors.New("unknown codec")
)

// HandshakeError reports which negotiation step failed.
type HandshakeError struct {
	Step string
	Err  error
}

func (e *HandshakeError) Error() string {
	return fmt.Sprintf("handshake %s: %v", e.Step, e.Err)
}

func (e *HandshakeError) Unwrap() []error {
	return []error{ErrHandshake, e.Err}
}
