package rtc

import (
	"context"
	"fmt"
	"sync"

	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"
)

// Multiplexer owns the ten negotiated data channels of one peer connection.
type Multiplexer struct {
	codec    Codec
	dcs      [channelCount]*webrtc.DataChannel
	handlers handlerTable

	mu      sync.Mutex
	open    [channelCount]bool
	onOpen  [channelCount][]func()
	opened  int
	allOpen chan struct{}
}

var _ Channels = (*Multiplexer)(nil)

func newMultiplexer(pc *webrtc.PeerConnection, codec Codec) (*Multiplexer, error) {
	m := &Multiplexer{codec: codec, allOpen: make(chan struct{})}
	negotiated := true
	for id := ChannelID(0); id < channelCount; id++ {
		raw := uint16(id)
		dc, err := pc.CreateDataChannel(id.String(), &webrtc.DataChannelInit{
			Negotiated: &negotiated,
			ID:         &raw,
		})
		if err != nil {
			return nil, fmt.Errorf("create channel %s: %w", id, err)
		}
		dc.OnOpen(func() { m.markOpen(id) })
		dc.OnMessage(func(msg webrtc.DataChannelMessage) {
			m.handlers.dispatch(Message{Channel: id, Data: msg.Data, codec: m.codec})
		})
		m.dcs[id] = dc
	}
	return m, nil
}

func (m *Multiplexer) markOpen(id ChannelID) {
	m.mu.Lock()
	if m.open[id] {
		m.mu.Unlock()
		return
	}
	m.open[id] = true
	m.opened++
	fns := m.onOpen[id]
	if m.opened == int(channelCount) {
		close(m.allOpen)
	}
	m.mu.Unlock()

	log.Debug().Str("module", "adapters.rtc").Str("channel", id.String()).Msg("channel open")
	for _, fn := range fns {
		fn()
	}
}

func (m *Multiplexer) Send(id ChannelID, v any) error {
	if !id.valid() {
		return ErrUnknownChannel
	}
	dc := m.dcs[id]
	switch dc.ReadyState() {
	case webrtc.DataChannelStateOpen:
	case webrtc.DataChannelStateClosing, webrtc.DataChannelStateClosed:
		return fmt.Errorf("%w: %s", ErrChannelClosed, id)
	default:
		return fmt.Errorf("%w: %s", ErrChannelNotOpen, id)
	}
	data, err := m.codec.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", id, err)
	}
	if m.codec.Text() {
		return dc.SendText(string(data))
	}
	return dc.Send(data)
}

func (m *Multiplexer) Handle(id ChannelID, fn Handler) { m.handlers.add(id, fn) }

// OnOpen runs fn when channel id opens, or right away if it already has.
func (m *Multiplexer) OnOpen(id ChannelID, fn func()) {
	if !id.valid() {
		return
	}
	m.mu.Lock()
	if m.open[id] {
		m.mu.Unlock()
		fn()
		return
	}
	m.onOpen[id] = append(m.onOpen[id], fn)
	m.mu.Unlock()
}

// WaitOpen blocks until every channel is open.
func (m *Multiplexer) WaitOpen(ctx context.Context) error {
	select {
	case <-m.allOpen:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
