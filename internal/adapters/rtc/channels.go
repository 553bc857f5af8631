package rtc

import (
	"fmt"
	"sync"
)

// ChannelID is the negotiated data channel id. Both peers use the same
// numbering.
type ChannelID uint16

const (
	ChannelJoin ChannelID = iota
	ChannelRoomUpdate
	ChannelBodyUpdate
	ChannelPlayerName
	ChannelStartGame
	ChannelMove
	ChannelLookAt
	ChannelShoot
	ChannelEffect
	ChannelUseCard

	channelCount
)

var channelNames = [channelCount]string{
	"join", "room-update", "body-update", "player-name", "start-game",
	"move", "look-at", "shoot", "effect", "use-card",
}

func (id ChannelID) String() string {
	if id < channelCount {
		return channelNames[id]
	}
	return fmt.Sprintf("channel(%d)", uint16(id))
}

func (id ChannelID) valid() bool { return id < channelCount }

// Message is one inbound payload.
type Message struct {
	Channel ChannelID
	Data    []byte
	codec   Codec
}

func (m Message) Decode(v any) error {
	if err := m.codec.Unmarshal(m.Data, v); err != nil {
		return fmt.Errorf("decode %s: %w", m.Channel, err)
	}
	return nil
}

type Handler func(Message)

// Channels is the gameplay surface of a connected session.
type Channels interface {
	Send(id ChannelID, v any) error
	Handle(id ChannelID, fn Handler)
}

type handlerTable struct {
	mu  sync.RWMutex
	fns [channelCount][]Handler
}

func (t *handlerTable) add(id ChannelID, fn Handler) {
	if !id.valid() {
		return
	}
	t.mu.Lock()
	t.fns[id] = append(t.fns[id], fn)
	t.mu.Unlock()
}

func (t *handlerTable) dispatch(m Message) {
	if !m.Channel.valid() {
		return
	}
	t.mu.RLock()
	fns := t.fns[m.Channel]
	t.mu.RUnlock()
	for _, fn := range fns {
		fn(m)
	}
}
