package rtc

import (
	"fmt"
	"sync"
)

// PipeEnd is one side of an in-memory channel pair. Messages are delivered
// in order on a goroutine of the receiving end.
type PipeEnd struct {
	codec    Codec
	peer     *PipeEnd
	queue    chan Message
	handlers handlerTable

	done      chan struct{}
	closeOnce sync.Once
}

var _ Channels = (*PipeEnd)(nil)

func NewPipe(codec Codec) (*PipeEnd, *PipeEnd) {
	a := newPipeEnd(codec)
	b := newPipeEnd(codec)
	a.peer, b.peer = b, a
	go a.run()
	go b.run()
	return a, b
}

func newPipeEnd(codec Codec) *PipeEnd {
	return &PipeEnd{codec: codec, queue: make(chan Message, 256), done: make(chan struct{})}
}

func (p *PipeEnd) run() {
	for {
		select {
		case m := <-p.queue:
			p.handlers.dispatch(m)
		case <-p.done:
			return
		}
	}
}

func (p *PipeEnd) Send(id ChannelID, v any) error {
	if !id.valid() {
		return ErrUnknownChannel
	}
	data, err := p.codec.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", id, err)
	}
	m := Message{Channel: id, Data: data, codec: p.peer.codec}
	select {
	case <-p.done:
		return ErrChannelClosed
	case <-p.peer.done:
		return ErrChannelClosed
	case p.peer.queue <- m:
		return nil
	}
}

func (p *PipeEnd) Handle(id ChannelID, fn Handler) { p.handlers.add(id, fn) }

// Close stops both ends.
func (p *PipeEnd) Close() {
	p.closeOnce.Do(func() { close(p.done) })
	p.peer.closeOnce.Do(func() { close(p.peer.done) })
}
