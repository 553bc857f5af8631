package rtc

import (
	"errors"
	"testing"
	"time"
)

func TestPipeOrderedDelivery(t *testing.T) {
	a, b := NewPipe(JSON)
	defer a.Close()

	got := make(chan string, 8)
	b.Handle(ChannelMove, func(m Message) {
		var dir string
		if err := m.Decode(&dir); err != nil {
			t.Errorf("decode: %v", err)
			return
		}
		got <- dir
	})

	want := []string{"left", "up", "right"}
	for _, d := range want {
		if err := a.Send(ChannelMove, d); err != nil {
			t.Fatalf("send: %v", err)
		}
	}
	for i, w := range want {
		select {
		case d := <-got:
			if d != w {
				t.Fatalf("message %d = %q, want %q", i, d, w)
			}
		case <-time.After(time.Second):
			t.Fatalf("timeout waiting for message %d", i)
		}
	}
}

func TestPipeRoutesByChannel(t *testing.T) {
	a, b := NewPipe(Msgpack)
	defer a.Close()

	shots := make(chan struct{}, 1)
	b.Handle(ChannelShoot, func(Message) { shots <- struct{}{} })
	b.Handle(ChannelMove, func(Message) { t.Error("move handler called") })

	if err := a.Send(ChannelShoot, struct{}{}); err != nil {
		t.Fatalf("send: %v", err)
	}
	select {
	case <-shots:
	case <-time.After(time.Second):
		t.Fatal("timeout")
	}
}

func TestPipeClosed(t *testing.T) {
	a, b := NewPipe(JSON)
	b.Close()
	if err := a.Send(ChannelJoin, struct{}{}); !errors.Is(err, ErrChannelClosed) {
		t.Fatalf("err = %v, want ErrChannelClosed", err)
	}
}

func TestPipeUnknownChannel(t *testing.T) {
	a, _ := NewPipe(JSON)
	defer a.Close()
	if err := a.Send(channelCount, 1); !errors.Is(err, ErrUnknownChannel) {
		t.Fatalf("err = %v", err)
	}
}
