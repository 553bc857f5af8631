package relay

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dkeye/arena/internal/domain"
	"github.com/pion/webrtc/v4"
)

func TestMemoryHubRouting(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	hub := NewMemoryHub()
	host, guest, stranger := hub.Connect(), hub.Connect(), hub.Connect()

	id, err := host.Announce(ctx)
	if err != nil || id != host.ID() {
		t.Fatalf("Announce: got %q %v", id, err)
	}

	offer := webrtc.SessionDescription{Type: webrtc.SDPTypeOffer, SDP: "v=0"}
	if err := guest.SendOffer(ctx, domain.RoomID(id), offer); err != nil {
		t.Fatalf("SendOffer: %v", err)
	}
	got := <-host.Offers()
	if got.From != guest.ID() || got.Description.SDP != "v=0" {
		t.Fatalf("offer: %+v", got)
	}

	if err := stranger.SendOffer(ctx, domain.RoomID(id), offer); !errors.Is(err, ErrRejected) {
		t.Fatalf("offer to busy room: got %v, want ErrRejected", err)
	}
	if err := stranger.SendAnswer(ctx, guest.ID(), offer); !errors.Is(err, ErrRejected) {
		t.Fatalf("answer from unpaired peer: got %v, want ErrRejected", err)
	}

	answer := webrtc.SessionDescription{Type: webrtc.SDPTypeAnswer, SDP: "v=0"}
	if err := host.SendAnswer(ctx, guest.ID(), answer); err != nil {
		t.Fatalf("SendAnswer: %v", err)
	}
	if a := <-guest.Answers(); a.From != host.ID() {
		t.Fatalf("answer from: %s", a.From)
	}

	list := []webrtc.ICECandidateInit{{Candidate: "candidate:1 1 udp 1 127.0.0.1 5000 typ host"}}
	if err := guest.SendCandidates(ctx, host.ID(), list); err != nil {
		t.Fatalf("SendCandidates: %v", err)
	}
	if c := <-host.Candidates(); c.From != guest.ID() || len(c.List) != 1 {
		t.Fatalf("candidates: %+v", c)
	}
}

func TestMemoryHubUnknownRoom(t *testing.T) {
	hub := NewMemoryHub()
	guest := hub.Connect()
	err := guest.SendOffer(context.Background(), "nowhere", webrtc.SessionDescription{})
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("got %v, want ErrRejected", err)
	}
}

func TestMemoryHubCloseUnpairs(t *testing.T) {
	ctx := context.Background()
	hub := NewMemoryHub()
	host, guest := hub.Connect(), hub.Connect()
	id, _ := host.Announce(ctx)
	if err := guest.SendOffer(ctx, domain.RoomID(id), webrtc.SessionDescription{}); err != nil {
		t.Fatalf("SendOffer: %v", err)
	}
	<-host.Offers()

	_ = guest.Close()

	next := hub.Connect()
	if err := next.SendOffer(ctx, domain.RoomID(id), webrtc.SessionDescription{}); err != nil {
		t.Fatalf("offer after guest left: %v", err)
	}
}
