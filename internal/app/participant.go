// Package app joins the room state machine to the peer transport. The host
// runs the room; the guest drives it over the channels.
package app

import (
	"context"

	"github.com/dkeye/arena/internal/domain"
)

// Participant is what a player can do, whichever side of the transport the
// room lives on.
type Participant interface {
	Join(ctx context.Context) (domain.PlayerName, error)
	StartGame() error
	Move(dir domain.Direction) error
	LookAt(p domain.Point) error
	Shoot() error
	UseCard(card domain.Card) error
}

// Observer is told what the local player should see. Callbacks may arrive
// on transport goroutines or with the room locked, so they must return
// quickly and must not call back into the Participant.
type Observer interface {
	PlayerName(domain.PlayerName)
	RoomUpdate(domain.RoomSnapshot)
	GameUpdate([]domain.EntitySnapshot)
	Effect(domain.Effect)
}

type NopObserver struct{}

func (NopObserver) PlayerName(domain.PlayerName)       {}
func (NopObserver) RoomUpdate(domain.RoomSnapshot)     {}
func (NopObserver) GameUpdate([]domain.EntitySnapshot) {}
func (NopObserver) Effect(domain.Effect)               {}

// observerSink feeds room callbacks for a host-side seat to an Observer.
type observerSink struct{ obs Observer }

func (s observerSink) GameUpdate(b []domain.EntitySnapshot) { s.obs.GameUpdate(b) }
func (s observerSink) RoomUpdate(r domain.RoomSnapshot)     { s.obs.RoomUpdate(r) }
func (s observerSink) Effect(e domain.Effect)               { s.obs.Effect(e) }
