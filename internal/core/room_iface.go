package core

import (
	"time"

	"github.com/dkeye/arena/internal/domain"
)

// Sink receives everything a seated player is told by the room. Calls are
// made with the room locked: implementations must not call back into the
// room and must not retain or mutate the snapshot slice.
type Sink interface {
	GameUpdate([]domain.EntitySnapshot)
	RoomUpdate(domain.RoomSnapshot)
	Effect(domain.Effect)
}

// RoomService is the state machine of one two-seat room.
type RoomService interface {
	ID() domain.RoomID
	Join(sink Sink) (domain.PlayerName, error)
	Leave(name domain.PlayerName) error
	Start() error
	Stop()

	Move(name domain.PlayerName, dir domain.Direction) (domain.Outcome, error)
	LookAt(name domain.PlayerName, p domain.Point) (domain.Outcome, error)
	Shoot(name domain.PlayerName) (domain.Outcome, error)
	UseCard(name domain.PlayerName, card domain.Card) (domain.Outcome, error)

	Snapshot() domain.RoomSnapshot
	Started() bool
	MemberCount() int
}

type Options struct {
	// StepRate is physics steps per second.
	StepRate int
	// BroadcastRate is body-update ticks per second.
	BroadcastRate int
}

func DefaultOptions() Options {
	return Options{StepRate: 60, BroadcastRate: 40}
}

func (o Options) stepInterval() time.Duration {
	return time.Second / time.Duration(max(o.StepRate, 1))
}

func (o Options) broadcastInterval() time.Duration {
	return time.Second / time.Duration(max(o.BroadcastRate, 1))
}
