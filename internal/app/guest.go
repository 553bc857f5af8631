package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/dkeye/arena/internal/adapters/rtc"
	"github.com/dkeye/arena/internal/domain"
	"github.com/rs/zerolog/log"
)

// Guest sends its player's inputs to the host and shows what the host
// broadcasts.
type Guest struct {
	ch  rtc.Channels
	obs Observer

	mu    sync.Mutex
	name  domain.PlayerName
	names chan domain.PlayerName
}

var _ Participant = (*Guest)(nil)

func NewGuest(ch rtc.Channels, obs Observer) *Guest {
	if obs == nil {
		obs = NopObserver{}
	}
	g := &Guest{ch: ch, obs: obs, names: make(chan domain.PlayerName, 1)}

	ch.Handle(rtc.ChannelPlayerName, func(m rtc.Message) {
		var raw string
		if err := m.Decode(&raw); err != nil {
			log.Warn().Err(err).Str("module", "app.guest").Msg("bad player-name")
			return
		}
		var name domain.PlayerName
		if raw != "" {
			n, err := domain.ParsePlayerName(raw)
			if err != nil {
				log.Warn().Err(err).Str("module", "app.guest").Str("name", raw).Msg("bad player-name")
				return
			}
			name = n
		}
		g.mu.Lock()
		g.name = name
		g.mu.Unlock()
		if name != "" {
			g.obs.PlayerName(name)
		}
		select {
		case g.names <- name:
		default:
		}
	})
	ch.Handle(rtc.ChannelRoomUpdate, func(m rtc.Message) {
		var snap domain.RoomSnapshot
		if err := m.Decode(&snap); err != nil {
			log.Warn().Err(err).Str("module", "app.guest").Msg("bad room-update")
			return
		}
		g.obs.RoomUpdate(snap)
	})
	ch.Handle(rtc.ChannelBodyUpdate, func(m rtc.Message) {
		var bodies []domain.EntitySnapshot
		if err := m.Decode(&bodies); err != nil {
			log.Warn().Err(err).Str("module", "app.guest").Msg("bad body-update")
			return
		}
		g.obs.GameUpdate(bodies)
	})
	ch.Handle(rtc.ChannelEffect, func(m rtc.Message) {
		var e domain.Effect
		if err := m.Decode(&e); err != nil {
			log.Warn().Err(err).Str("module", "app.guest").Msg("bad effect")
			return
		}
		g.obs.Effect(e)
	})
	return g
}

// Name is the seat the host assigned, empty before Join succeeds.
func (g *Guest) Name() domain.PlayerName {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.name
}

// Join asks the host for a seat and waits for the reply.
func (g *Guest) Join(ctx context.Context) (domain.PlayerName, error) {
	if err := g.ch.Send(rtc.ChannelJoin, struct{}{}); err != nil {
		return "", fmt.Errorf("send join: %w", err)
	}
	select {
	case name := <-g.names:
		if name == "" {
			return "", domain.ErrRoomFull
		}
		return name, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (g *Guest) StartGame() error {
	return g.ch.Send(rtc.ChannelStartGame, struct{}{})
}

func (g *Guest) Move(dir domain.Direction) error {
	if _, err := domain.ParseDirection(string(dir)); err != nil {
		return err
	}
	return g.ch.Send(rtc.ChannelMove, dir)
}

func (g *Guest) LookAt(p domain.Point) error {
	return g.ch.Send(rtc.ChannelLookAt, p)
}

func (g *Guest) Shoot() error {
	return g.ch.Send(rtc.ChannelShoot, struct{}{})
}

func (g *Guest) UseCard(card domain.Card) error {
	return g.ch.Send(rtc.ChannelUseCard, card)
}
