package app

import (
	"context"
	"errors"
	"sync"

	"github.com/dkeye/arena/internal/adapters/rtc"
	"github.com/dkeye/arena/internal/core"
	"github.com/dkeye/arena/internal/domain"
	"github.com/rs/zerolog/log"
)

// Host owns the room. Its own player acts on the room directly; the guest's
// channel messages are applied to the guest's seat.
type Host struct {
	room core.RoomService
	ch   rtc.Channels
	obs  Observer

	mu    sync.Mutex
	local domain.PlayerName
	guest domain.PlayerName
}

var _ Participant = (*Host)(nil)

func NewHost(room core.RoomService, ch rtc.Channels, obs Observer) *Host {
	if obs == nil {
		obs = NopObserver{}
	}
	h := &Host{room: room, ch: ch, obs: obs}

	ch.Handle(rtc.ChannelJoin, func(rtc.Message) { h.admitGuest() })
	ch.Handle(rtc.ChannelStartGame, func(rtc.Message) {
		if err := h.room.Start(); err != nil {
			log.Info().Err(err).Str("module", "app.host").Msg("guest start refused")
		}
	})
	ch.Handle(rtc.ChannelMove, func(m rtc.Message) {
		var raw string
		if err := m.Decode(&raw); err != nil {
			log.Warn().Err(err).Str("module", "app.host").Msg("bad move")
			return
		}
		dir, err := domain.ParseDirection(raw)
		if err != nil {
			log.Warn().Err(err).Str("module", "app.host").Str("dir", raw).Msg("bad move")
			return
		}
		h.guestAct("move", func(name domain.PlayerName) (domain.Outcome, error) {
			return h.room.Move(name, dir)
		})
	})
	ch.Handle(rtc.ChannelLookAt, func(m rtc.Message) {
		var p domain.Point
		if err := m.Decode(&p); err != nil {
			log.Warn().Err(err).Str("module", "app.host").Msg("bad look-at")
			return
		}
		h.guestAct("look-at", func(name domain.PlayerName) (domain.Outcome, error) {
			return h.room.LookAt(name, p)
		})
	})
	ch.Handle(rtc.ChannelShoot, func(rtc.Message) {
		h.guestAct("shoot", h.room.Shoot)
	})
	ch.Handle(rtc.ChannelUseCard, func(m rtc.Message) {
		var raw string
		if err := m.Decode(&raw); err != nil {
			log.Warn().Err(err).Str("module", "app.host").Msg("bad use-card")
			return
		}
		card, err := domain.ParseCard(raw)
		if err != nil {
			log.Warn().Err(err).Str("module", "app.host").Str("card", raw).Msg("bad use-card")
			return
		}
		h.guestAct("use-card", func(name domain.PlayerName) (domain.Outcome, error) {
			return h.room.UseCard(name, card)
		})
	})
	return h
}

func (h *Host) Room() core.RoomService { return h.room }

// Join seats the host's own player.
func (h *Host) Join(context.Context) (domain.PlayerName, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.local != "" {
		return h.local, nil
	}
	name, err := h.room.Join(observerSink{h.obs})
	if err != nil {
		return "", err
	}
	h.local = name
	h.obs.PlayerName(name)
	return name, nil
}

func (h *Host) StartGame() error { return h.room.Start() }

func (h *Host) Move(dir domain.Direction) error {
	return h.localAct("move", func(name domain.PlayerName) (domain.Outcome, error) {
		return h.room.Move(name, dir)
	})
}

func (h *Host) LookAt(p domain.Point) error {
	return h.localAct("look-at", func(name domain.PlayerName) (domain.Outcome, error) {
		return h.room.LookAt(name, p)
	})
}

func (h *Host) Shoot() error { return h.localAct("shoot", h.room.Shoot) }

func (h *Host) UseCard(card domain.Card) error {
	return h.localAct("use-card", func(name domain.PlayerName) (domain.Outcome, error) {
		return h.room.UseCard(name, card)
	})
}

// GuestLeft frees the guest's seat, stopping any game in progress.
func (h *Host) GuestLeft() {
	h.mu.Lock()
	name := h.guest
	h.guest = ""
	h.mu.Unlock()
	if name == "" {
		return
	}
	if err := h.room.Leave(name); err != nil && !errors.Is(err, domain.ErrNotSeated) {
		log.Warn().Err(err).Str("module", "app.host").Msg("guest leave")
	}
	log.Info().Str("module", "app.host").Str("player", string(name)).Msg("guest left")
}

// admitGuest answers a join request. A repeated request gets the seat the
// guest already holds; a refused one gets an empty name.
func (h *Host) admitGuest() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.guest == "" {
		name, err := h.room.Join(channelSink{h.ch})
		if err != nil {
			log.Info().Err(err).Str("module", "app.host").Msg("guest join refused")
		}
		h.guest = name
	}
	if err := h.ch.Send(rtc.ChannelPlayerName, h.guest); err != nil {
		log.Warn().Err(err).Str("module", "app.host").Msg("send player-name")
		return
	}
	log.Info().Str("module", "app.host").Str("player", string(h.guest)).Msg("guest joined")
}

func (h *Host) localAct(what string, fn func(domain.PlayerName) (domain.Outcome, error)) error {
	h.mu.Lock()
	name := h.local
	h.mu.Unlock()
	if name == "" {
		return domain.ErrNotSeated
	}
	out, err := fn(name)
	if err != nil {
		return err
	}
	log.Debug().Str("module", "app.host").Str("action", what).Str("outcome", out.String()).Msg("local action")
	return nil
}

func (h *Host) guestAct(what string, fn func(domain.PlayerName) (domain.Outcome, error)) {
	h.mu.Lock()
	name := h.guest
	h.mu.Unlock()
	if name == "" {
		log.Debug().Str("module", "app.host").Str("action", what).Msg("action from unseated guest")
		return
	}
	out, err := fn(name)
	if err != nil {
		log.Warn().Err(err).Str("module", "app.host").Str("action", what).Msg("guest action failed")
		return
	}
	log.Debug().Str("module", "app.host").Str("action", what).Str("outcome", out.String()).Msg("guest action")
}

// channelSink sends a guest seat's updates over the transport.
type channelSink struct{ ch rtc.Channels }

func (s channelSink) GameUpdate(b []domain.EntitySnapshot) { s.send(rtc.ChannelBodyUpdate, b) }
func (s channelSink) RoomUpdate(r domain.RoomSnapshot)     { s.send(rtc.ChannelRoomUpdate, r) }
func (s channelSink) Effect(e domain.Effect)               { s.send(rtc.ChannelEffect, e) }

func (s channelSink) send(id rtc.ChannelID, v any) {
	if err := s.ch.Send(id, v); err != nil {
		log.Debug().Err(err).Str("module", "app.host").Str("channel", id.String()).Msg("drop update")
	}
}
