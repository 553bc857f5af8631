package core

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dkeye/arena/internal/domain"
	"github.com/dkeye/arena/internal/game"
	"github.com/rs/zerolog/log"
)

type seat struct {
	point int
	sink  Sink
}

// roomImpl serializes the physics step, the broadcast tick and every player
// action behind one mutex.
type roomImpl struct {
	id   domain.RoomID
	opts Options

	mu     sync.Mutex
	seats  [2]*seat
	game   *game.Game
	cancel context.CancelFunc
}

func NewRoomService(id domain.RoomID, opts Options) RoomService {
	return &roomImpl{id: id, opts: opts}
}

func (r *roomImpl) ID() domain.RoomID { return r.id }

func (r *roomImpl) Join(sink Sink) (domain.PlayerName, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, name := range domain.PlayerNames {
		if r.seats[i] != nil {
			continue
		}
		r.seats[i] = &seat{sink: sink}
		log.Info().Str("module", "core.room").Str("room", string(r.id)).Str("player", string(name)).Msg("player joined")
		r.noticeLocked()
		return name, nil
	}
	return "", domain.ErrRoomFull
}

func (r *roomImpl) Leave(name domain.PlayerName) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := name.Slot()
	if !ok {
		return domain.ErrInvalidPlayer
	}
	if r.seats[i] == nil {
		return domain.ErrNotSeated
	}
	r.stopLocked()
	r.seats[i] = nil
	log.Info().Str("module", "core.room").Str("room", string(r.id)).Str("player", string(name)).Msg("player left")
	r.noticeLocked()
	return nil
}

func (r *roomImpl) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seats[0] == nil || r.seats[1] == nil {
		return domain.ErrRoomNotReady
	}
	if r.game != nil {
		return domain.ErrGameInProgress
	}

	var g *game.Game
	g = game.New(game.Options{
		OnEnd:    func(res game.Result) { r.endLocked(g, res) },
		OnEffect: r.effectLocked,
	})
	ctx, cancel := context.WithCancel(context.Background())
	r.game = g
	r.cancel = cancel

	log.Info().Str("module", "core.room").Str("room", string(r.id)).Msg("game started")
	r.noticeLocked()
	go r.loop(ctx, g)
	return nil
}

func (r *roomImpl) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

func (r *roomImpl) stopLocked() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	if r.game != nil {
		log.Info().Str("module", "core.room").Str("room", string(r.id)).Msg("game stopped")
	}
	r.game = nil
	r.noticeLocked()
}

// endLocked runs inside g.Step with the room locked.
func (r *roomImpl) endLocked(g *game.Game, res game.Result) {
	if r.game != g {
		return
	}
	if i, ok := res.Winner.Slot(); ok && r.seats[i] != nil {
		r.seats[i].point++
	}
	log.Info().Str("module", "core.room").Str("room", string(r.id)).Str("winner", string(res.Winner)).Bool("draw", res.Draw()).Msg("game decided")
	r.stopLocked()
}

func (r *roomImpl) effectLocked(e domain.Effect) {
	for _, s := range r.seats {
		if s != nil {
			s.sink.Effect(e)
		}
	}
}

// loop drives one game until its context is cancelled. Each tick checks the
// game is still the active one, since Stop may race a ready ticker.
func (r *roomImpl) loop(ctx context.Context, g *game.Game) {
	step := time.NewTicker(r.opts.stepInterval())
	defer step.Stop()
	broadcast := time.NewTicker(r.opts.broadcastInterval())
	defer broadcast.Stop()
	dt := r.opts.stepInterval().Seconds()

	for {
		select {
		case <-ctx.Done():
			return
		case <-step.C:
			r.mu.Lock()
			if r.game == g {
				g.Step(dt)
			}
			r.mu.Unlock()
		case <-broadcast.C:
			r.mu.Lock()
			if r.game == g {
				r.broadcastLocked(g)
			}
			r.mu.Unlock()
		}
	}
}

func (r *roomImpl) broadcastLocked(g *game.Game) {
	entities := g.Entities()
	snaps := make([]domain.EntitySnapshot, 0, len(entities))
	for _, e := range entities {
		snaps = append(snaps, project(e))
	}
	for _, s := range r.seats {
		if s != nil {
			s.sink.GameUpdate(snaps)
		}
	}
}

func (r *roomImpl) act(name domain.PlayerName, fn func(g *game.Game) (domain.Outcome, error)) (domain.Outcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.game == nil {
		return domain.Ignored, nil
	}
	i, ok := name.Slot()
	if !ok {
		return domain.Ignored, domain.ErrInvalidPlayer
	}
	if r.seats[i] == nil {
		return domain.Ignored, domain.ErrNotSeated
	}
	out, err := fn(r.game)
	if errors.Is(err, domain.ErrInvalidGeometry) {
		log.Error().Err(err).Str("module", "core.room").Str("room", string(r.id)).Str("player", string(name)).Msg("invariant violated")
	}
	return out, err
}

func (r *roomImpl) Move(name domain.PlayerName, dir domain.Direction) (domain.Outcome, error) {
	return r.act(name, func(g *game.Game) (domain.Outcome, error) { return g.Move(name, dir) })
}

func (r *roomImpl) LookAt(name domain.PlayerName, p domain.Point) (domain.Outcome, error) {
	return r.act(name, func(g *game.Game) (domain.Outcome, error) { return g.LookAt(name, p) })
}

func (r *roomImpl) Shoot(name domain.PlayerName) (domain.Outcome, error) {
	return r.act(name, func(g *game.Game) (domain.Outcome, error) { return g.Shoot(name) })
}

func (r *roomImpl) UseCard(name domain.PlayerName, card domain.Card) (domain.Outcome, error) {
	return r.act(name, func(g *game.Game) (domain.Outcome, error) { return g.UseCard(name, card) })
}

func (r *roomImpl) Snapshot() domain.RoomSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *roomImpl) snapshotLocked() domain.RoomSnapshot {
	snap := domain.RoomSnapshot{IsGameStart: r.game != nil}
	if s := r.seats[0]; s != nil {
		snap.PlayerA = &domain.PlayerScore{Point: s.point}
	}
	if s := r.seats[1]; s != nil {
		snap.PlayerB = &domain.PlayerScore{Point: s.point}
	}
	return snap
}

func (r *roomImpl) noticeLocked() {
	snap := r.snapshotLocked()
	for _, s := range r.seats {
		if s != nil {
			s.sink.RoomUpdate(snap)
		}
	}
}

func (r *roomImpl) Started() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game != nil
}

func (r *roomImpl) MemberCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.seats {
		if s != nil {
			n++
		}
	}
	return n
}
