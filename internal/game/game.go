// Package game is the authoritative simulation of one match.
//
// A Game is not safe for concurrent use. The owning room serializes every
// call, including Step.
package game

import (
	"math/rand/v2"

	"github.com/dkeye/arena/internal/domain"
	"github.com/dkeye/arena/internal/physics"
)

// Result ends a match. Winner is empty on a draw.
type Result struct {
	Winner domain.PlayerName
}

func (r Result) Draw() bool { return r.Winner == "" }

type Options struct {
	OnEnd    func(Result)
	OnEffect func(domain.Effect)
	// Rand drives aim jitter. Nil uses the global source.
	Rand *rand.Rand
}

type Game struct {
	world    *physics.World
	players  [2]*Entity
	entities map[*physics.Body]*Entity
	explode  []*Entity
	decided  bool

	onEnd    func(Result)
	onEffect func(domain.Effect)
	rand     *rand.Rand
}

func New(opts Options) *Game {
	g := &Game{
		world:    physics.NewWorld(Gravity),
		entities: make(map[*physics.Body]*Entity),
		onEnd:    opts.OnEnd,
		onEffect: opts.OnEffect,
		rand:     opts.Rand,
	}

	for i, name := range domain.PlayerNames {
		s := playerSpawns[i]
		body := g.world.AddCircle(physics.Vec{X: s.x, Y: s.y}, PlayerRadius, PlayerMass, false)
		g.players[i] = g.track(body, &PlayerPayload{Name: name, MP: MaxMP})
	}
	for _, r := range grounds {
		body := g.world.AddStaticBox(physics.Vec{X: r.x, Y: r.y}, r.w, r.h)
		g.track(body, GroundPayload{})
	}

	g.world.OnCollisionStart(g.collide)
	return g
}

func (g *Game) track(body *physics.Body, p Payload) *Entity {
	e := &Entity{body: body, payload: p}
	g.entities[body] = e
	return e
}

func (g *Game) remove(e *Entity) {
	g.world.Remove(e.body)
	delete(g.entities, e.body)
}

// Entities returns live entities in creation order: players, grounds, then
// bullets.
func (g *Game) Entities() []*Entity {
	bodies := g.world.Bodies()
	out := make([]*Entity, 0, len(bodies))
	for _, b := range bodies {
		if e, ok := g.entities[b]; ok {
			out = append(out, e)
		}
	}
	return out
}

func (g *Game) Player(name domain.PlayerName) (*Entity, bool) {
	i, ok := name.Slot()
	if !ok {
		return nil, false
	}
	return g.players[i], true
}

// Decided reports whether the match already has a result.
func (g *Game) Decided() bool { return g.decided }

// Step advances the world by dt seconds.
func (g *Game) Step(dt float64) {
	g.drainExplosions()

	for _, p := range g.players {
		if pp, _ := p.Player(); pp.MP < MaxMP {
			pp.credit(MPRegen)
		}
	}

	if !g.decided {
		g.wrapPlayers()
		g.checkFallOut()
	}

	for _, e := range g.Entities() {
		if x := e.Position().X; x < MinX || MaxX < x {
			g.remove(e)
		}
	}

	g.world.Step(dt)
}

func (g *Game) wrapPlayers() {
	for _, p := range g.players {
		if p.Removed() {
			continue
		}
		pos := p.Position()
		switch {
		case pos.X < MinX:
			pos.X = MaxX
		case MaxX < pos.X:
			pos.X = MinX
		default:
			continue
		}
		p.SetPosition(pos)
		pp, _ := p.Player()
		pp.credit(-WrapPenalty)
	}
}

func fellOut(e *Entity) bool {
	y := e.Position().Y
	return y < MinY || MaxY < y
}

func (g *Game) checkFallOut() {
	a, b := fellOut(g.players[0]), fellOut(g.players[1])
	var res Result
	switch {
	case a && b:
	case a:
		res.Winner = domain.PlayerB
	case b:
		res.Winner = domain.PlayerA
	default:
		return
	}
	g.decided = true
	if g.onEnd != nil {
		g.onEnd(res)
	}
}

func (g *Game) collide(self, other *physics.Body) {
	e, ok := g.entities[self]
	if !ok {
		return
	}
	bullet, ok := e.Bullet()
	if !ok || e.queued {
		return
	}
	if target, ok := g.entities[other]; ok && target.Label() == domain.LabelPlayer {
		if owner, ok := g.Player(bullet.From); ok {
			pp, _ := owner.Player()
			pp.credit(HitBonus)
		}
	}
	e.queued = true
	g.explode = append(g.explode, e)
}
