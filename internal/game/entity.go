package game

import (
	"github.com/dkeye/arena/internal/domain"
	"github.com/dkeye/arena/internal/physics"
)

// Payload is the gameplay data attached to an entity at creation. It is one
// of *PlayerPayload, *BulletPayload or GroundPayload.
type Payload interface {
	label() domain.Label
}

type PlayerPayload struct {
	Name domain.PlayerName
	MP   float64
}

func (*PlayerPayload) label() domain.Label { return domain.LabelPlayer }

// pay deducts cost when the pool covers it.
func (p *PlayerPayload) pay(cost float64) bool {
	if p.MP < cost {
		return false
	}
	p.MP -= cost
	return true
}

func (p *PlayerPayload) credit(amount float64) {
	p.MP += amount
	if p.MP > MaxMP {
		p.MP = MaxMP
	}
	if p.MP < 0 {
		p.MP = 0
	}
}

type BulletPayload struct {
	From domain.PlayerName
}

func (*BulletPayload) label() domain.Label { return domain.LabelBullet }

type GroundPayload struct{}

func (GroundPayload) label() domain.Label { return domain.LabelGround }

type Entity struct {
	body    *physics.Body
	payload Payload
	queued  bool
}

func (e *Entity) Label() domain.Label { return e.payload.label() }

func (e *Entity) Payload() Payload { return e.payload }

func (e *Entity) Player() (*PlayerPayload, bool) {
	p, ok := e.payload.(*PlayerPayload)
	return p, ok
}

func (e *Entity) Bullet() (*BulletPayload, bool) {
	b, ok := e.payload.(*BulletPayload)
	return b, ok
}

func (e *Entity) Position() physics.Vec { return e.body.Position() }

func (e *Entity) SetPosition(p physics.Vec) { e.body.SetPosition(p) }

func (e *Entity) Velocity() physics.Vec { return e.body.Velocity() }

func (e *Entity) SetVelocity(v physics.Vec) { e.body.SetVelocity(v) }

func (e *Entity) Angle() float64 { return e.body.Angle() }

func (e *Entity) Radius() float64 { return e.body.Radius() }

func (e *Entity) Bounds() (min, max physics.Vec) { return e.body.Bounds() }

func (e *Entity) Removed() bool { return e.body.Removed() }
