package game

import (
	"math"
	"math/rand/v2"

	"github.com/dkeye/arena/internal/domain"
	"github.com/dkeye/arena/internal/physics"
)

func (g *Game) livePlayer(name domain.PlayerName) (*Entity, *PlayerPayload, error) {
	e, ok := g.Player(name)
	if !ok {
		return nil, nil, domain.ErrInvalidPlayer
	}
	if e.Removed() {
		return nil, nil, nil
	}
	pp, _ := e.Player()
	return e, pp, nil
}

func (g *Game) Move(name domain.PlayerName, dir domain.Direction) (domain.Outcome, error) {
	e, pp, err := g.livePlayer(name)
	if err != nil || e == nil {
		return domain.Ignored, err
	}
	v := e.Velocity()
	switch dir {
	case domain.DirLeft:
		e.SetVelocity(physics.Vec{X: -MoveSpeed, Y: v.Y})
	case domain.DirRight:
		e.SetVelocity(physics.Vec{X: MoveSpeed, Y: v.Y})
	case domain.DirUp:
		if !pp.pay(UpCost) {
			return domain.Refused, nil
		}
		e.body.ApplyImpulse(physics.Vec{Y: -JumpSpeed * e.body.Mass()})
	default:
		return domain.Ignored, domain.ErrInvalidDirection
	}
	return domain.Applied, nil
}

// LookAt turns the player toward p. Angles are measured y-up.
func (g *Game) LookAt(name domain.PlayerName, p domain.Point) (domain.Outcome, error) {
	e, _, err := g.livePlayer(name)
	if err != nil || e == nil {
		return domain.Ignored, err
	}
	pos := e.Position()
	e.body.SetAngle(math.Atan2(pos.Y-p.Y, p.X-pos.X))
	return domain.Applied, nil
}

func (g *Game) Shoot(name domain.PlayerName) (domain.Outcome, error) {
	e, pp, err := g.livePlayer(name)
	if err != nil || e == nil {
		return domain.Ignored, err
	}
	r := e.Radius()
	if r <= 0 {
		return domain.Ignored, domain.ErrInvalidGeometry
	}
	if !pp.pay(ShootCost) {
		return domain.Refused, nil
	}

	angle := e.Angle() + (g.float()-0.5)*BulletJitter
	dir := physics.Vec{X: math.Cos(angle), Y: -math.Sin(angle)}
	pos := e.Position().Add(dir.Scale(r + BulletGap))
	bullet := g.spawnBullet(pos, name)
	bullet.body.ApplyImpulse(dir.Scale(BulletSpeed * bullet.body.Mass()))
	return domain.Applied, nil
}

// UseCard plays an ability. CardSplit forks every live bullet of the player
// into two more, fanned out by SplitAngle.
func (g *Game) UseCard(name domain.PlayerName, card domain.Card) (domain.Outcome, error) {
	if card != domain.CardSplit {
		return domain.Ignored, domain.ErrUnknownCard
	}
	e, pp, err := g.livePlayer(name)
	if err != nil || e == nil {
		return domain.Ignored, err
	}
	if pp.MP < CardCost {
		return domain.Refused, nil
	}

	var split int
	for _, b := range g.Entities() {
		bp, ok := b.Bullet()
		if !ok || bp.From != name || b.queued {
			continue
		}
		v := b.Velocity()
		speed := v.Len()
		if speed == 0 {
			continue
		}
		perp := physics.Vec{X: -v.Y / speed, Y: v.X / speed}
		for _, side := range [2]float64{1, -1} {
			nb := g.spawnBullet(b.Position().Add(perp.Scale(side*SplitOffset)), name)
			nb.SetVelocity(v.Rotate(side * SplitAngle))
		}
		split++
	}
	if split == 0 {
		return domain.Ignored, nil
	}
	pp.pay(CardCost)
	return domain.Applied, nil
}

func (g *Game) spawnBullet(pos physics.Vec, from domain.PlayerName) *Entity {
	body := g.world.AddCircle(pos, BulletRadius, BulletMass, true)
	return g.track(body, &BulletPayload{From: from})
}

func (g *Game) float() float64 {
	if g.rand != nil {
		return g.rand.Float64()
	}
	return rand.Float64()
}
