package game

import (
	"github.com/dkeye/arena/internal/domain"
	"github.com/dkeye/arena/internal/physics"
)

func (g *Game) drainExplosions() {
	queue := g.explode
	g.explode = nil
	for _, e := range queue {
		if e.Removed() {
			continue
		}
		at := e.Position()
		g.remove(e)
		g.blast(at, ExplosionSize)
		if g.onEffect != nil {
			g.onEffect(domain.Effect{
				X:        at.X,
				Y:        at.Y,
				Size:     ExplosionSize,
				Type:     domain.EffectExplode,
				Lifespan: EffectLifespan,
			})
		}
	}
}

// blast pushes every dynamic body within range away from at, harder the
// closer it is.
func (g *Game) blast(at physics.Vec, size float64) {
	scale := size / ExplosionSize
	for _, e := range g.Entities() {
		if e.body.Static() {
			continue
		}
		d := e.Position().Sub(at)
		dist := d.Len()
		if dist >= ExplosionRadius*scale || dist == 0 {
			continue
		}
		push := ExplosionStrength * scale / max(dist, ExplosionMinDistance)
		e.body.ApplyImpulse(d.Scale(push / dist))
	}
}
