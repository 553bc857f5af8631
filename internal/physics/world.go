// Package physics wraps the Chipmunk2D port behind the handful of calls the
// simulation needs: body creation, force and velocity mutation, a fixed step
// and collision-start events.
package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

const collisionBody cp.CollisionType = 1

type Vec struct {
	X, Y float64
}

func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }

func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Rotate turns v counter-clockwise by rad in a y-up frame.
func (v Vec) Rotate(rad float64) Vec {
	s, c := math.Sincos(rad)
	return Vec{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

func (v Vec) cp() cp.Vector { return cp.Vector{X: v.X, Y: v.Y} }

func fromCP(v cp.Vector) Vec { return Vec{v.X, v.Y} }

// CollisionFunc is called once per body of a newly touching pair, with that
// body first.
type CollisionFunc func(self, other *Body)

type World struct {
	space   *cp.Space
	bodies  []*Body
	onBegin CollisionFunc
}

func NewWorld(gravity float64) *World {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: 0, Y: gravity})

	w := &World{space: space}
	handler := space.NewWildcardCollisionHandler(collisionBody)
	handler.BeginFunc = w.begin
	return w
}

func (w *World) begin(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
	if w.onBegin == nil {
		return true
	}
	a, b := arb.Bodies()
	self, okA := a.UserData.(*Body)
	other, okB := b.UserData.(*Body)
	if okA && okB && !self.removed && !other.removed {
		w.onBegin(self, other)
	}
	return true
}

func (w *World) OnCollisionStart(fn CollisionFunc) { w.onBegin = fn }

// AddCircle adds a dynamic circle. Bodies that do not rotate get an infinite
// moment so only SetAngle changes their facing.
func (w *World) AddCircle(pos Vec, radius, mass float64, rotates bool) *Body {
	moment := math.Inf(1)
	if rotates {
		moment = cp.MomentForCircle(mass, 0, radius, cp.Vector{})
	}
	body := cp.NewBody(mass, moment)
	body.SetPosition(pos.cp())
	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(0.7)
	shape.SetElasticity(0.1)

	return w.add(&Body{body: body, shape: shape, radius: radius})
}

// AddStaticBox adds an immovable axis-aligned rectangle centred on pos.
func (w *World) AddStaticBox(pos Vec, width, height float64) *Body {
	body := cp.NewStaticBody()
	body.SetPosition(pos.cp())
	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(0.9)

	return w.add(&Body{body: body, shape: shape, width: width, height: height, static: true})
}

func (w *World) add(b *Body) *Body {
	b.body.UserData = b
	b.shape.SetCollisionType(collisionBody)
	w.space.AddBody(b.body)
	w.space.AddShape(b.shape)
	w.bodies = append(w.bodies, b)
	return b
}

// Remove detaches b. It must not be called while Step is running.
func (w *World) Remove(b *Body) {
	if b.removed {
		return
	}
	b.removed = true
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
	for i, x := range w.bodies {
		if x == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
}

// Bodies returns live bodies in insertion order. The slice is a copy.
func (w *World) Bodies() []*Body {
	out := make([]*Body, len(w.bodies))
	copy(out, w.bodies)
	return out
}

func (w *World) Step(dt float64) { w.space.Step(dt) }
