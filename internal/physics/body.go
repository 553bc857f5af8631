package physics

import "github.com/jakecoffman/cp"

type Body struct {
	body   *cp.Body
	shape  *cp.Shape
	radius float64
	width  float64
	height float64
	static bool

	removed bool
}

func (b *Body) Position() Vec { return fromCP(b.body.Position()) }

func (b *Body) SetPosition(p Vec) { b.body.SetPosition(p.cp()) }

func (b *Body) Velocity() Vec { return fromCP(b.body.Velocity()) }

func (b *Body) SetVelocity(v Vec) { b.body.SetVelocity(v.X, v.Y) }

func (b *Body) Angle() float64 { return b.body.Angle() }

func (b *Body) SetAngle(a float64) { b.body.SetAngle(a) }

func (b *Body) Mass() float64 { return b.body.Mass() }

// ApplyImpulse changes velocity by impulse/mass, acting on the centre.
func (b *Body) ApplyImpulse(impulse Vec) {
	b.body.ApplyImpulseAtWorldPoint(impulse.cp(), b.body.Position())
}

// Radius is zero for bodies that are not circles.
func (b *Body) Radius() float64 { return b.radius }

func (b *Body) Static() bool { return b.static }

func (b *Body) Removed() bool { return b.removed }

// Bounds is the axis-aligned box around the shape at its current position.
func (b *Body) Bounds() (min, max Vec) {
	p := b.Position()
	hw, hh := b.width/2, b.height/2
	if b.radius > 0 {
		hw, hh = b.radius, b.radius
	}
	return Vec{p.X - hw, p.Y - hh}, Vec{p.X + hw, p.Y + hh}
}
