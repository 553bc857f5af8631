package physics

import (
	"math"
	"testing"
)

func TestCircleLandsOnStaticBox(t *testing.T) {
	w := NewWorld(1000)
	ground := w.AddStaticBox(Vec{200, 600}, 200, 40)
	ball := w.AddCircle(Vec{200, 500}, 10, 1, false)

	var hits int
	w.OnCollisionStart(func(self, other *Body) {
		if self == ball && other == ground {
			hits++
		}
	})

	for i := 0; i < 120; i++ {
		w.Step(1.0 / 60)
	}

	if hits == 0 {
		t.Fatal("no collision start reported")
	}
	if y := ball.Position().Y; y > 580 {
		t.Fatalf("ball fell through the ground: y=%v", y)
	}
}

func TestRemoveKeepsOrder(t *testing.T) {
	w := NewWorld(0)
	a := w.AddCircle(Vec{0, 0}, 1, 1, false)
	b := w.AddCircle(Vec{10, 0}, 1, 1, false)
	c := w.AddStaticBox(Vec{20, 0}, 2, 2)

	w.Remove(b)
	w.Remove(b)

	got := w.Bodies()
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Fatalf("bodies after remove: %v", got)
	}
	if !b.Removed() {
		t.Fatal("removed flag not set")
	}
}

func TestImpulseChangesVelocityByMass(t *testing.T) {
	w := NewWorld(0)
	b := w.AddCircle(Vec{0, 0}, 5, 2, false)
	b.ApplyImpulse(Vec{10, 0})

	if v := b.Velocity(); math.Abs(v.X-5) > 1e-9 || v.Y != 0 {
		t.Fatalf("velocity: got %+v, want {5 0}", v)
	}
}

func TestBounds(t *testing.T) {
	w := NewWorld(0)
	box := w.AddStaticBox(Vec{100, 50}, 20, 10)
	min, max := box.Bounds()
	if min != (Vec{90, 45}) || max != (Vec{110, 55}) {
		t.Fatalf("box bounds: %v %v", min, max)
	}

	c := w.AddCircle(Vec{0, 0}, 4, 1, true)
	min, max = c.Bounds()
	if min != (Vec{-4, -4}) || max != (Vec{4, 4}) {
		t.Fatalf("circle bounds: %v %v", min, max)
	}
}

func TestRotate(t *testing.T) {
	v := Vec{1, 0}.Rotate(math.Pi / 2)
	if math.Abs(v.X) > 1e-9 || math.Abs(v.Y-1) > 1e-9 {
		t.Fatalf("rotate: %+v", v)
	}
}
