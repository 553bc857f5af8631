package game

import "math"

// Arena bounds. Bodies past the x bounds are wrapped (players) or removed;
// players past the y bounds fall out.
const (
	MinX = 0.0
	MaxX = 1200.0
	MinY = 0.0
	MaxY = 800.0
)

const (
	Gravity = 1000.0

	PlayerRadius = 10.0
	PlayerMass   = 1.0
	MoveSpeed    = 240.0
	JumpSpeed    = 530.0

	BulletRadius = 4.0
	BulletMass   = 0.1
	BulletGap    = 5.0
	BulletSpeed  = 830.0
	BulletJitter = 1.0 / 50

	MaxMP       = 100.0
	MPRegen     = 0.2
	WrapPenalty = 30.0
	UpCost      = 10.0
	ShootCost   = 20.0
	CardCost    = 40.0
	HitBonus    = 10.0

	SplitOffset = 10.0

	ExplosionSize        = 10.0
	ExplosionRadius      = 300.0
	ExplosionStrength    = 12000.0
	ExplosionMinDistance = 10.0
	EffectLifespan       = 30.0
)

var SplitAngle = 5 * math.Pi / 180

type spawn struct{ x, y float64 }

var playerSpawns = [2]spawn{{200, 300}, {600, 100}}

type groundRect struct{ x, y, w, h float64 }

var grounds = []groundRect{
	{200, 600, 200, 40},
	{600, 300, 200, 40},
	{1000, 700, 200, 40},
}
