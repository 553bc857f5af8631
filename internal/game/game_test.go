package game

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/dkeye/arena/internal/domain"
	"github.com/dkeye/arena/internal/physics"
)

const dt = 1.0 / 60

type recorder struct {
	results []Result
	effects []domain.Effect
}

func newTestGame(t *testing.T) (*Game, *recorder) {
	t.Helper()
	rec := &recorder{}
	g := New(Options{
		OnEnd:    func(r Result) { rec.results = append(rec.results, r) },
		OnEffect: func(e domain.Effect) { rec.effects = append(rec.effects, e) },
		Rand:     rand.New(rand.NewPCG(1, 2)),
	})
	return g, rec
}

func mustPlayer(t *testing.T, g *Game, name domain.PlayerName) (*Entity, *PlayerPayload) {
	t.Helper()
	e, ok := g.Player(name)
	if !ok {
		t.Fatalf("no player %s", name)
	}
	pp, _ := e.Player()
	return e, pp
}

func bullets(g *Game, from domain.PlayerName) []*Entity {
	var out []*Entity
	for _, e := range g.Entities() {
		if b, ok := e.Bullet(); ok && b.From == from {
			out = append(out, e)
		}
	}
	return out
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestNewGameLayout(t *testing.T) {
	g, _ := newTestGame(t)

	got := g.Entities()
	want := []domain.Label{
		domain.LabelPlayer, domain.LabelPlayer,
		domain.LabelGround, domain.LabelGround, domain.LabelGround,
	}
	if len(got) != len(want) {
		t.Fatalf("entities: got %d, want %d", len(got), len(want))
	}
	for i, e := range got {
		if e.Label() != want[i] {
			t.Errorf("entity %d: label %s, want %s", i, e.Label(), want[i])
		}
	}

	a, pa := mustPlayer(t, g, domain.PlayerA)
	if p := a.Position(); p != (physics.Vec{X: 200, Y: 300}) {
		t.Errorf("playerA spawn: %+v", p)
	}
	b, pb := mustPlayer(t, g, domain.PlayerB)
	if p := b.Position(); p != (physics.Vec{X: 600, Y: 100}) {
		t.Errorf("playerB spawn: %+v", p)
	}
	if pa.MP != MaxMP || pb.MP != MaxMP || pa.Name != domain.PlayerA || pb.Name != domain.PlayerB {
		t.Errorf("payloads: %+v %+v", pa, pb)
	}
	if a.Radius() != PlayerRadius {
		t.Errorf("player radius: %v", a.Radius())
	}
}

func TestShootRefusedWhenPoolLow(t *testing.T) {
	g, _ := newTestGame(t)
	_, pp := mustPlayer(t, g, domain.PlayerA)
	pp.MP = 15

	out, err := g.Shoot(domain.PlayerA)
	if err != nil {
		t.Fatalf("Shoot: %v", err)
	}
	if out != domain.Refused {
		t.Fatalf("outcome: got %s, want refused", out)
	}
	if n := len(g.Entities()); n != 5 {
		t.Fatalf("entities: got %d, want 5", n)
	}
	if pp.MP != 15 {
		t.Fatalf("mp: got %v, want 15", pp.MP)
	}
}

func TestShootSpawnsOwnedBullet(t *testing.T) {
	g, _ := newTestGame(t)
	a, pp := mustPlayer(t, g, domain.PlayerA)
	if _, err := g.LookAt(domain.PlayerA, domain.Point{X: 400, Y: 300}); err != nil {
		t.Fatalf("LookAt: %v", err)
	}

	out, err := g.Shoot(domain.PlayerA)
	if err != nil || out != domain.Applied {
		t.Fatalf("Shoot: %s %v", out, err)
	}
	if pp.MP != MaxMP-ShootCost {
		t.Fatalf("mp: got %v, want %v", pp.MP, MaxMP-ShootCost)
	}

	bs := bullets(g, domain.PlayerA)
	if len(bs) != 1 {
		t.Fatalf("bullets: got %d, want 1", len(bs))
	}
	b := bs[0]
	if d := b.Position().Sub(a.Position()).Len(); !near(d, PlayerRadius+BulletGap) {
		t.Errorf("spawn distance: got %v, want %v", d, PlayerRadius+BulletGap)
	}
	if b.Radius() != BulletRadius {
		t.Errorf("bullet radius: %v", b.Radius())
	}
	if v := b.Velocity(); v.X <= 0 || math.Abs(v.Len()-BulletSpeed) > 1e-6 {
		t.Errorf("bullet velocity: %+v", v)
	}
	if b.Label() != domain.LabelBullet {
		t.Errorf("label: %s", b.Label())
	}
}

func TestWrapAroundCostsMP(t *testing.T) {
	g, _ := newTestGame(t)
	a, pp := mustPlayer(t, g, domain.PlayerA)
	a.SetPosition(physics.Vec{X: MaxX + 0.5, Y: 300})

	g.Step(dt)

	if x := a.Position().X; !near(x, MinX) {
		t.Fatalf("x after wrap: got %v, want %v", x, MinX)
	}
	if pp.MP != 70 {
		t.Fatalf("mp after wrap: got %v, want 70", pp.MP)
	}

	b, pb := mustPlayer(t, g, domain.PlayerB)
	pb.MP = 10
	b.SetPosition(physics.Vec{X: MinX - 1, Y: 100})
	g.Step(dt)
	if x := b.Position().X; !near(x, MaxX) {
		t.Fatalf("x after left wrap: got %v, want %v", x, MaxX)
	}
	if pb.MP != 0 {
		t.Fatalf("mp floor: got %v, want 0", pb.MP)
	}
}

func TestWinIsLatched(t *testing.T) {
	g, rec := newTestGame(t)
	b, _ := mustPlayer(t, g, domain.PlayerB)
	b.SetPosition(physics.Vec{X: 600, Y: MaxY + 50})

	g.Step(dt)
	g.Step(dt)

	if len(rec.results) != 1 {
		t.Fatalf("end callbacks: got %d, want 1", len(rec.results))
	}
	if rec.results[0].Winner != domain.PlayerA {
		t.Fatalf("winner: got %q, want playerA", rec.results[0].Winner)
	}
	if !g.Decided() {
		t.Fatal("game not decided")
	}
}

func TestBothFallOutIsDraw(t *testing.T) {
	g, rec := newTestGame(t)
	a, _ := mustPlayer(t, g, domain.PlayerA)
	b, _ := mustPlayer(t, g, domain.PlayerB)
	a.SetPosition(physics.Vec{X: 200, Y: MinY - 20})
	b.SetPosition(physics.Vec{X: 600, Y: MaxY + 20})

	g.Step(dt)

	if len(rec.results) != 1 || !rec.results[0].Draw() {
		t.Fatalf("results: %+v", rec.results)
	}
}

func TestUseCardWithoutBullets(t *testing.T) {
	g, _ := newTestGame(t)
	_, pp := mustPlayer(t, g, domain.PlayerA)

	out, err := g.UseCard(domain.PlayerA, domain.CardSplit)
	if err != nil {
		t.Fatalf("UseCard: %v", err)
	}
	if out != domain.Ignored {
		t.Fatalf("outcome: got %s, want ignored", out)
	}
	if pp.MP != MaxMP || len(g.Entities()) != 5 {
		t.Fatalf("state changed: mp=%v entities=%d", pp.MP, len(g.Entities()))
	}
}

func TestUseCardSplitsOwnedBulletsOnce(t *testing.T) {
	g, _ := newTestGame(t)
	_, pp := mustPlayer(t, g, domain.PlayerA)
	for range 2 {
		if _, err := g.Shoot(domain.PlayerA); err != nil {
			t.Fatalf("Shoot: %v", err)
		}
	}
	if _, err := g.Shoot(domain.PlayerB); err != nil {
		t.Fatalf("Shoot: %v", err)
	}
	originals := bullets(g, domain.PlayerA)
	speed := originals[0].Velocity().Len()

	out, err := g.UseCard(domain.PlayerA, domain.CardSplit)
	if err != nil || out != domain.Applied {
		t.Fatalf("UseCard: %s %v", out, err)
	}

	if want := MaxMP - 2*ShootCost - CardCost; pp.MP != want {
		t.Fatalf("mp: got %v, want %v", pp.MP, want)
	}
	got := bullets(g, domain.PlayerA)
	if len(got) != 6 {
		t.Fatalf("playerA bullets: got %d, want 6", len(got))
	}
	for _, b := range got[2:4] {
		if v := b.Velocity().Len(); math.Abs(v-speed) > 1e-6 {
			t.Errorf("split speed: got %v, want %v", v, speed)
		}
		if d := b.Position().Sub(originals[0].Position()).Len(); !near(d, SplitOffset) {
			t.Errorf("split offset: got %v, want %v", d, SplitOffset)
		}
	}
	if n := len(bullets(g, domain.PlayerB)); n != 1 {
		t.Fatalf("playerB bullets: got %d, want 1", n)
	}
}

func TestUseCardRefusedWhenPoolLow(t *testing.T) {
	g, _ := newTestGame(t)
	_, pp := mustPlayer(t, g, domain.PlayerA)
	if _, err := g.Shoot(domain.PlayerA); err != nil {
		t.Fatalf("Shoot: %v", err)
	}
	pp.MP = CardCost - 1

	out, _ := g.UseCard(domain.PlayerA, domain.CardSplit)
	if out != domain.Refused {
		t.Fatalf("outcome: got %s, want refused", out)
	}
	if n := len(bullets(g, domain.PlayerA)); n != 1 {
		t.Fatalf("bullets: got %d, want 1", n)
	}
}

func TestUnknownCard(t *testing.T) {
	g, _ := newTestGame(t)
	if _, err := g.UseCard(domain.PlayerA, "heal"); !errors.Is(err, domain.ErrUnknownCard) {
		t.Fatalf("err: got %v, want ErrUnknownCard", err)
	}
}

func TestBulletHitCreditsOwnerAndExplodes(t *testing.T) {
	g, rec := newTestGame(t)
	_, pa := mustPlayer(t, g, domain.PlayerA)
	pa.MP = 50
	b, _ := mustPlayer(t, g, domain.PlayerB)

	bullet := g.spawnBullet(b.Position().Add(physics.Vec{X: 20}), domain.PlayerA)
	g.collide(bullet.body, b.body)
	g.collide(bullet.body, b.body)

	if pa.MP != 50+HitBonus {
		t.Fatalf("owner mp: got %v, want %v", pa.MP, 50+HitBonus)
	}

	g.drainExplosions()

	if !bullet.Removed() {
		t.Fatal("bullet still in world")
	}
	if len(rec.effects) != 1 {
		t.Fatalf("effects: got %d, want 1", len(rec.effects))
	}
	fx := rec.effects[0]
	if fx.Type != domain.EffectExplode || fx.Size != ExplosionSize || fx.Time != 0 {
		t.Fatalf("effect: %+v", fx)
	}
	if vx := b.Velocity().X; vx >= 0 {
		t.Fatalf("playerB not pushed away: vx=%v", vx)
	}
}

func TestGroundHitDoesNotCredit(t *testing.T) {
	g, _ := newTestGame(t)
	_, pa := mustPlayer(t, g, domain.PlayerA)
	pa.MP = 50
	ground := g.Entities()[2]

	bullet := g.spawnBullet(physics.Vec{X: 200, Y: 570}, domain.PlayerA)
	g.collide(bullet.body, ground.body)

	if pa.MP != 50 {
		t.Fatalf("mp: got %v, want 50", pa.MP)
	}
	if len(g.explode) != 1 {
		t.Fatalf("queue: got %d, want 1", len(g.explode))
	}
}

func TestOutOfBoundsBulletsAreCollected(t *testing.T) {
	g, _ := newTestGame(t)
	bullet := g.spawnBullet(physics.Vec{X: MinX - 50, Y: 100}, domain.PlayerA)

	g.Step(dt)

	if !bullet.Removed() {
		t.Fatal("bullet not collected")
	}
	if n := len(g.Entities()); n != 5 {
		t.Fatalf("entities: got %d, want 5", n)
	}
}

func TestLookAt(t *testing.T) {
	g, _ := newTestGame(t)
	a, _ := mustPlayer(t, g, domain.PlayerA)

	cases := []struct {
		target domain.Point
		want   float64
	}{
		{domain.Point{X: 300, Y: 300}, 0},
		{domain.Point{X: 200, Y: 200}, math.Pi / 2},
		{domain.Point{X: 100, Y: 300}, math.Pi},
	}
	for _, c := range cases {
		if _, err := g.LookAt(domain.PlayerA, c.target); err != nil {
			t.Fatalf("LookAt: %v", err)
		}
		if got := a.Angle(); !near(got, c.want) {
			t.Errorf("LookAt(%+v): angle %v, want %v", c.target, got, c.want)
		}
	}
}

func TestMove(t *testing.T) {
	g, _ := newTestGame(t)
	a, pp := mustPlayer(t, g, domain.PlayerA)

	if out, _ := g.Move(domain.PlayerA, domain.DirLeft); out != domain.Applied {
		t.Fatalf("left: %s", out)
	}
	if vx := a.Velocity().X; vx != -MoveSpeed {
		t.Fatalf("vx: got %v, want %v", vx, -MoveSpeed)
	}
	if pp.MP != MaxMP {
		t.Fatalf("horizontal move cost mp: %v", pp.MP)
	}

	if out, _ := g.Move(domain.PlayerA, domain.DirUp); out != domain.Applied {
		t.Fatalf("up: %s", out)
	}
	if vy := a.Velocity().Y; vy >= 0 {
		t.Fatalf("vy after up: %v", vy)
	}
	if pp.MP != MaxMP-UpCost {
		t.Fatalf("mp after up: %v", pp.MP)
	}

	pp.MP = UpCost - 1
	if out, _ := g.Move(domain.PlayerA, domain.DirUp); out != domain.Refused {
		t.Fatalf("up with low mp: %s", out)
	}
}

func TestInvalidPlayer(t *testing.T) {
	g, _ := newTestGame(t)
	if _, err := g.Shoot("playerC"); !errors.Is(err, domain.ErrInvalidPlayer) {
		t.Fatalf("err: got %v", err)
	}
}

func TestRegenIsCapped(t *testing.T) {
	g, _ := newTestGame(t)
	_, pp := mustPlayer(t, g, domain.PlayerA)
	pp.MP = MaxMP - MPRegen/2

	g.Step(dt)

	if pp.MP != MaxMP {
		t.Fatalf("mp: got %v, want %v", pp.MP, MaxMP)
	}
}
