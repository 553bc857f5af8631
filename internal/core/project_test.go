package core

import (
	"testing"

	"github.com/dkeye/arena/internal/domain"
	"github.com/dkeye/arena/internal/game"
)

func TestProjectCarriesPayloads(t *testing.T) {
	g := game.New(game.Options{})
	if _, err := g.Shoot(domain.PlayerB); err != nil {
		t.Fatalf("Shoot: %v", err)
	}

	var snaps []domain.EntitySnapshot
	for _, e := range g.Entities() {
		snaps = append(snaps, project(e))
	}
	if len(snaps) != 6 {
		t.Fatalf("snapshots: got %d, want 6", len(snaps))
	}

	a := snaps[0]
	if a.CustomData == nil || a.CustomData.Name != domain.PlayerA || a.CustomData.MP == nil || *a.CustomData.MP != game.MaxMP {
		t.Fatalf("player snapshot: %+v", a)
	}
	if a.CircleRadius != game.PlayerRadius || a.Bounds.Max.X-a.Bounds.Min.X != 2*game.PlayerRadius {
		t.Fatalf("player geometry: %+v", a)
	}
	if g := snaps[2]; g.Label != domain.LabelGround || g.CustomData != nil || g.CircleRadius != 0 {
		t.Fatalf("ground snapshot: %+v", g)
	}
	if b := snaps[5]; b.Label != domain.LabelBullet || b.CustomData == nil || b.CustomData.From != domain.PlayerB {
		t.Fatalf("bullet snapshot: %+v", b)
	}
}
