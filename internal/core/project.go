package core

import (
	"github.com/dkeye/arena/internal/domain"
	"github.com/dkeye/arena/internal/game"
)

func project(e *game.Entity) domain.EntitySnapshot {
	pos := e.Position()
	lo, hi := e.Bounds()
	s := domain.EntitySnapshot{
		Angle:        e.Angle(),
		Position:     domain.Point{X: pos.X, Y: pos.Y},
		Bounds:       domain.Bounds{Min: domain.Point{X: lo.X, Y: lo.Y}, Max: domain.Point{X: hi.X, Y: hi.Y}},
		CircleRadius: e.Radius(),
		Label:        e.Label(),
	}
	switch p := e.Payload().(type) {
	case *game.PlayerPayload:
		mp := p.MP
		s.CustomData = &domain.CustomData{Name: p.Name, MP: &mp}
	case *game.BulletPayload:
		s.CustomData = &domain.CustomData{From: p.From}
	}
	return s
}
