package domain

import "errors"

var (
	ErrRoomFull         = errors.New("room is full")
	ErrNotSeated        = errors.New("player is not seated")
	ErrRoomNotReady     = errors.New("both players must be seated")
	ErrGameInProgress   = errors.New("game already running")
	ErrInvalidGeometry  = errors.New("entity is not a circle")
	ErrUnknownCard      = errors.New("unknown card")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidPlayer    = errors.New("invalid player name")
	ErrRoomNotFound     = errors.New("room not found")
)
