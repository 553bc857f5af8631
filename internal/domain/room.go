package domain

type RoomID string

// PeerID is the relay's transient identifier for one connection.
type PeerID string

type PlayerScore struct {
	Point int `json:"point"`
}

// RoomSnapshot is sent to both seats whenever membership, score or the
// started flag changes.
type RoomSnapshot struct {
	IsGameStart bool         `json:"isGameStart"`
	PlayerA     *PlayerScore `json:"playerA,omitempty"`
	PlayerB     *PlayerScore `json:"playerB,omitempty"`
}

// Score returns the seat for name, nil when the slot is empty.
func (s RoomSnapshot) Score(name PlayerName) *PlayerScore {
	switch name {
	case PlayerA:
		return s.PlayerA
	case PlayerB:
		return s.PlayerB
	}
	return nil
}
