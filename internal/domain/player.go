// Package domain contains entities without logic, just meta-data
package domain

type PlayerName string

const (
	PlayerA PlayerName = "playerA"
	PlayerB PlayerName = "playerB"
)

// PlayerNames lists the seats in join order.
var PlayerNames = [2]PlayerName{PlayerA, PlayerB}

// Slot maps a name to its index in a two-entry seat array.
func (n PlayerName) Slot() (int, bool) {
	switch n {
	case PlayerA:
		return 0, true
	case PlayerB:
		return 1, true
	}
	return -1, false
}

func ParsePlayerName(s string) (PlayerName, error) {
	n := PlayerName(s)
	if _, ok := n.Slot(); !ok {
		return "", ErrInvalidPlayer
	}
	return n, nil
}

type Direction string

const (
	DirUp    Direction = "up"
	DirLeft  Direction = "left"
	DirRight Direction = "right"
)

func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case DirUp, DirLeft, DirRight:
		return d, nil
	}
	return "", ErrInvalidDirection
}

// Card identifies an ability.
type Card string

const CardSplit Card = "split"

func ParseCard(s string) (Card, error) {
	switch c := Card(s); c {
	case CardSplit:
		return c, nil
	}
	return "", ErrUnknownCard
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Outcome tells a caller what an action did when it did not fail.
type Outcome int

const (
	Applied Outcome = iota
	// Ignored means the preconditions were not met, e.g. no game running.
	Ignored
	// Refused means the player could not pay the mp cost.
	Refused
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Ignored:
		return "ignored"
	case Refused:
		return "refused"
	}
	return "unknown"
}
