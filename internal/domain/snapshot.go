package domain

type Label string

const (
	LabelPlayer Label = "player"
	LabelBullet Label = "bullet"
	LabelGround Label = "ground"
)

type Bounds struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// CustomData carries the gameplay payload of players and bullets.
type CustomData struct {
	Name PlayerName `json:"name,omitempty"`
	MP   *float64   `json:"mp,omitempty"`
	From PlayerName `json:"from,omitempty"`
}

// EntitySnapshot is the wire shape of one simulated body.
type EntitySnapshot struct {
	Angle        float64     `json:"angle"`
	Position     Point       `json:"position"`
	Bounds       Bounds      `json:"bounds"`
	CircleRadius float64     `json:"circleRadius,omitempty"`
	Label        Label       `json:"label"`
	CustomData   *CustomData `json:"customData,omitempty"`
}

const EffectExplode = "explode"

// Effect is a one-shot visual event.
type Effect struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Size     float64 `json:"size"`
	Type     string  `json:"type"`
	Time     float64 `json:"time"`
	Lifespan float64 `json:"lifespan"`
}
