// Package scene builds the animated forest cross-section as an ECS world.
package scene

import "github.com/pthm-cable/canopy/forest"

// Position is a point in view coordinates. The meaning depends on the
// companion component: trunk top-left, crown or gap centre, leaf origin.
type Position struct {
	X, Y float32
}

// Layer tags an entity with the forest layer it belongs to.
type Layer struct {
	ID forest.LayerID
}

// Trunk is a rectangular stem anchored at its base.
type Trunk struct {
	Width, Height float32
}

// Tone selects which preset colour an element is painted with.
type Tone uint8

const (
	ToneCanopy Tone = iota
	ToneUnderstory
	ToneFloor
	ToneTrunk
)

// Crown is an elliptical foliage mass. Shift is a brightness offset in
// percent applied to the tone colour. PivotY is the ground line the crown
// sways about.
type Crown struct {
	RX, RY  float32
	Opacity float32
	Tone    Tone
	Shift   float64
	PivotY  float32
}

// Sway is a periodic wind oscillation. Angle is in degrees and is written by
// SwaySystem.
type Sway struct {
	Amplitude float64
	Period    float64
	Phase     float64
	Angle     float64
}

// Ray is a light shaft from the sky into the stand.
type Ray struct {
	X1, Y1, X2, Y2 float32
	Width          float32
	Opacity        float32
	Scattered      bool
}

// GapPatch is the light patch under a canopy gap, with its floor pool and
// optional regrowth clump.
type GapPatch struct {
	RX, RY          float32
	Intensity       float32
	FloorY          float32
	FloorRX         float32
	Regrowth        bool
	RegrowthRX      float32
	RegrowthRY      float32
	RegrowthOpacity float32
}

// Leaf is a falling leaf. The fall offset, rotation, opacity and scale are
// written by LeafSystem.
type Leaf struct {
	Delay    float64
	Y        float32
	Rotation float32
	Opacity  float32
	Scale    float32
	Size     float32
}

// Fog is the drifting haze band over the understory.
type Fog struct {
	Y, Height float32
	Opacity   float32
	Period    float64
	Offset    float32
	ScaleX    float32
}
