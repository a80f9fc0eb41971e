package scene

import (
	"math"

	"github.com/mlange-42/ark/ecs"
)

// SwaySystem drives trunk and crown wind oscillation.
type SwaySystem struct {
	filter ecs.Filter1[Sway]
}

// NewSwaySystem creates a sway system over w.
func NewSwaySystem(w *ecs.World) *SwaySystem {
	return &SwaySystem{
		filter: *ecs.NewFilter1[Sway](w),
	}
}

// Update sets every sway angle for scene time t (seconds).
func (s *SwaySystem) Update(t float64) {
	query := s.filter.Query()
	for query.Next() {
		sw := query.Get()
		if sw.Period <= 0 || sw.Amplitude == 0 {
			sw.Angle = 0
			continue
		}
		sw.Angle = -sw.Amplitude * math.Sin(2*math.Pi*t/sw.Period+sw.Phase)
	}
}

// LeafTimeline is the falling-leaf animation: each leaf falls Fall units over
// Duration seconds, accelerating, then waits RepeatDelay before restarting.
type LeafTimeline struct {
	Fall        float64
	Duration    float64
	RepeatDelay float64
}

// Progress returns the eased fall progress in [0,1] at local time t since
// the leaf's start, and whether the leaf has started at all.
func (tl LeafTimeline) Progress(t float64) (float64, bool) {
	if t < 0 || tl.Duration <= 0 {
		return 0, false
	}
	m := math.Mod(t, tl.Duration+tl.RepeatDelay)
	if m >= tl.Duration {
		return 1, true
	}
	p := m / tl.Duration
	return p * p, true
}

// LeafSystem advances falling leaves along a LeafTimeline.
type LeafSystem struct {
	filter   ecs.Filter1[Leaf]
	timeline LeafTimeline
}

// NewLeafSystem creates a leaf system over w.
func NewLeafSystem(w *ecs.World, tl LeafTimeline) *LeafSystem {
	return &LeafSystem{
		filter:   *ecs.NewFilter1[Leaf](w),
		timeline: tl,
	}
}

// Update positions every leaf for scene time t.
func (s *LeafSystem) Update(t float64) {
	query := s.filter.Query()
	for query.Next() {
		leaf := query.Get()
		e, started := s.timeline.Progress(t - leaf.Delay)
		if !started {
			// Waiting leaves sit at the start with zero scale.
			leaf.Y, leaf.Rotation, leaf.Opacity, leaf.Scale = 0, 0, 1, 0
			continue
		}
		leaf.Y = float32(s.timeline.Fall * e)
		leaf.Rotation = float32(720 * e)
		leaf.Opacity = float32(1 - e)
		leaf.Scale = float32(e)
	}
}

// DriftSystem moves the fog band back and forth.
type DriftSystem struct {
	filter ecs.Filter1[Fog]
}

// NewDriftSystem creates a drift system over w.
func NewDriftSystem(w *ecs.World) *DriftSystem {
	return &DriftSystem{
		filter: *ecs.NewFilter1[Fog](w),
	}
}

// Update sets the fog offset and stretch for scene time t.
func (s *DriftSystem) Update(t float64) {
	query := s.filter.Query()
	for query.Next() {
		fog := query.Get()
		if fog.Period <= 0 {
			continue
		}
		p := 0.5 - 0.5*math.Cos(2*math.Pi*t/fog.Period)
		fog.Offset = float32(-50 * p)
		fog.ScaleX = float32(1 + 0.2*p)
	}
}
