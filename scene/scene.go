package scene

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/canopy/forest"
)

// Options controls scene construction and animation.
type Options struct {
	Seed       int64
	CrownLimit int // 0 means no limit beyond the cluster size
	Leaves     LeafTimeline
	// LeafStagger is the delay between successive leaves starting to fall.
	LeafStagger float64
}

// DefaultOptions returns the stock animation timings.
func DefaultOptions() Options {
	return Options{
		Seed: 42,
		Leaves: LeafTimeline{
			Fall:        600,
			Duration:    4,
			RepeatDelay: 2,
		},
		LeafStagger: 0.5,
	}
}

// Stats counts live scene entities.
type Stats struct {
	Trunks int
	Crowns int
	Rays   int
	Gaps   int
	Leaves int
}

// Scene is the animated cross-section for one set of controls.
type Scene struct {
	opts Options
	rng  *rand.Rand

	world  *ecs.World
	trunks *ecs.Map4[Position, Layer, Trunk, Sway]
	crowns *ecs.Map4[Position, Layer, Crown, Sway]
	rays   *ecs.Map1[Ray]
	gaps   *ecs.Map2[Position, GapPatch]
	leaves *ecs.Map3[Position, Layer, Leaf]
	fog    *ecs.Map1[Fog]

	trunkFilter *ecs.Filter4[Position, Layer, Trunk, Sway]
	crownFilter *ecs.Filter4[Position, Layer, Crown, Sway]
	rayFilter   *ecs.Filter1[Ray]
	gapFilter   *ecs.Filter2[Position, GapPatch]
	leafFilter  *ecs.Filter3[Position, Layer, Leaf]
	fogFilter   *ecs.Filter1[Fog]

	swaySystem  *SwaySystem
	leafSystem  *LeafSystem
	driftSystem *DriftSystem

	controls forest.Controls
	preset   forest.Preset
	visual   forest.VisualState
	time     float64
}

// New creates an empty scene. Call Rebuild before drawing.
func New(opts Options) *Scene {
	s := &Scene{opts: opts}
	s.reset()
	return s
}

// reset discards the world and every entity in it.
func (s *Scene) reset() {
	w := ecs.NewWorld()
	s.world = w
	s.rng = rand.New(rand.NewSource(s.opts.Seed))

	s.trunks = ecs.NewMap4[Position, Layer, Trunk, Sway](w)
	s.crowns = ecs.NewMap4[Position, Layer, Crown, Sway](w)
	s.rays = ecs.NewMap1[Ray](w)
	s.gaps = ecs.NewMap2[Position, GapPatch](w)
	s.leaves = ecs.NewMap3[Position, Layer, Leaf](w)
	s.fog = ecs.NewMap1[Fog](w)

	s.trunkFilter = ecs.NewFilter4[Position, Layer, Trunk, Sway](w)
	s.crownFilter = ecs.NewFilter4[Position, Layer, Crown, Sway](w)
	s.rayFilter = ecs.NewFilter1[Ray](w)
	s.gapFilter = ecs.NewFilter2[Position, GapPatch](w)
	s.leafFilter = ecs.NewFilter3[Position, Layer, Leaf](w)
	s.fogFilter = ecs.NewFilter1[Fog](w)

	s.swaySystem = NewSwaySystem(w)
	s.leafSystem = NewLeafSystem(w, s.opts.Leaves)
	s.driftSystem = NewDriftSystem(w)

	s.time = 0
}

// Rebuild discards all entities and recreates them from c and p. The result
// depends only on c, p and the seed. Animation time restarts at zero.
func (s *Scene) Rebuild(c forest.Controls, p forest.Preset) {
	s.controls = c.Clamped()
	s.preset = p
	s.visual = forest.ComputeVisualState(s.controls)
	s.reset()
	s.build()
	s.step()
}

// Update advances animation time by dt seconds. Negative steps are ignored.
func (s *Scene) Update(dt float64) {
	if dt > 0 {
		s.time += dt
	}
	s.step()
}

func (s *Scene) step() {
	s.swaySystem.Update(s.time)
	s.leafSystem.Update(s.time)
	s.driftSystem.Update(s.time)
}

// Time is the animation clock in seconds.
func (s *Scene) Time() float64 { return s.time }

// Controls are the clamped controls the scene was built from.
func (s *Scene) Controls() forest.Controls { return s.controls }

// Preset is the preset supplying the scene's colours.
func (s *Scene) Preset() forest.Preset { return s.preset }

// Visual is the derived visual state for the scene's controls.
func (s *Scene) Visual() forest.VisualState { return s.visual }

// Sun is the sun placement for the scene's controls.
func (s *Scene) Sun() Sun { return SunGeometry(s.controls) }

// Glow is the ambient floor glow, if enough light reaches the floor.
func (s *Scene) Glow() (Glow, bool) { return GlowGeometry(s.controls) }

// EachTrunk calls fn for every trunk.
func (s *Scene) EachTrunk(fn func(Position, Layer, Trunk, Sway)) {
	query := s.trunkFilter.Query()
	for query.Next() {
		pos, layer, trunk, sw := query.Get()
		fn(*pos, *layer, *trunk, *sw)
	}
}

// EachCrown calls fn for every crown, including floor plants and litter.
func (s *Scene) EachCrown(fn func(Position, Layer, Crown, Sway)) {
	query := s.crownFilter.Query()
	for query.Next() {
		pos, layer, crown, sw := query.Get()
		fn(*pos, *layer, *crown, *sw)
	}
}

// EachRay calls fn for every light shaft.
func (s *Scene) EachRay(fn func(Ray)) {
	query := s.rayFilter.Query()
	for query.Next() {
		fn(*query.Get())
	}
}

// EachGap calls fn for every gap patch.
func (s *Scene) EachGap(fn func(Position, GapPatch)) {
	query := s.gapFilter.Query()
	for query.Next() {
		pos, gap := query.Get()
		fn(*pos, *gap)
	}
}

// EachLeaf calls fn for every falling leaf.
func (s *Scene) EachLeaf(fn func(Position, Layer, Leaf)) {
	query := s.leafFilter.Query()
	for query.Next() {
		pos, layer, leaf := query.Get()
		fn(*pos, *layer, *leaf)
	}
}

// Fog returns the fog band.
func (s *Scene) Fog() Fog {
	var fog Fog
	query := s.fogFilter.Query()
	for query.Next() {
		fog = *query.Get()
	}
	return fog
}

// Stats counts the scene's entities.
func (s *Scene) Stats() Stats {
	var st Stats
	s.EachTrunk(func(Position, Layer, Trunk, Sway) { st.Trunks++ })
	s.EachCrown(func(Position, Layer, Crown, Sway) { st.Crowns++ })
	s.EachRay(func(Ray) { st.Rays++ })
	s.EachGap(func(Position, GapPatch) { st.Gaps++ })
	s.EachLeaf(func(Position, Layer, Leaf) { st.Leaves++ })
	return st
}
