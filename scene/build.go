package scene

import (
	"math"

	"github.com/pthm-cable/canopy/forest"
)

type crownSpec struct {
	x, y, rx, ry float64
	tone         Tone
	shift        float64
	opacity      float64
}

// crownCluster is the overlapping crown mass around the main canopy tree.
// Radii grow with LAI and opacity with cover when spawned.
var crownCluster = [...]crownSpec{
	{455, 285, 58, 45, ToneCanopy, 0, 0.75},
	{465, 275, 52, 40, ToneUnderstory, 0, 0.7},
	{475, 295, 48, 38, ToneCanopy, -10, 0.65},
	{535, 275, 62, 50, ToneCanopy, -10, 0.8},
	{525, 265, 56, 42, ToneCanopy, 0, 0.7},
	{545, 290, 54, 44, ToneUnderstory, 0, 0.75},
	{490, 265, 50, 38, ToneCanopy, 0, 0.7},
	{495, 280, 48, 36, ToneUnderstory, 0, 0.75},
	{505, 270, 52, 40, ToneCanopy, -10, 0.7},
	{510, 285, 46, 35, ToneCanopy, -20, 0.65},
	{470, 290, 44, 34, ToneCanopy, -20, 0.6},
	{530, 285, 50, 40, ToneCanopy, 0, 0.7},
	{485, 275, 42, 32, ToneCanopy, -10, 0.65},
	{515, 285, 48, 37, ToneUnderstory, 0, 0.7},
	{480, 290, 46, 35, ToneCanopy, 0, 0.68},
	{520, 280, 49, 38, ToneUnderstory, 0, 0.72},
}

// build spawns every entity for the current controls.
func (s *Scene) build() {
	c := s.controls
	d := c.CanopyCover / 100
	l := c.LAI
	lights := forest.LayerLights(c)
	eff := forest.LightPenetration(c)

	s.buildFloor(c, lights.Get(forest.ForestFloor), eff)
	s.buildUnderstory(c, lights.Get(forest.Understory))
	s.buildCanopy(c, d, l)
	s.buildEmergent(c, d, l, lights.Get(forest.Emergent))

	for _, r := range Rays(c) {
		r := r
		s.rays.NewEntity(&r)
	}

	for i, g := range Gaps(c) {
		x, y, _ := GapLayout(i)
		pos := Position{X: float32(x), Y: float32(y)}
		g := g
		s.gaps.NewEntity(&pos, &g)
	}

	s.buildLeaves(c)

	fog := Fog{
		Opacity: float32(FogOpacity(c)),
		Period:  FogPeriod(c),
		ScaleX:  1,
	}
	if info, ok := forest.LookupLayerInfo(forest.Understory); ok {
		fog.Y, fog.Height = BandY(info.Band)
	}
	s.fog.NewEntity(&fog)
}

func (s *Scene) buildFloor(c forest.Controls, floorLight, eff float64) {
	plantOpacity := 0.5 + floorLight/5*0.3
	m := 1 + eff/100*0.5
	still := Sway{Period: 1}

	plants := []struct {
		min float64
		crownSpec
	}{
		{1.5, crownSpec{400, 750, 50 * m, 30 * m, ToneFloor, 0, plantOpacity}},
		{2.5, crownSpec{560, 760, 45 * m, 35 * m, ToneFloor, -5, plantOpacity}},
		{3.5, crownSpec{520, 770, 40 * m, 25 * m, ToneFloor, 10, plantOpacity * 0.9}},
	}
	for _, p := range plants {
		if floorLight > p.min {
			s.addCrown(forest.ForestFloor, p.crownSpec, floorStop, still)
		}
	}

	if c.LAI > 1 {
		l := c.LAI
		op := 0.3 + l/10*0.3
		s.addCrown(forest.ForestFloor, crownSpec{380, 775, 3 + l*0.3, 2 + l*0.2, ToneTrunk, 20, op}, floorStop, still)
		s.addCrown(forest.ForestFloor, crownSpec{540, 778, 2.5 + l*0.25, 1.5 + l*0.15, ToneTrunk, 10, op}, floorStop, still)
		s.addCrown(forest.ForestFloor, crownSpec{485, 780, 3 + l*0.3, 2 + l*0.2, ToneTrunk, 0, op}, floorStop, still)
	}
}

func (s *Scene) buildUnderstory(c forest.Controls, u float64) {
	l := c.LAI
	id := forest.Understory
	if u > 3 {
		sw := s.newSway(id)
		base := s.addTrunk(id, 300, 500, 25+l*0.5, 200+l*5, sw)
		s.addCrown(id, crownSpec{312, 550, 35 + l*1.5, 25 + l, ToneUnderstory, 0, 0.7 + u/15*0.2}, base, sw)
	}
	if u > 6 {
		sw := s.newSway(id)
		base := s.addTrunk(id, 650, 520, 30+l*0.6, 180+l*4, sw)
		s.addCrown(id, crownSpec{665, 570, 40 + l*2, 30 + l*1.2, ToneUnderstory, -10, 0.6 + u/15*0.25}, base, sw)
	}
	if u > 5 {
		s.addCrown(id, crownSpec{420, 580, 20 + l, 60 + l*2, ToneUnderstory, 0, 0.5 + u/15*0.3}, floorStop, s.newSway(id))
	}
	if u > 8 {
		s.addCrown(id, crownSpec{580, 590, 18 + l*0.8, 55 + l*1.8, ToneUnderstory, -10, 0.4 + u/15*0.3}, floorStop, s.newSway(id))
	}
}

func (s *Scene) buildCanopy(c forest.Controls, d, l float64) {
	id := forest.Canopy

	sw := s.newSway(id)
	base := s.addTrunk(id, 480-l*0.5, 400-l*2, 40+l, 350+l*10, sw)
	s.addCrown(id, crownSpec{500, 280, 80 + l*5, 60 + l*3, ToneCanopy, 0, 0.3 + d*0.6}, base, sw)

	n := CrownClusterCount(c)
	if s.opts.CrownLimit > 0 {
		n = min(n, s.opts.CrownLimit)
	}
	for _, cs := range crownCluster[:n] {
		cs.rx += l * 2
		cs.ry += l * 1.5
		cs.opacity *= 0.7 + d*0.3
		s.addCrown(id, cs, base, sw)
	}

	if c.CanopyCover > 30 {
		sw := s.newSway(id)
		base := s.addTrunk(id, 200, 350, 30+l, 150+l*10, sw)
		s.addCrown(id, crownSpec{215, 400, 45 + l*2, 35 + l*1.5, ToneCanopy, -5, 0.6 + d*0.2}, base, sw)
		s.addCrown(id, crownSpec{205, 380, 35 + l*1.5, 25 + l, ToneCanopy, 0, 0.55 + d*0.2}, base, sw)
		if c.CanopyCover > 60 {
			s.addCrown(id, crownSpec{220, 395, 38 + l*1.8, 30 + l*1.3, ToneUnderstory, 0, 0.45 + d*0.2}, base, sw)
		}
	}

	if c.CanopyCover > 50 {
		sw := s.newSway(id)
		base := s.addTrunk(id, 720, 340, 35+l*1.2, 160+l*12, sw)
		s.addCrown(id, crownSpec{737, 390, 50 + l*2.5, 40 + l*2, ToneCanopy, 0, 0.6 + d*0.2}, base, sw)
		s.addCrown(id, crownSpec{727, 370, 40 + l*2, 30 + l*1.5, ToneCanopy, -15, 0.55 + d*0.2}, base, sw)
		if c.CanopyCover > 60 {
			s.addCrown(id, crownSpec{742, 385, 42 + l*2, 33 + l*1.5, ToneCanopy, -5, 0.5 + d*0.2}, base, sw)
		}
	}
}

func (s *Scene) buildEmergent(c forest.Controls, d, l, e float64) {
	id := forest.Emergent

	sw := s.newSway(id)
	base := s.addTrunk(id, 490, 120, 20+l*0.5, 280+l*8, sw)
	s.addCrown(id, crownSpec{500, 150, 50 + l*3, 40 + l*2, ToneCanopy, -15, 0.85 + l/10*0.1}, base, sw)
	highlight := 0.4 + e/100*0.4
	s.addCrown(id, crownSpec{495, 145, 30 + l, 25 + l*0.8, ToneCanopy, 10, highlight}, base, sw)
	s.addCrown(id, crownSpec{505, 155, 25 + l*0.8, 20 + l*0.6, ToneCanopy, 20, highlight * 0.7}, base, sw)

	if c.CanopyCover > 40 {
		sw := s.newSway(id)
		base := s.addTrunk(id, 150, 180-l*2, 25+l*0.6, 220+l*6, sw)
		s.addCrown(id, crownSpec{162, 220 - l, 45 + l*2.5, 35 + l*1.8, ToneCanopy, -15, 0.8 + d*0.1}, base, sw)
		s.addCrown(id, crownSpec{157, 200 - l, 35 + l*2, 28 + l*1.5, ToneCanopy, 5, 0.4 + l/10*0.1}, base, sw)
	}
}

// buildLeaves staggers leaves across both shedding layers, canopy first.
func (s *Scene) buildLeaves(c forest.Controls) {
	size := float32(1 + c.LAI*0.05)
	k := 0
	for _, spawn := range []struct {
		id   forest.LayerID
		topY float64
	}{
		{forest.Canopy, 300},
		{forest.Emergent, 150},
	} {
		layer := Layer{ID: spawn.id}
		for i := range LeafCount(spawn.id, c) {
			pos := Position{
				X: float32(math.Mod(450+float64(i)*50, ViewWidth)),
				Y: float32(spawn.topY + float64(i)*30),
			}
			leaf := Leaf{
				Delay:   float64(k) * s.opts.LeafStagger,
				Opacity: 1,
				Size:    size,
			}
			s.leaves.NewEntity(&pos, &layer, &leaf)
			k++
		}
	}
}

// newSway draws a fresh phase for a member of a layer's sway timeline.
func (s *Scene) newSway(id forest.LayerID) Sway {
	return Sway{
		Amplitude: SwayAmplitude(id, s.controls),
		Period:    2 * WindDuration(id, s.controls),
		Phase:     s.rng.Float64() * 2 * math.Pi,
	}
}

// addTrunk spawns a trunk and returns its base line.
func (s *Scene) addTrunk(id forest.LayerID, x, y, w, h float64, sw Sway) float32 {
	pos := Position{X: float32(x), Y: float32(y)}
	layer := Layer{ID: id}
	trunk := Trunk{Width: float32(w), Height: float32(h)}
	s.trunks.NewEntity(&pos, &layer, &trunk, &sw)
	return float32(y + h)
}

func (s *Scene) addCrown(id forest.LayerID, cs crownSpec, pivotY float32, sw Sway) {
	pos := Position{X: float32(cs.x), Y: float32(cs.y)}
	layer := Layer{ID: id}
	crown := Crown{
		RX:      float32(cs.rx),
		RY:      float32(cs.ry),
		Opacity: float32(math.Max(0, math.Min(1, cs.opacity))),
		Tone:    cs.tone,
		Shift:   cs.shift,
		PivotY:  pivotY,
	}
	s.crowns.NewEntity(&pos, &layer, &crown, &sw)
}
