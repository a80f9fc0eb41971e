package forest

import "math"

// LayerID identifies a vertical stratum of the forest.
type LayerID string

const (
	Emergent    LayerID = "emergent"
	Canopy      LayerID = "canopy"
	Understory  LayerID = "understory"
	ForestFloor LayerID = "forest-floor"
)

// NumLayers is the number of strata.
const NumLayers = 4

// Layers lists the strata from top to bottom.
var Layers = [NumLayers]LayerID{Emergent, Canopy, Understory, ForestFloor}

// Index returns the position of the layer in Layers, or -1 if unknown.
func (id LayerID) Index() int {
	for i, l := range Layers {
		if l == id {
			return i
		}
	}
	return -1
}

// Valid reports whether id names a known layer.
func (id LayerID) Valid() bool {
	return id.Index() >= 0
}

// ParseLayerID converts a string to a LayerID.
func ParseLayerID(s string) (LayerID, bool) {
	id := LayerID(s)
	return id, id.Valid()
}

// LayerValues holds one value per layer, indexed in Layers order.
type LayerValues [NumLayers]float64

// Get returns the value for a layer. Unknown layers yield 0.
func (v LayerValues) Get(id LayerID) float64 {
	i := id.Index()
	if i < 0 {
		return 0
	}
	return v[i]
}

// Attenuation model constants.
const (
	attenuationK = 0.5 // Beer-Lambert extinction coefficient for broadleaf canopy

	understoryMin = 2.0
	understoryMax = 15.0
	floorMin      = 0.5
	floorMax      = 5.0
)

// LayerLight returns the light level (percent of incident light) reaching a layer.
// Understory is bounded to [2,15] and the forest floor to [0.5,5]; the upper
// layers are bounded only through the clamped effective penetration.
// Unknown layers return 0.
func LayerLight(id LayerID, c Controls) float64 {
	c = c.Clamped()
	eff := LightPenetration(c) / 100
	d := c.densityFactor()
	L := c.LAI

	switch id {
	case Emergent:
		return math.Max(90, 100-L*0.8) * eff
	case Canopy:
		t := math.Exp(-attenuationK * L * d)
		return (70 + 30*t) * (0.7 + 0.3*(1-d)) * eff
	case Understory:
		t := math.Exp(-attenuationK * L * d * 1.5)
		return clamp(5+10*t*eff, understoryMin, understoryMax)
	case ForestFloor:
		t := math.Exp(-attenuationK * L * d * 2)
		return clamp(1+2*t*eff, floorMin, floorMax)
	}
	return 0
}

// LayerLights evaluates LayerLight for every layer.
func LayerLights(c Controls) LayerValues {
	var out LayerValues
	for i, id := range Layers {
		out[i] = LayerLight(id, c)
	}
	return out
}

// CanopyTransmission is the fraction of light passing the canopy, exp(-k*LAI*d).
// The renderer uses it for ray blockage.
func CanopyTransmission(c Controls) float64 {
	c = c.Clamped()
	return math.Exp(-attenuationK * c.LAI * c.densityFactor())
}
