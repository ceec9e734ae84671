package model

import "fmt"

// Terrain classifies a region's dominant terrain.
type Terrain int

const (
	TerrainPlain Terrain = iota
	TerrainHilly
	TerrainCoastal
	TerrainForest
	TerrainMountain
)

func (t Terrain) String() string {
	switch t {
	case TerrainPlain:
		return "PLAIN"
	case TerrainHilly:
		return "HILLY"
	case TerrainCoastal:
		return "COASTAL"
	case TerrainForest:
		return "FOREST"
	case TerrainMountain:
		return "MOUNTAIN"
	default:
		return "unknown"
	}
}

// ParseTerrain converts a terrain name into its Terrain value.
func ParseTerrain(s string) (Terrain, error) {
	for _, t := range []Terrain{TerrainPlain, TerrainHilly, TerrainCoastal, TerrainForest, TerrainMountain} {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown terrain %q", s)
}

// RiskLevel is a region's baseline disaster risk.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
)

func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "LOW"
	case RiskMedium:
		return "MEDIUM"
	case RiskHigh:
		return "HIGH"
	default:
		return "unknown"
	}
}

// ParseRiskLevel converts a risk name into its RiskLevel value.
func ParseRiskLevel(s string) (RiskLevel, error) {
	for _, r := range []RiskLevel{RiskLow, RiskMedium, RiskHigh} {
		if r.String() == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown risk level %q", s)
}

// RegionProfile is the read-only description of one region. It is supplied
// at startup and never mutated by the core.
type RegionProfile struct {
	Code       string
	Name       string
	Population int64
	AreaKm2    float64
	Terrain    Terrain
	Risk       RiskLevel

	// Weight scales the region's event-generation interval. Regions with a
	// higher weight produce events more often.
	Weight float64

	// MajorDam marks critical infrastructure that raises cascading risk.
	MajorDam bool
}

// Validate checks that the profile is usable by an event source.
func (p RegionProfile) Validate() error {
	if p.Code == "" {
		return fmt.Errorf("region code is required")
	}
	if p.Name == "" {
		return fmt.Errorf("region name is required")
	}
	if p.Population < 0 {
		return fmt.Errorf("region %s: population must be >= 0", p.Code)
	}
	if p.Weight < 0 {
		return fmt.Errorf("region %s: weight must be >= 0", p.Code)
	}
	return nil
}

// PopulationDensity returns inhabitants per square kilometer, or zero when
// the area is unknown.
func (p RegionProfile) PopulationDensity() float64 {
	if p.AreaKm2 <= 0 {
		return 0
	}
	return float64(p.Population) / p.AreaKm2
}
