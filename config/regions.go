package config

import (
	"fmt"

	"github.com/naveeng/ndrsim/core/model"
)

// RegionConfig is the file representation of one region profile.
type RegionConfig struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Population int64   `json:"population"`
	AreaKm2    float64 `json:"area_km2"`
	Terrain    string  `json:"terrain"`
	Risk       string  `json:"risk"`
	Weight     float64 `json:"weight"`
	MajorDam   bool    `json:"major_dam"`
}

// Profile parses and validates the region into its runtime form.
func (r RegionConfig) Profile() (model.RegionProfile, error) {
	terrain, err := model.ParseTerrain(r.Terrain)
	if err != nil {
		return model.RegionProfile{}, fmt.Errorf("region %s: %w", r.Code, err)
	}
	risk, err := model.ParseRiskLevel(r.Risk)
	if err != nil {
		return model.RegionProfile{}, fmt.Errorf("region %s: %w", r.Code, err)
	}
	p := model.RegionProfile{
		Code:       r.Code,
		Name:       r.Name,
		Population: r.Population,
		AreaKm2:    r.AreaKm2,
		Terrain:    terrain,
		Risk:       risk,
		Weight:     r.Weight,
		MajorDam:   r.MajorDam,
	}
	if err := p.Validate(); err != nil {
		return model.RegionProfile{}, err
	}
	return p, nil
}

// DefaultRegions returns the built-in national map used when the
// configuration does not list any regions.
func DefaultRegions() []RegionConfig {
	return []RegionConfig{
		{Code: "KL", Name: "Kerala", Population: 35_000_000, AreaKm2: 38_863, Terrain: "COASTAL", Risk: "HIGH", Weight: 1.5, MajorDam: true},
		{Code: "MH", Name: "Maharashtra", Population: 123_000_000, AreaKm2: 307_713, Terrain: "PLAIN", Risk: "MEDIUM", Weight: 1.2, MajorDam: true},
		{Code: "UK", Name: "Uttarakhand", Population: 11_000_000, AreaKm2: 53_483, Terrain: "MOUNTAIN", Risk: "HIGH", Weight: 1.3, MajorDam: true},
		{Code: "RJ", Name: "Rajasthan", Population: 79_000_000, AreaKm2: 342_239, Terrain: "PLAIN", Risk: "LOW", Weight: 0.7},
		{Code: "AS", Name: "Assam", Population: 35_600_000, AreaKm2: 78_438, Terrain: "PLAIN", Risk: "HIGH", Weight: 1.4},
		{Code: "OD", Name: "Odisha", Population: 46_000_000, AreaKm2: 155_707, Terrain: "COASTAL", Risk: "HIGH", Weight: 1.6},
	}
}
