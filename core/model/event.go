package model

import (
	"fmt"
	"time"
)

// Category identifies the kind of disaster an event describes.
type Category int

const (
	CategoryFlood Category = iota
	CategoryCyclone
	CategoryWildfire
	CategoryLandslide
	CategoryEarthquake
	CategoryIndustrial
)

// Categories lists every known category in declaration order.
var Categories = []Category{
	CategoryFlood,
	CategoryCyclone,
	CategoryWildfire,
	CategoryLandslide,
	CategoryEarthquake,
	CategoryIndustrial,
}

// String returns a human-readable representation of the category.
func (c Category) String() string {
	switch c {
	case CategoryFlood:
		return "FLOOD"
	case CategoryCyclone:
		return "CYCLONE"
	case CategoryWildfire:
		return "WILDFIRE"
	case CategoryLandslide:
		return "LANDSLIDE"
	case CategoryEarthquake:
		return "EARTHQUAKE"
	case CategoryIndustrial:
		return "INDUSTRIAL"
	default:
		return "unknown"
	}
}

// ParseCategory converts a category name into its Category value.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// SeverityUnscored marks an event the coordinator has not processed yet.
const SeverityUnscored = -1

// DisasterEvent is one simulated incident. It is created by a regional
// source, scored exactly once by the coordinator and then consumed by the
// dispatcher; ownership transfers strictly along that pipeline, so the
// struct carries no locking.
type DisasterEvent struct {
	ID       string
	Category Category
	Region   string    // origin region code
	Created  time.Time // creation timestamp, tie-break key for dispatch order

	// Severity inputs, immutable once the event is created.
	Population    int64   // people affected, unbounded
	InfraDamage   int     // infrastructure damage level 0-100
	Accessibility int     // accessibility difficulty 0-100
	SpreadRate    float64 // unit depends on category
	CascadingRisk int     // cascading risk level 0-100

	// Severity is SeverityUnscored until the coordinator sets it (0-100).
	Severity int
}

// Scored reports whether the coordinator has assigned a severity score.
func (e *DisasterEvent) Scored() bool {
	return e != nil && e.Severity >= 0
}

// Factors returns the clamped severity inputs used by the scoring rules.
func (e *DisasterEvent) Factors() SeverityFactors {
	return NewSeverityFactors(e.Population, e.InfraDamage, e.Accessibility, e.SpreadRate, e.CascadingRisk)
}

func (e *DisasterEvent) String() string {
	return fmt.Sprintf("%s sev=%d %s region=%s", e.ID, e.Severity, e.Category, e.Region)
}
