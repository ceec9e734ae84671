package dispatch

import (
	"github.com/naveeng/ndrsim/core/model"
	"github.com/naveeng/ndrsim/internal/simrand"
)

// Resource kind names shared with the pool configuration.
const (
	KindRescueUnits  = "rescue_units"
	KindTrucks       = "trucks"
	KindBoats        = "boats"
	KindHelicopters  = "helicopters"
	KindMedicalTeams = "medical_teams"
)

// baseRequest is the deterministic per-category step function: each kind's
// requested quantity increases at fixed severity thresholds.
func baseRequest(cat model.Category, sev int) map[string]int {
	req := make(map[string]int, 5)
	switch cat {
	case model.CategoryFlood:
		req[KindBoats] = stepped(sev, 1, 40, 2, 70, 4)
		req[KindRescueUnits] = stepped(sev, 1, 40, 3, 70, 5)
		req[KindMedicalTeams] = stepped(sev, 1, 60, 3, 101, 0)
	case model.CategoryCyclone:
		req[KindHelicopters] = stepped(sev, 1, 40, 2, 70, 3)
		req[KindRescueUnits] = stepped(sev, 2, 50, 4, 101, 0)
		req[KindMedicalTeams] = stepped(sev, 1, 50, 3, 101, 0)
		req[KindTrucks] = stepped(sev, 1, 30, 3, 101, 0)
	case model.CategoryWildfire:
		req[KindHelicopters] = stepped(sev, 1, 50, 2, 80, 4)
		req[KindRescueUnits] = stepped(sev, 2, 70, 4, 101, 0)
		req[KindMedicalTeams] = stepped(sev, 1, 60, 2, 101, 0)
	case model.CategoryEarthquake:
		req[KindRescueUnits] = stepped(sev, 2, 50, 4, 80, 6)
		req[KindMedicalTeams] = stepped(sev, 2, 50, 4, 101, 0)
		req[KindTrucks] = stepped(sev, 2, 40, 4, 101, 0)
	case model.CategoryLandslide:
		req[KindRescueUnits] = stepped(sev, 1, 60, 3, 101, 0)
		req[KindMedicalTeams] = stepped(sev, 1, 60, 2, 101, 0)
		req[KindTrucks] = stepped(sev, 1, 40, 2, 101, 0)
	default: // industrial
		req[KindMedicalTeams] = stepped(sev, 1, 50, 3, 101, 0)
		req[KindRescueUnits] = stepped(sev, 1, 60, 2, 101, 0)
	}
	for kind, n := range req {
		if n <= 0 {
			delete(req, kind)
		}
	}
	return req
}

// stepped returns low below t1, mid from t1, and high from t2. A threshold
// of 101 disables the last step.
func stepped(sev, low, t1, mid, t2, high int) int {
	switch {
	case sev >= t2:
		return high
	case sev >= t1:
		return mid
	default:
		return low
	}
}

// BuildRequest derives the resource request for a scored event. A jitter of
// ±1 unit per kind models real-world variance; it never drives an amount
// negative, and jittered-to-zero kinds are dropped from the request.
func BuildRequest(ev *model.DisasterEvent, rng *simrand.Rand) map[string]int {
	sev := ev.Severity
	if sev < 0 {
		sev = 0
	}
	req := baseRequest(ev.Category, sev)
	if rng != nil {
		for kind, n := range req {
			n += rng.IntRange(-1, 1)
			if n <= 0 {
				delete(req, kind)
				continue
			}
			req[kind] = n
		}
	}
	return req
}
