package feasibility

import "github.com/kilianp07/evfleet/core/model"

// CardTier is the accent of a truck card. It differs from the badge tier: a
// green trip that still has to wait, or any pre-charge trip, is amber.
func CardTier(t model.Truck, f *model.FeasibilityResult) Tier {
	if f == nil || f.NotAvailable {
		return TierGray
	}
	if f.FeasibleAfterPrecharge || (f.Status.Is(model.StatusGreen) && TotalWaitMinutes(t, f) > 0) {
		return TierAmber
	}
	return statusTier(f.Status)
}

func statusTier(s model.FeasibilityStatus) Tier {
	switch s.Kind {
	case model.StatusGreen:
		return TierGreen
	case model.StatusYellow:
		return TierYellow
	case model.StatusRed:
		return TierRed
	default:
		return TierGray
	}
}

// SoCBand buckets a state of charge: above 50 green, from 20 yellow, else red.
func SoCBand(soc float64) Tier {
	switch {
	case soc > 50:
		return TierGreen
	case soc >= 20:
		return TierYellow
	default:
		return TierRed
	}
}

// EnergyShare is the energy the route requires as a percentage of the truck's
// usable capacity. ok is false when the capacity is unknown.
func EnergyShare(t model.Truck, f model.FeasibilityResult) (float64, bool) {
	usable := t.UsableCapacityKWh()
	if usable <= 0 {
		return 0, false
	}
	return f.EnergyRequiredKWh / usable * 100, true
}

// CanDispatch reports whether the dispatch action is offered for the truck on
// the selected route.
func CanDispatch(t model.Truck, f *model.FeasibilityResult) bool {
	return f != nil && !f.NotAvailable && t.Dispatchable() && !f.Status.Is(model.StatusRed)
}
