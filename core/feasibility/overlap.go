package feasibility

import (
	"fmt"

	"github.com/kilianp07/evfleet/core/model"
)

// DwellMinutes is the fixed load/unload time assumed at a stop where cargo changes.
const DwellMinutes = 30

// OverlapMinutes sums, over legs that used a charger and changed cargo, the
// part of the charge session absorbed by the dwell.
func OverlapMinutes(legs []model.LegDetail) int {
	total := 0
	for _, l := range legs {
		if !l.UsedCharger || !l.CargoChanges() {
			continue
		}
		total += max(0, min(DwellMinutes, l.ChargeTimeMins))
	}
	return total
}

// NetChargeMinutes is the charge time the trip actually adds once dwell
// overlap is removed. It is never negative.
func NetChargeMinutes(f model.FeasibilityResult) int {
	charge := f.ChargeTime()
	if charge <= 0 {
		return 0
	}
	return max(0, charge-OverlapMinutes(f.LegDetails))
}

// SplitHoursMinutes decomposes a duration in minutes.
func SplitHoursMinutes(mins int) (hours, rest int) {
	return mins / 60, mins % 60
}

// FormatHoursMinutes renders mins as "1h 5m".
func FormatHoursMinutes(mins int) string {
	h, m := SplitHoursMinutes(mins)
	return fmt.Sprintf("%dh %dm", h, m)
}

// ChargeAddedLabel renders the net added charge time, e.g. "+0h 20m added".
// ok is false when the trip needs no charge.
func ChargeAddedLabel(f model.FeasibilityResult) (string, bool) {
	if f.NoChargeNeeded || f.ChargeTime() <= 0 {
		return "", false
	}
	return "+" + FormatHoursMinutes(NetChargeMinutes(f)) + " added", true
}

// LegDwellLabel describes the cargo activity at the end of a leg.
func LegDwellLabel(l model.LegDetail) string {
	switch {
	case l.UnloadLbs > 0 && l.PickupLbs > 0:
		return "30m un/load"
	case l.UnloadLbs > 0:
		return "30m unld"
	case l.PickupLbs > 0:
		return "30m pkup"
	default:
		return "—"
	}
}
