package feasibility

import (
	"time"

	"github.com/kilianp07/evfleet/core/model"
)

// Project returns base shifted by offsetMinutes.
func Project(base time.Time, offsetMinutes int) time.Time {
	return base.Add(time.Duration(offsetMinutes) * time.Minute)
}

// TotalWaitMinutes is the time before a truck can leave the depot: the
// remainder of its current charge session plus any required pre-charge.
// A nil result contributes no pre-charge.
func TotalWaitMinutes(t model.Truck, f *model.FeasibilityResult) int {
	wait := t.ChargeETA()
	if f != nil {
		wait += f.PrechargeTime()
	}
	return wait
}

// ProjectAvailability returns the time at which the truck becomes available.
func ProjectAvailability(t model.Truck, f *model.FeasibilityResult, base time.Time) time.Time {
	return Project(base, TotalWaitMinutes(t, f))
}

// Transit is the projected departure and arrival of a trip.
type Transit struct {
	DepartAt time.Time `json:"depart_at"`
	ArriveAt time.Time `json:"arrive_at"`
	TripMins int       `json:"trip_mins"`
}

// ProjectTransit projects departure and arrival. ok is false when the result
// carries no trip time estimate.
func ProjectTransit(t model.Truck, f *model.FeasibilityResult, base time.Time) (Transit, bool) {
	if f == nil || f.EstimatedTripTimeMins == nil {
		return Transit{}, false
	}
	trip := *f.EstimatedTripTimeMins
	depart := Project(base, TotalWaitMinutes(t, f))
	return Transit{DepartAt: depart, ArriveAt: Project(depart, trip), TripMins: trip}, true
}
