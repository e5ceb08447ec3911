package model

import "fmt"

// Truck is a snapshot of one electric truck as reported by the fleet-state
// source. It is read-only for the duration of a ranking pass.
type Truck struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	SoC         float64     `json:"soc" yaml:"soc"`                   // state of charge, percent
	SoH         float64     `json:"soh" yaml:"soh"`                   // state of health, percent
	CapacityKWh float64     `json:"capacity_kwh" yaml:"capacity_kwh"` // nameplate battery capacity
	LoadLbs     float64     `json:"load_lbs" yaml:"load_lbs"`
	Status      TruckStatus `json:"status" yaml:"status"`
	// ChargeETAMins is only set while the truck is charging.
	ChargeETAMins *int     `json:"charge_eta_mins" yaml:"charge_eta_mins"`
	RangeMiles    *float64 `json:"range_miles" yaml:"range_miles"`
}

// Validate checks the fields required to key a truck.
func (t Truck) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("truck id is required")
	}
	return nil
}

// ChargeETA returns the remaining charge time in minutes, 0 when unknown.
func (t Truck) ChargeETA() int {
	if t.ChargeETAMins == nil {
		return 0
	}
	return *t.ChargeETAMins
}

// Dispatchable reports whether the truck can be offered for dispatch at all.
// A charging truck still qualifies since it may be ready before departure.
func (t Truck) Dispatchable() bool {
	return t.Status.Is(TruckReady) || t.Status.Is(TruckCharging)
}

// UsableCapacityKWh is the nameplate capacity derated by state of health.
func (t Truck) UsableCapacityKWh() float64 {
	return t.SoH / 100 * t.CapacityKWh
}
