package model

import "fmt"

// LegDetail describes one segment of a simulated trip.
type LegDetail struct {
	LegNumber      int     `json:"leg_number" yaml:"leg_number"`
	DistanceMiles  float64 `json:"distance_miles" yaml:"distance_miles"`
	StartSoC       float64 `json:"start_soc" yaml:"start_soc"`
	EndSoC         float64 `json:"end_soc" yaml:"end_soc"`
	StartLoadLbs   float64 `json:"start_load_lbs" yaml:"start_load_lbs"`
	EndLoadLbs     float64 `json:"end_load_lbs" yaml:"end_load_lbs"`
	PickupLbs      float64 `json:"pickup_lbs" yaml:"pickup_lbs"`
	UnloadLbs      float64 `json:"unload_lbs" yaml:"unload_lbs"`
	UsedCharger    bool    `json:"used_charger" yaml:"used_charger"`
	ChargeAddedKWh float64 `json:"charge_added_kwh" yaml:"charge_added_kwh"`
	ChargeTimeMins int     `json:"charge_time_mins" yaml:"charge_time_mins"`

	EndLocationName string `json:"end_location_name,omitempty" yaml:"end_location_name,omitempty"`
	EndHasCharger   bool   `json:"end_has_charger,omitempty" yaml:"end_has_charger,omitempty"`
}

// CargoChanges reports whether cargo is loaded or unloaded at the end of the leg.
func (l LegDetail) CargoChanges() bool {
	return l.UnloadLbs > 0 || l.PickupLbs > 0
}

// FeasibilityResult is the externally computed outcome of running one truck
// on one route. ArrivalSoC may be negative to signal the size of a shortfall.
type FeasibilityResult struct {
	TruckID           string            `json:"truck_id" yaml:"truck_id"`
	Status            FeasibilityStatus `json:"status" yaml:"status"`
	ArrivalSoC        float64           `json:"arrival_soc" yaml:"arrival_soc"`
	EnergyRequiredKWh float64           `json:"energy_required_kwh" yaml:"energy_required_kwh"`
	ChargeTimeMins    *int              `json:"charge_time_mins" yaml:"charge_time_mins"`
	StopsRequired     int               `json:"stops_required" yaml:"stops_required"`
	NoChargeNeeded    bool              `json:"no_charge_needed" yaml:"no_charge_needed"`
	// NotAvailable marks a truck excluded from the simulation, e.g. in maintenance.
	NotAvailable bool `json:"not_available" yaml:"not_available"`
	// FeasibleAfterPrecharge marks a trip that only works after a depot charge.
	FeasibleAfterPrecharge bool        `json:"feasible_after_precharge" yaml:"feasible_after_precharge"`
	PrechargeMins          *int        `json:"precharge_mins" yaml:"precharge_mins"`
	PrechargeKWh           *float64    `json:"precharge_kwh" yaml:"precharge_kwh"`
	EnergyCostEstimate     *float64    `json:"energy_cost_estimate" yaml:"energy_cost_estimate"`
	EstimatedTripTimeMins  *int        `json:"estimated_trip_time_mins" yaml:"estimated_trip_time_mins"`
	LegDetails             []LegDetail `json:"leg_details" yaml:"leg_details"`
}

// Validate checks the fields required to key a result.
func (f FeasibilityResult) Validate() error {
	if f.TruckID == "" {
		return fmt.Errorf("feasibility result without truck_id")
	}
	return nil
}

// ChargeTime returns the total added charge time, 0 when unknown.
func (f FeasibilityResult) ChargeTime() int {
	if f.ChargeTimeMins == nil {
		return 0
	}
	return *f.ChargeTimeMins
}

// PrechargeTime returns the depot pre-charge time, 0 when unknown.
func (f FeasibilityResult) PrechargeTime() int {
	if f.PrechargeMins == nil {
		return 0
	}
	return *f.PrechargeMins
}
