package model

import "fmt"

// Stop is an intermediate stop along a route.
type Stop struct {
	MileMarker   float64  `json:"mile_marker" yaml:"mile_marker"`
	UnloadLbs    float64  `json:"unload_lbs" yaml:"unload_lbs"`
	PickupLbs    float64  `json:"pickup_lbs" yaml:"pickup_lbs"`
	HasCharger   bool     `json:"has_charger" yaml:"has_charger"`
	ChargeRateKW *float64 `json:"charge_rate_kw" yaml:"charge_rate_kw"`
}

// ChargingStation is a public charger along the route.
type ChargingStation struct {
	MileMarker   float64 `json:"mile_marker" yaml:"mile_marker"`
	ChargeRateKW float64 `json:"charge_rate_kw" yaml:"charge_rate_kw"`
}

// Route is a candidate delivery route.
type Route struct {
	ID                string            `json:"id" yaml:"id"`
	Name              string            `json:"name" yaml:"name"`
	DistanceMiles     float64           `json:"distance_miles" yaml:"distance_miles"`
	ElevationGainFt   float64           `json:"elevation_gain_ft" yaml:"elevation_gain_ft"`
	LoadLbs           float64           `json:"load_lbs" yaml:"load_lbs"`
	Priority          RoutePriority     `json:"priority" yaml:"priority"`
	TerrainMultiplier float64           `json:"terrain_multiplier" yaml:"terrain_multiplier"`
	BaseConsumption   float64           `json:"base_consumption" yaml:"base_consumption"` // kWh per mile
	Stops             []Stop            `json:"stops" yaml:"stops"`
	ChargingStations  []ChargingStation `json:"charging_stations" yaml:"charging_stations"`
}

// Validate checks the fields required to key a route.
func (r Route) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("route id is required")
	}
	return nil
}

// ChargerCount counts dedicated charging stations plus stops equipped with a charger.
func (r Route) ChargerCount() int {
	n := len(r.ChargingStations)
	for _, s := range r.Stops {
		if s.HasCharger {
			n++
		}
	}
	return n
}
