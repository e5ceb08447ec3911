package model

import "time"

// DispatchOrder assigns a truck to a route.
type DispatchOrder struct {
	OrderID  string    `json:"order_id" yaml:"order_id"`
	TruckID  string    `json:"truck_id" yaml:"truck_id"`
	RouteID  string    `json:"route_id" yaml:"route_id"`
	IssuedAt time.Time `json:"issued_at" yaml:"issued_at"`
}
