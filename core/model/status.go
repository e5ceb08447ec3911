package model

import (
	"encoding/json"
	"fmt"
)

// StatusKind is the recognised set of feasibility outcomes reported by the
// feasibility service.
type StatusKind uint8

const (
	// StatusUnrecognized covers any value outside green, yellow and red.
	StatusUnrecognized StatusKind = iota
	StatusGreen
	StatusYellow
	StatusRed
)

// FeasibilityStatus is the closed form of the service's status string. The raw
// value is retained so unrecognized statuses can still be displayed.
type FeasibilityStatus struct {
	Kind StatusKind
	Raw  string
}

var (
	Green  = FeasibilityStatus{Kind: StatusGreen, Raw: "green"}
	Yellow = FeasibilityStatus{Kind: StatusYellow, Raw: "yellow"}
	Red    = FeasibilityStatus{Kind: StatusRed, Raw: "red"}
)

// ParseFeasibilityStatus maps s to its variant. It never fails.
func ParseFeasibilityStatus(s string) FeasibilityStatus {
	switch s {
	case "green":
		return Green
	case "yellow":
		return Yellow
	case "red":
		return Red
	default:
		return FeasibilityStatus{Kind: StatusUnrecognized, Raw: s}
	}
}

func (s FeasibilityStatus) String() string { return s.Raw }

// Is reports whether the status is of the given kind.
func (s FeasibilityStatus) Is(k StatusKind) bool { return s.Kind == k }

func (s FeasibilityStatus) MarshalJSON() ([]byte, error) { return json.Marshal(s.Raw) }

func (s *FeasibilityStatus) UnmarshalJSON(b []byte) error {
	raw, err := decodeEnumString(b)
	if err != nil {
		return fmt.Errorf("feasibility status: %w", err)
	}
	*s = ParseFeasibilityStatus(raw)
	return nil
}

func (s FeasibilityStatus) MarshalYAML() (any, error) { return s.Raw, nil }

func (s *FeasibilityStatus) UnmarshalYAML(unmarshal func(any) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	*s = ParseFeasibilityStatus(raw)
	return nil
}

// TruckStatusKind is the recognised set of operational truck states.
type TruckStatusKind uint8

const (
	TruckOther TruckStatusKind = iota
	TruckReady
	TruckCharging
	TruckMaintenance
)

// TruckStatus is the closed form of a truck's operational status.
type TruckStatus struct {
	Kind TruckStatusKind
	Raw  string
}

var (
	Ready       = TruckStatus{Kind: TruckReady, Raw: "ready"}
	Charging    = TruckStatus{Kind: TruckCharging, Raw: "charging"}
	Maintenance = TruckStatus{Kind: TruckMaintenance, Raw: "maintenance"}
)

// ParseTruckStatus maps s to its variant. It never fails.
func ParseTruckStatus(s string) TruckStatus {
	switch s {
	case "ready":
		return Ready
	case "charging":
		return Charging
	case "maintenance":
		return Maintenance
	default:
		return TruckStatus{Kind: TruckOther, Raw: s}
	}
}

func (s TruckStatus) String() string { return s.Raw }

func (s TruckStatus) Is(k TruckStatusKind) bool { return s.Kind == k }

func (s TruckStatus) MarshalJSON() ([]byte, error) { return json.Marshal(s.Raw) }

func (s *TruckStatus) UnmarshalJSON(b []byte) error {
	raw, err := decodeEnumString(b)
	if err != nil {
		return fmt.Errorf("truck status: %w", err)
	}
	*s = ParseTruckStatus(raw)
	return nil
}

func (s TruckStatus) MarshalYAML() (any, error) { return s.Raw, nil }

func (s *TruckStatus) UnmarshalYAML(unmarshal func(any) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	*s = ParseTruckStatus(raw)
	return nil
}

// PriorityKind classifies route urgency.
type PriorityKind uint8

const (
	PriorityOther PriorityKind = iota
	PriorityUrgent
	PriorityStandard
)

// RoutePriority is the closed form of a route's priority.
type RoutePriority struct {
	Kind PriorityKind
	Raw  string
}

var (
	Urgent   = RoutePriority{Kind: PriorityUrgent, Raw: "urgent"}
	Standard = RoutePriority{Kind: PriorityStandard, Raw: "standard"}
)

func ParseRoutePriority(s string) RoutePriority {
	switch s {
	case "urgent":
		return Urgent
	case "standard":
		return Standard
	default:
		return RoutePriority{Kind: PriorityOther, Raw: s}
	}
}

func (p RoutePriority) String() string { return p.Raw }

func (p RoutePriority) MarshalJSON() ([]byte, error) { return json.Marshal(p.Raw) }

func (p *RoutePriority) UnmarshalJSON(b []byte) error {
	raw, err := decodeEnumString(b)
	if err != nil {
		return fmt.Errorf("route priority: %w", err)
	}
	*p = ParseRoutePriority(raw)
	return nil
}

func (p RoutePriority) MarshalYAML() (any, error) { return p.Raw, nil }

func (p *RoutePriority) UnmarshalYAML(unmarshal func(any) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	*p = ParseRoutePriority(raw)
	return nil
}

// decodeEnumString accepts a JSON string or null. null decodes to "".
func decodeEnumString(b []byte) (string, error) {
	if string(b) == "null" {
		return "", nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return "", err
	}
	return raw, nil
}
