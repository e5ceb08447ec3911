package feasibility

import "fmt"

// Tier is the color hint attached to a classification.
type Tier uint8

const (
	TierGray Tier = iota
	TierGreen
	TierAmber
	TierYellow
	TierRed
)

func (t Tier) String() string {
	switch t {
	case TierGreen:
		return "green"
	case TierAmber:
		return "amber"
	case TierYellow:
		return "yellow"
	case TierRed:
		return "red"
	default:
		return "gray"
	}
}

func (t Tier) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Tier) UnmarshalText(b []byte) error {
	for c := TierGray; c <= TierRed; c++ {
		if c.String() == string(b) {
			*t = c
			return nil
		}
	}
	return fmt.Errorf("unknown tier %q", b)
}
