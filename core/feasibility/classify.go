package feasibility

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kilianp07/evfleet/core/model"
)

// DisplayClass is the mutually exclusive status shown for a truck.
type DisplayClass uint8

const (
	NoFeasibilityContext DisplayClass = iota
	Unavailable
	NeedsPrecharge
	WaitForCharge
	NeedsEnrouteCharge
	ReadyNow
	Infeasible
)

func (c DisplayClass) String() string {
	switch c {
	case Unavailable:
		return "unavailable"
	case NeedsPrecharge:
		return "needs_precharge"
	case WaitForCharge:
		return "wait_for_charge"
	case NeedsEnrouteCharge:
		return "needs_enroute_charge"
	case ReadyNow:
		return "ready_now"
	case Infeasible:
		return "infeasible"
	default:
		return "no_feasibility_context"
	}
}

func (c DisplayClass) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *DisplayClass) UnmarshalText(b []byte) error {
	for k := NoFeasibilityContext; k <= Infeasible; k++ {
		if k.String() == string(b) {
			*c = k
			return nil
		}
	}
	return fmt.Errorf("unknown display class %q", b)
}

// ClockFormat is the layout used for projected times in badge labels.
const ClockFormat = "15:04"

// Badge is the classification of one truck for the selected route.
type Badge struct {
	Class DisplayClass `json:"class"`
	// Sub is the raw truck status and only meaningful for NoFeasibilityContext.
	Sub         model.TruckStatusKind `json:"-"`
	Tier        Tier                  `json:"tier"`
	Label       string                `json:"label"`
	WaitMins    int                   `json:"wait_mins"`
	AvailableAt time.Time             `json:"available_at"`
}

type badgeJSON struct {
	Class       DisplayClass `json:"class"`
	Tier        Tier         `json:"tier"`
	Label       string       `json:"label"`
	WaitMins    int          `json:"wait_mins"`
	AvailableAt *time.Time   `json:"available_at,omitempty"`
}

// MarshalJSON omits available_at when the badge carries no projection.
func (b Badge) MarshalJSON() ([]byte, error) {
	out := badgeJSON{Class: b.Class, Tier: b.Tier, Label: b.Label, WaitMins: b.WaitMins}
	if !b.AvailableAt.IsZero() {
		out.AvailableAt = &b.AvailableAt
	}
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (b *Badge) UnmarshalJSON(data []byte) error {
	var in badgeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*b = Badge{Class: in.Class, Tier: in.Tier, Label: in.Label, WaitMins: in.WaitMins}
	if in.AvailableAt != nil {
		b.AvailableAt = *in.AvailableAt
	}
	return nil
}

// facts are the inputs a rule may look at.
type facts struct {
	truck model.Truck
	f     *model.FeasibilityResult
	wait  int
}

func (x facts) status(k model.StatusKind) bool { return x.f != nil && x.f.Status.Is(k) }

type rule struct {
	name  string
	match func(facts) bool
	class DisplayClass
}

// rules is evaluated top-down; the first match wins. Several raw conditions
// can hold at once, so the order is the precedence.
var rules = []rule{
	{"no feasibility", func(x facts) bool { return x.f == nil }, NoFeasibilityContext},
	{"not available", func(x facts) bool { return x.f != nil && x.f.NotAvailable }, Unavailable},
	{"feasible after precharge", func(x facts) bool { return x.f != nil && x.f.FeasibleAfterPrecharge }, NeedsPrecharge},
	{"green with wait", func(x facts) bool { return x.status(model.StatusGreen) && x.wait > 0 }, WaitForCharge},
	{"yellow", func(x facts) bool { return x.status(model.StatusYellow) }, NeedsEnrouteCharge},
	{"green without wait", func(x facts) bool { return x.status(model.StatusGreen) && x.wait == 0 }, ReadyNow},
	{"red", func(x facts) bool { return x.status(model.StatusRed) }, Infeasible},
}

func classOf(x facts) DisplayClass {
	for _, r := range rules {
		if r.match(x) {
			return r.class
		}
	}
	return NoFeasibilityContext
}

// Classify maps a truck and its feasibility result for the selected route
// (nil when there is none) to a badge. base is the reference time for
// projected availability.
func Classify(t model.Truck, f *model.FeasibilityResult, base time.Time) Badge {
	x := facts{truck: t, f: f, wait: TotalWaitMinutes(t, f)}
	avail := Project(base, x.wait)
	at := avail.Format(ClockFormat)
	b := Badge{Class: classOf(x), WaitMins: x.wait, AvailableAt: avail}

	switch b.Class {
	case Unavailable:
		// Not simulated: no wait and no availability projection.
		b.WaitMins, b.AvailableAt = 0, time.Time{}
		b.Tier, b.Label = TierGray, "Unavailable"
	case NeedsPrecharge:
		b.Tier, b.Label = TierAmber, fmt.Sprintf("Pre-charge — %d min (Avail. %s)", x.wait, at)
	case WaitForCharge:
		b.Tier, b.Label = TierAmber, fmt.Sprintf("Wait for Charge — %dm (Ready %s)", x.wait, at)
	case NeedsEnrouteCharge:
		b.Tier, b.Label = TierYellow, fmt.Sprintf("Needs %dm depot charge (Avail. %s)", x.wait, at)
	case ReadyNow:
		b.Tier, b.Label = TierGreen, "Ready"
	case Infeasible:
		b.Tier, b.Label = TierRed, "Infeasible"
	default:
		b.Sub = t.Status.Kind
		b.Tier, b.Label = fallbackBadge(t, f != nil, x.wait, at)
	}
	return b
}

// fallbackBadge renders the raw operational status when feasibility gives no answer.
func fallbackBadge(t model.Truck, hasFeasibility bool, wait int, at string) (Tier, string) {
	switch t.Status.Kind {
	case model.TruckReady:
		return TierGreen, "Ready"
	case model.TruckCharging:
		if !hasFeasibility {
			return TierAmber, fmt.Sprintf("Charging — Full in %dm (%s)", wait, at)
		}
		return TierAmber, fmt.Sprintf("Charging — %d min (Avail. %s)", wait, at)
	case model.TruckMaintenance:
		return TierRed, "Maintenance"
	default:
		return TierGray, t.Status.String()
	}
}
