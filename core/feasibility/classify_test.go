package feasibility

import (
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/evfleet/core/model"
)

func TestClassifyPrecedence(t *testing.T) {
	charging := truck("T-03", model.Charging)
	charging.ChargeETAMins = intp(20)

	tests := []struct {
		name  string
		truck model.Truck
		f     *model.FeasibilityResult
		class DisplayClass
		tier  Tier
		label string
	}{
		{"no result", truck("T-01", model.Ready), nil, NoFeasibilityContext, TierGreen, "Ready"},
		{"unavailable beats precharge", truck("T-05", model.Maintenance),
			&model.FeasibilityResult{Status: model.Green, NotAvailable: true, FeasibleAfterPrecharge: true},
			Unavailable, TierGray, "Unavailable"},
		{"precharge beats yellow", truck("T-01", model.Ready),
			&model.FeasibilityResult{Status: model.Yellow, FeasibleAfterPrecharge: true, PrechargeMins: intp(30)},
			NeedsPrecharge, TierAmber, "Pre-charge — 30 min (Avail. 12:30)"},
		{"precharge beats red", truck("T-01", model.Ready),
			&model.FeasibilityResult{Status: model.Red, FeasibleAfterPrecharge: true},
			NeedsPrecharge, TierAmber, "Pre-charge — 0 min (Avail. 12:00)"},
		{"green with charge wait", charging,
			&model.FeasibilityResult{Status: model.Green},
			WaitForCharge, TierAmber, "Wait for Charge — 20m (Ready 12:20)"},
		{"yellow", truck("T-02", model.Ready),
			&model.FeasibilityResult{Status: model.Yellow},
			NeedsEnrouteCharge, TierYellow, "Needs 0m depot charge (Avail. 12:00)"},
		{"yellow while charging", charging,
			&model.FeasibilityResult{Status: model.Yellow},
			NeedsEnrouteCharge, TierYellow, "Needs 20m depot charge (Avail. 12:20)"},
		{"green ready", truck("T-04", model.Ready),
			&model.FeasibilityResult{Status: model.Green, NoChargeNeeded: true},
			ReadyNow, TierGreen, "Ready"},
		{"red", truck("T-04", model.Ready),
			&model.FeasibilityResult{Status: model.Red},
			Infeasible, TierRed, "Infeasible"},
		{"unknown status on charging truck", charging,
			&model.FeasibilityResult{Status: model.ParseFeasibilityStatus("pending")},
			NoFeasibilityContext, TierAmber, "Charging — 20 min (Avail. 12:20)"},
		{"unknown status on maintenance truck", truck("T-05", model.Maintenance),
			&model.FeasibilityResult{Status: model.ParseFeasibilityStatus("")},
			NoFeasibilityContext, TierRed, "Maintenance"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Classify(tt.truck, tt.f, noon)
			assert.Equal(t, tt.class, b.Class)
			assert.Equal(t, tt.tier, b.Tier)
			assert.Equal(t, tt.label, b.Label)
		})
	}
}

func TestClassifyNoContextSubclasses(t *testing.T) {
	charging := truck("T-03", model.Charging)
	charging.ChargeETAMins = intp(47)
	b := Classify(charging, nil, noon)
	assert.Equal(t, NoFeasibilityContext, b.Class)
	assert.Equal(t, model.TruckCharging, b.Sub)
	assert.Equal(t, "Charging — Full in 47m (12:47)", b.Label)

	b = Classify(truck("T-09", model.ParseTruckStatus("in_transit")), nil, noon)
	assert.Equal(t, model.TruckOther, b.Sub)
	assert.Equal(t, TierGray, b.Tier)
	assert.Equal(t, "in_transit", b.Label)
}

func TestClassifyPrechargeScenario(t *testing.T) {
	f := &model.FeasibilityResult{TruckID: "T-01", Status: model.Red, FeasibleAfterPrecharge: true, PrechargeMins: intp(45)}
	b := Classify(truck("T-01", model.Ready), f, noon)
	assert.Equal(t, NeedsPrecharge, b.Class)
	assert.Equal(t, 45, b.WaitMins)
	assert.Equal(t, time.Date(2025, 3, 4, 12, 45, 0, 0, time.UTC), b.AvailableAt)
}

func TestClassifyNegativeWaitFallsThrough(t *testing.T) {
	tr := truck("T-01", model.Ready)
	tr.ChargeETAMins = intp(-5)
	b := Classify(tr, &model.FeasibilityResult{TruckID: "T-01", Status: model.Green}, noon)
	assert.Equal(t, NoFeasibilityContext, b.Class)
	assert.Equal(t, "Ready", b.Label)
	assert.Equal(t, -5, b.WaitMins)
}

func TestClassifyUnavailableHasNoProjection(t *testing.T) {
	tr := truck("T-05", model.Charging)
	tr.ChargeETAMins = intp(20)
	f := &model.FeasibilityResult{TruckID: "T-05", Status: model.Green, NotAvailable: true, PrechargeMins: intp(30)}
	b := Classify(tr, f, noon)
	assert.Equal(t, Unavailable, b.Class)
	assert.Zero(t, b.WaitMins)
	assert.True(t, b.AvailableAt.IsZero())

	raw, err := json.Marshal(b)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "available_at")
}

// Each rule must agree with the class returned when it is the first to match.
func TestClassifyFirstMatchingRuleWins(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 1000; i++ {
		tr := truck("T-01", model.ParseTruckStatus([]string{"ready", "charging", "maintenance", "x"}[rng.Intn(4)]))
		if rng.Intn(2) == 0 {
			tr.ChargeETAMins = intp(rng.Intn(3) * 15)
		}
		var f *model.FeasibilityResult
		if rng.Intn(8) > 0 {
			f = &model.FeasibilityResult{
				Status:                 randomStatuses[rng.Intn(len(randomStatuses))],
				NotAvailable:           rng.Intn(4) == 0,
				FeasibleAfterPrecharge: rng.Intn(4) == 0,
			}
			if rng.Intn(2) == 0 {
				f.PrechargeMins = intp(rng.Intn(2) * 30)
			}
		}
		x := facts{truck: tr, f: f, wait: TotalWaitMinutes(tr, f)}
		var matched []DisplayClass
		for _, r := range rules {
			if r.match(x) {
				matched = append(matched, r.class)
			}
		}
		b := Classify(tr, f, noon)
		if len(matched) == 0 {
			assert.Equal(t, NoFeasibilityContext, b.Class)
			continue
		}
		require.Equal(t, matched[0], b.Class, "iteration %d", i)
	}
}

func TestDisplayClassString(t *testing.T) {
	names := map[DisplayClass]string{
		NoFeasibilityContext: "no_feasibility_context",
		Unavailable:          "unavailable",
		NeedsPrecharge:       "needs_precharge",
		WaitForCharge:        "wait_for_charge",
		NeedsEnrouteCharge:   "needs_enroute_charge",
		ReadyNow:             "ready_now",
		Infeasible:           "infeasible",
	}
	for c, n := range names {
		assert.Equal(t, n, c.String())
	}
}

func TestCardTier(t *testing.T) {
	ready := truck("T-01", model.Ready)
	assert.Equal(t, TierGray, CardTier(ready, nil))
	assert.Equal(t, TierGray, CardTier(ready, &model.FeasibilityResult{Status: model.Green, NotAvailable: true}))
	assert.Equal(t, TierAmber, CardTier(ready, &model.FeasibilityResult{Status: model.Red, FeasibleAfterPrecharge: true}))
	assert.Equal(t, TierAmber, CardTier(ready, &model.FeasibilityResult{Status: model.Green, PrechargeMins: intp(5)}))
	assert.Equal(t, TierGreen, CardTier(ready, &model.FeasibilityResult{Status: model.Green}))
	assert.Equal(t, TierYellow, CardTier(ready, &model.FeasibilityResult{Status: model.Yellow}))
	assert.Equal(t, TierRed, CardTier(ready, &model.FeasibilityResult{Status: model.Red}))
	assert.Equal(t, TierGray, CardTier(ready, &model.FeasibilityResult{Status: model.ParseFeasibilityStatus("?")}))
}

func TestSoCBand(t *testing.T) {
	assert.Equal(t, TierGreen, SoCBand(50.1))
	assert.Equal(t, TierYellow, SoCBand(50))
	assert.Equal(t, TierYellow, SoCBand(20))
	assert.Equal(t, TierRed, SoCBand(19.9))
	assert.Equal(t, TierRed, SoCBand(-3))
}

func TestEnergyShareAndDispatch(t *testing.T) {
	tr := truck("T-01", model.Ready)
	tr.SoH, tr.CapacityKWh = 80, 500
	share, ok := EnergyShare(tr, model.FeasibilityResult{EnergyRequiredKWh: 100})
	assert.True(t, ok)
	assert.InDelta(t, 25, share, 1e-9)

	_, ok = EnergyShare(model.Truck{}, model.FeasibilityResult{EnergyRequiredKWh: 100})
	assert.False(t, ok)

	assert.True(t, CanDispatch(tr, &model.FeasibilityResult{Status: model.Yellow}))
	assert.False(t, CanDispatch(tr, &model.FeasibilityResult{Status: model.Red}))
	assert.False(t, CanDispatch(tr, &model.FeasibilityResult{Status: model.Green, NotAvailable: true}))
	assert.False(t, CanDispatch(tr, nil))
	assert.False(t, CanDispatch(truck("T-05", model.Maintenance), &model.FeasibilityResult{Status: model.Green}))
}

func TestBadgeTextEncoding(t *testing.T) {
	for c := NoFeasibilityContext; c <= Infeasible; c++ {
		b, err := c.MarshalText()
		require.NoError(t, err)
		var back DisplayClass
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, c, back)
	}
	var tier Tier
	require.NoError(t, tier.UnmarshalText([]byte("amber")))
	assert.Equal(t, TierAmber, tier)
	assert.Error(t, tier.UnmarshalText([]byte("purple")))
}
