package scenarios

import (
	"fmt"

	"github.com/kilianp07/evfleet/core/board"
	"github.com/kilianp07/evfleet/core/feasibility"
)

// Run builds the board for the scenario route and returns every failed
// expectation.
func Run(sc *Scenario) ([]string, error) {
	snap, err := sc.Snapshot()
	if err != nil {
		return nil, err
	}
	v := board.Build(snap, board.Select(sc.Route.ID))
	cards := make(map[string]board.TruckCard, len(v.Trucks))
	for _, c := range v.Trucks {
		cards[c.Truck.ID] = c
	}

	var fails []string
	failf := func(format string, args ...any) { fails = append(fails, fmt.Sprintf(format, args...)) }

	if exp := sc.Expected.Order; len(exp) > 0 {
		got := make([]string, len(v.Trucks))
		for i, c := range v.Trucks {
			got[i] = c.Truck.ID
		}
		if fmt.Sprint(got) != fmt.Sprint(exp) {
			failf("order: want %v, got %v", exp, got)
		}
	}
	if exp := sc.Expected.BestMatch; exp != nil && *exp != v.BestMatchID {
		failf("best match: want %q, got %q", *exp, v.BestMatchID)
	}
	for id, want := range sc.Expected.Classes {
		c, ok := cards[id]
		if !ok {
			failf("class: truck %s not on the board", id)
			continue
		}
		if got := c.Badge.Class.String(); got != want {
			failf("class %s: want %s, got %s", id, want, got)
		}
	}
	for id, want := range sc.Expected.AvailableAt {
		if got := cards[id].Badge.AvailableAt.Format(feasibility.ClockFormat); got != want {
			failf("available at %s: want %s, got %s", id, want, got)
		}
	}
	for id, want := range sc.Expected.NetChargeMins {
		if got := cards[id].NetChargeMins; got != want {
			failf("net charge %s: want %d, got %d", id, want, got)
		}
	}
	if exp := sc.Expected.Summary; exp != nil {
		var got feasibility.Summary
		if v.FleetSummary != nil {
			got = *v.FleetSummary
		}
		if got != *exp {
			failf("summary: want %+v, got %+v", *exp, got)
		}
	}
	return fails, nil
}
