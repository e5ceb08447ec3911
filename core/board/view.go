package board

import (
	"github.com/kilianp07/evfleet/core/feasibility"
	"github.com/kilianp07/evfleet/core/model"
)

// RankingHint explains the ordering of a ranked board.
const RankingHint = "Ranked by: no charge needed → least charge time → highest arrival SoC"

// RouteCard is a route with its fleet compatibility tally.
type RouteCard struct {
	Route        model.Route `json:"route"`
	ChargerCount int         `json:"charger_count"`
	// Summary is nil when the route has no results.
	Summary  *feasibility.Summary `json:"summary"`
	Selected bool                 `json:"selected"`
}

// LegRow is one row of a truck's leg table.
type LegRow struct {
	model.LegDetail
	Dwell string `json:"dwell"`
}

// TruckCard is a truck as presented for the selected route.
type TruckCard struct {
	Truck     model.Truck       `json:"truck"`
	Badge     feasibility.Badge `json:"badge"`
	CardTier  feasibility.Tier  `json:"card_tier"`
	SoCBand   feasibility.Tier  `json:"soc_band"`
	BestMatch bool              `json:"best_match"`
	// Dispatchable is the raw operational eligibility of the truck.
	Dispatchable bool `json:"dispatchable"`
	// CanDispatch also accounts for the selected route's result.
	CanDispatch bool `json:"can_dispatch"`

	Feasibility   *model.FeasibilityResult `json:"feasibility,omitempty"`
	NetChargeMins int                      `json:"net_charge_mins"`
	ChargeAdded   string                   `json:"charge_added,omitempty"`
	EnergyShare   *float64                 `json:"energy_share_pct,omitempty"`
	Transit       *feasibility.Transit     `json:"transit,omitempty"`
	Legs          []LegRow                 `json:"legs,omitempty"`
}

// View is the complete board for one selection.
type View struct {
	SelectedRouteID string               `json:"selected_route_id,omitempty"`
	Routes          []RouteCard          `json:"routes"`
	Trucks          []TruckCard          `json:"trucks"`
	BestMatchID     string               `json:"best_match_id,omitempty"`
	FleetSummary    *feasibility.Summary `json:"fleet_summary,omitempty"`
	FleetStats      *feasibility.Stats   `json:"fleet_stats,omitempty"`
	RankingHint     string               `json:"ranking_hint,omitempty"`
}

// Build recomputes the whole board from s for the given selection. An
// unknown route ID is treated as no selection.
func Build(s Snapshot, sel Selection) View {
	routeID, selected := sel.RouteID()
	if selected {
		if _, ok := s.Route(routeID); !ok {
			routeID, selected = "", false
		}
	}

	v := View{SelectedRouteID: routeID, Routes: routeCards(s, routeID)}
	ix := s.Index(routeID)
	ranked := feasibility.Rank(s.Trucks, ix, selected)
	best, hasBest := feasibility.BestMatch(ranked, ix, selected)
	if hasBest {
		v.BestMatchID = best
	}
	if selected {
		if results := ix.Results(); len(results) > 0 {
			sum := feasibility.Summarize(results)
			st := feasibility.FleetStats(results)
			v.FleetSummary, v.FleetStats = &sum, &st
		}
		if len(ranked) > 0 {
			v.RankingHint = RankingHint
		}
	}

	v.Trucks = make([]TruckCard, len(ranked))
	for i, t := range ranked {
		v.Trucks[i] = truckCard(t, ix.Lookup(t.ID), s)
		v.Trucks[i].BestMatch = hasBest && t.ID == best
	}
	return v
}

func routeCards(s Snapshot, selectedID string) []RouteCard {
	cards := make([]RouteCard, len(s.Routes))
	for i, r := range s.Routes {
		cards[i] = RouteCard{Route: r, ChargerCount: r.ChargerCount(), Selected: r.ID == selectedID}
		if results := s.Results(r.ID); len(results) > 0 {
			sum := feasibility.Summarize(results)
			cards[i].Summary = &sum
		}
	}
	return cards
}

func truckCard(t model.Truck, f *model.FeasibilityResult, s Snapshot) TruckCard {
	c := TruckCard{
		Truck:        t,
		Badge:        feasibility.Classify(t, f, s.RefreshedAt),
		CardTier:     feasibility.CardTier(t, f),
		SoCBand:      feasibility.SoCBand(t.SoC),
		Dispatchable: t.Dispatchable(),
		CanDispatch:  feasibility.CanDispatch(t, f),
		Feasibility:  f,
	}
	if f == nil || f.NotAvailable {
		return c
	}
	c.NetChargeMins = feasibility.NetChargeMinutes(*f)
	c.ChargeAdded, _ = feasibility.ChargeAddedLabel(*f)
	if share, ok := feasibility.EnergyShare(t, *f); ok {
		c.EnergyShare = &share
	}
	if tr, ok := feasibility.ProjectTransit(t, f, s.RefreshedAt); ok {
		c.Transit = &tr
	}
	c.Legs = make([]LegRow, len(f.LegDetails))
	for i, l := range f.LegDetails {
		c.Legs[i] = LegRow{LegDetail: l, Dwell: feasibility.LegDwellLabel(l)}
	}
	return c
}
