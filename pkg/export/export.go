package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/kilianp07/evfleet/core/board"
)

// WriteJSON writes the board view to w in JSON format.
func WriteJSON(w io.Writer, v board.View) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var csvHeader = []string{
	"rank", "truck_id", "name", "truck_status", "class", "tier", "label",
	"arrival_soc", "energy_kwh", "net_charge_mins", "best_match", "can_dispatch",
}

// WriteCSV writes the ranked trucks of the view to w, one row per truck.
func WriteCSV(w io.Writer, v board.View) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i, c := range v.Trucks {
		arrival, energy := "", ""
		if c.Feasibility != nil {
			arrival = strconv.FormatFloat(c.Feasibility.ArrivalSoC, 'f', -1, 64)
			energy = strconv.FormatFloat(c.Feasibility.EnergyRequiredKWh, 'f', -1, 64)
		}
		rec := []string{
			strconv.Itoa(i + 1),
			c.Truck.ID,
			c.Truck.Name,
			c.Truck.Status.String(),
			c.Badge.Class.String(),
			c.Badge.Tier.String(),
			c.Badge.Label,
			arrival,
			energy,
			strconv.Itoa(c.NetChargeMins),
			strconv.FormatBool(c.BestMatch),
			strconv.FormatBool(c.CanDispatch),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTable prints the view for terminals.
func WriteTable(w io.Writer, v board.View) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if v.SelectedRouteID != "" {
		fmt.Fprintf(tw, "Route %s", v.SelectedRouteID)
		if s := v.FleetSummary; s != nil {
			fmt.Fprintf(tw, "  green %d  yellow %d  red %d", s.Green, s.Yellow, s.Red)
		}
		fmt.Fprintln(tw)
		if v.RankingHint != "" {
			fmt.Fprintln(tw, v.RankingHint)
		}
	}
	fmt.Fprintln(tw, "#\tTRUCK\tNAME\tSOC\tSTATUS\tARRIVAL\tCHARGE\t")
	for i, c := range v.Trucks {
		best := ""
		if c.BestMatch {
			best = " *"
		}
		arrival := "-"
		if c.Feasibility != nil && !c.Feasibility.NotAvailable {
			arrival = strconv.FormatFloat(c.Feasibility.ArrivalSoC, 'f', 1, 64) + "%"
		}
		charge := c.ChargeAdded
		if charge == "" {
			charge = "-"
		}
		fmt.Fprintf(tw, "%d\t%s%s\t%s\t%.0f%%\t%s\t%s\t%s\t\n",
			i+1, c.Truck.ID, best, c.Truck.Name, c.Truck.SoC, c.Badge.Label, arrival, charge)
	}
	return tw.Flush()
}
