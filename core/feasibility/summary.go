package feasibility

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/evfleet/core/model"
)

// Summary counts results per known feasibility status.
type Summary struct {
	Green  int `json:"green"`
	Yellow int `json:"yellow"`
	Red    int `json:"red"`
}

// Total is the number of counted results.
func (s Summary) Total() int { return s.Green + s.Yellow + s.Red }

// Summarize partitions results by status. Unrecognized statuses are not
// counted in any bucket.
func Summarize(results []model.FeasibilityResult) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status.Kind {
		case model.StatusGreen:
			s.Green++
		case model.StatusYellow:
			s.Yellow++
		case model.StatusRed:
			s.Red++
		}
	}
	return s
}

// Stats describes the spread of predicted outcomes over the available trucks
// of a route.
type Stats struct {
	Count            int     `json:"count"`
	MeanArrivalSoC   float64 `json:"mean_arrival_soc"`
	StdDevArrivalSoC float64 `json:"stddev_arrival_soc"`
	MinArrivalSoC    float64 `json:"min_arrival_soc"`
	MaxArrivalSoC    float64 `json:"max_arrival_soc"`
	MeanEnergyKWh    float64 `json:"mean_energy_kwh"`
}

// FleetStats computes Stats over results that are not marked unavailable.
func FleetStats(results []model.FeasibilityResult) Stats {
	soc := make([]float64, 0, len(results))
	energy := make([]float64, 0, len(results))
	for _, r := range results {
		if r.NotAvailable {
			continue
		}
		soc = append(soc, r.ArrivalSoC)
		energy = append(energy, r.EnergyRequiredKWh)
	}
	if len(soc) == 0 {
		return Stats{}
	}
	st := Stats{
		Count:         len(soc),
		MinArrivalSoC: floats.Min(soc),
		MaxArrivalSoC: floats.Max(soc),
		MeanEnergyKWh: stat.Mean(energy, nil),
	}
	if len(soc) > 1 {
		st.MeanArrivalSoC, st.StdDevArrivalSoC = stat.MeanStdDev(soc, nil)
	} else {
		st.MeanArrivalSoC = soc[0]
	}
	return st
}
