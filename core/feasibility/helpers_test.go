package feasibility

import (
	"fmt"
	"math/rand"

	"github.com/kilianp07/evfleet/core/model"
)

func intp(v int) *int { return &v }

func truck(id string, status model.TruckStatus) model.Truck {
	return model.Truck{ID: id, Name: "Truck " + id, SoC: 80, SoH: 95, CapacityKWh: 500, Status: status}
}

var randomStatuses = []model.FeasibilityStatus{
	model.Green, model.Yellow, model.Red, model.ParseFeasibilityStatus("blue"),
}

// randomFleet builds n trucks and a result index in which roughly one truck
// in six has no result. Keys collide often to exercise tie handling.
func randomFleet(rng *rand.Rand, n int) ([]model.Truck, Index) {
	trucks := make([]model.Truck, n)
	var results []model.FeasibilityResult
	for i := range trucks {
		id := fmt.Sprintf("T-%02d", i)
		trucks[i] = truck(id, model.Ready)
		if rng.Intn(6) == 0 {
			continue
		}
		r := model.FeasibilityResult{
			TruckID:                id,
			Status:                 randomStatuses[rng.Intn(len(randomStatuses))],
			ArrivalSoC:             float64(rng.Intn(5)*10 - 10),
			NoChargeNeeded:         rng.Intn(2) == 0,
			NotAvailable:           rng.Intn(4) == 0,
			FeasibleAfterPrecharge: rng.Intn(5) == 0,
		}
		if rng.Intn(3) > 0 {
			r.ChargeTimeMins = intp(rng.Intn(3) * 20)
		}
		results = append(results, r)
	}
	return trucks, NewIndex(results)
}
