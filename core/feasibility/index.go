package feasibility

import (
	"sort"

	"github.com/kilianp07/evfleet/core/model"
)

// Index maps truck IDs to their feasibility result for one route.
type Index map[string]*model.FeasibilityResult

// NewIndex builds an Index from a route's result set. When a truck appears
// more than once the last result wins. Results without a truck ID are skipped.
func NewIndex(results []model.FeasibilityResult) Index {
	ix := make(Index, len(results))
	for i := range results {
		r := results[i]
		if r.TruckID == "" {
			continue
		}
		ix[r.TruckID] = &r
	}
	return ix
}

// Lookup returns the result for id or nil.
func (ix Index) Lookup(id string) *model.FeasibilityResult {
	if ix == nil {
		return nil
	}
	return ix[id]
}

// Results returns the indexed results ordered by truck ID.
func (ix Index) Results() []model.FeasibilityResult {
	out := make([]model.FeasibilityResult, 0, len(ix))
	for _, r := range ix {
		if r != nil {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TruckID < out[j].TruckID })
	return out
}
