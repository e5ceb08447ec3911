package feasibility

import (
	"cmp"
	"slices"
	"strings"

	"github.com/kilianp07/evfleet/core/model"
)

// rankKey is the lexicographic sort key of a truck for one route. Fields are
// compared in declaration order.
type rankKey struct {
	missing      bool    // no feasibility result: after everything else
	notAvailable bool    // excluded from simulation: after available trucks
	notFirst     bool    // green and needs no charge ranks first
	chargeMins   int     // ascending
	arrivalSoC   float64 // descending
	id           string  // ascending, makes the order independent of input order
}

func keyOf(t model.Truck, f *model.FeasibilityResult) rankKey {
	if f == nil {
		return rankKey{missing: true, id: t.ID}
	}
	return rankKey{
		notAvailable: f.NotAvailable,
		notFirst:     !(f.Status.Is(model.StatusGreen) && f.NoChargeNeeded),
		chargeMins:   f.ChargeTime(),
		arrivalSoC:   f.ArrivalSoC,
		id:           t.ID,
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func compareKeys(a, b rankKey) int {
	return cmp.Or(
		compareBool(a.missing, b.missing),
		compareBool(a.notAvailable, b.notAvailable),
		compareBool(a.notFirst, b.notFirst),
		cmp.Compare(a.chargeMins, b.chargeMins),
		cmp.Compare(b.arrivalSoC, a.arrivalSoC),
		strings.Compare(a.id, b.id),
	)
}

// Rank orders trucks for the selected route. When selected is false the
// input order is kept. The returned slice is always a fresh copy; the input
// is never reordered.
func Rank(trucks []model.Truck, ix Index, selected bool) []model.Truck {
	out := slices.Clone(trucks)
	if !selected {
		return out
	}
	type entry struct {
		t   model.Truck
		key rankKey
	}
	entries := make([]entry, len(out))
	for i, t := range out {
		entries[i] = entry{t: t, key: keyOf(t, ix.Lookup(t.ID))}
	}
	slices.SortStableFunc(entries, func(a, b entry) int { return compareKeys(a.key, b.key) })
	for i, e := range entries {
		out[i] = e.t
	}
	return out
}

// BestMatch walks a ranking and returns the first truck that is green for the
// route and operationally ready or charging.
func BestMatch(ranked []model.Truck, ix Index, selected bool) (string, bool) {
	if !selected {
		return "", false
	}
	for _, t := range ranked {
		f := ix.Lookup(t.ID)
		if f != nil && f.Status.Is(model.StatusGreen) && t.Dispatchable() {
			return t.ID, true
		}
	}
	return "", false
}
