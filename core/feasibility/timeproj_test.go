package feasibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kilianp07/evfleet/core/model"
)

var noon = time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC)

func TestProject(t *testing.T) {
	assert.Equal(t, noon.Add(95*time.Minute), Project(noon, 95))
	assert.Equal(t, noon, Project(noon, 0))
}

func TestTotalWaitMinutes(t *testing.T) {
	tr := truck("T-03", model.Charging)
	assert.Equal(t, 0, TotalWaitMinutes(tr, nil))

	tr.ChargeETAMins = intp(47)
	assert.Equal(t, 47, TotalWaitMinutes(tr, nil))

	f := &model.FeasibilityResult{TruckID: "T-03", PrechargeMins: intp(13)}
	assert.Equal(t, 60, TotalWaitMinutes(tr, f))
}

func TestProjectAvailabilityPrecharge(t *testing.T) {
	tr := truck("T-01", model.Ready)
	f := &model.FeasibilityResult{TruckID: "T-01", FeasibleAfterPrecharge: true, PrechargeMins: intp(45)}
	assert.Equal(t, time.Date(2025, 3, 4, 12, 45, 0, 0, time.UTC), ProjectAvailability(tr, f, noon))
}

func TestProjectTransit(t *testing.T) {
	tr := truck("T-03", model.Charging)
	tr.ChargeETAMins = intp(30)
	f := &model.FeasibilityResult{TruckID: "T-03", PrechargeMins: intp(10)}

	_, ok := ProjectTransit(tr, f, noon)
	assert.False(t, ok)
	_, ok = ProjectTransit(tr, nil, noon)
	assert.False(t, ok)

	f.EstimatedTripTimeMins = intp(125)
	tw, ok := ProjectTransit(tr, f, noon)
	assert.True(t, ok)
	assert.Equal(t, noon.Add(40*time.Minute), tw.DepartAt)
	assert.Equal(t, noon.Add(165*time.Minute), tw.ArriveAt)
	assert.Equal(t, 125, tw.TripMins)
}
