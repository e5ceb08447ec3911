package scenarios

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/evfleet/core/board"
	"github.com/kilianp07/evfleet/core/feasibility"
	"github.com/kilianp07/evfleet/core/model"
)

// Expected lists the assertions of a scenario. Empty fields are not checked.
type Expected struct {
	Order         []string             `yaml:"order"`
	BestMatch     *string              `yaml:"best_match"`
	Classes       map[string]string    `yaml:"classes"`
	AvailableAt   map[string]string    `yaml:"available_at"`
	NetChargeMins map[string]int       `yaml:"net_charge_mins"`
	Summary       *feasibility.Summary `yaml:"summary"`
}

// Scenario is one route with its fleet and the externally computed results.
type Scenario struct {
	Name        string                    `yaml:"name"`
	Description string                    `yaml:"description,omitempty"`
	BaseTime    string                    `yaml:"base_time"`
	Route       model.Route               `yaml:"route"`
	Trucks      []model.Truck             `yaml:"trucks"`
	Results     []model.FeasibilityResult `yaml:"results"`
	Expected    Expected                  `yaml:"expected"`
}

// Load reads a scenario from a YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if sc.Route.ID == "" {
		return nil, fmt.Errorf("%s: route id is required", path)
	}
	return &sc, nil
}

// Base parses BaseTime as a clock time. An empty value is the zero time.
func (sc *Scenario) Base() (time.Time, error) {
	if sc.BaseTime == "" {
		return time.Time{}, nil
	}
	return time.Parse(feasibility.ClockFormat, sc.BaseTime)
}

// Snapshot builds the board snapshot the scenario describes.
func (sc *Scenario) Snapshot() (board.Snapshot, error) {
	base, err := sc.Base()
	if err != nil {
		return board.Snapshot{}, fmt.Errorf("base_time: %w", err)
	}
	return board.Snapshot{
		Trucks:      sc.Trucks,
		Routes:      []model.Route{sc.Route},
		Feasibility: map[string][]model.FeasibilityResult{sc.Route.ID: sc.Results},
		RefreshedAt: base,
	}, nil
}
