package metrics

import (
	"math"

	"github.com/san-kum/trajsim/internal/dynamo"
)

// EnergySource reports specific mechanical energy for a state.
type EnergySource interface {
	Energy(s dynamo.KinematicState) float64
}

// EnergyDrift tracks the largest relative change in specific mechanical
// energy with respect to the launch state it was built with. With drag and
// thrust off it measures integration error; otherwise it shows work done by
// drag and thrust.
type EnergyDrift struct {
	name          string
	src           EnergySource
	launch        dynamo.KinematicState
	initialEnergy float64
	maxDrift      float64
}

func NewEnergyDrift(src EnergySource, launch dynamo.KinematicState) *EnergyDrift {
	return &EnergyDrift{
		name:          "energy_drift",
		src:           src,
		launch:        launch,
		initialEnergy: src.Energy(launch),
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s dynamo.KinematicState) {
	if e.initialEnergy == 0 {
		return
	}
	energy := e.src.Energy(s)
	drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
	e.maxDrift = math.Max(e.maxDrift, drift)
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = e.src.Energy(e.launch)
	e.maxDrift = 0
}

// Flight returns the metrics reported for every run started from launch.
func Flight(params *dynamo.ControlParameters, src EnergySource, launch dynamo.KinematicState) []dynamo.Metric {
	return []dynamo.Metric{
		NewApex(),
		NewRange(),
		NewFlightTime(),
		NewImpactSpeed(),
		NewThrustImpulse(params, dynamo.Dt),
		NewEnergyDrift(src, launch),
	}
}
