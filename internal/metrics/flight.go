package metrics

import (
	"math"

	"github.com/san-kum/trajsim/internal/dynamo"
)

// Apex tracks the highest point reached.
type Apex struct {
	name    string
	height  float64
	samples int
}

func NewApex() *Apex {
	return &Apex{name: "apex"}
}

func (a *Apex) Name() string { return a.name }

func (a *Apex) Observe(s dynamo.KinematicState) {
	if a.samples == 0 || s.Position.Y > a.height {
		a.height = s.Position.Y
	}
	a.samples++
}

func (a *Apex) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return math.Max(0, a.height)
}

func (a *Apex) Reset() {
	a.height = 0
	a.samples = 0
}

// Range is the horizontal distance of the latest observed position.
type Range struct {
	name string
	x    float64
}

func NewRange() *Range {
	return &Range{name: "range"}
}

func (r *Range) Name() string                    { return r.name }
func (r *Range) Observe(s dynamo.KinematicState) { r.x = s.Position.X }
func (r *Range) Value() float64                  { return r.x }
func (r *Range) Reset()                          { r.x = 0 }

// FlightTime is the elapsed time of the latest observed state.
type FlightTime struct {
	name string
	t    float64
}

func NewFlightTime() *FlightTime {
	return &FlightTime{name: "flight_time"}
}

func (f *FlightTime) Name() string                    { return f.name }
func (f *FlightTime) Observe(s dynamo.KinematicState) { f.t = s.Elapsed }
func (f *FlightTime) Value() float64                  { return f.t }
func (f *FlightTime) Reset()                          { f.t = 0 }

// ImpactSpeed is the speed at the first observed state below ground, zero
// while the projectile is still airborne.
type ImpactSpeed struct {
	name   string
	speed  float64
	landed bool
}

func NewImpactSpeed() *ImpactSpeed {
	return &ImpactSpeed{name: "impact_speed"}
}

func (i *ImpactSpeed) Name() string { return i.name }

func (i *ImpactSpeed) Observe(s dynamo.KinematicState) {
	if i.landed || s.Position.Y >= 0 {
		return
	}
	i.landed = true
	i.speed = s.Speed()
}

func (i *ImpactSpeed) Value() float64 { return i.speed }

func (i *ImpactSpeed) Reset() {
	i.speed = 0
	i.landed = false
}
