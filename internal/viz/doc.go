// Package viz provides the terminal live view for trajectory runs.
//
// The view is a Bubble Tea program that ticks at a fixed rate, advancing
// the simulation controller by one step per tick and drawing the flight
// path on a Braille [Canvas]. Drag, thrust and gravity appear as sliders
// that can be tuned while the projectile is in flight.
//
// # Key Bindings
//
//	Space    - Pause/Resume ticking
//	R        - Reset to the launch state
//	Tab      - Select next parameter
//	Up/K     - Increase selected parameter (5% of its range)
//	Down/J   - Decrease selected parameter
//	T        - Cycle color themes
//	?        - Show help overlay
//	Q        - Quit
package viz
