// Package viz renders a running experiment in the terminal.
//
// The package implements a live view using the Bubble Tea framework:
//
//   - [Model]: steps the simulator at the configured frame rate
//   - [Canvas]: Braille-based pixel canvas for the scene
//   - [Sprite]: per-object visual fed by position and size changes
//   - [Plot]: graph polylines through asciigraph
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to initial state
//	Tab   - Cycle displayed graph
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
