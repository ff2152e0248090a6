// Package viz is the terminal viewer for gravsim sessions.
//
// The viewer is a Bubble Tea program that polls a session: each frame it
// calls Tick a few times and draws the latest snapshot. It never changes
// the bodies itself.
//
//   - [Model]: the live viewer for one session
//   - [Picker]: a preset list that opens the viewer
//   - [Canvas]: braille canvas with 2x4 dots per character cell
//   - [Planar] and [Camera]: projections for 2D and 3D sessions
//
// # Key Bindings
//
//	Space    - Pause/Resume
//	S        - Single tick while paused
//	T        - Cycle color themes
//	+/-      - Zoom
//	Arrows   - Rotate the camera (3D)
//	?        - Show help
//	Q, Esc   - Quit
package viz
