// Package viz renders a live cannon session in the terminal.
//
// [Model] is a Bubble Tea program that steps a physics.World at 60 Hz and
// draws it on a braille [Canvas]. [Picker] chooses a preset first.
//
// # Key Bindings
//
//	Up/Right/K/L   - Raise the next launch speed
//	Down/Left/J/H  - Lower the next launch speed
//	Space/Enter    - Fire
//	P              - Pause/Resume
//	+/-            - Zoom
//	T              - Cycle themes
//	Q              - Quit
//
// Terminals report key repeats rather than key-up events, so holding a
// speed key nudges once per repeat.
package viz
