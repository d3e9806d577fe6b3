// Package viz draws Recamán circles in the terminal.
//
//   - [Canvas]: Braille-based pixel canvas (2x4 dots per cell)
//   - [Preview]: static render of every circle on a canvas
//   - [Chart]: line chart of the sequence values
//   - [LiveModel]: Bubble Tea program sweeping the circles one by one
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart from the first circle
//	+/-   - Faster/slower sweep
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	Q     - Quit
//
// # Recording
//
// Recordings are written as recaman_live.gif in the current directory.
package viz
