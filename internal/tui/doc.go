// Package tui is the terminal front end: it draws engine snapshots on a
// tcell screen and turns key presses into engine inputs.
//
// Rendering never feeds back into the simulation. The driver owns the
// engine; this package only offers inputs to its latch and draws the
// snapshots it hands out.
package tui
