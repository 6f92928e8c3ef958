// Package viz draws orbiting bodies in the terminal.
//
// Bodies are projected through a [Camera] onto a braille [Canvas] and colored
// by tier with a [Theme]. [Model] is a Bubble Tea program that ticks a
// sim.World once per frame; [Menu] picks a preset before handing over to it.
//
// # Key Bindings
//
//	Space      pause / resume
//	Tab        follow the next body (Shift+Tab: previous)
//	Esc        stop following
//	H          slow the followed body down (hover)
//	C          center the view on the followed body
//	+/-        zoom
//	Arrows     spin and tilt the camera
//	T          cycle color themes
//	?          help overlay
package viz
