// Package rotator turns mouse drags into a pair of accumulated
// rotation angles. The accumulation logic is pure; Poll is a thin
// shim over GLFW's cursor and button state.
package rotator

import (
	glfw "github.com/go-gl/glfw/v3.3/glfw"
)

// Sensitivity is the rotation per pixel of cursor travel, in degrees.
const Sensitivity = 0.3

// Rotator accumulates an azimuth (Phi, about Y) and an elevation
// (Theta, about X) in degrees. The angles are unbounded; they wrap
// naturally once fed through the trig in the rotation matrices.
type Rotator struct {
	Phi   float64
	Theta float64

	dragging bool
	lastX    float64
	lastY    float64
}

// Update advances the state machine with the current cursor position
// and primary-button state. The first pressed sample only captures the
// cursor; rotation accumulates from the following samples.
func (r *Rotator) Update(x, y float64, pressed bool) {
	if !pressed {
		r.dragging = false
		return
	}
	if r.dragging {
		r.Phi += (x - r.lastX) * Sensitivity
		r.Theta += (y - r.lastY) * Sensitivity
	}
	r.dragging = true
	r.lastX = x
	r.lastY = y
}

// Dragging reports whether a drag is in progress.
func (r *Rotator) Dragging() bool {
	return r.dragging
}

// Poll samples the window's cursor and mouse-button state.
func (r *Rotator) Poll(w *glfw.Window) {
	x, y := w.GetCursorPos()
	r.Update(x, y, w.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press)
}
