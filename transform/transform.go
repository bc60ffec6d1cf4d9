// Package transform provides the handful of 4x4 matrix operations the
// viewer needs. Matrices are mgl32.Mat4 values, column-major, matching
// the layout glUniformMatrix4fv expects without transposition.
package transform

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Identity returns the 4x4 identity matrix.
func Identity() mgl32.Mat4 {
	return mgl32.Ident4()
}

// RotateX returns a rotation of angle radians about the X axis.
func RotateX(angle float32) mgl32.Mat4 {
	return mgl32.HomogRotate3DX(angle)
}

// RotateY returns a rotation of angle radians about the Y axis.
func RotateY(angle float32) mgl32.Mat4 {
	return mgl32.HomogRotate3DY(angle)
}

// Mul returns the product a*b, so Mul(a, b) applied to a vector runs b first.
func Mul(a, b mgl32.Mat4) mgl32.Mat4 {
	return a.Mul4(b)
}

// Translate returns a translation by (x, y, z).
func Translate(x, y, z float32) mgl32.Mat4 {
	return mgl32.Translate3D(x, y, z)
}

// Frustum parameters for the demo's fixed perspective: the standard
// gluPerspective form with focal length 4 and a deliberately shallow
// depth range around the object at z = -5.
const (
	focal = 4.0
	near  = 3.0
	far   = 7.0
)

// Perspective returns the demo's perspective projection corrected for
// the given width/height aspect ratio.
func Perspective(aspect float32) mgl32.Mat4 {
	var m mgl32.Mat4
	m[0] = focal / aspect
	m[5] = focal
	m[10] = (far + near) / (near - far)
	m[11] = -1
	m[14] = 2 * far * near / (near - far)
	return m
}
