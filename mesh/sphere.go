package mesh

import (
	"math"
)

// sphereSegments clamps the latitude resolution and derives the
// longitude resolution: twice as many slices around as stacks down.
func sphereSegments(segments int) (vsegs, hsegs int) {
	vsegs = segments
	if vsegs < 2 {
		vsegs = 2
	}
	return vsegs, vsegs * 2
}

// SphereVertexCount returns the number of vertices NewSphere emits for
// the given segment count: a (vsegs+1) x (hsegs+1) grid with the seam
// column and the pole rows duplicated for texturing.
func SphereVertexCount(segments int) int {
	vsegs, hsegs := sphereSegments(segments)
	return (vsegs + 1) * (hsegs + 1)
}

// SphereTriangleCount returns the number of triangles NewSphere emits:
// two per grid cell, minus the degenerate one at each pole cell.
func SphereTriangleCount(segments int) int {
	vsegs, hsegs := sphereSegments(segments)
	return 2 * hsegs * (vsegs - 1)
}

// NewSphere generates a latitude-longitude sphere around the origin.
// Normals point outward and texture coordinates wrap once around the
// equator with v running pole to pole.
func NewSphere(radius float64, segments int) *Mesh {
	vsegs, hsegs := sphereSegments(segments)

	m := &Mesh{
		Vertices: make([]float32, 0, SphereVertexCount(segments)*VertexStride),
		Indices:  make([]uint32, 0, SphereTriangleCount(segments)*3),
	}

	for i := 0; i <= vsegs; i++ {
		theta := math.Pi * float64(i) / float64(vsegs)
		y := math.Cos(theta)
		ringRadius := math.Sin(theta)
		for j := 0; j <= hsegs; j++ {
			phi := 2 * math.Pi * float64(j) / float64(hsegs)
			nx := ringRadius * math.Cos(phi)
			nz := ringRadius * math.Sin(phi)
			m.Vertices = append(m.Vertices,
				float32(radius*nx), float32(radius*y), float32(radius*nz),
				float32(nx), float32(y), float32(nz),
				float32(float64(j)/float64(hsegs)), float32(float64(i)/float64(vsegs)),
			)
		}
	}

	// Counter-clockwise winding seen from outside the sphere, so the
	// render loop's back-face culling keeps the visible half.
	for i := 0; i < vsegs; i++ {
		for j := 0; j < hsegs; j++ {
			a := uint32(i*(hsegs+1) + j)
			b := a + 1
			c := a + uint32(hsegs) + 1
			d := c + 1
			if i > 0 {
				m.Indices = append(m.Indices, a, b, c)
			}
			if i < vsegs-1 {
				m.Indices = append(m.Indices, b, d, c)
			}
		}
	}

	return m
}
