package mesh

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSphereCounts(t *testing.T) {
	for _, segments := range []int{2, 3, 10, 50} {
		t.Run(fmt.Sprintf("segments=%d", segments), func(t *testing.T) {
			m := NewSphere(1.0, segments)

			vsegs := segments
			hsegs := 2 * vsegs
			assert.Equal(t, (vsegs+1)*(hsegs+1), m.VertexCount())
			assert.Equal(t, 2*hsegs*(vsegs-1), m.TriangleCount())
			assert.Equal(t, SphereVertexCount(segments), m.VertexCount())
			assert.Equal(t, SphereTriangleCount(segments), m.TriangleCount())
		})
	}
}

func TestSphereClampsSegments(t *testing.T) {
	// Fewer than 2 segments cannot form a closed surface.
	assert.Equal(t, NewSphere(1.0, 2).VertexCount(), NewSphere(1.0, 0).VertexCount())
	assert.Equal(t, NewSphere(1.0, 2).TriangleCount(), NewSphere(1.0, 1).TriangleCount())
}

func TestSphereVerticesOnSurface(t *testing.T) {
	const radius = 2.5
	m := NewSphere(radius, 12)

	for i := 0; i < len(m.Vertices); i += VertexStride {
		x, y, z := m.Vertices[i], m.Vertices[i+1], m.Vertices[i+2]
		dist := math.Sqrt(float64(x*x + y*y + z*z))
		assert.InDelta(t, radius, dist, 1e-5)

		// The normal is the unit position.
		nx, ny, nz := m.Vertices[i+3], m.Vertices[i+4], m.Vertices[i+5]
		assert.InDelta(t, float64(x)/radius, float64(nx), 1e-5)
		assert.InDelta(t, float64(y)/radius, float64(ny), 1e-5)
		assert.InDelta(t, float64(z)/radius, float64(nz), 1e-5)
	}
}

func TestSphereIndicesInRange(t *testing.T) {
	m := NewSphere(1.0, 7)
	require.NotEmpty(t, m.Indices)
	for _, idx := range m.Indices {
		assert.Less(t, int(idx), m.VertexCount())
	}
}

func TestSphereTexcoordRange(t *testing.T) {
	m := NewSphere(1.0, 5)
	for i := 0; i < len(m.Vertices); i += VertexStride {
		u, v := m.Vertices[i+6], m.Vertices[i+7]
		assert.GreaterOrEqual(t, u, float32(0))
		assert.LessOrEqual(t, u, float32(1))
		assert.GreaterOrEqual(t, v, float32(0))
		assert.LessOrEqual(t, v, float32(1))
	}
}

func TestSphereWindingOutward(t *testing.T) {
	// Every triangle's geometric normal should point away from the
	// origin, or back-face culling would hide the sphere.
	m := NewSphere(1.0, 6)
	for t3 := 0; t3 < len(m.Indices); t3 += 3 {
		var p [3][3]float64
		for c := 0; c < 3; c++ {
			base := int(m.Indices[t3+c]) * VertexStride
			for k := 0; k < 3; k++ {
				p[c][k] = float64(m.Vertices[base+k])
			}
		}
		e1 := [3]float64{p[1][0] - p[0][0], p[1][1] - p[0][1], p[1][2] - p[0][2]}
		e2 := [3]float64{p[2][0] - p[0][0], p[2][1] - p[0][1], p[2][2] - p[0][2]}
		n := [3]float64{
			e1[1]*e2[2] - e1[2]*e2[1],
			e1[2]*e2[0] - e1[0]*e2[2],
			e1[0]*e2[1] - e1[1]*e2[0],
		}
		center := [3]float64{
			(p[0][0] + p[1][0] + p[2][0]) / 3,
			(p[0][1] + p[1][1] + p[2][1]) / 3,
			(p[0][2] + p[1][2] + p[2][2]) / 3,
		}
		dot := n[0]*center[0] + n[1]*center[1] + n[2]*center[2]
		assert.Greater(t, dot, 0.0, "triangle at index %d winds inward", t3)
	}
}
