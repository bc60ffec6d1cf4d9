package mesh

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// corner identifies one position/texcoord/normal combination from an
// OBJ face. Zero-valued fields mean "not given".
type corner struct {
	v, vt, vn int
}

// LoadOBJ reads a triangle mesh from a Wavefront OBJ file. Polygonal
// faces are fan-triangulated; unknown line types are ignored.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mesh file: %w", err)
	}
	defer f.Close()

	m, err := parseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return m, nil
}

func parseOBJ(r io.Reader) (*Mesh, error) {
	var positions [][3]float32
	var texcoords [][2]float32
	var normals [][3]float32

	m := &Mesh{}
	seen := make(map[corner]uint32)
	hasNormals := true

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad vertex: %w", lineNo, err)
			}
			positions = append(positions, [3]float32{p[0], p[1], p[2]})
		case "vt":
			p, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad texture coordinate: %w", lineNo, err)
			}
			texcoords = append(texcoords, [2]float32{p[0], p[1]})
		case "vn":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad normal: %w", lineNo, err)
			}
			normals = append(normals, [3]float32{p[0], p[1], p[2]})
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face with fewer than 3 corners", lineNo)
			}
			var face []uint32
			for _, ref := range fields[1:] {
				c, err := parseCorner(ref, len(positions), len(texcoords), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				if c.vn == 0 {
					hasNormals = false
				}
				idx, ok := seen[c]
				if !ok {
					idx = uint32(m.VertexCount())
					seen[c] = idx
					m.Vertices = append(m.Vertices, buildVertex(c, positions, texcoords, normals)...)
				}
				face = append(face, idx)
			}
			for i := 1; i+1 < len(face); i++ {
				m.Indices = append(m.Indices, face[0], face[i], face[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(m.Indices) == 0 {
		return nil, fmt.Errorf("no faces found")
	}

	if !hasNormals {
		computeNormals(m)
	}
	return m, nil
}

// parseCorner resolves a face reference of the form "v", "v/vt",
// "v//vn" or "v/vt/vn" against the element counts read so far.
func parseCorner(ref string, nv, nvt, nvn int) (corner, error) {
	parts := strings.Split(ref, "/")
	if len(parts) > 3 {
		return corner{}, fmt.Errorf("malformed face corner %q", ref)
	}

	var c corner
	for i, p := range parts {
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return corner{}, fmt.Errorf("malformed face corner %q", ref)
		}
		limit := [3]int{nv, nvt, nvn}[i]
		if n < 1 || n > limit {
			return corner{}, fmt.Errorf("face index %d out of range (have %d)", n, limit)
		}
		switch i {
		case 0:
			c.v = n
		case 1:
			c.vt = n
		case 2:
			c.vn = n
		}
	}
	if c.v == 0 {
		return corner{}, fmt.Errorf("malformed face corner %q", ref)
	}
	return c, nil
}

func buildVertex(c corner, positions [][3]float32, texcoords [][2]float32, normals [][3]float32) []float32 {
	v := make([]float32, 0, VertexStride)
	v = append(v, positions[c.v-1][:]...)
	if c.vn != 0 {
		v = append(v, normals[c.vn-1][:]...)
	} else {
		v = append(v, 0, 0, 0)
	}
	if c.vt != 0 {
		v = append(v, texcoords[c.vt-1][:]...)
	} else {
		v = append(v, 0, 0)
	}
	return v
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", fields[i])
		}
		out[i] = float32(f)
	}
	return out, nil
}

// computeNormals fills in smooth vertex normals for meshes whose file
// did not declare any, by accumulating area-weighted face normals.
func computeNormals(m *Mesh) {
	for t := 0; t+2 < len(m.Indices); t += 3 {
		i0 := m.Indices[t] * VertexStride
		i1 := m.Indices[t+1] * VertexStride
		i2 := m.Indices[t+2] * VertexStride

		var e1, e2 [3]float32
		for k := 0; k < 3; k++ {
			e1[k] = m.Vertices[i1+uint32(k)] - m.Vertices[i0+uint32(k)]
			e2[k] = m.Vertices[i2+uint32(k)] - m.Vertices[i0+uint32(k)]
		}
		n := [3]float32{
			e1[1]*e2[2] - e1[2]*e2[1],
			e1[2]*e2[0] - e1[0]*e2[2],
			e1[0]*e2[1] - e1[1]*e2[0],
		}
		for _, base := range []uint32{i0, i1, i2} {
			for k := 0; k < 3; k++ {
				m.Vertices[base+3+uint32(k)] += n[k]
			}
		}
	}

	for i := 0; i < len(m.Vertices); i += VertexStride {
		nx, ny, nz := m.Vertices[i+3], m.Vertices[i+4], m.Vertices[i+5]
		l := float32(math.Sqrt(float64(nx*nx + ny*ny + nz*nz)))
		if l > 0 {
			m.Vertices[i+3] = nx / l
			m.Vertices[i+4] = ny / l
			m.Vertices[i+5] = nz / l
		}
	}
}
