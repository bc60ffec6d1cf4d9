// Package mesh builds triangle meshes, either procedurally or from OBJ
// files, and owns their GL buffer objects.
package mesh

import (
	"log"

	gl "github.com/go-gl/gl/v3.3-core/gl"
)

// VertexStride is the number of floats per vertex: three for position,
// three for the normal, two for the texture coordinate.
const VertexStride = 8

const floatSize = 4

// Mesh holds interleaved vertex data and triangle indices. The slices
// are filled once at build time and never mutated afterwards.
type Mesh struct {
	Vertices []float32
	Indices  []uint32

	vao uint32
	vbo uint32
	ibo uint32
}

func (m *Mesh) VertexCount() int   { return len(m.Vertices) / VertexStride }
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// LogInfo prints a one-line summary of the mesh.
func (m *Mesh) LogInfo() {
	log.Printf("Mesh: %d vertices, %d triangles", m.VertexCount(), m.TriangleCount())
}

// Upload creates the VAO, vertex buffer and index buffer for the mesh.
// Attribute locations: 0 position, 1 normal, 2 texcoord.
// Requires a current GL context.
func (m *Mesh) Upload() {
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*floatSize, gl.Ptr(m.Vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ibo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ibo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	stride := int32(VertexStride * floatSize)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*floatSize))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*floatSize))

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
}

// Draw issues the indexed draw call for the whole mesh.
func (m *Mesh) Draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, int32(len(m.Indices)), gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
}

// Destroy releases the GL buffers.
func (m *Mesh) Destroy() {
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ibo)
	gl.DeleteVertexArrays(1, &m.vao)
	m.vao, m.vbo, m.ibo = 0, 0, 0
}
