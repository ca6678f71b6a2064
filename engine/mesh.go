package engine

import (
	"github.com/pkg/errors"
)

// PositionSlot is the attribute slot positions are bound to.
const PositionSlot = 0

var positionAttribute = VertexAttribute{Type: Float, Components: 3}

// Mesh is a geometry uploaded to the GPU: a vertex array describing
// positions in a vertex buffer, indexed by an element buffer.
type Mesh struct {
	vertexArray   *VertexArray
	vertexBuffer  *Buffer
	elementBuffer *Buffer

	count int
}

// NewMesh uploads the geometry once. On error every handle acquired so far
// is released again.
func NewMesh(api API, geo *Geometry, usage Usage) (mesh *Mesh, err error) {
	mesh = &Mesh{count: geo.IndexCount()}
	defer func() {
		if err != nil {
			mesh.Delete()
			mesh = nil
		}
	}()

	if mesh.vertexArray, err = NewVertexArray(api); err != nil {
		return
	}
	if mesh.vertexBuffer, err = NewVertexBuffer(api); err != nil {
		return
	}
	if mesh.elementBuffer, err = NewElementBuffer(api); err != nil {
		return
	}

	// the vertex array records the element buffer binding and, through
	// SetAttribute, the vertex buffer; bind it first
	mesh.vertexArray.Bind()

	mesh.vertexBuffer.Bind()
	AllocateSlice(mesh.vertexBuffer, geo.VertexData(), usage)

	mesh.elementBuffer.Bind()
	AllocateSlice(mesh.elementBuffer, geo.IndexData(), usage)

	stride := positionAttribute.Size()
	mesh.vertexArray.SetAttribute(PositionSlot, positionAttribute, 0, stride)

	// the attribute keeps the vertex buffer, unbinding it is allowed
	UnbindBuffer(api, ArrayBuffer)

	// unbind the vertex array before the element buffer, which it would
	// otherwise forget
	UnbindVertexArray(api)
	UnbindBuffer(api, ElementArrayBuffer)

	if err = api.Error(); err != nil {
		err = errors.Wrap(err, "upload mesh")
	}
	return
}

// Count returns the number of indices drawn.
func (m *Mesh) Count() int {
	return m.count
}

func (m *Mesh) VertexArray() *VertexArray {
	return m.vertexArray
}

func (m *Mesh) VertexBuffer() *Buffer {
	return m.vertexBuffer
}

func (m *Mesh) ElementBuffer() *Buffer {
	return m.elementBuffer
}

// Draw binds the vertex array and draws all triangles.
func (m *Mesh) Draw(d *Device) {
	m.vertexArray.Bind()
	d.DrawElements(Triangles, m.count, UnsignedInt, 0)
}

// Delete releases the vertex array and both buffers. Safe to call twice.
func (m *Mesh) Delete() {
	if m.vertexArray != nil {
		m.vertexArray.Delete()
	}
	if m.vertexBuffer != nil {
		m.vertexBuffer.Delete()
	}
	if m.elementBuffer != nil {
		m.elementBuffer.Delete()
	}
}
