package engine

import (
	m "math"

	"github.com/go-gl/mathgl/mgl32"
)

type Face struct {
	A, B, C int
}

// Geometry is an indexed triangle list of positions.
type Geometry struct {
	vertices []mgl32.Vec3
	faces    []Face
}

func NewGeometry() *Geometry {
	return &Geometry{}
}

// NewFanGeometry builds a disc in the xy plane: the origin plus segments
// rim vertices, one triangle per segment, all sharing the origin.
func NewFanGeometry(segments int, radius float32) *Geometry {
	if segments < 3 {
		segments = 3
	}

	geo := &Geometry{
		vertices: make([]mgl32.Vec3, 0, segments+1),
		faces:    make([]Face, 0, segments),
	}

	step := 2 * m.Pi / float64(segments)

	origin := geo.AddVertex(mgl32.Vec3{0, 0, 0})
	first := geo.AddVertex(mgl32.Vec3{radius, 0, 0})

	prev := first
	for i := 1; i < segments; i++ {
		a := step * float64(i)
		v := geo.AddVertex(mgl32.Vec3{
			radius * float32(m.Cos(a)),
			radius * float32(m.Sin(a)),
			0,
		})

		geo.AddFace(origin, prev, v)
		prev = v
	}

	// close the rim
	geo.AddFace(origin, prev, first)

	return geo
}

// AddVertex appends v and returns its index.
func (g *Geometry) AddVertex(v mgl32.Vec3) int {
	g.vertices = append(g.vertices, v)
	return len(g.vertices) - 1
}

func (g *Geometry) AddFace(a, b, c int) {
	g.faces = append(g.faces, Face{a, b, c})
}

func (g *Geometry) Vertices() []mgl32.Vec3 {
	return g.vertices
}

func (g *Geometry) Faces() []Face {
	return g.faces
}

func (g *Geometry) VerticesCount() int {
	return len(g.vertices)
}

func (g *Geometry) IndexCount() int {
	return len(g.faces) * 3
}

// VertexData returns the positions as packed x, y, z floats.
func (g *Geometry) VertexData() []float32 {
	data := make([]float32, 0, len(g.vertices)*3)
	for _, v := range g.vertices {
		data = append(data, v[0], v[1], v[2])
	}
	return data
}

// IndexData returns three indices per face.
func (g *Geometry) IndexData() []uint32 {
	data := make([]uint32, 0, len(g.faces)*3)
	for _, f := range g.faces {
		data = append(data, uint32(f.A), uint32(f.B), uint32(f.C))
	}
	return data
}
