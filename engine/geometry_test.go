package engine_test

import (
	"testing"

	"github.com/der-antikeks/glcourse/engine"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestFanGeometry(t *testing.T) {
	tests := []struct {
		Segments int
		Vertices int
		Indices  int
	}{
		{80, 81, 240},
		{3, 4, 9},
		{12, 13, 36},
		{2, 4, 9}, // clamped
		{0, 4, 9},
	}

	for _, c := range tests {
		geo := engine.NewFanGeometry(c.Segments, 0.7071)

		assert.Equal(t, c.Vertices, geo.VerticesCount(), "NewFanGeometry(%v)", c.Segments)
		assert.Equal(t, c.Indices, geo.IndexCount(), "NewFanGeometry(%v)", c.Segments)
		assert.Len(t, geo.IndexData(), c.Indices)
		assert.Len(t, geo.VertexData(), c.Vertices*3)

		for _, i := range geo.IndexData() {
			assert.True(t, int(i) < c.Vertices, "index %v out of range", i)
		}
	}
}

func TestFanGeometry_Shape(t *testing.T) {
	const radius = 0.7071
	geo := engine.NewFanGeometry(80, radius)

	v := geo.Vertices()
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, v[0])
	assert.Equal(t, mgl32.Vec3{radius, 0, 0}, v[1])
	for i, p := range v[1:] {
		assert.InDelta(t, radius, p.Len(), 1e-5, "rim vertex %v", i+1)
		assert.Equal(t, float32(0), p.Z())
	}

	faces := geo.Faces()
	for i, f := range faces {
		assert.Equal(t, 0, f.A, "face %v shares the origin", i)
	}
	assert.Equal(t, engine.Face{A: 0, B: 1, C: 2}, faces[0])
	assert.Equal(t, engine.Face{A: 0, B: 79, C: 80}, faces[78])
	assert.Equal(t, engine.Face{A: 0, B: 80, C: 1}, faces[79], "last face closes the rim")

	// every rim vertex is used by exactly two faces
	uses := map[int]int{}
	for _, f := range faces {
		uses[f.B]++
		uses[f.C]++
	}
	for i := 1; i <= 80; i++ {
		assert.Equal(t, 2, uses[i], "vertex %v", i)
	}
}

func TestGeometry_Data(t *testing.T) {
	geo := engine.NewGeometry()
	a := geo.AddVertex(mgl32.Vec3{1, 2, 3})
	b := geo.AddVertex(mgl32.Vec3{4, 5, 6})
	c := geo.AddVertex(mgl32.Vec3{7, 8, 9})
	geo.AddFace(a, b, c)
	geo.AddFace(c, b, a)

	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}, geo.VertexData())
	assert.Equal(t, []uint32{0, 1, 2, 2, 1, 0}, geo.IndexData())
}
