package engine_test

import (
	"testing"

	"github.com/der-antikeks/glcourse/engine"
	"github.com/der-antikeks/glcourse/engine/enginetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataType_Size(t *testing.T) {
	tests := []struct {
		Type    engine.DataType
		Size    int
		Integer bool
	}{
		{engine.Float, 4, false},
		{engine.Byte, 1, true},
		{engine.UnsignedByte, 1, true},
		{engine.Short, 2, true},
		{engine.UnsignedShort, 2, true},
		{engine.Int, 4, true},
		{engine.UnsignedInt, 4, true},
	}

	for _, c := range tests {
		assert.Equal(t, c.Size, c.Type.Size(), "DataType(%v).Size()", c.Type)
		assert.Equal(t, c.Integer, c.Type.IsInteger(), "DataType(%v).IsInteger()", c.Type)
	}

	assert.Equal(t, 12, engine.VertexAttribute{Type: engine.Float, Components: 3}.Size())
}

func TestVertexArray_Bind(t *testing.T) {
	rec := enginetest.NewRecorder()

	a, err := engine.NewVertexArray(rec)
	require.NoError(t, err)
	defer a.Delete()

	b, err := engine.NewVertexArray(rec)
	require.NoError(t, err)
	defer b.Delete()

	a.Bind()
	assert.Equal(t, a.Handle(), rec.BoundVertexArray())
	b.Bind()
	assert.Equal(t, b.Handle(), rec.BoundVertexArray())

	engine.UnbindVertexArray(rec)
	assert.Equal(t, engine.NullHandle, rec.BoundVertexArray())
	assert.NoError(t, rec.Error())
}

func TestVertexArray_SetAttribute(t *testing.T) {
	rec := enginetest.NewRecorder()

	va, err := engine.NewVertexArray(rec)
	require.NoError(t, err)
	defer va.Delete()

	vbo, err := engine.NewVertexBuffer(rec)
	require.NoError(t, err)
	defer vbo.Delete()

	va.Bind()
	vbo.Bind()

	position := engine.VertexAttribute{Type: engine.Float, Components: 3}
	color := engine.VertexAttribute{Type: engine.UnsignedByte, Components: 4, Normalized: true}
	va.SetAttribute(0, position, 0, 16)
	va.SetAttribute(1, color, 12, 16)

	// the buffer binding is captured, so unbinding it is fine
	engine.UnbindBuffer(rec, engine.ArrayBuffer)
	engine.UnbindVertexArray(rec)
	require.NoError(t, rec.Error())

	tests := []struct {
		Slot   uint32
		Attr   engine.VertexAttribute
		Offset int
	}{
		{0, position, 0},
		{1, color, 12},
	}

	for _, c := range tests {
		a, ok := rec.Attribute(va.Handle(), c.Slot)
		require.True(t, ok, "slot %v", c.Slot)
		assert.Equal(t, c.Attr, a.VertexAttribute)
		assert.Equal(t, c.Offset, a.Offset)
		assert.Equal(t, 16, a.Stride)
		assert.Equal(t, vbo.Handle(), a.Buffer)
		assert.True(t, a.Enabled)
	}
}

func TestVertexArray_SetAttributeUnbound(t *testing.T) {
	rec := enginetest.NewRecorder()

	va, err := engine.NewVertexArray(rec)
	require.NoError(t, err)
	defer va.Delete()

	// nothing bound: not checked here, the api reports it
	va.SetAttribute(0, engine.VertexAttribute{Type: engine.Float, Components: 3}, 0, 12)
	assert.Error(t, rec.Error())
}
