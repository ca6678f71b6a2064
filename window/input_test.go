package window

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestInput_Keys(t *testing.T) {
	in := NewInput()
	assert.False(t, in.AnyKeyDown())

	in.key(KeyEscape, glfw.Press)
	in.key(KeyUp, glfw.Press)
	in.key(KeyUp, glfw.Repeat)
	assert.True(t, in.IsKeyDown(KeyEscape))
	assert.True(t, in.IsKeyDown(KeyUp))
	assert.False(t, in.IsKeyDown(KeyDown))

	in.key(KeyEscape, glfw.Release)
	assert.False(t, in.IsKeyDown(KeyEscape))
	assert.True(t, in.AnyKeyDown())

	in.key(KeyUp, glfw.Release)
	assert.False(t, in.AnyKeyDown())
}

func TestInput_Click(t *testing.T) {
	in := NewInput()

	in.button(MouseLeft, glfw.Press)
	assert.True(t, in.IsMouseDown(MouseLeft))
	assert.False(t, in.IsMouseClick(MouseLeft), "not released yet")

	in.button(MouseLeft, glfw.Release)
	assert.False(t, in.IsMouseDown(MouseLeft))
	assert.True(t, in.IsMouseClick(MouseLeft))
	assert.False(t, in.IsMouseClick(MouseLeft), "reported once")
}

func TestInput_Drag(t *testing.T) {
	in := NewInput()

	in.button(MouseRight, glfw.Press)
	in.move(10, 20)
	in.button(MouseRight, glfw.Release)

	x, y := in.MousePos()
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 20.0, y)
	assert.False(t, in.IsMouseClick(MouseRight), "moved between press and release")
}

func TestInput_Scroll(t *testing.T) {
	in := NewInput()

	in.onMouseScroll(nil, 0, 1)
	in.onMouseScroll(nil, 0, 2.5)
	assert.Equal(t, 3.5, in.MouseScroll())
}
