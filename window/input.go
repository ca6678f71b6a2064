package window

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

type Key glfw.Key

const (
	KeyEscape = Key(glfw.KeyEscape)
	KeyEnter  = Key(glfw.KeyEnter)
	KeySpace  = Key(glfw.KeySpace)
	KeyPause  = Key(glfw.KeyPause)

	KeyUp    = Key(glfw.KeyUp)
	KeyDown  = Key(glfw.KeyDown)
	KeyLeft  = Key(glfw.KeyLeft)
	KeyRight = Key(glfw.KeyRight)
)

type MouseButton glfw.MouseButton

const (
	MouseLeft  = MouseButton(glfw.MouseButton1)
	MouseRight = MouseButton(glfw.MouseButton2)
)

// Input is the keyboard and mouse state since the last event poll.
type Input struct {
	keyPressed   map[Key]bool
	mousePressed map[MouseButton]bool
	mouseClicked map[MouseButton]bool
	mx, my, zoom float64
}

func NewInput() *Input {
	return &Input{
		keyPressed:   map[Key]bool{},
		mousePressed: map[MouseButton]bool{},
		mouseClicked: map[MouseButton]bool{},
	}
}

func (m *Input) onKey(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	m.key(Key(key), action)
}

func (m *Input) key(key Key, action glfw.Action) {
	switch action {
	case glfw.Press:
		m.keyPressed[key] = true
	case glfw.Release:
		delete(m.keyPressed, key)
	}
}

func (m *Input) IsKeyDown(key Key) bool {
	return m.keyPressed[key]
}

func (m *Input) AnyKeyDown() bool {
	return len(m.keyPressed) > 0
}

func (m *Input) onMouseMove(w *glfw.Window, xpos float64, ypos float64) {
	m.move(xpos, ypos)
}

func (m *Input) move(xpos, ypos float64) {
	m.mx, m.my = xpos, ypos

	for b := range m.mouseClicked {
		delete(m.mouseClicked, b)
	}
}

func (m *Input) MousePos() (x, y float64) {
	return m.mx, m.my
}

func (m *Input) onMouseScroll(w *glfw.Window, xoff float64, yoff float64) {
	m.zoom += yoff
}

func (m *Input) MouseScroll() float64 {
	return m.zoom
}

func (m *Input) onMouseButton(w *glfw.Window, b glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	m.button(MouseButton(b), action)
}

func (m *Input) button(b MouseButton, action glfw.Action) {
	switch action {
	case glfw.Press:
		m.mousePressed[b] = true
		m.mouseClicked[b] = false
	case glfw.Release:
		delete(m.mousePressed, b)

		if v, ok := m.mouseClicked[b]; ok && !v {
			m.mouseClicked[b] = true
		}
	}
}

func (m *Input) IsMouseDown(button MouseButton) bool {
	return m.mousePressed[button]
}

// mouse up after a down without movement, reported once
func (m *Input) IsMouseClick(button MouseButton) bool {
	s := m.mouseClicked[button]
	m.mouseClicked[button] = false
	return s
}
