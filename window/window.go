// Package window provides the GLFW platform and windows with an
// OpenGL 3.3 core context. Everything here must run on the main thread.
package window

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Platform initializes GLFW and drains its event queue.
type Platform struct {
	Samples   int
	Resizable bool
}

func NewPlatform(samples int, resizable bool) *Platform {
	return &Platform{
		Samples:   samples,
		Resizable: resizable,
	}
}

func (p *Platform) Init() error {
	if err := glfw.Init(); err != nil {
		return errors.Wrap(err, "failed to initialize glfw")
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, p.Samples)
	if p.Resizable {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}

	log.WithField("version", glfw.GetVersionString()).Debug("glfw initialized")
	return nil
}

func (p *Platform) Terminate() {
	glfw.Terminate()
}

func (p *Platform) PollEvents() {
	glfw.PollEvents()
}

// Window is a GLFW window. It keeps the keyboard and mouse state reported
// by its callbacks in Input.
type Window struct {
	window   *glfw.Window
	interval int

	Input *Input
}

// New opens a window. interval is the swap interval applied when the
// context is made current, 1 for vsync.
func New(width, height int, title string, interval int) (*Window, error) {
	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create window")
	}

	w := &Window{
		window:   win,
		interval: interval,
		Input:    NewInput(),
	}

	// callbacks
	win.SetKeyCallback(w.Input.onKey)
	win.SetCursorPosCallback(w.Input.onMouseMove)
	win.SetScrollCallback(w.Input.onMouseScroll)
	win.SetMouseButtonCallback(w.Input.onMouseButton)

	return w, nil
}

func (w *Window) IsValid() bool {
	return w != nil && w.window != nil
}

func (w *Window) ShouldClose() bool {
	return w.window.ShouldClose()
}

func (w *Window) Close() {
	w.window.SetShouldClose(true)
}

func (w *Window) SwapBuffers() {
	w.window.SwapBuffers()
}

func (w *Window) MakeContextCurrent() {
	w.window.MakeContextCurrent()
	glfw.SwapInterval(w.interval)
}

func (w *Window) FramebufferSize() (width, height int) {
	return w.window.GetFramebufferSize()
}

// SetFramebufferSizeCallback reports framebuffer resizes to f, nil removes
// the callback.
func (w *Window) SetFramebufferSizeCallback(f func(width, height int)) {
	if f == nil {
		w.window.SetFramebufferSizeCallback(nil)
		return
	}

	w.window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		f(width, height)
	})
}

func (w *Window) SetSize(width, height int) {
	w.window.SetSize(width, height)
}

func (w *Window) SetTitle(title string) {
	w.window.SetTitle(title)
}

// Destroy closes the window; it is invalid afterwards.
func (w *Window) Destroy() {
	if w.window == nil {
		return
	}
	w.window.Destroy()
	w.window = nil
}
