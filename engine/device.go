package engine

import (
	"sync/atomic"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// claimed is set while a device is alive.
var claimed atomic.Bool

// Device is the one rendering context of the process, bound to a window.
// It is created once, passed to whatever needs the context, and destroyed
// at exit. Drawing before SetCurrentWindow succeeded is ignored with a
// warning.
type Device struct {
	platform Platform
	api      API

	window Window
	ready  bool

	width, height int
}

// NewDevice initializes the platform. It fails with ErrDeviceExists while
// another device is alive.
func NewDevice(platform Platform, api API) (*Device, error) {
	if !claimed.CompareAndSwap(false, true) {
		return nil, ErrDeviceExists
	}

	if err := platform.Init(); err != nil {
		claimed.Store(false)
		return nil, errors.Wrap(err, "platform init")
	}

	log.Debug("device created")

	return &Device{
		platform: platform,
		api:      api,
	}, nil
}

// Destroy terminates the platform and frees the device slot. The device
// can not be used afterwards.
func (d *Device) Destroy() {
	if d.platform == nil {
		return
	}

	d.platform.Terminate()
	d.platform = nil
	d.ready = false
	d.window = nil
	claimed.Store(false)

	log.Debug("device destroyed")
}

// SetCurrentWindow makes the context of w current and loads the api
// against it. A failed call leaves an earlier success intact. Switching to
// another window abandons the previous context.
func (d *Device) SetCurrentWindow(w Window) error {
	if w == nil || !w.IsValid() {
		return ErrInvalidWindow
	}

	w.MakeContextCurrent()
	if err := d.api.Init(); err != nil {
		if d.window != nil {
			d.window.MakeContextCurrent()
		}
		return errors.Wrap(err, "load context")
	}

	// the abandoned window no longer drives the viewport
	if d.window != nil && d.window != w {
		d.window.SetFramebufferSizeCallback(nil)
	}

	d.window = w
	d.ready = true

	w.SetFramebufferSizeCallback(d.onResize)
	d.onResize(w.FramebufferSize())

	log.WithFields(log.Fields{"width": d.width, "height": d.height}).Debug("context loaded")
	return nil
}

func (d *Device) IsReady() bool {
	return d.ready
}

func (d *Device) Window() Window {
	return d.window
}

func (d *Device) API() API {
	return d.api
}

// Size returns the framebuffer size last reported by the window.
func (d *Device) Size() (width, height int) {
	return d.width, d.height
}

func (d *Device) onResize(width, height int) {
	if height < 1 {
		height = 1
	}

	if width < 1 {
		width = 1
	}

	d.width = width
	d.height = height
	d.SetViewport(0, 0, width, height)
}

func (d *Device) guard(op string) bool {
	if !d.ready {
		log.WithField("op", op).Warn("device not ready")
	}
	return d.ready
}

// SetViewport sets the pixel rectangle draws render into.
func (d *Device) SetViewport(x, y, width, height int) {
	if d.guard("viewport") {
		d.api.Viewport(x, y, width, height)
	}
}

// Clear clears the color buffer. Components are intensities in [0,1].
func (d *Device) Clear(r, g, b, a float32) {
	if d.guard("clear") {
		d.api.ClearColor(r, g, b, a)
		d.api.Clear()
	}
}

// DrawElements draws count indices of type typ from the bound element
// buffer, starting offset bytes in, with the bound vertex array.
func (d *Device) DrawElements(mode Primitive, count int, typ DataType, offset int) {
	if d.guard("draw") {
		d.api.DrawElements(mode, count, typ, offset)
	}
}

// PollEvents drains the event queue once without blocking. Input and close
// requests are only seen if this is called every frame.
func (d *Device) PollEvents() {
	if d.platform != nil {
		d.platform.PollEvents()
	}
}

// Error returns the api error flag raised since the last call.
func (d *Device) Error() error {
	if !d.ready {
		return ErrNotReady
	}
	return d.api.Error()
}
