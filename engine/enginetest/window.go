package enginetest

// Platform counts what the device asks of the windowing system.
type Platform struct {
	InitErr error

	Initialized bool
	Terminated  bool
	Polls       int
}

func (p *Platform) Init() error {
	if p.InitErr != nil {
		return p.InitErr
	}
	p.Initialized = true
	return nil
}

func (p *Platform) Terminate()  { p.Terminated = true }
func (p *Platform) PollEvents() { p.Polls++ }

// Window is a window without a screen.
type Window struct {
	Valid   bool
	Closing bool
	Current bool
	Swaps   int

	Width, Height int

	resize func(width, height int)
}

func NewWindow(width, height int) *Window {
	return &Window{
		Valid:  true,
		Width:  width,
		Height: height,
	}
}

func (w *Window) IsValid() bool     { return w.Valid }
func (w *Window) ShouldClose() bool { return w.Closing }
func (w *Window) SwapBuffers()      { w.Swaps++ }

// current is the window whose context is current on the calling thread.
var current *Window

// MakeContextCurrent takes the context away from the previous window.
func (w *Window) MakeContextCurrent() {
	if current != nil {
		current.Current = false
	}
	current = w
	w.Current = true
}

func (w *Window) FramebufferSize() (width, height int) {
	return w.Width, w.Height
}

func (w *Window) SetFramebufferSizeCallback(f func(width, height int)) {
	w.resize = f
}

// Resize changes the framebuffer size and reports it like the platform would.
func (w *Window) Resize(width, height int) {
	w.Width, w.Height = width, height
	if w.resize != nil {
		w.resize(width, height)
	}
}
