package main

import (
	"runtime"
	"time"

	"github.com/der-antikeks/glcourse/config"
	"github.com/der-antikeks/glcourse/engine"
	"github.com/der-antikeks/glcourse/engine/opengl"
	"github.com/der-antikeks/glcourse/shaders"
	"github.com/der-antikeks/glcourse/window"
	"github.com/go-gl/mathgl/mgl32"
	log "github.com/sirupsen/logrus"
)

func init() {
	// the context and the event queue belong to the main thread
	runtime.LockOSThread()
}

func main() {
	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatal(err)
	}

	log.SetLevel(cfg.Level())
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config.Configuration) error {
	device, err := engine.NewDevice(window.NewPlatform(cfg.Window.Samples, cfg.Window.Resizable), opengl.New())
	if err != nil {
		return err
	}
	defer device.Destroy()

	interval := 0
	if cfg.Window.VSync {
		interval = 1
	}

	win, err := window.New(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, interval)
	if err != nil {
		return err
	}
	defer win.Destroy()

	if err := device.SetCurrentWindow(win); err != nil {
		return err
	}

	scene, err := newScene(device, cfg)
	if err != nil {
		return err
	}
	defer scene.Delete()

	var watcher *shaders.Watcher
	if cfg.Shaders.Watch {
		if watcher, err = shaders.Watch(cfg.Shaders.Dir, cfg.Shaders.Name); err != nil {
			return err
		}
		defer watcher.Close()
	}

	// main loop
	var (
		start    = time.Now()
		lastTime = start
		now      time.Time
		ds       float64

		ratio  = 0.01
		curfps = 60.0

		console = time.Tick(500 * time.Millisecond)
	)

	for !win.ShouldClose() {
		// input
		if win.Input.IsKeyDown(window.KeyEscape) {
			win.Close()
		}

		if watcher != nil && watcher.Changed() {
			scene.Reload(watcher)
		}

		// calc fps
		now = time.Now()
		if ds = now.Sub(lastTime).Seconds(); ds > 0 {
			curfps = curfps*(1-ratio) + (1.0/ds)*ratio
		}
		lastTime = now

		// render
		scene.Render(float32(now.Sub(start).Seconds()))

		win.SwapBuffers()
		device.PollEvents()

		select {
		case <-console:
			log.WithField("fps", int(curfps)).Debug("frame")
		default:
		}
	}

	return nil
}

// scene is the rotating fan and its program.
type scene struct {
	device  *engine.Device
	cfg     config.Configuration
	program *engine.Program
	mesh    *engine.Mesh
}

func newScene(device *engine.Device, cfg config.Configuration) (*scene, error) {
	src, err := shaders.Find(cfg.Shaders.Dir, cfg.Shaders.Name)
	if err != nil {
		return nil, err
	}

	program, err := engine.NewProgram(device.API(), src.Vertex, src.Fragment)
	if err != nil {
		if program != nil {
			program.Delete()
		}
		return nil, err
	}

	geo := engine.NewFanGeometry(cfg.Fan.Segments, cfg.Fan.Radius)
	mesh, err := engine.NewMesh(device.API(), geo, engine.StaticDraw)
	if err != nil {
		program.Delete()
		return nil, err
	}

	log.WithFields(log.Fields{
		"vertices": geo.VerticesCount(),
		"indices":  geo.IndexCount(),
	}).Info("fan uploaded")

	return &scene{
		device:  device,
		cfg:     cfg,
		program: program,
		mesh:    mesh,
	}, nil
}

// Reload swaps in a program built from the changed sources. A broken
// source keeps the current program.
func (s *scene) Reload(w *shaders.Watcher) {
	src, err := w.Reload()
	if err != nil {
		log.WithError(err).Warn("shader reload")
		return
	}

	program, err := engine.NewProgram(s.device.API(), src.Vertex, src.Fragment)
	if err != nil {
		if program != nil {
			program.Delete()
		}
		log.WithError(err).Warn("shader reload")
		return
	}

	s.program.Delete()
	s.program = program
	log.WithField("name", src.Name).Info("shader reloaded")
}

// Render draws one frame at t seconds.
func (s *scene) Render(t float32) {
	c := s.cfg.Clear
	s.device.Clear(c.R, c.G, c.B, c.A)

	s.program.Use()
	s.program.SetMat4("transform", mgl32.HomogRotate3DZ(t*s.cfg.Fan.Speed))
	s.mesh.Draw(s.device)
}

func (s *scene) Delete() {
	s.mesh.Delete()
	s.program.Delete()
}
