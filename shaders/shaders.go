// Package shaders finds vertex and fragment shader sources. Sources are
// named <name>.vert and <name>.frag; the built-in ones live in the glsl box.
package shaders

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/gobuffalo/packr"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	vertexSuffix   = ".vert"
	fragmentSuffix = ".frag"
)

var box = packr.NewBox("./glsl")

// Source is the source code of one program.
type Source struct {
	Name     string
	Vertex   string
	Fragment string
}

// Builtin returns the built-in sources of name.
func Builtin(name string) (Source, error) {
	vert, err := box.FindString(name + vertexSuffix)
	if err != nil {
		return Source{}, errors.Wrapf(err, "builtin shader %v", name)
	}

	frag, err := box.FindString(name + fragmentSuffix)
	if err != nil {
		return Source{}, errors.Wrapf(err, "builtin shader %v", name)
	}

	return Source{Name: name, Vertex: vert, Fragment: frag}, nil
}

// Load reads the sources of name from dir.
func Load(dir, name string) (Source, error) {
	vert, err := os.ReadFile(filepath.Join(dir, name+vertexSuffix))
	if err != nil {
		return Source{}, errors.Wrapf(err, "load shader %v", name)
	}

	frag, err := os.ReadFile(filepath.Join(dir, name+fragmentSuffix))
	if err != nil {
		return Source{}, errors.Wrapf(err, "load shader %v", name)
	}

	return Source{Name: name, Vertex: string(vert), Fragment: string(frag)}, nil
}

// Find loads name from dir, or the built-in sources if dir is empty.
func Find(dir, name string) (Source, error) {
	if dir == "" {
		return Builtin(name)
	}
	return Load(dir, name)
}

// Watcher reports changes to the sources of one program in a directory.
// It never blocks, so it can be polled from the render loop.
type Watcher struct {
	watcher *fsnotify.Watcher
	dir     string
	name    string
}

func Watch(dir, name string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "watch shaders")
	}

	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, errors.Wrapf(err, "watch %v", dir)
	}

	return &Watcher{watcher: w, dir: dir, name: name}, nil
}

func (w *Watcher) matches(path string) bool {
	base := filepath.Base(path)
	return base == w.name+vertexSuffix || base == w.name+fragmentSuffix
}

// Changed drains pending events and reports whether a source of the
// program was written or recreated since the last call.
func (w *Watcher) Changed() bool {
	changed := false
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return changed
			}
			if (ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) && w.matches(ev.Name) {
				changed = true
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return changed
			}
			log.WithError(err).Warn("shader watcher")
		default:
			return changed
		}
	}
}

// Reload reads the sources again.
func (w *Watcher) Reload() (Source, error) {
	return Load(w.dir, w.name)
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}
