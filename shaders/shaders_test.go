package shaders

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSources(t *testing.T, dir, name, vert, frag string) {
	t.Helper()

	require.NoError(t, os.WriteFile(filepath.Join(dir, name+vertexSuffix), []byte(vert), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+fragmentSuffix), []byte(frag), 0644))
}

func TestBuiltin(t *testing.T) {
	src, err := Builtin("fan")
	require.NoError(t, err)

	assert.Equal(t, "fan", src.Name)
	assert.Contains(t, src.Vertex, "#version 330 core")
	assert.Contains(t, src.Vertex, "layout (location = 0) in vec3")
	assert.Contains(t, src.Vertex, "uniform mat4 transform")
	assert.Contains(t, src.Fragment, "vec4(0.0, 0.5, 0.7, 1.0)")

	_, err = Builtin("missing")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeSources(t, dir, "flat", "vertex source", "fragment source")

	src, err := Load(dir, "flat")
	require.NoError(t, err)
	assert.Equal(t, Source{Name: "flat", Vertex: "vertex source", Fragment: "fragment source"}, src)

	found, err := Find(dir, "flat")
	require.NoError(t, err)
	assert.Equal(t, src, found)

	require.NoError(t, os.Remove(filepath.Join(dir, "flat"+fragmentSuffix)))
	_, err = Load(dir, "flat")
	assert.Error(t, err, "both sources are required")
}

func TestFind_Builtin(t *testing.T) {
	src, err := Find("", "fan")
	require.NoError(t, err)

	builtin, err := Builtin("fan")
	require.NoError(t, err)
	assert.Equal(t, builtin, src)
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	writeSources(t, dir, "fan", "v1", "f1")

	w, err := Watch(dir, "fan")
	require.NoError(t, err)
	defer w.Close()

	assert.False(t, w.Changed())

	// unrelated files are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	time.Sleep(100 * time.Millisecond)
	assert.False(t, w.Changed())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "fan"+fragmentSuffix), []byte("f2"), 0644))

	changed := false
	deadline := time.Now().Add(2 * time.Second)
	for !changed && time.Now().Before(deadline) {
		changed = w.Changed()
		time.Sleep(10 * time.Millisecond)
	}
	require.True(t, changed)

	src, err := w.Reload()
	require.NoError(t, err)
	assert.Equal(t, "f2", src.Fragment)
}

func TestWatch_MissingDir(t *testing.T) {
	_, err := Watch(filepath.Join(t.TempDir(), "missing"), "fan")
	assert.Error(t, err)
}
