package config

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 800, cfg.Window.Height)
	assert.Equal(t, 80, cfg.Fan.Segments)
	assert.Equal(t, Color{0.8, 0.3, 0.2, 1.0}, cfg.Clear)
	assert.Equal(t, "fan", cfg.Shaders.Name)
	assert.Equal(t, log.InfoLevel, cfg.Level())
}

func TestLoad_MissingFiles(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "glcourse.toml"), filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, "glcourse.toml", `
log_level = "debug"

[window]
width = 640
title = "fan"

[fan]
segments = 12
speed = 1.5

[clear]
r = 0.1
g = 0.2
b = 0.3
a = 1.0
`)

	cfg, err := Load(path, filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)

	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 800, cfg.Window.Height, "unset keys keep their default")
	assert.Equal(t, "fan", cfg.Window.Title)
	assert.Equal(t, 12, cfg.Fan.Segments)
	assert.Equal(t, float32(1.5), cfg.Fan.Speed)
	assert.Equal(t, float32(0.7071), cfg.Fan.Radius)
	assert.Equal(t, Color{0.1, 0.2, 0.3, 1.0}, cfg.Clear)
	assert.Equal(t, log.DebugLevel, cfg.Level())
}

func TestLoad_Env(t *testing.T) {
	path := writeFile(t, "glcourse.toml", "[window]\nwidth = 640\n")
	t.Setenv("GLCOURSE_WIDTH", "1024")
	t.Setenv("GLCOURSE_VSYNC", "false")
	t.Setenv("GLCOURSE_RADIUS", "0.5")

	cfg, err := Load(path, filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.Window.Width, "environment wins over the file")
	assert.False(t, cfg.Window.VSync)
	assert.Equal(t, float32(0.5), cfg.Fan.Radius)
}

func TestLoad_EnvFile(t *testing.T) {
	env := writeFile(t, ".env", "GLCOURSE_SEGMENTS=24\nGLCOURSE_TITLE=dotenv\n")
	t.Setenv("GLCOURSE_SEGMENTS", "")
	t.Setenv("GLCOURSE_TITLE", "")
	os.Unsetenv("GLCOURSE_SEGMENTS")
	os.Unsetenv("GLCOURSE_TITLE")

	cfg, err := Load("", env)
	require.NoError(t, err)

	assert.Equal(t, 24, cfg.Fan.Segments)
	assert.Equal(t, "dotenv", cfg.Window.Title)
}

func TestLoad_EnvFilesOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GLCOURSE_TITLE=stray\n"), 0644))
	env := writeFile(t, "test.env", "GLCOURSE_SEGMENTS=16\n")
	for _, k := range []string{"GLCOURSE_TITLE", "GLCOURSE_SEGMENTS"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := Load("", env)
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.Fan.Segments)
	assert.Equal(t, "glcourse", cfg.Window.Title, ".env in the working directory is not read")
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		Name string
		File string
		Env  map[string]string
	}{
		{"syntax", "[window\nwidth = 1", nil},
		{"type", "[window]\nwidth = \"wide\"", nil},
		{"env int", "", map[string]string{"GLCOURSE_WIDTH": "wide"}},
		{"env bool", "", map[string]string{"GLCOURSE_VSYNC": "sometimes"}},
		{"segments", "[fan]\nsegments = 2", nil},
		{"radius", "", map[string]string{"GLCOURSE_RADIUS": "-1"}},
		{"watch", "[shaders]\nwatch = true", nil},
		{"level", "log_level = \"loud\"", nil},
	}

	for _, c := range tests {
		t.Run(c.Name, func(t *testing.T) {
			for k, v := range c.Env {
				t.Setenv(k, v)
			}
			path := writeFile(t, "glcourse.toml", c.File)

			_, err := Load(path, filepath.Join(t.TempDir(), ".env"))
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		Name   string
		Modify func(*Configuration)
	}{
		{"width", func(c *Configuration) { c.Window.Width = 0 }},
		{"height", func(c *Configuration) { c.Window.Height = -1 }},
		{"segments", func(c *Configuration) { c.Fan.Segments = 2 }},
		{"radius", func(c *Configuration) { c.Fan.Radius = 0 }},
		{"shader", func(c *Configuration) { c.Shaders.Name = "" }},
		{"watch", func(c *Configuration) { c.Shaders.Watch = true }},
		{"level", func(c *Configuration) { c.LogLevel = "loud" }},
	}

	for _, c := range tests {
		cfg := Default()
		c.Modify(&cfg)
		assert.Error(t, cfg.Validate(), c.Name)
	}

	cfg := Default()
	cfg.LogLevel = "loud"
	assert.Equal(t, log.InfoLevel, cfg.Level())
}

func TestPath(t *testing.T) {
	t.Setenv("GLCOURSE_CONFIG", "")
	os.Unsetenv("GLCOURSE_CONFIG")
	assert.Equal(t, "glcourse.toml", Path())
}
