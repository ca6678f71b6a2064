// Package config loads the settings of the sample program: built-in
// defaults, then an optional TOML file, then .env files, then the process
// environment.
package config

import (
	"os"
	"strconv"

	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Configuration defines all settings
type Configuration struct {
	Window  WindowConfiguration `toml:"window"`
	Fan     FanConfiguration    `toml:"fan"`
	Clear   Color               `toml:"clear"`
	Shaders ShaderConfiguration `toml:"shaders"`

	// LogLevel is a logrus level name
	LogLevel string `toml:"log_level"`
}

// WindowConfiguration is used to open the window
type WindowConfiguration struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`

	// VSync waits for the display refresh on every swap
	VSync     bool `toml:"vsync"`
	Samples   int  `toml:"samples"`
	Resizable bool `toml:"resizable"`
}

// FanConfiguration shapes the drawn disc
type FanConfiguration struct {
	Segments int     `toml:"segments"`
	Radius   float32 `toml:"radius"`

	// Speed is the rotation in radians per second
	Speed float32 `toml:"speed"`
}

type Color struct {
	R float32 `toml:"r"`
	G float32 `toml:"g"`
	B float32 `toml:"b"`
	A float32 `toml:"a"`
}

// ShaderConfiguration selects the program sources
type ShaderConfiguration struct {
	// Dir holds <Name>.vert and <Name>.frag, empty for the built-in sources
	Dir  string `toml:"dir"`
	Name string `toml:"name"`

	// Watch recompiles the program when a source in Dir changes
	Watch bool `toml:"watch"`
}

// Default returns the settings used when nothing overrides them.
func Default() Configuration {
	return Configuration{
		Window: WindowConfiguration{
			Width:     800,
			Height:    800,
			Title:     "glcourse",
			VSync:     true,
			Samples:   4,
			Resizable: true,
		},
		Fan: FanConfiguration{
			Segments: 80,
			Radius:   0.7071,
			Speed:    0.5,
		},
		Clear: Color{0.8, 0.3, 0.2, 1.0},
		Shaders: ShaderConfiguration{
			Name: "fan",
		},
		LogLevel: "info",
	}
}

// Load reads path over the defaults, then the env files (".env" if none
// are given) and the environment. Missing files are skipped.
//
// Importing envy already loads ./.env into the environment once, at
// program start, overriding variables set before. Load itself only reads
// envFiles; envy.Reload rereads the process environment.
func Load(path string, envFiles ...string) (Configuration, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			log.WithField("path", path).Debug("no config file")
		case err != nil:
			return cfg, errors.Wrap(err, "read config")
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, errors.Wrapf(err, "parse %v", path)
			}
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return cfg, errors.Wrapf(err, "load %v", f)
		}
	}
	envy.Reload()

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// Path returns the config file named by GLCOURSE_CONFIG.
func Path() string {
	return envy.Get("GLCOURSE_CONFIG", "glcourse.toml")
}

func (c *Configuration) applyEnv() error {
	overrides := []struct {
		key   string
		apply func(string) error
	}{
		{"GLCOURSE_WIDTH", intVar(&c.Window.Width)},
		{"GLCOURSE_HEIGHT", intVar(&c.Window.Height)},
		{"GLCOURSE_TITLE", stringVar(&c.Window.Title)},
		{"GLCOURSE_VSYNC", boolVar(&c.Window.VSync)},
		{"GLCOURSE_SAMPLES", intVar(&c.Window.Samples)},
		{"GLCOURSE_SEGMENTS", intVar(&c.Fan.Segments)},
		{"GLCOURSE_RADIUS", floatVar(&c.Fan.Radius)},
		{"GLCOURSE_SPEED", floatVar(&c.Fan.Speed)},
		{"GLCOURSE_SHADER_DIR", stringVar(&c.Shaders.Dir)},
		{"GLCOURSE_SHADER_WATCH", boolVar(&c.Shaders.Watch)},
		{"LOG_LEVEL", stringVar(&c.LogLevel)},
	}

	for _, o := range overrides {
		v := envy.Get(o.key, "")
		if v == "" {
			continue
		}
		if err := o.apply(v); err != nil {
			return errors.Wrapf(err, "%v=%q", o.key, v)
		}
	}
	return nil
}

func stringVar(p *string) func(string) error {
	return func(v string) error {
		*p = v
		return nil
	}
}

func intVar(p *int) func(string) error {
	return func(v string) error {
		i, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*p = i
		return nil
	}
}

func boolVar(p *bool) func(string) error {
	return func(v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*p = b
		return nil
	}
}

func floatVar(p *float32) func(string) error {
	return func(v string) error {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return err
		}
		*p = float32(f)
		return nil
	}
}

// Validate rejects settings the program can not start with.
func (c Configuration) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return errors.Errorf("invalid window size %vx%v", c.Window.Width, c.Window.Height)
	case c.Fan.Segments < 3:
		return errors.Errorf("fan needs at least 3 segments, got %v", c.Fan.Segments)
	case c.Fan.Radius <= 0:
		return errors.Errorf("invalid fan radius %v", c.Fan.Radius)
	case c.Shaders.Name == "":
		return errors.New("missing shader name")
	case c.Shaders.Watch && c.Shaders.Dir == "":
		return errors.New("shader watch needs a shader dir")
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level, info if it is invalid.
func (c Configuration) Level() log.Level {
	l, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return l
}
