// Package config provides configuration loading and access for the visualizer.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is returned by Validate for configurations that cannot run.
var ErrInvalid = errors.New("config: invalid")

// Config holds all visualizer configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Audio     AudioConfig     `yaml:"audio"`
	Spectrum  SpectrumConfig  `yaml:"spectrum"`
	Grid      GridConfig      `yaml:"grid"`
	Render    RenderConfig    `yaml:"render"`
	Camera    CameraConfig    `yaml:"camera"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// AudioConfig selects and parameterizes the audio source.
type AudioConfig struct {
	File       string       `yaml:"file"`        // WAV file to analyze (empty = tone source)
	SampleRate int          `yaml:"sample_rate"` // Sample rate for synthetic sources
	Loop       bool         `yaml:"loop"`        // Restart the file at EOF
	Window     string       `yaml:"window"`      // FFT window name
	Tones      []ToneConfig `yaml:"tones"`       // Partials for the tone source
	Noise      float64      `yaml:"noise"`       // White noise amplitude added to the tone source
}

// ToneConfig is a single sine partial of the synthetic tone source.
type ToneConfig struct {
	Frequency float64 `yaml:"frequency"` // Hz
	Amplitude float64 `yaml:"amplitude"` // linear, 0..1
	Sweep     float64 `yaml:"sweep"`     // Hz per second of frequency drift (0 = fixed)
}

// SpectrumConfig holds spectrum reduction parameters.
type SpectrumConfig struct {
	Size      int     `yaml:"size"`       // Magnitude bins per frame
	BandWidth int     `yaml:"band_width"` // Bins averaged per band
	LogOffset float64 `yaml:"log_offset"` // Added after log10 compression
	LogBands  bool    `yaml:"log_bands"`  // Emit per-band debug logs every frame
}

// GridConfig holds entity grid layout.
type GridConfig struct {
	Width        int     `yaml:"width"`   // Cells along X
	Depth        int     `yaml:"depth"`   // Cells along Z
	Spacing      float64 `yaml:"spacing"` // World units between cell origins
	InitialScale Vec3    `yaml:"initial_scale"`
}

// Vec3 is a YAML-friendly three component vector.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// RenderConfig holds drawing parameters.
type RenderConfig struct {
	Mesh      string   `yaml:"mesh"`       // "cylinder" or "cube"
	Palette   []string `yaml:"palette"`    // Hex colors, cycled by (x+z)
	Wireframe bool     `yaml:"wireframe"`  // Draw outlines on top of solids
	MaxHeight float64  `yaml:"max_height"` // Clamp for drawn height (0 = none)
}

// CameraConfig holds the orbit camera defaults.
type CameraConfig struct {
	Distance   float64 `yaml:"distance"`
	Pitch      float64 `yaml:"pitch"`       // radians above the grid plane
	Yaw        float64 `yaml:"yaw"`         // radians around the grid center
	OrbitSpeed float64 `yaml:"orbit_speed"` // radians per second of auto-orbit
	Fovy       float64 `yaml:"fovy"`
}

// TelemetryConfig holds stats collection parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // seconds per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	BandCount     int     // Spectrum.Size / Spectrum.BandWidth
	BandRemainder int     // Spectrum.Size % Spectrum.BandWidth (discarded bins)
	EntityCount   int     // Grid.Width * Grid.Depth
	FrameDT       float64 // 1 / Screen.TargetFPS
	ScreenW32     float32
	ScreenH32     float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Defaults returns the embedded default configuration with derived values.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	cfg.computeDerived()
	return cfg, nil
}

// Validate rejects configurations the pipeline cannot run with.
// A band width that leaves remainder bins is allowed; see Derived.BandRemainder.
func (c *Config) Validate() error {
	switch {
	case c.Spectrum.Size <= 0:
		return fmt.Errorf("%w: spectrum.size must be positive, got %d", ErrInvalid, c.Spectrum.Size)
	case c.Spectrum.BandWidth <= 0 || c.Spectrum.BandWidth > c.Spectrum.Size:
		return fmt.Errorf("%w: spectrum.band_width must be in [1, %d], got %d",
			ErrInvalid, c.Spectrum.Size, c.Spectrum.BandWidth)
	case c.Grid.Width <= 0 || c.Grid.Depth <= 0:
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalid, c.Grid.Width, c.Grid.Depth)
	case c.Grid.Spacing <= 0:
		return fmt.Errorf("%w: grid.spacing must be positive", ErrInvalid)
	case c.Audio.File == "" && c.Audio.SampleRate <= 0:
		return fmt.Errorf("%w: audio.sample_rate must be positive for the tone source, got %d",
			ErrInvalid, c.Audio.SampleRate)
	case c.Screen.TargetFPS <= 0:
		return fmt.Errorf("%w: screen.target_fps must be positive", ErrInvalid)
	case len(c.Render.Palette) == 0:
		return fmt.Errorf("%w: render.palette must not be empty", ErrInvalid)
	}
	return nil
}

// Refresh re-validates the config and recomputes derived values after fields
// were changed in place (e.g. by command-line overrides).
func (c *Config) Refresh() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Spectrum.BandWidth > 0 {
		c.Derived.BandCount = c.Spectrum.Size / c.Spectrum.BandWidth
		c.Derived.BandRemainder = c.Spectrum.Size % c.Spectrum.BandWidth
	}
	c.Derived.EntityCount = c.Grid.Width * c.Grid.Depth
	if c.Screen.TargetFPS > 0 {
		c.Derived.FrameDT = 1.0 / float64(c.Screen.TargetFPS)
	}
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
