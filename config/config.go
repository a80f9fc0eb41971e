// Package config provides configuration loading and access for the viewer and tools.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all application configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Viewer    ViewerConfig    `yaml:"viewer"`
	Scene     SceneConfig     `yaml:"scene"`
	Sweep     SweepConfig     `yaml:"sweep"`
	Calibrate CalibrateConfig `yaml:"calibrate"`
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

// ViewerConfig holds interactive viewer settings.
type ViewerConfig struct {
	PanelWidth    int    `yaml:"panel_width"`     // Right-hand panel column
	StartPreset   string `yaml:"start_preset"`    // Preset id selected at startup
	ShowControls  bool   `yaml:"show_controls"`   // Controls panel visible at startup
	ShowLayerInfo bool   `yaml:"show_layer_info"` // Layer info panel visible at startup
}

// SceneConfig holds scene-graph construction and animation settings.
type SceneConfig struct {
	Seed            int64   `yaml:"seed"`              // Sway phase seed
	CrownLimit      int     `yaml:"crown_limit"`       // Max clustered canopy crowns, 0 = no limit
	LeafFall        float64 `yaml:"leaf_fall"`         // Distance a leaf falls (view units)
	LeafDuration    float64 `yaml:"leaf_duration"`     // Seconds per fall
	LeafStagger     float64 `yaml:"leaf_stagger"`      // Seconds between successive leaves
	LeafRepeatDelay float64 `yaml:"leaf_repeat_delay"` // Pause before a leaf falls again
}

// SweepConfig holds parameter sweep settings for cmd/sweep.
type SweepConfig struct {
	CoverSteps  int       `yaml:"cover_steps"`  // Grid points over canopy cover
	LAISteps    int       `yaml:"lai_steps"`    // Grid points over LAI
	LightSteps  int       `yaml:"light_steps"`  // Grid points over light penetration
	SunAngles   []float64 `yaml:"sun_angles"`   // Sun angles to evaluate
	Gaps        []int     `yaml:"gaps"`         // Canopy gap counts to evaluate
	OutputFile  string    `yaml:"output_file"`  // CSV of every evaluation
	SummaryFile string    `yaml:"summary_file"` // CSV of per-column statistics
}

// LayerTargets holds a target value per forest layer.
type LayerTargets struct {
	Emergent    float64 `yaml:"emergent"`
	Canopy      float64 `yaml:"canopy"`
	Understory  float64 `yaml:"understory"`
	ForestFloor float64 `yaml:"forest_floor"`
}

// CalibrateConfig holds inverse-model search settings for cmd/calibrate.
type CalibrateConfig struct {
	StartPreset        string       `yaml:"start_preset"`        // Initial point
	Targets            LayerTargets `yaml:"targets"`             // Light percent per layer
	Biodiversity       float64      `yaml:"biodiversity"`        // Target biodiversity index, 0 = ignore
	BiodiversityWeight float64      `yaml:"biodiversity_weight"` // Relative weight of the biodiversity term
	MaxEvals           int          `yaml:"max_evals"`           // Objective evaluation budget
	InitStep           float64      `yaml:"init_step"`           // Initial simplex size in normalized space
	Tolerance          float64      `yaml:"tolerance"`           // Smallest best-loss drop that counts as progress
	StallIters         int          `yaml:"stall_iters"`         // Iterations without progress before stopping, 0 = never
	LogFile            string       `yaml:"log_file"`            // CSV log of evaluations
}

// TelemetryConfig holds CSV output settings.
type TelemetryConfig struct {
	OutputDir       string  `yaml:"output_dir"`       // Empty disables file output
	SnapshotEvery   float64 `yaml:"snapshot_every"`   // Seconds between automatic snapshots, 0 = manual only
	EvaluationsFile string  `yaml:"evaluations_file"` // Snapshot CSV name
	ConfigFile      string  `yaml:"config_file"`      // Config snapshot name
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
	ViewW32   float32 // Width left for the forest view
	PanelX32  float32 // Left edge of the panel column
	FrameDT   float64 // Seconds per frame at the target FPS
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

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
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
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen: size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Viewer.PanelWidth < 0 || c.Viewer.PanelWidth >= c.Screen.Width {
		return fmt.Errorf("viewer: panel_width %d does not fit screen width %d", c.Viewer.PanelWidth, c.Screen.Width)
	}
	if c.Scene.LeafDuration <= 0 {
		return fmt.Errorf("scene: leaf_duration must be positive, got %v", c.Scene.LeafDuration)
	}
	if c.Calibrate.MaxEvals < 0 {
		return fmt.Errorf("calibrate: max_evals must not be negative, got %d", c.Calibrate.MaxEvals)
	}
	if c.Calibrate.Tolerance < 0 || c.Calibrate.StallIters < 0 {
		return fmt.Errorf("calibrate: tolerance and stall_iters must not be negative")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Screen.TargetFPS <= 0 {
		c.Screen.TargetFPS = 60
	}
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.ViewW32 = float32(c.Screen.Width - c.Viewer.PanelWidth)
	c.Derived.PanelX32 = c.Derived.ViewW32
	c.Derived.FrameDT = 1 / float64(c.Screen.TargetFPS)

	// A grid axis needs both endpoints
	for _, steps := range []*int{&c.Sweep.CoverSteps, &c.Sweep.LAISteps, &c.Sweep.LightSteps} {
		if *steps < 2 {
			*steps = 2
		}
	}
	if c.Calibrate.InitStep <= 0 {
		c.Calibrate.InitStep = 0.1
	}
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
