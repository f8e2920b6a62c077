package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinematic/movement"
	"github.com/oomph-ac/kinematic/oerror"
	"github.com/oomph-ac/kinematic/sim"
	"github.com/oomph-ac/kinematic/snapshot"
	"gopkg.in/yaml.v3"
)

// Config describes a complete simulation: the world, the agents in it and how it is stepped.
type Config struct {
	Log      LogConfig         `yaml:"log"`
	Sim      SimConfig         `yaml:"sim"`
	Movement movement.Settings `yaml:"movement"`
	Scene    SceneConfig       `yaml:"scene"`
	Agents   []AgentSpec       `yaml:"agents"`
}

type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `yaml:"level"`
}

type SimConfig struct {
	TickRate    float64 `yaml:"tick_rate"`
	Ticks       int     `yaml:"ticks"`
	MaxCatchUp  int     `yaml:"max_catch_up"`
	Workers     int     `yaml:"workers"`
	HistorySize int     `yaml:"history_size"`
	Precision   int     `yaml:"precision"`
	// LogEvery logs the state of every agent each LogEvery ticks. Zero disables it.
	LogEvery int `yaml:"log_every"`
}

type SceneConfig struct {
	Boxes     []BoxSpec      `yaml:"boxes,omitempty"`
	Planes    []PlaneSpec    `yaml:"planes,omitempty"`
	Slopes    []SlopeSpec    `yaml:"slopes,omitempty"`
	Platforms []PlatformSpec `yaml:"platforms,omitempty"`
	Crates    []CrateSpec    `yaml:"crates,omitempty"`
}

type BoxSpec struct {
	Name string     `yaml:"name"`
	Min  mgl64.Vec3 `yaml:"min"`
	Max  mgl64.Vec3 `yaml:"max"`
}

type PlaneSpec struct {
	Name   string     `yaml:"name"`
	Normal mgl64.Vec3 `yaml:"normal"`
	Point  mgl64.Vec3 `yaml:"point"`
}

type SlopeSpec struct {
	Name   string     `yaml:"name"`
	Point  mgl64.Vec3 `yaml:"point"`
	Angle  float64    `yaml:"angle"`
	Ascend mgl64.Vec3 `yaml:"ascend"`
}

type PlatformSpec struct {
	Name   string     `yaml:"name"`
	Min    mgl64.Vec3 `yaml:"min"`
	Max    mgl64.Vec3 `yaml:"max"`
	Travel mgl64.Vec3 `yaml:"travel"`
	Speed  float64    `yaml:"speed"`
}

type CrateSpec struct {
	Name    string     `yaml:"name"`
	Min     mgl64.Vec3 `yaml:"min"`
	Max     mgl64.Vec3 `yaml:"max"`
	Mass    float64    `yaml:"mass"`
	Damping float64    `yaml:"damping"`
}

// AgentSpec places an agent. Movement, if present, overrides the top level movement settings for this agent
// only.
type AgentSpec struct {
	Name     string         `yaml:"name"`
	Position mgl64.Vec3     `yaml:"position"`
	Movement yaml.Node      `yaml:"movement,omitempty"`
	Script   []sim.Keyframe `yaml:"script,omitempty"`
}

// Default returns the configuration used for every key a file leaves out.
func Default() Config {
	opts := sim.DefaultOptions()
	return Config{
		Log: LogConfig{Level: "info"},
		Sim: SimConfig{
			TickRate:    opts.TickRate,
			Ticks:       500,
			MaxCatchUp:  opts.MaxCatchUp,
			Workers:     opts.Workers,
			HistorySize: opts.HistorySize,
			Precision:   snapshot.DefaultPrecision,
			LogEvery:    50,
		},
		Movement: movement.DefaultSettings(),
	}
}

// Load reads and validates the configuration at path. An empty path yields the defaults.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(b)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(b []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %w", oerror.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LogLevel returns the configured log level.
func (c Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return lvl, fmt.Errorf("%w: log level: %w", oerror.ErrInvalidConfig, err)
	}
	return lvl, nil
}

// AgentSettings returns the movement settings of an agent, with its overrides applied.
func (c Config) AgentSettings(a AgentSpec) (movement.Settings, error) {
	s := c.Movement
	if a.Movement.Kind != 0 {
		if err := a.Movement.Decode(&s); err != nil {
			return s, fmt.Errorf("%w: agent %q movement: %w", oerror.ErrInvalidConfig, a.Name, err)
		}
	}
	return s, nil
}

// Options returns the runner options described by the sim section.
func (c Config) Options() sim.Options {
	return sim.Options{
		TickRate:    c.Sim.TickRate,
		MaxCatchUp:  c.Sim.MaxCatchUp,
		Workers:     c.Sim.Workers,
		HistorySize: c.Sim.HistorySize,
		Precision:   c.Sim.Precision,
	}
}
