package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinematic/oerror"
	"github.com/oomph-ac/kinematic/sim"
)

const sample = `
log:
  level: debug
sim:
  tick_rate: 20
  ticks: 10
movement:
  maxBounces: 3
  gravity: [0, -20, 0]
scene:
  boxes:
    - name: floor
      min: [-10, -1, -10]
      max: [10, 0, 10]
  crates:
    - name: crate
      min: [-0.5, 0, 3]
      max: [0.5, 1, 4]
      mass: 2
agents:
  - name: alice
    position: [0, 0.001, 0]
    movement:
      movementSpeed: 2
    script:
      - tick: 0
        move: [0, 0, 1]
      - tick: 5
        jump: true
  - name: bob
    position: [3, 0.001, 0]
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if lvl, _ := cfg.LogLevel(); lvl != slog.LevelDebug {
		t.Fatalf("expected debug logging, got %v", lvl)
	}
	if cfg.Sim.TickRate != 20 || cfg.Sim.HistorySize != Default().Sim.HistorySize {
		t.Fatalf("expected tick rate 20 and default history, got %+v", cfg.Sim)
	}
	if cfg.Movement.MaxBounces != 3 || cfg.Movement.Gravity != (mgl64.Vec3{0, -20, 0}) {
		t.Fatalf("movement overrides were not applied: %+v", cfg.Movement)
	}
	if cfg.Movement.JumpVelocity != Default().Movement.JumpVelocity {
		t.Fatalf("missing keys should keep their defaults")
	}

	alice, err := cfg.AgentSettings(cfg.Agents[0])
	if err != nil {
		t.Fatal(err)
	}
	if alice.MovementSpeed != 2 || alice.MaxBounces != 3 {
		t.Fatalf("agent overrides should apply on top of the shared settings, got %+v", alice)
	}
	bob, _ := cfg.AgentSettings(cfg.Agents[1])
	if bob.MovementSpeed != Default().Movement.MovementSpeed {
		t.Fatalf("agents without overrides use the shared settings, got %v", bob.MovementSpeed)
	}
	if len(cfg.Agents[0].Script) != 2 || cfg.Agents[0].Script[0].Move != (mgl64.Vec3{0, 0, 1}) {
		t.Fatalf("unexpected script %+v", cfg.Agents[0].Script)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"bad yaml", "sim: [", oerror.ErrInvalidConfig},
		{"zero bounces", "movement:\n  maxBounces: 0", oerror.ErrInvalidBounces},
		{"bad level", "log:\n  level: loud", oerror.ErrInvalidConfig},
		{"no tick rate", "sim:\n  tick_rate: 0", oerror.ErrInvalidConfig},
		{"flat box", "scene:\n  boxes:\n    - name: a\n      min: [0, 0, 0]\n      max: [1, 0, 1]", oerror.ErrInvalidConfig},
		{"duplicate name", "scene:\n  boxes:\n    - {name: a, min: [0, 0, 0], max: [1, 1, 1]}\nagents:\n  - name: a", oerror.ErrInvalidConfig},
		{"agent bounces", "agents:\n  - name: a\n    movement:\n      maxBounces: 0", oerror.ErrInvalidBounces},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil || len(cfg.Agents) != 2 {
		t.Fatalf("failed to load %s: %v", path, err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected a missing file error, got %v", err)
	}
	if cfg, err := Load(""); err != nil || cfg.Sim.TickRate != Default().Sim.TickRate {
		t.Fatalf("empty path should yield defaults, got %v", err)
	}
}

func TestBuildRunner(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	r, err := cfg.BuildRunner(nil, sim.NewManualClock(time.Unix(0, 0)))
	if err != nil {
		t.Fatalf("failed to build runner: %v", err)
	}
	defer r.Close()

	if len(r.Agents()) != 2 {
		t.Fatalf("expected 2 agents, got %d", len(r.Agents()))
	}
	alice, _ := r.Agent("alice")
	if alice.Controller.Settings().MovementSpeed != 2 {
		t.Fatalf("agent settings were not applied")
	}
	for range cfg.Sim.Ticks {
		if err := r.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if alice.Controller.Position().Z() <= 0 {
		t.Fatalf("alice should have walked forward, got %v", alice.Controller.Position())
	}
}

func TestExampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "cmd", "kinesim", "kinesim.yaml"))
	if err != nil {
		t.Fatalf("example configuration is invalid: %v", err)
	}
	r, err := cfg.BuildRunner(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	r.Close()
}
