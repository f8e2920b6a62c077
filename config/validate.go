package config

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinematic/oerror"
	"github.com/oomph-ac/kinematic/omath"
)

// Validate checks everything that would otherwise fail while building the simulation.
func (c Config) Validate() error {
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	switch {
	case c.Sim.TickRate <= 0:
		return invalid("sim.tick_rate must be positive, got %f", c.Sim.TickRate)
	case c.Sim.Ticks < 0:
		return invalid("sim.ticks must not be negative, got %d", c.Sim.Ticks)
	case c.Sim.HistorySize < 1:
		return invalid("sim.history_size must be at least 1, got %d", c.Sim.HistorySize)
	case c.Sim.LogEvery < 0:
		return invalid("sim.log_every must not be negative, got %d", c.Sim.LogEvery)
	}
	if err := c.Movement.Validate(); err != nil {
		return fmt.Errorf("movement: %w", err)
	}

	names := make(map[string]struct{})
	claim := func(kind, name string) error {
		if name == "" {
			return invalid("%s without a name", kind)
		}
		if _, exists := names[name]; exists {
			return invalid("name %q is used twice", name)
		}
		names[name] = struct{}{}
		return nil
	}

	for _, b := range c.Scene.Boxes {
		if err := claim("box", b.Name); err != nil {
			return err
		}
		if err := checkBox(b.Name, b.Min, b.Max); err != nil {
			return err
		}
	}
	for _, p := range c.Scene.Planes {
		if err := claim("plane", p.Name); err != nil {
			return err
		}
		if omath.NearZero(p.Normal) {
			return invalid("plane %q has no normal", p.Name)
		}
	}
	for _, s := range c.Scene.Slopes {
		if err := claim("slope", s.Name); err != nil {
			return err
		}
		if omath.NearZero(omath.Horizontal(s.Ascend)) {
			return invalid("slope %q needs a horizontal ascend direction", s.Name)
		}
		if s.Angle < 0 || s.Angle >= 90 {
			return invalid("slope %q angle must be within [0, 90), got %f", s.Name, s.Angle)
		}
	}
	for _, p := range c.Scene.Platforms {
		if err := claim("platform", p.Name); err != nil {
			return err
		}
		if err := checkBox(p.Name, p.Min, p.Max); err != nil {
			return err
		}
		if p.Speed < 0 {
			return invalid("platform %q speed must not be negative", p.Name)
		}
	}
	for _, cr := range c.Scene.Crates {
		if err := claim("crate", cr.Name); err != nil {
			return err
		}
		if err := checkBox(cr.Name, cr.Min, cr.Max); err != nil {
			return err
		}
		if cr.Mass <= 0 || cr.Damping < 0 {
			return invalid("crate %q needs a positive mass and non-negative damping", cr.Name)
		}
	}
	for _, a := range c.Agents {
		if err := claim("agent", a.Name); err != nil {
			return err
		}
		s, err := c.AgentSettings(a)
		if err != nil {
			return err
		}
		if err := s.Validate(); err != nil {
			return fmt.Errorf("agent %q: %w", a.Name, err)
		}
	}
	return nil
}

func checkBox(name string, lo, hi mgl64.Vec3) error {
	for i := range 3 {
		if hi[i] <= lo[i] {
			return invalid("%q: max %v must exceed min %v on every axis", name, hi, lo)
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", oerror.ErrInvalidConfig, fmt.Sprintf(format, args...))
}
