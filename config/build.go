package config

import (
	"fmt"
	"log/slog"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinematic/scene"
	"github.com/oomph-ac/kinematic/sim"
)

// BuildScene creates the static and moving geometry described by the scene section.
func (c Config) BuildScene(log *slog.Logger) *scene.Scene {
	s := scene.New(log)
	for _, b := range c.Scene.Boxes {
		s.AddBox(b.Name, box(b.Min, b.Max))
	}
	for _, p := range c.Scene.Planes {
		s.AddPlane(p.Name, p.Normal, p.Point)
	}
	for _, sl := range c.Scene.Slopes {
		s.AddSlope(sl.Name, sl.Point, sl.Angle, sl.Ascend)
	}
	for _, p := range c.Scene.Platforms {
		s.AddPlatform(p.Name, box(p.Min, p.Max), p.Travel, p.Speed)
	}
	for _, cr := range c.Scene.Crates {
		s.AddCrate(cr.Name, box(cr.Min, cr.Max), cr.Mass, cr.Damping)
	}
	return s
}

// BuildRunner creates the scene and a runner with every configured agent in it. The configuration must have
// been validated.
func (c Config) BuildRunner(log *slog.Logger, clock sim.Clock) (*sim.Runner, error) {
	opts := c.Options()
	opts.Log, opts.Clock = log, clock

	r := sim.NewRunner(c.BuildScene(log), opts)
	for _, a := range c.Agents {
		settings, err := c.AgentSettings(a)
		if err != nil {
			r.Close()
			return nil, err
		}
		if _, err := r.AddAgent(a.Name, settings, a.Position, sim.NewScript(a.Script...)); err != nil {
			r.Close()
			return nil, fmt.Errorf("build runner: %w", err)
		}
	}
	return r, nil
}

func box(lo, hi mgl64.Vec3) cube.BBox {
	return cube.Box(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
}
