package scene

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinematic/collision"
)

// AgentProxy stands in for a kinematic agent so that other agents collide with it. Its position is only
// updated through Sync, between ticks, so every agent reads the same committed state during a tick.
type AgentProxy struct {
	name  string
	shape collision.LocalCapsule
	pos   mgl64.Vec3
}

// Name ...
func (a *AgentProxy) Name() string {
	return a.name
}

// Kinematic always returns true: agents are moved by their own controller, never pushed.
func (a *AgentProxy) Kinematic() bool {
	return true
}

// Sync commits the agent position seen by other agents.
func (a *AgentProxy) Sync(pos mgl64.Vec3) {
	a.pos = pos
}

// Position returns the committed agent position.
func (a *AgentProxy) Position() mgl64.Vec3 {
	return a.pos
}

// BBox ...
func (a *AgentProxy) BBox() cube.BBox {
	return a.shape.At(a.pos).BBox()
}

func (a *AgentProxy) sweep(moving cube.BBox, dir mgl64.Vec3, maxDistance float64) (collision.Hit, bool) {
	hit, ok := sweepBBox(a.BBox(), moving, dir, maxDistance)
	hit.Collider = a
	return hit, ok
}

func (a *AgentProxy) penetration(moving cube.BBox) (mgl64.Vec3, float64, bool) {
	return bboxPenetration(a.BBox(), moving)
}

func (a *AgentProxy) bounds() (cube.BBox, bool) {
	return a.BBox(), true
}

var _ collision.Dynamic = (*AgentProxy)(nil)
