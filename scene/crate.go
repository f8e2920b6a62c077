package scene

import (
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinematic/collision"
	"github.com/oomph-ac/kinematic/omath"
)

// Crate is a loose box that agents can shove around. It is not simulated as a rigid body: pushes are
// accumulated as horizontal forces and integrated once per scene tick with linear damping.
type Crate struct {
	name    string
	bb      cube.BBox
	mass    float64
	damping float64

	offset   mgl64.Vec3
	velocity mgl64.Vec3
	force    mgl64.Vec3
}

// Name ...
func (c *Crate) Name() string {
	return c.name
}

// Kinematic always returns false: crates react to pushes.
func (c *Crate) Kinematic() bool {
	return false
}

// BBox returns the current world-space bounds of the crate.
func (c *Crate) BBox() cube.BBox {
	return c.bb.Translate(c.offset)
}

// Velocity returns the current crate velocity.
func (c *Crate) Velocity() mgl64.Vec3 {
	return c.velocity
}

// ApplyForce queues a force that is integrated on the next scene tick.
func (c *Crate) ApplyForce(force mgl64.Vec3) {
	c.force = c.force.Add(omath.Horizontal(force))
}

func (c *Crate) tick(dt float64) {
	if dt <= 0 {
		return
	}
	c.velocity = c.velocity.Add(c.force.Mul(dt / c.mass))
	c.force = mgl64.Vec3{}
	c.offset = c.offset.Add(c.velocity.Mul(dt))
	c.velocity = c.velocity.Mul(math.Max(0, 1-c.damping*dt))
	if omath.NearZero(c.velocity) {
		c.velocity = mgl64.Vec3{}
	}
}

func (c *Crate) sweep(moving cube.BBox, dir mgl64.Vec3, maxDistance float64) (collision.Hit, bool) {
	hit, ok := sweepBBox(c.BBox(), moving, dir, maxDistance)
	hit.Collider = c
	return hit, ok
}

func (c *Crate) penetration(moving cube.BBox) (mgl64.Vec3, float64, bool) {
	return bboxPenetration(c.BBox(), moving)
}

func (c *Crate) bounds() (cube.BBox, bool) {
	return c.BBox(), true
}

var _ collision.Dynamic = (*Crate)(nil)
