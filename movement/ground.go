package movement

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinematic/collision"
	"github.com/oomph-ac/kinematic/omath"
)

// RefreshGroundState probes below the agent and replaces the ground snapshot.
func (c *Controller) RefreshGroundState() GroundState {
	g := GroundState{Distance: math.Inf(1), Normal: omath.Up}
	if hit, ok := c.query.Sweep(c.Shape(), omath.Up.Mul(-1), c.s.GroundCheckDistance, c.self); ok {
		g = GroundState{
			OnGround:    true,
			Distance:    hit.Distance,
			Normal:      hit.Normal,
			Angle:       omath.AngleBetween(hit.Normal, omath.Up),
			HitPosition: hit.Point,
			Floor:       hit.Collider,
			Moving:      collision.AsMovingGround(hit.Collider),
		}
	}
	c.ground = g
	c.falling = !c.StandingOnGround() || g.Angle > c.s.MaxWalkAngle
	return g
}

// StandingOnGround returns true if the ground is close enough to stand on. A distance of exactly zero means
// the agent is embedded in geometry and does not count.
func (c *Controller) StandingOnGround() bool {
	return c.ground.standing(c.s.GroundedDistance)
}

func (g GroundState) standing(groundedDistance float64) bool {
	return g.OnGround && g.Distance > 0 && g.Distance <= groundedDistance
}

// groundVelocity returns the velocity of the surface the agent stands on, or zero.
func (c *Controller) groundVelocity() mgl64.Vec3 {
	if !c.StandingOnGround() || c.ground.Moving == nil {
		return mgl64.Vec3{}
	}
	return c.ground.Moving.VelocityAt(c.ground.HitPosition)
}
