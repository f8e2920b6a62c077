package movement

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinematic/collision"
	"github.com/oomph-ac/kinematic/omath"
)

// Tick advances the agent by dt seconds using intent. Ticks never fail: a well formed query provider is
// enough for the agent to end up in a consistent state.
func (c *Controller) Tick(dt float64, intent Intent) Result {
	start := c.pos
	intent = intent.sanitized()
	c.dt = dt
	c.jumped = false

	c.followGround()
	c.RefreshGroundState()
	c.pushOut(c.s.MaxPushSpeed * dt)

	c.integrateVertical(dt)
	c.fall.ElapsedSinceJump += dt
	c.jumped = c.tryJump(intent)
	if !c.jumped && c.falling && !c.prev.falling {
		c.velocity = c.velocity.Add(c.prev.groundVelocity)
	}
	supported := !c.falling

	horizontal := c.Move(c.horizontalMove(intent, dt))
	stepped, bounces := horizontal.Stepped, horizontal.Bounces

	vertical := c.Move(c.velocity.Mul(dt))
	c.absorbImpacts(vertical.Hits)
	stepped, bounces = stepped || vertical.Stepped, bounces+vertical.Bounces

	if supported && !c.jumped {
		c.snapDown()
	}
	c.RefreshGroundState()

	c.prev = frame{
		standing:       c.StandingOnGround(),
		falling:        c.falling,
		groundVelocity: c.groundVelocity(),
	}
	return Result{
		Position:     c.pos,
		Displacement: c.pos.Sub(start),
		Velocity:     c.velocity,
		Ground:       c.ground,
		Standing:     c.prev.standing,
		Falling:      c.falling,
		Jumped:       c.jumped,
		Stepped:      stepped,
		Bounces:      bounces,
	}
}

// horizontalMove turns intent into this tick's horizontal displacement. While supported, the displacement
// follows the ground plane at the same length.
func (c *Controller) horizontalMove(intent Intent, dt float64) mgl64.Vec3 {
	move := intent.Move.Mul(c.s.MovementSpeed * dt)
	if c.falling || omath.NearZero(move) {
		return move
	}
	projected := omath.ProjectOnPlane(move, c.ground.Normal)
	if omath.NearZero(projected) {
		return move
	}
	return projected.Mul(move.Len() / projected.Len())
}

// absorbImpacts removes the part of the velocity that points into surfaces struck this tick.
func (c *Controller) absorbImpacts(hits []collision.Hit) {
	for _, hit := range hits {
		if into := c.velocity.Dot(hit.Normal); into < 0 {
			c.velocity = c.velocity.Sub(hit.Normal.Mul(into))
		}
	}
}
