package movement

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinematic/omath"
)

// CanJump reports whether intent would start a jump right now.
func (c *Controller) CanJump(intent Intent) bool {
	if !intent.Allowed || !intent.Jump {
		return false
	}
	walkable := c.StandingOnGround() && c.ground.Angle <= c.s.MaxJumpAngle
	return c.fall.ElapsedFalling >= 0 &&
		(walkable || c.fall.ElapsedFalling <= c.s.CoyoteTime) &&
		c.fall.ElapsedSinceJump > c.s.JumpCooldown
}

// integrateVertical resets the velocity while supported and applies gravity while falling.
func (c *Controller) integrateVertical(dt float64) {
	if !c.falling {
		c.velocity = mgl64.Vec3{}
		c.fall.ElapsedFalling = 0
		return
	}
	c.velocity = c.velocity.Add(c.s.Gravity.Mul(dt))
	c.fall.ElapsedFalling += dt
}

// tryJump applies a jump impulse if intent allows one.
func (c *Controller) tryJump(intent Intent) bool {
	if !c.CanJump(intent) {
		return false
	}
	base := c.groundVelocity()
	if !c.StandingOnGround() {
		// Coyote jumps keep the motion of the ground that was just left.
		base = c.prev.groundVelocity
	}
	w := c.s.JumpAngleWeight
	dir := omath.SafeNormalize(omath.Up.Mul(1 - w).Add(c.ground.Normal.Mul(w)))
	if omath.NearZero(dir) {
		dir = omath.Up
	}
	c.velocity = base.Add(dir.Mul(c.s.JumpVelocity))
	c.fall.ElapsedSinceJump = 0
	// A jump uses up the coyote window so it cannot be chained in mid air.
	c.fall.ElapsedFalling = math.Max(c.fall.ElapsedFalling, c.s.CoyoteTime)

	c.log.Debug("jumped", "velocity", c.velocity, "normal", c.ground.Normal)
	return true
}
