package movement

import (
	"math"

	"github.com/oomph-ac/kinematic/collision"
	"github.com/oomph-ac/kinematic/omath"
)

// canSnapUp reports whether hit is a ledge low enough above the feet to step onto. Walkable surfaces are
// slid along instead, and a rising agent never steps.
func (c *Controller) canSnapUp(hit collision.Hit) bool {
	if c.s.StepHeight <= 0 || c.velocity.Dot(omath.Up) > omath.Epsilon {
		return false
	}
	if omath.AngleBetween(hit.Normal, omath.Up) <= c.s.MaxWalkAngle {
		return false
	}
	rel := hit.Point.Sub(c.Shape().Lowest()).Dot(omath.Up)
	return rel > 0 && rel <= c.s.VerticalSnapUp
}

// stepUp tries the full step height first and, if that is blocked, the smallest height that clears the
// contact point.
func (c *Controller) stepUp(hit collision.Hit, b *bounceBudget) bool {
	if c.attemptSnapUp(c.s.StepHeight, hit, b) {
		return true
	}
	minimal := hit.Point.Sub(c.Shape().Lowest()).Dot(omath.Up) + c.s.Skin
	if minimal >= c.s.StepHeight {
		return false
	}
	return c.attemptSnapUp(minimal, hit, b)
}

// attemptSnapUp raises the agent by height and moves it onto the ledge described by hit. Nothing is
// changed if the step is rejected.
func (c *Controller) attemptSnapUp(height float64, hit collision.Hit, b *bounceBudget) bool {
	if height <= omath.Epsilon {
		return false
	}
	if c.falling && c.fall.ElapsedFalling > c.s.SnapBufferTime {
		return false
	}
	momentum := b.remaining
	into := hit.Normal.Mul(-1)
	if momentum.Dot(into) <= omath.Epsilon {
		return false
	}
	dir := omath.SafeNormalize(omath.Horizontal(omath.Project(momentum, into)))
	if omath.NearZero(dir) {
		return false
	}

	if overhead, blocked := c.query.Sweep(c.Shape(), omath.Up, height, c.self); blocked && overhead.Distance < height {
		c.log.Debug("step blocked overhead", "height", height, "ceiling", overhead.Collider.Name())
		return false
	}

	saved := c.pos
	c.pos = c.pos.Add(omath.Up.Mul(height))

	probe := math.Max(c.s.StepUpDepth, momentum.Len())
	if snapHit, blocked := c.query.Sweep(c.Shape(), dir, probe, c.self); blocked {
		if snapHit.Distance <= omath.Epsilon || snapHit.Distance <= c.s.StepUpDepth {
			c.pos = saved
			c.log.Debug("step rejected", "height", height, "blocker", snapHit.Collider.Name(), "distance", snapHit.Distance)
			return false
		}
	}

	forward := math.Min(c.s.StepUpDepth, momentum.Len())
	c.pos = c.pos.Add(dir.Mul(forward))
	b.consume(forward)
	c.log.Debug("stepped up", "height", height, "forward", forward)
	return true
}

// snapDown pulls the agent down onto walkable ground below it, keeping a skin gap.
func (c *Controller) snapDown() bool {
	if c.s.SnapDown <= 0 {
		return false
	}
	hit, ok := c.query.Sweep(c.Shape(), omath.Up.Mul(-1), c.s.SnapDown, c.self)
	if !ok || hit.Distance <= c.s.Skin || omath.AngleBetween(hit.Normal, omath.Up) > c.s.MaxWalkAngle {
		return false
	}
	c.pos = c.pos.Sub(omath.Up.Mul(hit.Distance - c.s.Skin))
	c.log.Debug("snapped down", "distance", hit.Distance-c.s.Skin)
	return true
}

