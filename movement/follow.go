package movement

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinematic/omath"
)

// followGround carries the agent along with the moving ground it stood on during the previous tick. The
// agent detaches as soon as it falls or the floor cannot move.
func (c *Controller) followGround() {
	if c.falling || c.ground.Moving == nil {
		c.attached = nil
		return
	}
	c.attached = c.ground.Moving

	disp := c.attached.DisplacementAt(c.ground.HitPosition)
	if disp.Len() <= omath.Epsilon {
		return
	}
	c.pos = c.pos.Add(disp)
	c.pushOut(disp.Len())
	c.log.Debug("followed ground", "ground", c.attached.Name(), "displacement", disp)
}

// pushOut moves the agent out of any geometry it overlaps, travelling at most budget units in total.
func (c *Controller) pushOut(budget float64) mgl64.Vec3 {
	var total mgl64.Vec3
	if budget <= omath.Epsilon {
		return total
	}
	for p := range c.query.Overlaps(c.Shape(), c.self) {
		d := math.Min(p.Distance+c.s.Skin, budget)
		step := p.Direction.Mul(d)
		c.pos = c.pos.Add(step)
		total = total.Add(step)
		if budget -= d; budget <= omath.Epsilon {
			break
		}
	}
	if !omath.NearZero(total) {
		c.log.Debug("pushed out", "distance", total)
	}
	return total
}
