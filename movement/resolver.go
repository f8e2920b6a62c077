package movement

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinematic/collision"
	"github.com/oomph-ac/kinematic/omath"
)

// bounceBudget is the momentum still to be travelled during a Move call and how many sweeps it may use.
type bounceBudget struct {
	remaining mgl64.Vec3
	used, max int
}

func (b *bounceBudget) next() bool {
	return b.used < b.max && b.remaining.Len() > omath.Epsilon
}

// consume removes d units of travel from the remaining momentum, keeping its direction.
func (b *bounceBudget) consume(d float64) {
	l := b.remaining.Len()
	if l <= omath.Epsilon || d >= l {
		b.remaining = mgl64.Vec3{}
		return
	}
	b.remaining = b.remaining.Mul(1 - d/l)
}

// Move displaces the agent by displacement, sliding along and stepping over whatever it runs into. The
// agent never passes through a surface reported by the query provider, and at most MaxBounces sweeps are
// performed.
func (c *Controller) Move(displacement mgl64.Vec3) MoveResult {
	c.hits = c.hits[:0]
	res := MoveResult{}

	b := bounceBudget{remaining: displacement, max: c.s.MaxBounces}
	for b.next() {
		dist := b.remaining.Len()
		dir := b.remaining.Mul(1 / dist)

		hit, ok := c.query.Sweep(c.Shape(), dir, dist, c.self)
		if !ok {
			c.pos = c.pos.Add(b.remaining)
			b.remaining = mgl64.Vec3{}
			break
		}
		b.used++
		c.hits = append(c.hits, hit)

		if body, ok := collision.Pushable(hit.Collider, c.self); ok {
			c.push(body, dir, b.remaining, hit.Point)
			b.remaining = b.remaining.Mul(c.s.PushDecay)
		}

		travel := math.Min(hit.Distance, b.remaining.Len())
		c.pos = c.pos.Add(dir.Mul(travel)).Add(hit.Normal.Mul(c.s.Skin))
		b.consume(travel)

		c.log.Debug("bounce", "n", b.used, "hit", hit.Collider.Name(), "distance", hit.Distance, "normal", hit.Normal, "remaining", b.remaining)

		if c.canSnapUp(hit) && c.stepUp(hit, &b) {
			res.Stepped = true
			continue
		}
		b.remaining = c.deflect(b.remaining, hit.Normal)
	}

	res.Bounces = b.used
	res.Hits = c.hits
	return res
}

// deflect decays momentum by how head-on the impact was and redirects what is left along the surface.
func (c *Controller) deflect(momentum, normal mgl64.Vec3) mgl64.Vec3 {
	if omath.NearZero(momentum) {
		return mgl64.Vec3{}
	}
	angle := math.Min(math.Abs(omath.AngleBetween(normal, momentum)-90), maxAngleShove)
	momentum = momentum.Mul(math.Pow(1-angle/maxAngleShove, c.s.AnglePower))

	mag := momentum.Len()
	projected := omath.ProjectOnPlane(momentum, normal)
	if omath.NearZero(projected) {
		return mgl64.Vec3{}
	}
	return projected.Mul(mag / projected.Len())
}

func (c *Controller) push(body collision.Dynamic, dir, momentum, point mgl64.Vec3) {
	dt := c.dt
	if dt <= 0 {
		dt = 1
	}
	force := dir.Mul(momentum.Len() / dt * c.s.PushPower)
	c.log.Debug("push", "body", body.Name(), "force", force, "point", point)
	c.pusher.Push(body, force, point)
}
