package scene

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinematic/collision"
)

// Platform is a box that travels back and forth between its spawn position and spawn+travel at a constant
// speed. Agents standing on it are carried along through the collision.MovingGround capability.
type Platform struct {
	name   string
	bb     cube.BBox
	travel mgl64.Vec3
	speed  float64

	offset       mgl64.Vec3
	returning    bool
	velocity     mgl64.Vec3
	displacement mgl64.Vec3
}

// Name ...
func (p *Platform) Name() string {
	return p.name
}

// BBox returns the current world-space bounds of the platform.
func (p *Platform) BBox() cube.BBox {
	return p.bb.Translate(p.offset)
}

// VelocityAt ...
func (p *Platform) VelocityAt(mgl64.Vec3) mgl64.Vec3 {
	return p.velocity
}

// DisplacementAt ...
func (p *Platform) DisplacementAt(mgl64.Vec3) mgl64.Vec3 {
	return p.displacement
}

func (p *Platform) tick(dt float64) {
	p.velocity, p.displacement = mgl64.Vec3{}, mgl64.Vec3{}
	if dt <= 0 || p.speed <= 0 || p.travel.LenSqr() == 0 {
		return
	}

	target := p.travel
	if p.returning {
		target = mgl64.Vec3{}
	}
	delta, step := target.Sub(p.offset), p.speed*dt
	if dist := delta.Len(); dist <= step {
		p.returning = !p.returning
	} else {
		delta = delta.Mul(step / dist)
	}

	p.offset = p.offset.Add(delta)
	p.displacement = delta
	p.velocity = delta.Mul(1 / dt)
}

func (p *Platform) sweep(moving cube.BBox, dir mgl64.Vec3, maxDistance float64) (collision.Hit, bool) {
	hit, ok := sweepBBox(p.BBox(), moving, dir, maxDistance)
	hit.Collider = p
	return hit, ok
}

func (p *Platform) penetration(moving cube.BBox) (mgl64.Vec3, float64, bool) {
	return bboxPenetration(p.BBox(), moving)
}

func (p *Platform) bounds() (cube.BBox, bool) {
	return p.BBox(), true
}

var _ collision.MovingGround = (*Platform)(nil)
