package scene

import (
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinematic/collision"
	"github.com/oomph-ac/kinematic/omath"
)

// Plane is an infinite solid half-space: every point p with normal·p < offset is inside it. Planes are used
// for open ground and for slopes, which boxes cannot express.
type Plane struct {
	name   string
	normal mgl64.Vec3
	offset float64
}

// Name ...
func (p *Plane) Name() string {
	return p.name
}

// Normal returns the unit surface normal of the plane.
func (p *Plane) Normal() mgl64.Vec3 {
	return p.normal
}

// separation returns the signed distance between the plane and the point of bb deepest along -normal,
// together with that point.
func (p *Plane) separation(bb cube.BBox) (float64, mgl64.Vec3) {
	c, he := bboxCenter(bb), bboxHalfExtents(bb)
	support := c
	for i := range 3 {
		switch {
		case p.normal[i] > 0:
			support[i] -= he[i]
		case p.normal[i] < 0:
			support[i] += he[i]
		}
	}
	return p.normal.Dot(support) - p.offset, support
}

func (p *Plane) sweep(moving cube.BBox, dir mgl64.Vec3, maxDistance float64) (collision.Hit, bool) {
	approach := dir.Dot(p.normal)
	if approach >= -omath.Epsilon {
		return collision.Hit{}, false
	}
	sep, support := p.separation(moving)
	if sep < 0 {
		return collision.Hit{Normal: p.normal, Point: support.Sub(p.normal.Mul(sep)), Collider: p}, true
	}
	t := sep / -approach
	if t > maxDistance {
		return collision.Hit{}, false
	}
	return collision.Hit{Distance: t, Normal: p.normal, Point: support.Add(dir.Mul(t)), Collider: p}, true
}

func (p *Plane) penetration(moving cube.BBox) (mgl64.Vec3, float64, bool) {
	sep, _ := p.separation(moving)
	if sep >= -overlapEpsilon {
		return mgl64.Vec3{}, 0, false
	}
	return p.normal, -sep, true
}

func (p *Plane) bounds() (cube.BBox, bool) {
	return cube.BBox{}, false
}

// slopeNormal returns the normal of a plane rising by angle degrees towards dir.
func slopeNormal(angle float64, dir mgl64.Vec3) mgl64.Vec3 {
	rad := mgl64.DegToRad(angle)
	return omath.Up.Mul(math.Cos(rad)).Sub(omath.SafeNormalize(omath.Horizontal(dir)).Mul(math.Sin(rad)))
}
