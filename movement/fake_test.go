package movement

import (
	"iter"
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinematic/collision"
)

type named string

func (n named) Name() string { return string(n) }

// fakeQuery answers sweeps through a callback so tests can script exact contacts.
type fakeQuery struct {
	sweep    func(shape collision.Capsule, dir mgl64.Vec3, maxDistance float64) (collision.Hit, bool)
	overlaps []collision.Penetration
	sweeps   int
}

func (f *fakeQuery) Sweep(shape collision.Capsule, dir mgl64.Vec3, maxDistance float64, _ collision.Collider) (collision.Hit, bool) {
	f.sweeps++
	if f.sweep == nil {
		return collision.Hit{}, false
	}
	return f.sweep(shape, dir, maxDistance)
}

func (f *fakeQuery) Overlaps(collision.Capsule, collision.Collider) iter.Seq[collision.Penetration] {
	return slices.Values(f.overlaps)
}

// groundAt returns a sweep callback that reports a floor distance units below the agent and nothing in
// any other direction.
func groundAt(distance *float64, normal mgl64.Vec3, floor collision.Collider) func(collision.Capsule, mgl64.Vec3, float64) (collision.Hit, bool) {
	return func(shape collision.Capsule, dir mgl64.Vec3, maxDistance float64) (collision.Hit, bool) {
		if distance == nil || dir.Y() >= 0 || *distance > maxDistance {
			return collision.Hit{}, false
		}
		return collision.Hit{
			Distance: *distance,
			Point:    shape.Lowest().Sub(mgl64.Vec3{0, *distance, 0}),
			Normal:   normal,
			Collider: floor,
		}, true
	}
}

// fakeGround is moving ground with a fixed velocity and per tick displacement.
type fakeGround struct {
	named
	velocity, displacement mgl64.Vec3
}

func (g *fakeGround) VelocityAt(mgl64.Vec3) mgl64.Vec3     { return g.velocity }
func (g *fakeGround) DisplacementAt(mgl64.Vec3) mgl64.Vec3 { return g.displacement }

func newController(t *testing.T, s Settings, q collision.Provider, pos mgl64.Vec3) *Controller {
	t.Helper()
	c, err := New(Config{Settings: s, Query: q}, pos)
	if err != nil {
		t.Fatalf("failed to create controller: %v", err)
	}
	return c
}

func approxVec(a, b mgl64.Vec3, eps float64) bool {
	return a.Sub(b).Len() <= eps
}

// floorAt returns a sweep callback for an infinite floor whose surface is at height y.
func floorAt(y float64, floor collision.Collider) func(collision.Capsule, mgl64.Vec3, float64) (collision.Hit, bool) {
	return func(shape collision.Capsule, dir mgl64.Vec3, maxDistance float64) (collision.Hit, bool) {
		if dir.Y() >= 0 {
			return collision.Hit{}, false
		}
		d := (shape.Lowest().Y() - y) / -dir.Y()
		if d < 0 || d > maxDistance {
			return collision.Hit{}, false
		}
		return collision.Hit{Distance: d, Point: shape.Lowest().Add(dir.Mul(d)), Normal: mgl64.Vec3{0, 1, 0}, Collider: floor}, true
	}
}
