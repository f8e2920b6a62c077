package scene

import (
	"iter"
	"log/slog"
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinematic/assert"
	"github.com/oomph-ac/kinematic/collision"
	"github.com/oomph-ac/kinematic/omath"
)

// solid is implemented by every collider a Scene can hold.
type solid interface {
	collision.Collider
	sweep(moving cube.BBox, dir mgl64.Vec3, maxDistance float64) (collision.Hit, bool)
	penetration(moving cube.BBox) (mgl64.Vec3, float64, bool)
	// bounds returns the current bounds, or false for unbounded colliders.
	bounds() (cube.BBox, bool)
}

type ticker interface {
	tick(dt float64)
}

// Scene is a set of named colliders that implements collision.Provider. Agent shapes are approximated by
// their bounding boxes. Colliders are queried in insertion order so that ties resolve deterministically.
//
// A Scene must not be mutated while agents are ticking: Tick, Add* and Remove are meant to be called between
// agent updates.
type Scene struct {
	colliders *orderedmap.OrderedMap[string, solid]
	log       *slog.Logger
}

// New creates an empty scene. A nil logger discards all output.
func New(log *slog.Logger) *Scene {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Scene{
		colliders: orderedmap.NewOrderedMap[string, solid](),
		log:       log,
	}
}

func (s *Scene) add(c solid) {
	_, exists := s.colliders.Get(c.Name())
	assert.IsTrue(!exists, "collider %q already exists in scene", c.Name())
	s.colliders.Set(c.Name(), c)
	s.log.Debug("added collider", "name", c.Name(), "type", colliderType(c))
}

// AddBox adds a static box collider.
func (s *Scene) AddBox(name string, bb cube.BBox) *Box {
	assert.IsTrue(!bboxHasZeroVolume(bb), "box %q has zero volume", name)
	b := &Box{name: name, bb: bb}
	s.add(b)
	return b
}

// AddPlane adds a solid half-space whose surface passes through point.
func (s *Scene) AddPlane(name string, normal, point mgl64.Vec3) *Plane {
	n := omath.SafeNormalize(normal)
	assert.IsTrue(n != (mgl64.Vec3{}), "plane %q has no normal", name)
	p := &Plane{name: name, normal: n, offset: n.Dot(point)}
	s.add(p)
	return p
}

// AddSlope adds a plane through point that rises by angle degrees when walking along ascend.
func (s *Scene) AddSlope(name string, point mgl64.Vec3, angle float64, ascend mgl64.Vec3) *Plane {
	return s.AddPlane(name, slopeNormal(angle, ascend), point)
}

// AddPlatform adds a moving platform that shuttles between bb and bb translated by travel.
func (s *Scene) AddPlatform(name string, bb cube.BBox, travel mgl64.Vec3, speed float64) *Platform {
	assert.IsTrue(!bboxHasZeroVolume(bb), "platform %q has zero volume", name)
	p := &Platform{name: name, bb: bb, travel: travel, speed: speed}
	s.add(p)
	return p
}

// AddCrate adds a pushable crate. damping is the fraction of velocity lost per second.
func (s *Scene) AddCrate(name string, bb cube.BBox, mass, damping float64) *Crate {
	assert.IsTrue(mass > 0, "crate %q must have positive mass", name)
	c := &Crate{name: name, bb: bb, mass: mass, damping: damping}
	s.add(c)
	return c
}

// AddAgent adds a proxy collider for an agent using the given shape, standing at pos.
func (s *Scene) AddAgent(name string, shape collision.LocalCapsule, pos mgl64.Vec3) *AgentProxy {
	a := &AgentProxy{name: name, shape: shape, pos: pos}
	s.add(a)
	return a
}

// Remove removes the named collider. It returns false if no such collider exists.
func (s *Scene) Remove(name string) bool {
	return s.colliders.Delete(name)
}

// Collider returns the named collider.
func (s *Scene) Collider(name string) (collision.Collider, bool) {
	c, ok := s.colliders.Get(name)
	if !ok {
		return nil, false
	}
	return c, true
}

// Len returns the amount of colliders in the scene.
func (s *Scene) Len() int {
	return s.colliders.Len()
}

// Tick advances every moving collider by dt seconds.
func (s *Scene) Tick(dt float64) {
	for _, name := range s.colliders.Keys() {
		c, _ := s.colliders.Get(name)
		if t, ok := c.(ticker); ok {
			t.tick(dt)
		}
	}
}

// Push applies the force of an agent running into body. Only crates react; other dynamic bodies belong to
// an external physics engine and are ignored here.
func (s *Scene) Push(body collision.Dynamic, force, point mgl64.Vec3) {
	crate, ok := body.(*Crate)
	if !ok {
		return
	}
	crate.ApplyForce(force)
	s.log.Debug("crate pushed", "name", crate.Name(), "force", force, "point", point)
}

// Sweep ...
func (s *Scene) Sweep(shape collision.Capsule, dir mgl64.Vec3, maxDistance float64, ignore collision.Collider) (collision.Hit, bool) {
	if maxDistance < 0 || omath.NearZero(dir) {
		return collision.Hit{}, false
	}
	moving := shape.BBox()
	swept := moving.Extend(dir.Mul(maxDistance)).Grow(broadphaseMargin)

	var (
		best  collision.Hit
		found bool
		dist  = math.MaxFloat64
	)
	for _, name := range s.colliders.Keys() {
		c, _ := s.colliders.Get(name)
		if ignore != nil && collision.Collider(c) == ignore {
			continue
		}
		if bb, bounded := c.bounds(); bounded && !swept.IntersectsWith(bb) {
			continue
		}
		if hit, ok := c.sweep(moving, dir, maxDistance); ok && hit.Distance < dist {
			best, found, dist = hit, true, hit.Distance
		}
	}
	return best, found
}

// Overlaps ...
func (s *Scene) Overlaps(shape collision.Capsule, ignore collision.Collider) iter.Seq[collision.Penetration] {
	return func(yield func(collision.Penetration) bool) {
		moving := shape.BBox()
		for _, name := range s.colliders.Keys() {
			c, _ := s.colliders.Get(name)
			if ignore != nil && collision.Collider(c) == ignore {
				continue
			}
			dir, depth, ok := c.penetration(moving)
			if !ok {
				continue
			}
			if !yield(collision.Penetration{Collider: c, Direction: dir, Distance: depth}) {
				return
			}
		}
	}
}

func colliderType(c solid) string {
	switch c.(type) {
	case *Box:
		return "box"
	case *Plane:
		return "plane"
	case *Platform:
		return "platform"
	case *Crate:
		return "crate"
	case *AgentProxy:
		return "agent"
	}
	return "unknown"
}

var _ collision.Provider = (*Scene)(nil)
