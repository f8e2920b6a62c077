package collision

import (
	"iter"

	"github.com/go-gl/mathgl/mgl64"
)

// Hit is the first surface struck by a sweep.
type Hit struct {
	// Distance is how far the shape travelled before touching the surface. Zero means the shape started
	// in contact with, or inside of, the collider.
	Distance float64
	// Point is the contact point in world space.
	Point mgl64.Vec3
	// Normal is the surface normal at Point, facing away from the collider.
	Normal   mgl64.Vec3
	Collider Collider
}

// Penetration describes how far a shape has sunk into a collider and which way is out.
type Penetration struct {
	Collider  Collider
	Direction mgl64.Vec3
	Distance  float64
}

// Provider answers the geometric questions the movement code needs. Implementations must be total: every
// call returns an answer, possibly "no hit", and must skip the ignored collider entirely.
type Provider interface {
	// Sweep moves shape along the unit vector dir for at most maxDistance and reports the first hit.
	Sweep(shape Capsule, dir mgl64.Vec3, maxDistance float64, ignore Collider) (Hit, bool)
	// Overlaps yields every collider currently intersecting shape.
	Overlaps(shape Capsule, ignore Collider) iter.Seq[Penetration]
}
