package collision

import (
	"fmt"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinematic/oerror"
	"github.com/oomph-ac/kinematic/omath"
)

// Capsule is the world-space collider of an agent for a single frame. It is derived from a LocalCapsule and
// the agent position every time it is needed and must not be kept once the agent has moved.
type Capsule struct {
	// Top and Bottom are the centres of the upper and lower hemispheres.
	Top, Bottom mgl64.Vec3
	Radius      float64
	Height      float64
}

// Translate returns the capsule moved by v.
func (c Capsule) Translate(v mgl64.Vec3) Capsule {
	c.Top, c.Bottom = c.Top.Add(v), c.Bottom.Add(v)
	return c
}

// Lowest returns the lowest point on the capsule surface.
func (c Capsule) Lowest() mgl64.Vec3 {
	return c.Bottom.Sub(omath.Up.Mul(c.Radius))
}

// Highest returns the highest point on the capsule surface.
func (c Capsule) Highest() mgl64.Vec3 {
	return c.Top.Add(omath.Up.Mul(c.Radius))
}

// Center returns the midpoint between both hemisphere centres.
func (c Capsule) Center() mgl64.Vec3 {
	return c.Top.Add(c.Bottom).Mul(0.5)
}

// BBox returns the tightest axis aligned box enclosing the capsule.
func (c Capsule) BBox() cube.BBox {
	lo, hi := c.Bottom, c.Top
	for i := range 3 {
		if lo[i] > hi[i] {
			lo[i], hi[i] = hi[i], lo[i]
		}
	}
	r := mgl64.Vec3{c.Radius, c.Radius, c.Radius}
	lo, hi = lo.Sub(r), hi.Add(r)
	return cube.Box(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
}

// LocalCapsule is the configured agent collider, relative to the agent position (its feet).
type LocalCapsule struct {
	// Center is the offset of the capsule centre from the agent position.
	Center mgl64.Vec3 `yaml:"center"`
	Radius float64    `yaml:"radius"`
	Height float64    `yaml:"height"`
}

// DefaultLocalCapsule returns an upright 0.5x2 capsule standing on the agent position.
func DefaultLocalCapsule() LocalCapsule {
	return LocalCapsule{Center: mgl64.Vec3{0, 1, 0}, Radius: 0.5, Height: 2}
}

// Validate ...
func (l LocalCapsule) Validate() error {
	if l.Radius <= 0 {
		return fmt.Errorf("%w: radius %f must be positive", oerror.ErrInvalidShape, l.Radius)
	}
	if l.Height < l.Radius*2 {
		return fmt.Errorf("%w: height %f is shorter than its diameter %f", oerror.ErrInvalidShape, l.Height, l.Radius*2)
	}
	return nil
}

// At returns the world-space capsule for an agent standing at pos.
func (l LocalCapsule) At(pos mgl64.Vec3) Capsule {
	center := pos.Add(l.Center)
	half := omath.Up.Mul(l.Height*0.5 - l.Radius)
	return Capsule{
		Top:    center.Add(half),
		Bottom: center.Sub(half),
		Radius: l.Radius,
		Height: l.Height,
	}
}
