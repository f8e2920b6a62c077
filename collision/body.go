package collision

import "github.com/go-gl/mathgl/mgl64"

// Collider is any solid object a Provider can report.
type Collider interface {
	Name() string
}

// Dynamic is a collider driven by its own physics. Non-kinematic dynamic colliders are pushed when an
// agent runs into them.
type Dynamic interface {
	Collider
	Kinematic() bool
}

// MovingGround is a collider agents can ride on.
type MovingGround interface {
	Collider
	// VelocityAt returns the velocity of the surface at a world point.
	VelocityAt(point mgl64.Vec3) mgl64.Vec3
	// DisplacementAt returns how far a world point on the surface moved during the current tick.
	DisplacementAt(point mgl64.Vec3) mgl64.Vec3
}

// AsMovingGround returns c as a MovingGround, or nil if it cannot carry agents.
func AsMovingGround(c Collider) MovingGround {
	if mg, ok := c.(MovingGround); ok {
		return mg
	}
	return nil
}

// Pushable returns c as a Dynamic collider if an agent other than self may push it.
func Pushable(c, self Collider) (Dynamic, bool) {
	if c == nil || (self != nil && c == self) {
		return nil, false
	}
	d, ok := c.(Dynamic)
	if !ok || d.Kinematic() {
		return nil, false
	}
	return d, true
}
