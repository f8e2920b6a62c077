package movement

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinematic/collision"
)

// GroundState is the result of a single downward probe. It is always replaced as a whole.
type GroundState struct {
	// OnGround is true if the probe hit anything.
	OnGround bool
	// Distance is how far below the agent the hit was. Zero means the agent is inside geometry.
	Distance float64
	// Normal is the surface normal of the hit, or straight up if nothing was hit.
	Normal mgl64.Vec3
	// Angle is the angle between Normal and straight up, in degrees.
	Angle       float64
	HitPosition mgl64.Vec3
	// Floor is the collider below the agent, if any.
	Floor collision.Collider
	// Moving is Floor as moving ground, or nil if the floor cannot carry the agent.
	Moving collision.MovingGround
}

// FallState tracks the timers of the vertical state machine.
type FallState struct {
	// ElapsedFalling is reset to zero whenever the agent stops falling.
	ElapsedFalling float64
	// ElapsedSinceJump is reset to zero whenever a jump impulse is applied.
	ElapsedSinceJump float64
}

// MoveResult describes a single Move call.
type MoveResult struct {
	// Bounces is the amount of obstructed sweeps.
	Bounces int
	// Stepped is true if the agent stepped up onto a ledge.
	Stepped bool
	// Hits holds every surface struck. It is only valid until the next Move call.
	Hits []collision.Hit
}

// Result is the observable outcome of a tick.
type Result struct {
	Position     mgl64.Vec3
	Displacement mgl64.Vec3
	Velocity     mgl64.Vec3
	Ground       GroundState

	Standing bool
	Falling  bool
	Jumped   bool
	Stepped  bool
	Bounces  int
}
