package movement

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinematic/collision"
	"github.com/oomph-ac/kinematic/oerror"
)

// maxAngleShove is the impact angle, in degrees away from grazing, at which all momentum is lost.
const maxAngleShove = 90.0

// Settings configure a Controller. All distances are in world units, all durations in seconds and all
// angles in degrees.
type Settings struct {
	// Collider is the agent shape relative to its position.
	Collider collision.LocalCapsule `yaml:"collider"`

	// MovementSpeed is the horizontal speed reached with a full length intent.
	MovementSpeed float64 `yaml:"movementSpeed"`
	// Gravity is the acceleration applied while falling.
	Gravity mgl64.Vec3 `yaml:"gravity"`

	// MaxBounces caps the slide iterations of a single Move call.
	MaxBounces int `yaml:"maxBounces"`
	// AnglePower shapes how quickly momentum decays as impacts become more head-on.
	AnglePower float64 `yaml:"anglePower"`
	// PushDecay scales the momentum left after striking a pushable body.
	PushDecay float64 `yaml:"pushDecay"`
	// PushPower scales the force handed to the push handler.
	PushPower float64 `yaml:"pushPower"`
	// MaxPushSpeed bounds how fast overlaps are resolved, in units per second.
	MaxPushSpeed float64 `yaml:"maxPushSpeed"`
	// Skin is the gap kept between the agent and surfaces it touches.
	Skin float64 `yaml:"skin"`

	// StepHeight is the tallest ledge the agent climbs without jumping. Zero disables stepping.
	StepHeight float64 `yaml:"stepHeight"`
	// VerticalSnapUp is how far above the feet a contact may be for a step to be attempted.
	VerticalSnapUp float64 `yaml:"verticalSnapUp"`
	// StepUpDepth is the forward clearance required on top of a step.
	StepUpDepth float64 `yaml:"stepUpDepth"`
	// SnapDown is the furthest the agent is pulled down to stay on the ground.
	SnapDown float64 `yaml:"snapDown"`
	// SnapBufferTime is how long the agent may already be falling while still stepping up.
	SnapBufferTime float64 `yaml:"snapBufferTime"`

	// GroundCheckDistance is the length of the downward ground probe.
	GroundCheckDistance float64 `yaml:"groundCheckDistance"`
	// GroundedDistance is the furthest the ground may be for the agent to stand on it.
	GroundedDistance float64 `yaml:"groundedDistance"`
	// MaxWalkAngle is the steepest slope the agent can stand on.
	MaxWalkAngle float64 `yaml:"maxWalkAngle"`

	// MaxJumpAngle is the steepest slope the agent can jump off.
	MaxJumpAngle float64 `yaml:"maxJumpAngle"`
	// JumpVelocity is the speed of a jump impulse.
	JumpVelocity float64 `yaml:"jumpVelocity"`
	// JumpCooldown is the minimum time between two jumps.
	JumpCooldown float64 `yaml:"jumpCooldown"`
	// CoyoteTime is how long after leaving the ground a jump is still granted.
	CoyoteTime float64 `yaml:"coyoteTime"`
	// JumpAngleWeight blends the jump direction from straight up (0) to the ground normal (1).
	JumpAngleWeight float64 `yaml:"jumpAngleWeight"`
}

// DefaultSettings returns settings for a human sized agent.
func DefaultSettings() Settings {
	return Settings{
		Collider: collision.DefaultLocalCapsule(),

		MovementSpeed: 7.5,
		Gravity:       mgl64.Vec3{0, -9.81, 0},

		MaxBounces:   5,
		AnglePower:   0.5,
		PushDecay:    0.9,
		PushPower:    1,
		MaxPushSpeed: 1,
		Skin:         0.001,

		StepHeight:     0.35,
		VerticalSnapUp: 0.35,
		StepUpDepth:    0.1,
		SnapDown:       0.25,
		SnapBufferTime: 0.05,

		GroundCheckDistance: 0.25,
		GroundedDistance:    0.05,
		MaxWalkAngle:        60,

		MaxJumpAngle:    80,
		JumpVelocity:    5,
		JumpCooldown:    0.5,
		CoyoteTime:      0.05,
		JumpAngleWeight: 0,
	}
}

// Validate reports the first setting that would make the controller misbehave.
func (s Settings) Validate() error {
	if s.MaxBounces < 1 {
		return fmt.Errorf("%w: got %d", oerror.ErrInvalidBounces, s.MaxBounces)
	}
	if err := s.Collider.Validate(); err != nil {
		return err
	}

	nonNegative := map[string]float64{
		"movementSpeed":       s.MovementSpeed,
		"anglePower":          s.AnglePower,
		"pushPower":           s.PushPower,
		"maxPushSpeed":        s.MaxPushSpeed,
		"stepHeight":          s.StepHeight,
		"verticalSnapUp":      s.VerticalSnapUp,
		"stepUpDepth":         s.StepUpDepth,
		"snapDown":            s.SnapDown,
		"snapBufferTime":      s.SnapBufferTime,
		"jumpVelocity":        s.JumpVelocity,
		"jumpCooldown":        s.JumpCooldown,
		"coyoteTime":          s.CoyoteTime,
		"groundCheckDistance": s.GroundCheckDistance,
	}
	for name, v := range nonNegative {
		if v < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %f", oerror.ErrInvalidSettings, name, v)
		}
	}

	switch {
	case s.Skin <= 0:
		return fmt.Errorf("%w: skin must be positive", oerror.ErrInvalidSettings)
	case s.GroundedDistance <= s.Skin:
		return fmt.Errorf("%w: groundedDistance %f must exceed skin %f", oerror.ErrInvalidSettings, s.GroundedDistance, s.Skin)
	case s.GroundCheckDistance < s.GroundedDistance:
		return fmt.Errorf("%w: groundCheckDistance %f is shorter than groundedDistance %f", oerror.ErrInvalidSettings, s.GroundCheckDistance, s.GroundedDistance)
	case s.PushDecay < 0 || s.PushDecay > 1:
		return fmt.Errorf("%w: pushDecay must be within [0, 1], got %f", oerror.ErrInvalidSettings, s.PushDecay)
	case s.JumpAngleWeight < 0 || s.JumpAngleWeight > 1:
		return fmt.Errorf("%w: jumpAngleWeight must be within [0, 1], got %f", oerror.ErrInvalidSettings, s.JumpAngleWeight)
	case s.MaxWalkAngle < 0 || s.MaxWalkAngle > 90:
		return fmt.Errorf("%w: maxWalkAngle must be within [0, 90], got %f", oerror.ErrInvalidSettings, s.MaxWalkAngle)
	case s.MaxJumpAngle < 0 || s.MaxJumpAngle > 90:
		return fmt.Errorf("%w: maxJumpAngle must be within [0, 90], got %f", oerror.ErrInvalidSettings, s.MaxJumpAngle)
	}
	return nil
}
