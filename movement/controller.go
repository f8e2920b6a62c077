package movement

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinematic/collision"
	"github.com/oomph-ac/kinematic/oerror"
)

// Config holds everything a Controller needs besides its starting position.
type Config struct {
	Settings Settings
	// Query answers sweeps and overlaps. It is required.
	Query collision.Provider
	// Self is the collider representing this agent in Query, if any. It is never reported back.
	Self collision.Collider
	// Pusher is notified about dynamic bodies struck while moving. A nil Pusher drops pushes.
	Pusher PushHandler
	// Log receives the per-bounce trace at debug level. A nil Log discards it.
	Log *slog.Logger
}

// Controller moves a single kinematic agent through a collision world. A Controller is not safe for
// concurrent use, but distinct controllers may tick in parallel as long as their Query is not mutated
// meanwhile.
type Controller struct {
	s      Settings
	query  collision.Provider
	self   collision.Collider
	pusher PushHandler
	log    *slog.Logger

	pos      mgl64.Vec3
	velocity mgl64.Vec3

	ground  GroundState
	falling bool
	fall    FallState
	jumped  bool

	// attached is the moving ground the agent followed during the current tick.
	attached collision.MovingGround
	prev     frame

	dt   float64
	hits []collision.Hit
}

// frame is what the controller remembers of the previous tick.
type frame struct {
	standing       bool
	falling        bool
	groundVelocity mgl64.Vec3
}

// New creates a controller standing at pos. It fails if the settings are invalid or no query provider is
// given.
func New(conf Config, pos mgl64.Vec3) (*Controller, error) {
	if err := conf.Settings.Validate(); err != nil {
		return nil, err
	}
	if conf.Query == nil {
		return nil, fmt.Errorf("%w: no collision query provider", oerror.ErrInvalidSettings)
	}
	if conf.Pusher == nil {
		conf.Pusher = nopPushHandler{}
	}
	if conf.Log == nil {
		conf.Log = slog.New(slog.DiscardHandler)
	}

	c := &Controller{
		s:      conf.Settings,
		query:  conf.Query,
		self:   conf.Self,
		pusher: conf.Pusher,
		log:    conf.Log,
		pos:    pos,
		hits:   make([]collision.Hit, 0, conf.Settings.MaxBounces),
	}
	c.fall.ElapsedSinceJump = math.Inf(1)
	c.RefreshGroundState()
	c.prev = frame{standing: c.StandingOnGround(), falling: c.falling}
	return c, nil
}

// Settings returns the settings the controller was created with.
func (c *Controller) Settings() Settings {
	return c.s
}

// Position returns the agent position, which is the bottom of its collider.
func (c *Controller) Position() mgl64.Vec3 {
	return c.pos
}

// Velocity returns the vertical state machine velocity. Horizontal input is not part of it.
func (c *Controller) Velocity() mgl64.Vec3 {
	return c.velocity
}

// Shape returns the world-space collider at the current position.
func (c *Controller) Shape() collision.Capsule {
	return c.s.Collider.At(c.pos)
}

// Ground returns the last ground snapshot.
func (c *Controller) Ground() GroundState {
	return c.ground
}

// Fall returns the fall and jump timers.
func (c *Controller) Fall() FallState {
	return c.fall
}

// Falling ...
func (c *Controller) Falling() bool {
	return c.falling
}

// Jumped returns true if a jump impulse was applied during the last tick.
func (c *Controller) Jumped() bool {
	return c.jumped
}

// Attached returns the moving ground followed during the last tick, or nil.
func (c *Controller) Attached() collision.MovingGround {
	return c.attached
}

// Teleport places the agent at pos, dropping its velocity, ground attachment and fall timer.
func (c *Controller) Teleport(pos mgl64.Vec3) {
	c.pos = pos
	c.velocity = mgl64.Vec3{}
	c.attached = nil
	c.jumped = false
	c.fall.ElapsedFalling = 0
	c.RefreshGroundState()
	c.prev = frame{standing: c.StandingOnGround(), falling: c.falling}
	c.log.Debug("teleported", "pos", pos)
}
