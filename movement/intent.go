package movement

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinematic/omath"
)

// Intent is the normalized player input for a single tick. It is produced by an input layer and only read
// by the controller.
type Intent struct {
	// Move is the desired horizontal direction in world space. Y is ignored and the length is clamped to 1.
	Move mgl64.Vec3
	// Jump is true while the agent is trying to jump.
	Jump bool
	// Allowed is false while input is denied, for example during a cutscene. Denied intents never move the
	// agent.
	Allowed bool
}

// NewIntent returns an allowed intent.
func NewIntent(move mgl64.Vec3, jump bool) Intent {
	return Intent{Move: move, Jump: jump, Allowed: true}
}

func (i Intent) sanitized() Intent {
	if !i.Allowed {
		return Intent{}
	}
	i.Move = omath.ClampLength(omath.Horizontal(i.Move), 1)
	return i
}
