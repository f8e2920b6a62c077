package movement

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinematic/collision"
)

// PushHandler is notified whenever a sweep strikes a dynamic, non-kinematic body. The controller never
// moves such bodies itself.
type PushHandler interface {
	Push(body collision.Dynamic, force, point mgl64.Vec3)
}

// PushFunc adapts a function to a PushHandler.
type PushFunc func(body collision.Dynamic, force, point mgl64.Vec3)

// Push ...
func (f PushFunc) Push(body collision.Dynamic, force, point mgl64.Vec3) {
	f(body, force, point)
}

type nopPushHandler struct{}

func (nopPushHandler) Push(collision.Dynamic, mgl64.Vec3, mgl64.Vec3) {}
