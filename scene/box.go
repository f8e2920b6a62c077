package scene

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinematic/collision"
)

// Box is a static axis aligned collider.
type Box struct {
	name string
	bb   cube.BBox
}

// Name ...
func (b *Box) Name() string {
	return b.name
}

// BBox returns the world-space bounds of the box.
func (b *Box) BBox() cube.BBox {
	return b.bb
}

func (b *Box) sweep(moving cube.BBox, dir mgl64.Vec3, maxDistance float64) (collision.Hit, bool) {
	hit, ok := sweepBBox(b.bb, moving, dir, maxDistance)
	hit.Collider = b
	return hit, ok
}

func (b *Box) penetration(moving cube.BBox) (mgl64.Vec3, float64, bool) {
	return bboxPenetration(b.bb, moving)
}

func (b *Box) bounds() (cube.BBox, bool) {
	return b.bb, true
}
