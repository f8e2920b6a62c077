package scene

import (
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/block/cube/trace"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinematic/collision"
	"github.com/oomph-ac/kinematic/omath"
)

// overlapEpsilon is the depth below which touching boxes are not reported as overlapping.
const overlapEpsilon = 1e-5

// broadphaseMargin pads swept bounds so that contacts at exactly the sweep distance are not culled.
const broadphaseMargin = 1e-3

func bboxCenter(bb cube.BBox) mgl64.Vec3 {
	return bb.Min().Add(bb.Max()).Mul(0.5)
}

func bboxHalfExtents(bb cube.BBox) mgl64.Vec3 {
	return bb.Max().Sub(bb.Min()).Mul(0.5)
}

// bboxHasZeroVolume returns true if the bounding box has zero volume.
func bboxHasZeroVolume(bb cube.BBox) bool {
	return bb.Min() == bb.Max()
}

func faceNormal(f cube.Face) mgl64.Vec3 {
	switch f {
	case cube.FaceDown:
		return mgl64.Vec3{0, -1, 0}
	case cube.FaceUp:
		return mgl64.Vec3{0, 1, 0}
	case cube.FaceNorth:
		return mgl64.Vec3{0, 0, -1}
	case cube.FaceSouth:
		return mgl64.Vec3{0, 0, 1}
	case cube.FaceWest:
		return mgl64.Vec3{-1, 0, 0}
	default:
		return mgl64.Vec3{1, 0, 0}
	}
}

// sweepBBox sweeps the moving box along dir against a stationary box. The stationary box is grown by the
// half extents of the moving one so that the sweep reduces to a ray cast from the moving box's centre.
func sweepBBox(stationary, moving cube.BBox, dir mgl64.Vec3, maxDistance float64) (collision.Hit, bool) {
	if bboxHasZeroVolume(stationary) {
		return collision.Hit{}, false
	}

	start := bboxCenter(moving)
	expanded := stationary.GrowVec3(bboxHalfExtents(moving))
	if normal, _, inside := pointPenetration(expanded, start); inside {
		// Already overlapping: only report the contact if we are heading further in.
		if dir.Dot(normal) >= 0 {
			return collision.Hit{}, false
		}
		return collision.Hit{Normal: normal, Point: contactPoint(moving, stationary, normal)}, true
	}

	result, ok := trace.BBoxIntercept(expanded, start, start.Add(dir.Mul(maxDistance)))
	if !ok {
		return collision.Hit{}, false
	}
	normal := faceNormal(result.Face())
	if normal.Dot(dir) >= 0 {
		return collision.Hit{}, false
	}

	dist := result.Position().Sub(start).Len()
	return collision.Hit{
		Distance: dist,
		Normal:   normal,
		Point:    contactPoint(moving.Translate(dir.Mul(dist)), stationary, normal),
	}, true
}

// pointPenetration reports whether p lies strictly inside bb, and if so the outward normal of the nearest
// face and the distance to it.
func pointPenetration(bb cube.BBox, p mgl64.Vec3) (mgl64.Vec3, float64, bool) {
	lo, hi := bb.Min(), bb.Max()
	bestAxis, bestDepth, bestSign := -1, math.MaxFloat64, 0.0
	for i := range 3 {
		if p[i] <= lo[i] || p[i] >= hi[i] {
			return mgl64.Vec3{}, 0, false
		}
		if d := p[i] - lo[i]; d < bestDepth {
			bestAxis, bestDepth, bestSign = i, d, -1
		}
		if d := hi[i] - p[i]; d < bestDepth {
			bestAxis, bestDepth, bestSign = i, d, 1
		}
	}
	var normal mgl64.Vec3
	normal[bestAxis] = bestSign
	return normal, bestDepth, true
}

// bboxPenetration returns the minimum translation that separates moving from stationary.
func bboxPenetration(stationary, moving cube.BBox) (mgl64.Vec3, float64, bool) {
	if bboxHasZeroVolume(stationary) || !moving.IntersectsWith(stationary) {
		return mgl64.Vec3{}, 0, false
	}
	expanded := stationary.GrowVec3(bboxHalfExtents(moving))
	normal, depth, inside := pointPenetration(expanded, bboxCenter(moving))
	if !inside || depth <= overlapEpsilon {
		return mgl64.Vec3{}, 0, false
	}
	return normal, depth, true
}

// contactPoint returns the point at which moving touches stationary across the face with the given
// normal. On walls the highest shared point is used, which is the edge an agent would step over.
func contactPoint(moving, stationary cube.BBox, normal mgl64.Vec3) mgl64.Vec3 {
	c := bboxCenter(moving)
	lo, hi := stationary.Min(), stationary.Max()
	p := mgl64.Vec3{
		omath.ClampFloat(c[0], lo[0], hi[0]),
		omath.ClampFloat(c[1], lo[1], hi[1]),
		omath.ClampFloat(c[2], lo[2], hi[2]),
	}

	axis := 1
	if normal[0] != 0 {
		axis = 0
	} else if normal[2] != 0 {
		axis = 2
	}
	if normal[axis] > 0 {
		p[axis] = hi[axis]
	} else {
		p[axis] = lo[axis]
	}
	if axis != 1 {
		p[1] = math.Max(lo[1], math.Min(moving.Max().Y(), hi[1]))
	}
	return p
}
