package omath

import (
	"math"

	"github.com/chewxy/math32"
	df_cube "github.com/df-mc/dragonfly/server/block/cube"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// DFBoxToCubeBox converts a dragonfly bounding box to a float32-cube bounding box.
func DFBoxToCubeBox(b df_cube.BBox) cube.BBox {
	return cube.Box(
		float32(b.Min().X()), float32(b.Min().Y()), float32(b.Min().Z()),
		float32(b.Max().X()), float32(b.Max().Y()), float32(b.Max().Z()),
	)
}

// CubeBoxToDFBox converts a float32-cube bounding box to a dragonfly bounding box.
func CubeBoxToDFBox(b cube.BBox) df_cube.BBox {
	return df_cube.Box(
		float64(b.Min().X()), float64(b.Min().Y()), float64(b.Min().Z()),
		float64(b.Max().X()), float64(b.Max().Y()), float64(b.Max().Z()),
	)
}

// Round32 will round a float32 to a given precision.
func Round32(val float32, precision int) float32 {
	pwr := float32(math.Pow10(precision))
	return math32.Round(val*pwr) / pwr
}

// RoundVec32 will round a 32-bit vector to a given precision.
func RoundVec32(v mgl32.Vec3, precision int) mgl32.Vec3 {
	return mgl32.Vec3{Round32(v[0], precision), Round32(v[1], precision), Round32(v[2], precision)}
}

// RoundBox32 rounds both corners of a float32 bounding box to a given precision.
func RoundBox32(b cube.BBox, precision int) cube.BBox {
	lo, hi := RoundVec32(b.Min(), precision), RoundVec32(b.Max(), precision)
	return cube.Box(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
}
