package omath

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the smallest distance the movement code treats as non-zero.
const Epsilon = 1e-6

// Up is the world up axis. All vertical reasoning in the module is done against it.
var Up = mgl64.Vec3{0, 1, 0}

// Vec64To32 converts a 64 bit vector to a 32 bit one.
func Vec64To32(vec3 mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(vec3[0]), float32(vec3[1]), float32(vec3[2])}
}

// Vec32To64 converts a 32 bit vector to a 64 bit one.
func Vec32To64(vec3 mgl32.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{float64(vec3[0]), float64(vec3[1]), float64(vec3[2])}
}

// ClampFloat clamps the given value to the given range.
func ClampFloat(num, min, max float64) float64 {
	if num < min {
		return min
	}
	return math.Min(num, max)
}

// NearZero returns true if the vector is shorter than Epsilon.
func NearZero(v mgl64.Vec3) bool {
	return v.LenSqr() <= Epsilon*Epsilon
}

// SafeNormalize returns the unit vector of v, or the zero vector if v has no length.
// mgl64's Normalize divides by zero for zero vectors.
func SafeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l <= Epsilon {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// Project returns the component of v along onto.
func Project(v, onto mgl64.Vec3) mgl64.Vec3 {
	lenSqr := onto.LenSqr()
	if lenSqr <= Epsilon*Epsilon {
		return mgl64.Vec3{}
	}
	return onto.Mul(v.Dot(onto) / lenSqr)
}

// ProjectOnPlane removes the component of v along the plane normal.
func ProjectOnPlane(v, normal mgl64.Vec3) mgl64.Vec3 {
	return v.Sub(Project(v, normal))
}

// AngleBetween returns the unsigned angle between a and b in degrees. Zero vectors yield 0.
func AngleBetween(a, b mgl64.Vec3) float64 {
	denom := math.Sqrt(a.LenSqr() * b.LenSqr())
	if denom <= Epsilon*Epsilon {
		return 0
	}
	return mgl64.RadToDeg(math.Acos(ClampFloat(a.Dot(b)/denom, -1, 1)))
}

// Horizontal drops the vertical component of v.
func Horizontal(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v[0], 0, v[2]}
}

// ClampLength limits the length of v to max.
func ClampLength(v mgl64.Vec3, max float64) mgl64.Vec3 {
	if l := v.Len(); l > max && l > 0 {
		return v.Mul(max / l)
	}
	return v
}

// Round will round a number to a given precision.
func Round(val float64, precision int) float64 {
	p := math.Pow10(precision)
	return math.Round(val*p) / p
}

// RoundVec64 will round a 64-bit vector to a given precision.
func RoundVec64(v mgl64.Vec3, p int) mgl64.Vec3 {
	return mgl64.Vec3{Round(v.X(), p), Round(v.Y(), p), Round(v.Z(), p)}
}
