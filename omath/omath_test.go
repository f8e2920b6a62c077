package omath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestProjectOnPlane(t *testing.T) {
	got := ProjectOnPlane(mgl64.Vec3{1, -2, 3}, Up)
	if !got.ApproxEqual(mgl64.Vec3{1, 0, 3}) {
		t.Fatalf("expected vertical component removed, got %v", got)
	}

	wall := mgl64.Vec3{0, 0, -1}
	if got := ProjectOnPlane(mgl64.Vec3{0, 0, 5}, wall); !NearZero(got) {
		t.Fatalf("head-on projection should vanish, got %v", got)
	}
}

func TestAngleBetween(t *testing.T) {
	cases := []struct {
		a, b mgl64.Vec3
		want float64
	}{
		{Up, Up, 0},
		{Up, mgl64.Vec3{1, 0, 0}, 90},
		{Up, mgl64.Vec3{0, -1, 0}, 180},
		{Up, mgl64.Vec3{}, 0},
	}
	for _, c := range cases {
		if got := AngleBetween(c.a, c.b); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("AngleBetween(%v, %v) = %f, want %f", c.a, c.b, got, c.want)
		}
	}
}

func TestSafeNormalize(t *testing.T) {
	if got := SafeNormalize(mgl64.Vec3{}); got != (mgl64.Vec3{}) {
		t.Fatalf("expected zero vector, got %v", got)
	}
	if got := SafeNormalize(mgl64.Vec3{0, 3, 4}); math.Abs(got.Len()-1) > 1e-12 {
		t.Fatalf("expected unit vector, got %v", got)
	}
}

func TestClampLength(t *testing.T) {
	if got := ClampLength(mgl64.Vec3{3, 0, 4}, 1); math.Abs(got.Len()-1) > 1e-12 {
		t.Fatalf("expected length 1, got %v", got.Len())
	}
	if got := ClampLength(mgl64.Vec3{0.1, 0, 0}, 1); got != (mgl64.Vec3{0.1, 0, 0}) {
		t.Fatalf("short vectors must be unchanged, got %v", got)
	}
}

func TestStatistics(t *testing.T) {
	nums := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if Mean(nums) != 5 {
		t.Fatalf("mean = %f", Mean(nums))
	}
	if StandardDeviation(nums) != 2 {
		t.Fatalf("stddev = %f", StandardDeviation(nums))
	}
	if Max(nums) != 9 || Max(nil) != 0 {
		t.Fatalf("unexpected max")
	}
}
