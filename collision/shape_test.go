package collision

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinematic/oerror"
)

type staticCollider string

func (s staticCollider) Name() string { return string(s) }

type dynamicCollider struct {
	staticCollider
	kinematic bool
}

func (d *dynamicCollider) Kinematic() bool { return d.kinematic }

func TestLocalCapsuleAt(t *testing.T) {
	c := DefaultLocalCapsule().At(mgl64.Vec3{1, 2, 3})
	if !c.Lowest().ApproxEqual(mgl64.Vec3{1, 2, 3}) {
		t.Fatalf("expected lowest point at the agent position, got %v", c.Lowest())
	}
	if !c.Highest().ApproxEqual(mgl64.Vec3{1, 4, 3}) {
		t.Fatalf("expected highest point 2 units up, got %v", c.Highest())
	}

	bb := c.BBox()
	if !bb.Min().ApproxEqual(mgl64.Vec3{0.5, 2, 2.5}) || !bb.Max().ApproxEqual(mgl64.Vec3{1.5, 4, 3.5}) {
		t.Fatalf("unexpected bounding box %v", bb)
	}
}

func TestLocalCapsuleValidate(t *testing.T) {
	cases := []LocalCapsule{
		{Radius: 0, Height: 1},
		{Radius: 0.5, Height: 0.5},
	}
	for _, c := range cases {
		err := c.Validate()
		if err == nil {
			t.Fatalf("expected %+v to be rejected", c)
		}
		if !errors.Is(err, oerror.ErrInvalidShape) {
			t.Fatalf("expected ErrInvalidShape, got %v", err)
		}
	}
	if err := DefaultLocalCapsule().Validate(); err != nil {
		t.Fatalf("default capsule rejected: %v", err)
	}
}

func TestPushable(t *testing.T) {
	crate := &dynamicCollider{staticCollider: "crate"}
	if _, ok := Pushable(crate, nil); !ok {
		t.Fatalf("non-kinematic dynamic collider must be pushable")
	}
	if _, ok := Pushable(crate, crate); ok {
		t.Fatalf("an agent must never push itself")
	}
	if _, ok := Pushable(&dynamicCollider{kinematic: true}, nil); ok {
		t.Fatalf("kinematic colliders are not pushable")
	}
	if _, ok := Pushable(staticCollider("wall"), nil); ok {
		t.Fatalf("static colliders are not pushable")
	}
	if AsMovingGround(staticCollider("wall")) != nil {
		t.Fatalf("static colliders do not move")
	}
}
