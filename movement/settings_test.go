package movement

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinematic/oerror"
)

func TestDefaultSettingsValid(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("default settings should be valid: %v", err)
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
		want   error
	}{
		{"zero bounces", func(s *Settings) { s.MaxBounces = 0 }, oerror.ErrInvalidBounces},
		{"negative bounces", func(s *Settings) { s.MaxBounces = -3 }, oerror.ErrInvalidBounces},
		{"flat collider", func(s *Settings) { s.Collider.Radius = 0 }, oerror.ErrInvalidShape},
		{"negative speed", func(s *Settings) { s.MovementSpeed = -1 }, oerror.ErrInvalidSettings},
		{"no skin", func(s *Settings) { s.Skin = 0 }, oerror.ErrInvalidSettings},
		{"grounded within skin", func(s *Settings) { s.GroundedDistance = s.Skin }, oerror.ErrInvalidSettings},
		{"short ground probe", func(s *Settings) { s.GroundCheckDistance = s.GroundedDistance / 2 }, oerror.ErrInvalidSettings},
		{"push decay above one", func(s *Settings) { s.PushDecay = 1.5 }, oerror.ErrInvalidSettings},
		{"jump weight above one", func(s *Settings) { s.JumpAngleWeight = 2 }, oerror.ErrInvalidSettings},
		{"walk angle above vertical", func(s *Settings) { s.MaxWalkAngle = 120 }, oerror.ErrInvalidSettings},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(&s)
			if err := s.Validate(); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	s := DefaultSettings()
	s.MaxBounces = 0
	if _, err := New(Config{Settings: s, Query: &fakeQuery{}}, mgl64.Vec3{}); !errors.Is(err, oerror.ErrInvalidBounces) {
		t.Fatalf("expected bounce validation error, got %v", err)
	}
	if _, err := New(Config{Settings: DefaultSettings()}, mgl64.Vec3{}); !errors.Is(err, oerror.ErrInvalidSettings) {
		t.Fatalf("expected missing query error, got %v", err)
	}
}

func TestIntentSanitized(t *testing.T) {
	i := NewIntent(mgl64.Vec3{3, 7, 4}, true).sanitized()
	if !approxVec(i.Move, mgl64.Vec3{0.6, 0, 0.8}, 1e-9) || !i.Jump {
		t.Fatalf("expected horizontal unit move, got %v", i)
	}

	i = Intent{Move: mgl64.Vec3{1, 0, 0}, Jump: true}.sanitized()
	if i.Move != (mgl64.Vec3{}) || i.Jump {
		t.Fatalf("denied intent should be zeroed, got %v", i)
	}
}
