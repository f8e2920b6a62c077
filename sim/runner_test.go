package sim

import (
	"errors"
	"testing"
	"time"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinematic/movement"
	"github.com/oomph-ac/kinematic/oerror"
	"github.com/oomph-ac/kinematic/scene"
)

func testScene() *scene.Scene {
	s := scene.New(nil)
	s.AddBox("floor", cube.Box(-50, -1, -50, 50, 0, 50))
	return s
}

func walk(dir mgl64.Vec3) IntentSource {
	return NewScript(Keyframe{Move: dir})
}

func TestAdvanceFixedSteps(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	opts := DefaultOptions()
	opts.Clock = clock
	r := NewRunner(testScene(), opts)
	defer r.Close()

	clock.Add(50 * time.Millisecond)
	if n, err := r.Advance(); err != nil || n != 2 {
		t.Fatalf("expected 2 steps for 50ms, got %d (%v)", n, err)
	}
	clock.Add(10 * time.Millisecond)
	if n, _ := r.Advance(); n != 1 {
		t.Fatalf("leftover time should carry over, got %d steps", n)
	}
	clock.Add(time.Second)
	if n, _ := r.Advance(); n != opts.MaxCatchUp {
		t.Fatalf("expected steps to be capped at %d, got %d", opts.MaxCatchUp, n)
	}
	clock.Add(10 * time.Millisecond)
	if n, _ := r.Advance(); n != 0 {
		t.Fatalf("dropped time must not be replayed, got %d steps", n)
	}
	if r.Tick() != uint64(3+opts.MaxCatchUp) {
		t.Fatalf("unexpected tick count %d", r.Tick())
	}
}

func TestAddAgentErrors(t *testing.T) {
	s := testScene()
	r := NewRunner(s, DefaultOptions())
	defer r.Close()

	if _, err := r.AddAgent("floor", movement.DefaultSettings(), mgl64.Vec3{}, nil); err == nil {
		t.Fatalf("agent names must not clash with scene colliders")
	}

	bad := movement.DefaultSettings()
	bad.MaxBounces = 0
	if _, err := r.AddAgent("alice", bad, mgl64.Vec3{}, nil); !errors.Is(err, oerror.ErrInvalidBounces) {
		t.Fatalf("expected a bounce validation error, got %v", err)
	}
	if s.Len() != 1 || len(r.Agents()) != 0 {
		t.Fatalf("failed agents must not be added")
	}
}

func TestAgentsBlockEachOther(t *testing.T) {
	r := NewRunner(testScene(), DefaultOptions())
	defer r.Close()

	a, err := r.AddAgent("a", movement.DefaultSettings(), mgl64.Vec3{0, 0.001, 0}, walk(mgl64.Vec3{0, 0, 1}))
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.AddAgent("b", movement.DefaultSettings(), mgl64.Vec3{0, 0.001, 3}, walk(mgl64.Vec3{0, 0, -1}))
	if err != nil {
		t.Fatal(err)
	}

	for range 50 {
		if err := r.Step(); err != nil {
			t.Fatal(err)
		}
	}
	gap := b.Controller.Position().Z() - a.Controller.Position().Z()
	if gap < 0.8 {
		t.Fatalf("agents walked into each other, centres %v apart", gap)
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	run := func(workers int) []mgl64.Vec3 {
		opts := DefaultOptions()
		opts.Workers = workers
		r := NewRunner(testScene(), opts)
		defer r.Close()

		starts := []mgl64.Vec3{{0, 0.001, 0}, {0, 0.001, 3}, {3, 0.001, 0}, {3, 2, 3}}
		dirs := []mgl64.Vec3{{0, 0, 1}, {0, 0, -1}, {-1, 0, 1}, {-1, 0, 0}}
		for i, pos := range starts {
			if _, err := r.AddAgent(string(rune('a'+i)), movement.DefaultSettings(), pos, walk(dirs[i])); err != nil {
				t.Fatal(err)
			}
		}
		for range 40 {
			if err := r.Step(); err != nil {
				t.Fatal(err)
			}
		}
		var out []mgl64.Vec3
		for _, a := range r.Agents() {
			out = append(out, a.Controller.Position())
		}
		return out
	}

	serial, parallel := run(1), run(4)
	for i := range serial {
		if serial[i] != parallel[i] {
			t.Fatalf("agent %d diverged: serial %v, parallel %v", i, serial[i], parallel[i])
		}
	}
}

func TestRunnerPushesCrate(t *testing.T) {
	s := testScene()
	crate := s.AddCrate("crate", cube.Box(-0.5, 0, 1.5, 0.5, 1, 2.5), 1, 0.5)
	r := NewRunner(s, DefaultOptions())
	defer r.Close()

	if _, err := r.AddAgent("a", movement.DefaultSettings(), mgl64.Vec3{0, 0.001, 0}, walk(mgl64.Vec3{0, 0, 1})); err != nil {
		t.Fatal(err)
	}
	for range 20 {
		if err := r.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if crate.BBox().Min().Z() <= 1.5 {
		t.Fatalf("crate should have been pushed forward, got %v", crate.BBox())
	}
}

func TestRunnerHistory(t *testing.T) {
	opts := DefaultOptions()
	opts.HistorySize = 4
	r := NewRunner(testScene(), opts)
	defer r.Close()

	a, err := r.AddAgent("a", movement.DefaultSettings(), mgl64.Vec3{0, 0.001, 0}, nil)
	if err != nil {
		t.Fatal(err)
	}
	for range 10 {
		if err := r.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if a.History.Len() != 4 {
		t.Fatalf("expected 4 snapshots, got %d", a.History.Len())
	}
	if a.History.Changed() {
		t.Fatalf("an idle agent should not produce changes")
	}
	latest, _ := a.History.Latest()
	if latest.Tick != 9 || latest.Agent != "a" {
		t.Fatalf("unexpected latest snapshot %+v", latest)
	}
	if stats := r.Stats(); stats.Max < stats.Mean || stats.Mean < 0 {
		t.Fatalf("unexpected tick stats %+v", stats)
	}
}
