package sim

import (
	"cmp"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinematic/movement"
)

// IntentSource supplies the input of an agent for a tick.
type IntentSource interface {
	Intent(tick uint64) movement.Intent
}

// Keyframe is input that applies from Tick until the next keyframe.
type Keyframe struct {
	Tick   uint64     `yaml:"tick"`
	Move   mgl64.Vec3 `yaml:"move"`
	Jump   bool       `yaml:"jump"`
	Denied bool       `yaml:"denied"`
}

// Script replays keyframed input. Before the first keyframe the agent stands still.
type Script struct {
	keys []Keyframe
}

// NewScript sorts keys by tick. Later keyframes win over earlier ones on the same tick.
func NewScript(keys ...Keyframe) *Script {
	keys = slices.Clone(keys)
	slices.SortStableFunc(keys, func(a, b Keyframe) int {
		return cmp.Compare(a.Tick, b.Tick)
	})
	return &Script{keys: keys}
}

// Intent ...
func (s *Script) Intent(tick uint64) movement.Intent {
	i, found := slices.BinarySearchFunc(s.keys, tick, func(k Keyframe, t uint64) int {
		return cmp.Compare(k.Tick, t)
	})
	if found {
		// Skip to the last keyframe on this tick.
		for i+1 < len(s.keys) && s.keys[i+1].Tick == tick {
			i++
		}
	} else {
		i--
	}
	if i < 0 {
		return movement.NewIntent(mgl64.Vec3{}, false)
	}
	k := s.keys[i]
	return movement.Intent{Move: k.Move, Jump: k.Jump, Allowed: !k.Denied}
}

// IntentFunc adapts a function to an IntentSource.
type IntentFunc func(tick uint64) movement.Intent

// Intent ...
func (f IntentFunc) Intent(tick uint64) movement.Intent {
	return f(tick)
}
