package snapshot

import (
	"bytes"
	"fmt"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kinematic/internal"
	"github.com/oomph-ac/kinematic/movement"
	"github.com/oomph-ac/kinematic/oerror"
	"github.com/oomph-ac/kinematic/omath"
	"github.com/sandertv/gophertunnel/minecraft/protocol"
	"github.com/zeebo/xxh3"
)

// DefaultPrecision is the amount of decimals kept by Capture when no precision is configured.
const DefaultPrecision = 4

// Snapshot is the read-only state of an agent that is shipped to observers. It is quantised to float32 so
// that small numeric noise does not register as a change.
type Snapshot struct {
	Tick  uint64
	Agent string

	Position     mgl32.Vec3
	Velocity     mgl32.Vec3
	GroundNormal mgl32.Vec3
	GroundAngle  float32

	OnGround bool
	Standing bool
	Falling  bool
	Jumped   bool

	Hitbox cube.BBox
}

// Capture reads the state of c after a tick. Values are rounded to precision decimals.
func Capture(tick uint64, agent string, c *movement.Controller, precision int) Snapshot {
	g := c.Ground()
	return Snapshot{
		Tick:  tick,
		Agent: agent,

		Position:     omath.RoundVec32(omath.Vec64To32(c.Position()), precision),
		Velocity:     omath.RoundVec32(omath.Vec64To32(c.Velocity()), precision),
		GroundNormal: omath.RoundVec32(omath.Vec64To32(g.Normal), precision),
		GroundAngle:  omath.Round32(float32(g.Angle), precision),

		OnGround: g.OnGround,
		Standing: c.StandingOnGround(),
		Falling:  c.Falling(),
		Jumped:   c.Jumped(),

		Hitbox: omath.RoundBox32(omath.DFBoxToCubeBox(c.Shape().BBox()), precision),
	}
}

// Marshal encodes or decodes the snapshot, depending on the protocol.IO passed.
func (s *Snapshot) Marshal(io protocol.IO) {
	io.Varuint64(&s.Tick)
	io.String(&s.Agent)

	io.Vec3(&s.Position)
	io.Vec3(&s.Velocity)
	io.Vec3(&s.GroundNormal)
	io.Float32(&s.GroundAngle)

	io.Bool(&s.OnGround)
	io.Bool(&s.Standing)
	io.Bool(&s.Falling)
	io.Bool(&s.Jumped)

	lo, hi := s.Hitbox.Min(), s.Hitbox.Max()
	io.Vec3(&lo)
	io.Vec3(&hi)
	s.Hitbox = cube.Box(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
}

// Encode returns the binary form of the snapshot.
func (s Snapshot) Encode() []byte {
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	defer internal.BufferPool.Put(buf)

	buf.Reset()
	s.Marshal(protocol.NewWriter(buf, 0))
	return bytes.Clone(buf.Bytes())
}

// Decode reads a snapshot previously produced by Encode.
func Decode(b []byte) (s Snapshot, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", oerror.ErrMalformedSnapshot, r)
		}
	}()

	buf := bytes.NewBuffer(b)
	s.Marshal(protocol.NewReader(buf, 0, false))
	if buf.Len() != 0 {
		return Snapshot{}, fmt.Errorf("%w: %d trailing bytes", oerror.ErrMalformedSnapshot, buf.Len())
	}
	return s, nil
}

// Checksum hashes everything but the tick, so two snapshots of an agent at rest share a checksum.
func (s Snapshot) Checksum() uint64 {
	s.Tick = 0
	return xxh3.Hash(s.Encode())
}
