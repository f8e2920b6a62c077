package sim

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/kinematic/assert"
	"github.com/oomph-ac/kinematic/collision"
	"github.com/oomph-ac/kinematic/movement"
	"github.com/oomph-ac/kinematic/omath"
	"github.com/oomph-ac/kinematic/scene"
	"github.com/oomph-ac/kinematic/snapshot"
	"github.com/oomph-ac/kinematic/worker"
)

// Options configure a Runner.
type Options struct {
	// TickRate is the amount of fixed steps per second.
	TickRate float64
	// MaxCatchUp is the most steps Advance runs at once. Time beyond that is dropped.
	MaxCatchUp int
	// Workers is the amount of goroutines agents are ticked on. Values below 2 tick agents serially.
	Workers int
	// HistorySize is the amount of snapshots kept per agent.
	HistorySize int
	// Precision is the amount of decimals kept in snapshots.
	Precision int

	Clock Clock
	Log   *slog.Logger
}

// DefaultOptions ...
func DefaultOptions() Options {
	return Options{
		TickRate:    50,
		MaxCatchUp:  5,
		Workers:     1,
		HistorySize: 20,
		Precision:   snapshot.DefaultPrecision,
	}
}

// Agent is a controller driven by the runner.
type Agent struct {
	Name       string
	Controller *movement.Controller
	Proxy      *scene.AgentProxy
	Input      IntentSource
	History    *snapshot.History

	last   movement.Result
	pushes []push
}

// Last returns the result of the agent's latest tick.
func (a *Agent) Last() movement.Result {
	return a.last
}

type push struct {
	body         collision.Dynamic
	force, point mgl64.Vec3
}

// Runner steps a scene and its agents at a fixed rate. Agents read the scene as it was at the start of the
// step: proxies are synced and pushes are applied only once every agent has ticked.
type Runner struct {
	opts   Options
	dt     float64
	scene  *scene.Scene
	agents []*Agent
	pool   *worker.Pool
	log    *slog.Logger

	tick        uint64
	last        time.Time
	accumulator time.Duration
	tickTimes   []float64
}

// NewRunner creates a runner for s.
func NewRunner(s *scene.Scene, opts Options) *Runner {
	assert.IsTrue(opts.TickRate > 0, "tick rate must be positive, got %f", opts.TickRate)
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Log == nil {
		opts.Log = slog.New(slog.DiscardHandler)
	}
	opts.MaxCatchUp = max(opts.MaxCatchUp, 1)
	opts.HistorySize = max(opts.HistorySize, 1)

	r := &Runner{
		opts:  opts,
		dt:    1 / opts.TickRate,
		scene: s,
		log:   opts.Log,
		last:  opts.Clock.Now(),
	}
	if opts.Workers > 1 {
		r.pool = worker.New(opts.Workers, opts.Log)
	}
	return r
}

// AddAgent places a new agent in the scene at pos.
func (r *Runner) AddAgent(name string, settings movement.Settings, pos mgl64.Vec3, input IntentSource) (*Agent, error) {
	if _, exists := r.scene.Collider(name); exists {
		return nil, fmt.Errorf("agent %q: name is already used in the scene", name)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("agent %q: %w", name, err)
	}
	if input == nil {
		input = NewScript()
	}

	a := &Agent{
		Name:    name,
		Input:   input,
		History: snapshot.NewHistory(r.opts.HistorySize),
		Proxy:   r.scene.AddAgent(name, settings.Collider, pos),
	}
	c, err := movement.New(movement.Config{
		Settings: settings,
		Query:    r.scene,
		Self:     a.Proxy,
		Pusher: movement.PushFunc(func(body collision.Dynamic, force, point mgl64.Vec3) {
			a.pushes = append(a.pushes, push{body: body, force: force, point: point})
		}),
		Log: r.log.With("agent", name),
	}, pos)
	if err != nil {
		r.scene.Remove(name)
		return nil, fmt.Errorf("agent %q: %w", name, err)
	}
	a.Controller = c
	r.agents = append(r.agents, a)
	r.log.Info("agent added", "name", name, "pos", pos)
	return a, nil
}

// Agents returns every agent in the order they were added.
func (r *Runner) Agents() []*Agent {
	return r.agents
}

// Agent returns the named agent.
func (r *Runner) Agent(name string) (*Agent, bool) {
	for _, a := range r.agents {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// Tick returns the amount of steps run so far.
func (r *Runner) Tick() uint64 {
	return r.tick
}

// Step runs a single fixed step.
func (r *Runner) Step() error {
	start := r.opts.Clock.Now()
	r.scene.Tick(r.dt)

	var err error
	if r.pool != nil && len(r.agents) > 1 {
		jobs := make([]func(), len(r.agents))
		for i, a := range r.agents {
			jobs[i] = func() { r.tickAgent(a) }
		}
		err = r.pool.Run(jobs...)
	} else {
		for _, a := range r.agents {
			r.tickAgent(a)
		}
	}

	for _, a := range r.agents {
		for _, p := range a.pushes {
			r.scene.Push(p.body, p.force, p.point)
		}
		a.pushes = a.pushes[:0]
		a.Proxy.Sync(a.Controller.Position())

		if a.History.Record(snapshot.Capture(r.tick, a.Name, a.Controller, r.opts.Precision)) {
			r.log.Debug("agent state changed", "agent", a.Name, "tick", r.tick, "pos", a.last.Position)
		}
	}

	r.tick++
	r.recordTickTime(r.opts.Clock.Now().Sub(start))
	if err != nil {
		return fmt.Errorf("tick %d: %w", r.tick-1, err)
	}
	return nil
}

func (r *Runner) tickAgent(a *Agent) {
	a.last = a.Controller.Tick(r.dt, a.Input.Intent(r.tick))
}

// Advance runs as many steps as the time passed since the previous call allows, up to MaxCatchUp. It returns
// the amount of steps run.
func (r *Runner) Advance() (int, error) {
	now := r.opts.Clock.Now()
	r.accumulator += now.Sub(r.last)
	r.last = now

	step := time.Duration(float64(time.Second) * r.dt)
	steps := 0
	for r.accumulator >= step {
		if steps == r.opts.MaxCatchUp {
			r.log.Warn("runner is falling behind, dropping time", "behind", r.accumulator)
			r.accumulator = 0
			break
		}
		if err := r.Step(); err != nil {
			return steps, err
		}
		r.accumulator -= step
		steps++
	}
	return steps, nil
}

// TickStats summarises how long recent steps took, in milliseconds.
type TickStats struct {
	Mean, Max, StdDev float64
}

// Stats ...
func (r *Runner) Stats() TickStats {
	return TickStats{
		Mean:   omath.Mean(r.tickTimes),
		Max:    omath.Max(r.tickTimes),
		StdDev: omath.StandardDeviation(r.tickTimes),
	}
}

func (r *Runner) recordTickTime(d time.Duration) {
	const window = 100
	if len(r.tickTimes) == window {
		r.tickTimes = r.tickTimes[1:]
	}
	r.tickTimes = append(r.tickTimes, float64(d.Microseconds())/1000)
}

// Close stops the worker pool, if any.
func (r *Runner) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}
