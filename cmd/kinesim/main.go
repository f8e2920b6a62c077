package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/oomph-ac/kinematic/config"
	"github.com/oomph-ac/kinematic/sim"
)

// kinesim runs a configured scene headlessly and logs what its agents do.
func main() {
	var (
		path     = flag.String("config", "kinesim.yaml", "path to the simulation configuration")
		ticks    = flag.Int("ticks", -1, "amount of ticks to run, overriding sim.ticks")
		realtime = flag.Bool("realtime", false, "step at wall clock speed instead of as fast as possible")
	)
	flag.Parse()

	if err := run(*path, *ticks, *realtime); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string, ticks int, realtime bool) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if ticks >= 0 {
		cfg.Sim.Ticks = ticks
	}
	level, _ := cfg.LogLevel()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			return fmt.Errorf("sentry: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
	}
	if addr := os.Getenv("STATSVIEW_ADDR"); addr != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(addr))

		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
		log.Info("statsview started", "addr", addr)
	}

	r, err := cfg.BuildRunner(log, sim.SystemClock{})
	if err != nil {
		return err
	}
	defer r.Close()
	log.Info("simulation started", "agents", len(r.Agents()), "ticks", cfg.Sim.Ticks, "rate", cfg.Sim.TickRate)

	interval := time.Duration(float64(time.Second) / cfg.Sim.TickRate)
	for r.Tick() < uint64(cfg.Sim.Ticks) {
		if realtime {
			time.Sleep(interval)
			if _, err := r.Advance(); err != nil {
				return err
			}
		} else if err := r.Step(); err != nil {
			return err
		}

		if cfg.Sim.LogEvery > 0 && r.Tick()%uint64(cfg.Sim.LogEvery) == 0 {
			report(log, r)
		}
	}

	stats := r.Stats()
	log.Info("simulation finished", "ticks", r.Tick(), "mean_ms", stats.Mean, "max_ms", stats.Max, "stddev_ms", stats.StdDev)
	return nil
}

func report(log *slog.Logger, r *sim.Runner) {
	for _, a := range r.Agents() {
		res := a.Last()
		ground := "none"
		if res.Ground.Floor != nil {
			ground = res.Ground.Floor.Name()
		}
		log.Info("agent",
			"tick", r.Tick(),
			"name", a.Name,
			"pos", res.Position,
			"velocity", res.Velocity,
			"standing", res.Standing,
			"falling", res.Falling,
			"ground", ground,
			"changed", a.History.Changed(),
		)
	}
}
