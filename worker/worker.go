package worker

import (
	"errors"
	"log/slog"
	"runtime"
	"sync"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/kinematic/oerror"
)

// Pool runs CPU intensive jobs on a fixed amount of goroutines. A panicking job is recovered, reported to
// Sentry and returned as an error from Run; the worker that ran it keeps going.
type Pool struct {
	queue chan func()
	log   *slog.Logger

	workers   sync.WaitGroup
	closeOnce sync.Once
}

// New starts a pool of n workers. n <= 0 uses one worker per CPU.
func New(n int, log *slog.Logger) *Pool {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	p := &Pool{queue: make(chan func(), n), log: log}
	p.workers.Add(n)
	for range n {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.workers.Done()
	defer sentry.Recover()

	for f := range p.queue {
		f()
	}
}

// Submit queues f without waiting for it. Panics inside f are recovered and logged.
func (p *Pool) Submit(f func()) {
	p.queue <- func() {
		if err := p.call(f); err != nil {
			p.log.Error("worker job failed", "err", err)
		}
	}
}

// Run executes every job on the pool and waits for all of them to finish. It returns the panics of failed
// jobs joined into a single error.
func (p *Pool) Run(jobs ...func()) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	wg.Add(len(jobs))
	for _, job := range jobs {
		p.queue <- func() {
			defer wg.Done()
			if err := p.call(job); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}
	}
	wg.Wait()
	return errors.Join(errs...)
}

// Close stops the workers once queued jobs have run. The pool must not be used afterwards.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.queue)
	})
	p.workers.Wait()
}

func (p *Pool) call(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			sentry.CurrentHub().Clone().Recover(r)
			err = oerror.New("worker job panicked: %v", r)
		}
	}()
	f()
	return nil
}
