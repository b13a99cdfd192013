// Package quorum implements the two-level quorum state machine: per-
// dependency probe quorum, and run-level dependency quorum, each with a
// single-transition result cell and cooperative cancellation.
package quorum

import (
	"context"

	"go.uber.org/atomic"

	"depwait/internal/logger"
)

// Result is a Dependency's terminal outcome.
type Result int32

const (
	Unknown Result = iota
	Success
	Failure
)

func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// Dependency owns the final_result cell and active_probes counter for one
// declared dependency. It implements
// internal/probe.Reporter.
type Dependency struct {
	Name string
	Mode string // "all" or "any", probe-quorum within this dependency

	activeProbes atomic.Int64
	finalResult  atomic.Int32 // Result, accessed only via CAS/Load

	ctx    context.Context
	cancel context.CancelFunc

	onDecided func(*Dependency, Result)
}

// New creates a Dependency ready to track probeCount outstanding probes.
// onDecided is invoked exactly once, the moment final_result transitions.
func New(parent context.Context, name, mode string, probeCount int, onDecided func(*Dependency, Result)) *Dependency {
	ctx, cancel := context.WithCancel(parent)
	d := &Dependency{
		Name:      name,
		Mode:      mode,
		ctx:       ctx,
		cancel:    cancel,
		onDecided: onDecided,
	}
	d.activeProbes.Store(int64(probeCount))
	return d
}

// Context is cancelled the moment this dependency's outcome is decided.
func (d *Dependency) Context() context.Context { return d.ctx }

// Decided reports whether final_result has already transitioned.
func (d *Dependency) Decided() bool {
	return Result(d.finalResult.Load()) != Unknown
}

// Result returns the current (possibly still Unknown) result.
func (d *Dependency) Result() Result {
	return Result(d.finalResult.Load())
}

// ReportSuccess implements probe.Reporter.
func (d *Dependency) ReportSuccess() {
	remaining := d.activeProbes.Add(-1)
	if d.Mode == "any" || remaining <= 0 {
		d.transition(Success)
	}
}

// ReportFailure implements probe.Reporter.
func (d *Dependency) ReportFailure() {
	remaining := d.activeProbes.Add(-1)
	if d.Mode != "any" || remaining <= 0 {
		d.transition(Failure)
	}
}

// transition performs the single allowed Unknown->{Success,Failure} CAS. On
// the winning call only: log, cancel outstanding probes, zero the counter,
// and notify the run-level arbiter.
func (d *Dependency) transition(result Result) {
	if !d.finalResult.CompareAndSwap(int32(Unknown), int32(result)) {
		return
	}
	logger.Infof("dependency %q decided: %s", d.Name, result)
	d.activeProbes.Store(0)
	d.cancel()
	if d.onDecided != nil {
		d.onDecided(d, result)
	}
}
