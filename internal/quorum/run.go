package quorum

import (
	"context"
	"sync"

	"go.uber.org/atomic"

	"depwait/internal/logger"
)

// Run is the run-level exit arbiter: the sole authority that
// decides the process's final exit status, once every dependency (or
// enough of them, under "any") has decided.
type Run struct {
	Mode string // "all" or "any", dependency-quorum across the run

	total atomic.Int64

	ctx    context.Context
	cancel context.CancelFunc

	once sync.Once
	done chan struct{}
	code int
}

// NewRun creates a Run tracking depCount dependencies.
func NewRun(parent context.Context, mode string, depCount int) *Run {
	ctx, cancel := context.WithCancel(parent)
	r := &Run{
		Mode:   mode,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	r.total.Store(int64(depCount))
	if depCount == 0 {
		r.decide(0)
	}
	return r
}

// Context is cancelled the moment the run's outcome is decided.
func (r *Run) Context() context.Context { return r.ctx }

// Done is closed exactly once, when the run's exit status is decided.
func (r *Run) Done() <-chan struct{} { return r.done }

// ExitCode returns the decided exit status. Only meaningful after Done is
// closed.
func (r *Run) ExitCode() int { return r.code }

// OnDependencyDecided feeds one dependency's terminal result into the
// run-level arbiter.
func (r *Run) OnDependencyDecided(dep *Dependency, result Result) {
	remaining := r.total.Add(-1)
	switch result {
	case Success:
		if r.Mode != "all" || remaining <= 0 {
			r.decide(0)
		}
	case Failure:
		if r.Mode != "any" || remaining <= 0 {
			r.decide(1)
		}
	}
}

// decide sets the run's terminal exit code exactly once.
func (r *Run) decide(code int) {
	r.once.Do(func() {
		r.code = code
		if code == 0 {
			logger.Infof("run decided: success")
		} else {
			logger.Infof("run decided: failure")
		}
		r.cancel()
		close(r.done)
	})
}
