package probe

import (
	"context"
	"time"

	"go.uber.org/multierr"

	"depwait/internal/logger"
)

// Run executes the attempt loop against dep,
// reporting this probe's eventual outcome to it. It returns once the
// outcome is reported or the dependency's result is already decided.
func (p *Probe) Run(ctx context.Context, dep Reporter) {
	d := dialerFor(p.Kind)
	attempts := *p.Options.Attempts
	initialDelay := *p.Options.InitialDelay
	delay := *p.Options.Delay

	var failures error

	for i := 0; i < attempts; i++ {
		if dep.Decided() {
			return
		}

		if i == 0 && initialDelay > 0 {
			if !sleepOrDone(ctx, time.Duration(initialDelay)*time.Second) {
				return
			}
		}

		quiet, err := d.attempt(ctx, p)
		if err == nil {
			dep.ReportSuccess()
			return
		}

		failures = multierr.Append(failures, err)
		if quiet {
			logger.Debugf("%s %s: attempt %d/%d failed quietly: %v", p.Kind, p.Label, i+1, attempts, err)
		} else {
			logger.Warnf("%s %s: attempt %d/%d failed: %v", p.Kind, p.Label, i+1, attempts, err)
		}

		if dep.Decided() {
			return
		}

		if i < attempts-1 {
			if !sleepOrDone(ctx, time.Duration(delay)*time.Second) {
				return
			}
		}
	}

	logger.Warnf("%s %s: exhausted %d attempts: %v", p.Kind, p.Label, attempts, failures)
	dep.ReportFailure()
}

func dialerFor(kind Kind) dialer {
	if kind == KindHTTP {
		return httpDialer{}
	}
	return tcpDialer{}
}

// sleepOrDone sleeps for d, returning false early (without having slept the
// full duration) if ctx is cancelled first.
func sleepOrDone(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
