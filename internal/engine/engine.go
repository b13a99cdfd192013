// Package engine wires the compiled dependencies and probes together: a
// bounded worker pool, sized to the total number of probes plus one, and
// the run-level quorum they report to.
package engine

import (
	"context"
	"time"

	"github.com/sourcegraph/conc/pool"

	"depwait/internal/config"
	"depwait/internal/dependency"
	"depwait/internal/logger"
	"depwait/internal/quorum"
)

// Outcome is the end-to-end result of one waiter run.
type Outcome struct {
	ExitCode int
	Skipped  bool // true when the document had enabled: false
	Duration time.Duration
}

// Run compiles every dependency in doc and executes all of their probes
// concurrently, returning once the run-level Exit Arbiter has decided.
func Run(ctx context.Context, doc config.Document) (Outcome, error) {
	started := time.Now()
	if !doc.IsEnabled() {
		logger.Infof("document has enabled: false; exiting success without probing")
		return Outcome{ExitCode: 0, Skipped: true}, nil
	}

	run := quorum.NewRun(ctx, doc.NormalizedMode(), len(doc.Dependencies))

	compiled := make([]*dependency.Compiled, 0, len(doc.Dependencies))
	totalProbes := 0
	for name, spec := range doc.Dependencies {
		c, err := dependency.Compile(run.Context(), name, spec, doc.Template, run.OnDependencyDecided)
		if err != nil {
			return Outcome{}, err
		}
		compiled = append(compiled, c)
		totalProbes += len(c.Probes)
	}

	if len(compiled) == 0 {
		return Outcome{ExitCode: run.ExitCode(), Duration: time.Since(started)}, nil
	}

	p := pool.New().WithMaxGoroutines(totalProbes + 1)
	for _, c := range compiled {
		dep := c.Dep
		for _, pr := range c.Probes {
			pr := pr
			p.Go(func() {
				pr.Run(dep.Context(), dep)
			})
		}
	}

	// The run is decided (and its context cancelled) the moment enough
	// dependencies have reported in; we do not wait for stragglers still
	// blocked in a socket call. Cancellation there is best-effort, and a
	// straggler's eventual completion no longer affects the outcome.
	go p.Wait()

	<-run.Done()
	return Outcome{ExitCode: run.ExitCode(), Duration: time.Since(started)}, nil
}
