// Package metrics implements the optional one-shot Pushgateway summary a
// waiter run can emit on exit: how many dependencies
// were declared, whether the run failed, and how long the run took.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"depwait/internal/config"
	"depwait/internal/engine"
	"depwait/internal/logger"
)

// PushOnce pushes a single summary to settings.MetricsPushgateway. Failures
// are logged and otherwise ignored: a metrics sink being unreachable must
// never change the run's exit status.
func PushOnce(settings config.Settings, doc config.Document, outcome engine.Outcome) {
	registry := prometheus.NewRegistry()

	duration := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "depwait_run_duration_seconds",
		Help: "Wall-clock duration of the most recent waiter run.",
	})
	total := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "depwait_dependencies_total",
		Help: "Number of dependencies declared in the most recent waiter run.",
	})
	failed := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "depwait_dependencies_failed",
		Help: "1 if the most recent waiter run ended in failure, else 0.",
	})

	duration.Set(outcome.Duration.Seconds())
	total.Set(float64(len(doc.Dependencies)))
	if outcome.ExitCode != 0 {
		failed.Set(1)
	}

	registry.MustRegister(duration, total, failed)

	err := push.New(settings.MetricsPushgateway, settings.MetricsJobName).
		Gatherer(registry).
		Push()
	if err != nil {
		logger.Warnf("metrics: pushing to %q failed: %v", settings.MetricsPushgateway, err)
	}
}
