// Package metrics records command execution metrics for a single run.
//
// Each Recorder owns its registry; nothing is registered globally. The
// collected series can be written in the Prometheus text format for the
// node-exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "corosync_config_tool"

	// ResultSuccess and ResultFailure are the values of the result label.
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Recorder collects metrics for one process run.
type Recorder struct {
	registry *prometheus.Registry

	commandsTotal   *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
	sessionsTotal   *prometheus.CounterVec
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		commandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "runner",
				Name:      "commands_total",
				Help:      "Total number of commands run by target and result",
			},
			[]string{"target", "result"},
		),
		commandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "runner",
				Name:      "command_duration_seconds",
				Help:      "Duration of commands in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~20s
			},
			[]string{"target"},
		),
		sessionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ssh",
				Name:      "sessions_total",
				Help:      "Total number of SSH sessions opened by result",
			},
			[]string{"result"},
		),
	}
	r.registry.MustRegister(r.commandsTotal, r.commandDuration, r.sessionsTotal)
	return r
}

// ObserveCommand records one command execution. A nil Recorder is a no-op.
func (r *Recorder) ObserveCommand(target string, ok bool, d time.Duration) {
	if r == nil {
		return
	}
	r.commandsTotal.WithLabelValues(target, result(ok)).Inc()
	r.commandDuration.WithLabelValues(target).Observe(d.Seconds())
}

// ObserveSession records an SSH session attempt. A nil Recorder is a no-op.
func (r *Recorder) ObserveSession(ok bool) {
	if r == nil {
		return
	}
	r.sessionsTotal.WithLabelValues(result(ok)).Inc()
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes all series to path in the Prometheus text format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

func result(ok bool) string {
	if ok {
		return ResultSuccess
	}
	return ResultFailure
}
