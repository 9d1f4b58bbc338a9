// Package metrics counts check-in activity for one run and can dump the
// counters in Prometheus text format for a node_exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the per-run collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	checkins      *prometheus.CounterVec
	logins        *prometheus.CounterVec
	notifications *prometheus.CounterVec
	lastRun       *prometheus.GaugeVec
	runDuration   *prometheus.GaugeVec
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		checkins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "checkin_attempts_total",
				Help: "Check-in requests by site and outcome",
			},
			[]string{"site", "outcome", "probe"},
		),
		logins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "checkin_logins_total",
				Help: "Login requests by site and result",
			},
			[]string{"site", "result"},
		),
		notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "checkin_notifications_total",
				Help: "Notification deliveries by site and result",
			},
			[]string{"site", "result"},
		),
		lastRun: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "checkin_last_run_timestamp_seconds",
				Help: "Unix time the last run finished",
			},
			[]string{"site"},
		),
		runDuration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "checkin_run_duration_seconds",
				Help: "Wall time of the last run",
			},
			[]string{"site"},
		),
	}
	m.registry.MustRegister(m.checkins, m.logins, m.notifications, m.lastRun, m.runDuration)
	return m
}

// Checkin records one check-in attempt.
func (m *Metrics) Checkin(site, outcome string, probe bool) {
	m.checkins.WithLabelValues(site, outcome, fmt.Sprint(probe)).Inc()
}

// Login records one login attempt.
func (m *Metrics) Login(site string, ok bool) {
	m.logins.WithLabelValues(site, result(ok)).Inc()
}

// Notification records one delivery attempt.
func (m *Metrics) Notification(site string, err error) {
	m.notifications.WithLabelValues(site, result(err == nil)).Inc()
}

// RunFinished records when and how long the run took.
func (m *Metrics) RunFinished(site string, end time.Time, took time.Duration) {
	m.lastRun.WithLabelValues(site).Set(float64(end.Unix()))
	m.runDuration.WithLabelValues(site).Set(took.Seconds())
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile writes all metrics to path atomically. An empty path is a no-op.
func (m *Metrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}
	return nil
}

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}
