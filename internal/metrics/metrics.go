// Package metrics exposes simulation progress as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder holds the simulation metrics on its own registry, so several
// sessions in one process do not collide.
type Recorder struct {
	registry *prometheus.Registry

	Steps        prometheus.Counter
	StepFailures prometheus.Counter
	StepDuration prometheus.Histogram
	Energy       prometheus.Gauge
	MaxHeight    prometheus.Gauge
	Info         *prometheus.GaugeVec
}

// New registers the metrics for one session.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		Steps: factory.NewCounter(prometheus.CounterOpts{
			Name: "wave_steps_total",
			Help: "Completed simulation steps",
		}),
		StepFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "wave_step_failures_total",
			Help: "Steps that failed and poisoned the session",
		}),
		StepDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "wave_step_duration_seconds",
			Help:    "Wall time of one integrate and normals step",
			Buckets: prometheus.ExponentialBuckets(0.00005, 2, 14),
		}),
		Energy: factory.NewGauge(prometheus.GaugeOpts{
			Name: "wave_energy",
			Help: "Sum of squared heights of the active buffer at the last report",
		}),
		MaxHeight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "wave_max_abs_height",
			Help: "Largest absolute height of the active buffer at the last report",
		}),
		Info: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "wave_session_info",
			Help: "Constant 1, labelled with the session's device and grid",
		}, []string{"device", "grid"}),
	}
}

// ObserveStep records one step attempt.
func (r *Recorder) ObserveStep(d time.Duration, err error) {
	if err != nil {
		r.StepFailures.Inc()
		return
	}
	r.Steps.Inc()
	r.StepDuration.Observe(d.Seconds())
}

// ObserveField records field diagnostics.
func (r *Recorder) ObserveField(energy float64, maxAbs float32) {
	r.Energy.Set(energy)
	r.MaxHeight.Set(float64(maxAbs))
}

// SetSession labels the session info gauge.
func (r *Recorder) SetSession(device, grid string) {
	r.Info.Reset()
	r.Info.WithLabelValues(device, grid).Set(1)
}

// Registry returns the registry backing r.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
