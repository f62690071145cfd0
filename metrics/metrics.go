// Package metrics counts simulation outcomes with Prometheus collectors.
// Every Recorder method is safe on a nil receiver so callers never need to
// check whether metrics are enabled.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "roadrush"

type Recorder struct {
	registry *prometheus.Registry

	hits          *prometheus.CounterVec
	ragdolls      *prometheus.CounterVec
	skippedBodies *prometheus.CounterVec
	spawned       *prometheus.CounterVec
	activeRagdoll prometheus.Gauge
}

// New creates a recorder on its own registry. constLabels are attached to
// every series, e.g. the session id.
func New(constLabels prometheus.Labels) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "pedestrian_hits_total",
			Help:        "Pedestrians struck by the vehicle, by pedestrian kind.",
			ConstLabels: constLabels,
		}, []string{"kind"}),
		ragdolls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "ragdoll_transitions_total",
			Help:        "Ragdoll lifecycle transitions (converted, evicted, reaped).",
			ConstLabels: constLabels,
		}, []string{"transition"}),
		skippedBodies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "skipped_bodies_total",
			Help:        "Entities skipped by a pipeline stage because they had no physics body.",
			ConstLabels: constLabels,
		}, []string{"stage"}),
		spawned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "pedestrians_spawned_total",
			Help:        "Pedestrians spawned, by pedestrian kind.",
			ConstLabels: constLabels,
		}, []string{"kind"}),
		activeRagdoll: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "active_ragdolls",
			Help:        "Ragdolls currently simulated.",
			ConstLabels: constLabels,
		}),
	}
	r.registry.MustRegister(r.hits, r.ragdolls, r.skippedBodies, r.spawned, r.activeRagdoll)
	return r
}

// Registry exposes the recorder's collectors for scraping or tests.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Handler serves the recorder's registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) Hit(kind string) {
	if r == nil {
		return
	}
	r.hits.WithLabelValues(kind).Inc()
}

func (r *Recorder) RagdollConverted() {
	if r == nil {
		return
	}
	r.ragdolls.WithLabelValues("converted").Inc()
}

func (r *Recorder) RagdollEvicted() {
	if r == nil {
		return
	}
	r.ragdolls.WithLabelValues("evicted").Inc()
}

func (r *Recorder) RagdollReaped() {
	if r == nil {
		return
	}
	r.ragdolls.WithLabelValues("reaped").Inc()
}

// ActiveRagdolls records the tracker size after a change.
func (r *Recorder) ActiveRagdolls(n int) {
	if r == nil {
		return
	}
	r.activeRagdoll.Set(float64(n))
}

func (r *Recorder) BodySkipped(stage string) {
	if r == nil {
		return
	}
	r.skippedBodies.WithLabelValues(stage).Inc()
}

func (r *Recorder) Spawned(kind string) {
	if r == nil {
		return
	}
	r.spawned.WithLabelValues(kind).Inc()
}
