// Package metrics exposes request counters for the routing pipeline.
package metrics

import (
	"net/http"

	"github.com/gin-gonic/gin"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "themisai"

// Recorder holds the service counters. A nil *Recorder is a no-op.
type Recorder struct {
	registry      *prom.Registry
	intents       *prom.CounterVec
	geocodes      *prom.CounterVec
	stageFailures *prom.CounterVec
	retrievals    *prom.CounterVec
}

// NewRecorder registers all counters on a fresh registry
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prom.NewRegistry(),
		intents: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "intents_total",
			Help:      "Routed messages by classified intent and classification source.",
		}, []string{"intent", "source"}),
		geocodes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_lookups_total",
			Help:      "Geocoder lookups by outcome.",
		}, []string{"status"}),
		stageFailures: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_failures_total",
			Help:      "Hard failures by pipeline stage.",
		}, []string{"stage"}),
		retrievals: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "retrievals_total",
			Help:      "Vector searches by corpus and whether any record matched.",
		}, []string{"corpus", "result"}),
	}
	r.registry.MustRegister(r.intents, r.geocodes, r.stageFailures, r.retrievals)
	return r
}

// ObserveIntent counts a routed message. source is "keyword", "model" or "fallback".
func (r *Recorder) ObserveIntent(intent, source string) {
	if r == nil {
		return
	}
	r.intents.WithLabelValues(intent, source).Inc()
}

// ObserveGeocode counts a geocoder outcome
func (r *Recorder) ObserveGeocode(status string) {
	if r == nil {
		return
	}
	r.geocodes.WithLabelValues(status).Inc()
}

// ObserveStageFailure counts a failure that was reported to the caller
func (r *Recorder) ObserveStageFailure(stage string) {
	if r == nil {
		return
	}
	r.stageFailures.WithLabelValues(stage).Inc()
}

// ObserveRetrieval counts a vector search
func (r *Recorder) ObserveRetrieval(corpus string, matched bool) {
	if r == nil {
		return
	}
	result := "hit"
	if !matched {
		result = "empty"
	}
	r.retrievals.WithLabelValues(corpus, result).Inc()
}

// Gatherer exposes the registry for tests and exporters
func (r *Recorder) Gatherer() prom.Gatherer {
	return r.registry
}

// Handler serves the registry in the Prometheus text format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// GinHandler adapts Handler for a gin route
func (r *Recorder) GinHandler() gin.HandlerFunc {
	return gin.WrapH(r.Handler())
}
