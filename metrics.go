// FILE: lixenwraith/siteconfig/metrics.go
package siteconfig

import "github.com/prometheus/client_golang/prometheus"

// registry holds the package instruments. It is separate from the default
// registry so importing the package never collides with application metrics.
var registry = prometheus.NewRegistry()

var (
	buildsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "siteconfig",
			Name:      "builds_total",
			Help:      "Cumulative number of configurations successfully resolved.",
		})

	buildErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "siteconfig",
			Name:      "build_errors_total",
			Help:      "Cumulative number of failed configuration loads or resolutions.",
		})

	unresolvedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "siteconfig",
			Name:      "unresolved_references_total",
			Help:      "Cumulative number of reference tokens left without a value.",
		})

	reloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "siteconfig",
			Name:      "reloads_total",
			Help:      "Cumulative number of watcher reloads by outcome.",
		}, []string{"outcome"})
)

func init() {
	registry.MustRegister(
		buildsTotal,
		buildErrorsTotal,
		unresolvedTotal,
		reloadsTotal,
	)
}

// Registry returns the registry holding the package metrics, for exposure
// through promhttp.HandlerFor or a custom gatherer.
func Registry() *prometheus.Registry {
	return registry
}
