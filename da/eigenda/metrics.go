package eigenda

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

const (
	// MetricsSubsystem is a subsystem shared by all metrics exposed by this
	// package.
	MetricsSubsystem = "client"
)

// Metrics contains metrics exposed by this package.
type Metrics struct {
	// Dispersals by result.
	Dispersals metrics.Counter
	// Bytes submitted for dispersal.
	DispersedBytes metrics.Counter
	// Status polls by result.
	StatusPolls metrics.Counter
	// Retrievals.
	Retrievals metrics.Counter
	// Transport failures by method.
	TransportErrors metrics.Counter
	// Replies the parser could not decode, by kind.
	ParseErrors metrics.Counter
	// Responses evicted from the cache.
	CacheEvictions metrics.Counter
	// Responses currently cached.
	CacheSize metrics.Gauge
	// Round trip time of a disperser call, by method.
	RequestDuration metrics.Histogram
	// Time from dispersal to a terminal status while waiting.
	ConfirmationTime metrics.Histogram
}

// PrometheusMetrics returns Metrics registered with reg. A nil reg uses the
// default registerer. Optionally, labels can be provided along with their
// values ("foo", "fooValue").
func PrometheusMetrics(reg stdprometheus.Registerer, namespace string, labelsAndValues ...string) *Metrics {
	if reg == nil {
		reg = stdprometheus.DefaultRegisterer
	}
	labels := []string{}
	for i := 0; i < len(labelsAndValues); i += 2 {
		labels = append(labels, labelsAndValues[i])
	}
	counter := func(name, help string, extra ...string) metrics.Counter {
		cv := stdprometheus.NewCounterVec(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      name,
			Help:      help,
		}, append(append([]string{}, labels...), extra...))
		reg.MustRegister(cv)
		return prometheus.NewCounter(cv).With(labelsAndValues...)
	}
	histogram := func(name, help string, extra ...string) metrics.Histogram {
		hv := stdprometheus.NewHistogramVec(stdprometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      name,
			Help:      help,
		}, append(append([]string{}, labels...), extra...))
		reg.MustRegister(hv)
		return prometheus.NewHistogram(hv).With(labelsAndValues...)
	}
	gv := stdprometheus.NewGaugeVec(stdprometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: MetricsSubsystem,
		Name:      "cache_size",
		Help:      "Number of dispersal responses held in the cache.",
	}, labels)
	reg.MustRegister(gv)

	return &Metrics{
		Dispersals:       counter("dispersals_total", "Dispersal requests by result.", "result"),
		DispersedBytes:   counter("dispersed_bytes_total", "Raw bytes submitted for dispersal."),
		StatusPolls:      counter("status_polls_total", "Status polls by result.", "result"),
		Retrievals:       counter("retrievals_total", "Blob retrievals."),
		TransportErrors:  counter("transport_errors_total", "Failed disperser calls by method.", "method"),
		ParseErrors:      counter("parse_errors_total", "Disperser replies that could not be decoded.", "kind"),
		CacheEvictions:   counter("cache_evictions_total", "Dispersal responses evicted from the cache."),
		CacheSize:        prometheus.NewGauge(gv).With(labelsAndValues...),
		RequestDuration:  histogram("request_duration_seconds", "Round trip time of disperser calls.", "method"),
		ConfirmationTime: histogram("confirmation_time_seconds", "Time spent waiting for a terminal status."),
	}
}

// NopMetrics returns no-op Metrics.
func NopMetrics() *Metrics {
	return &Metrics{
		Dispersals:       discard.NewCounter(),
		DispersedBytes:   discard.NewCounter(),
		StatusPolls:      discard.NewCounter(),
		Retrievals:       discard.NewCounter(),
		TransportErrors:  discard.NewCounter(),
		ParseErrors:      discard.NewCounter(),
		CacheEvictions:   discard.NewCounter(),
		CacheSize:        discard.NewGauge(),
		RequestDuration:  discard.NewHistogram(),
		ConfirmationTime: discard.NewHistogram(),
	}
}
