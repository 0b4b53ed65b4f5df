// Package telemetry counts render activity.
package telemetry

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector captures events emitted by a backend.
//
// Calls happen inline with Render, so implementations should be cheap.
type Collector interface {
	IncRender(backend string, ok bool)
	IncSkippedBlock(pkg string)
	IncValidationFailure(backend string)
}

type noopCollector struct{}

// Noop returns a collector that discards all metrics.
func Noop() Collector {
	return noopCollector{}
}

func (noopCollector) IncRender(string, bool)      {}
func (noopCollector) IncSkippedBlock(string)      {}
func (noopCollector) IncValidationFailure(string) {}

// PrometheusCollector exposes render counters via Prometheus.
type PrometheusCollector struct {
	renders            *prometheus.CounterVec
	skippedBlocks      *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
}

// NewPrometheusCollector registers the counters with reg (the default
// registerer when nil). Counters already registered on reg are reused.
func NewPrometheusCollector(reg prometheus.Registerer) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	renders, err := registerCounter(reg, prometheus.CounterOpts{
		Name: "netjsonuci_render_total",
		Help: "Number of render operations per backend and result.",
	}, "backend", "result")
	if err != nil {
		return nil, err
	}
	skipped, err := registerCounter(reg, prometheus.CounterOpts{
		Name: "netjsonuci_skipped_blocks_total",
		Help: "Number of malformed custom blocks skipped per package.",
	}, "package")
	if err != nil {
		return nil, err
	}
	failures, err := registerCounter(reg, prometheus.CounterOpts{
		Name: "netjsonuci_validation_failures_total",
		Help: "Number of documents rejected by schema validation.",
	}, "backend")
	if err != nil {
		return nil, err
	}
	return &PrometheusCollector{
		renders:            renders,
		skippedBlocks:      skipped,
		validationFailures: failures,
	}, nil
}

func registerCounter(reg prometheus.Registerer, opts prometheus.CounterOpts, labels ...string) (*prometheus.CounterVec, error) {
	counter := prometheus.NewCounterVec(opts, labels)
	if err := reg.Register(counter); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return counter, nil
}

// IncRender counts one render attempt.
func (p *PrometheusCollector) IncRender(backend string, ok bool) {
	if p == nil || p.renders == nil {
		return
	}
	result := "error"
	if ok {
		result = "ok"
	}
	p.renders.WithLabelValues(backend, result).Inc()
}

// IncSkippedBlock counts one skipped custom block.
func (p *PrometheusCollector) IncSkippedBlock(pkg string) {
	if p == nil || p.skippedBlocks == nil {
		return
	}
	p.skippedBlocks.WithLabelValues(pkg).Inc()
}

// IncValidationFailure counts one rejected document.
func (p *PrometheusCollector) IncValidationFailure(backend string) {
	if p == nil || p.validationFailures == nil {
		return
	}
	p.validationFailures.WithLabelValues(backend).Inc()
}
