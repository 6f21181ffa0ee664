package bench

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector receives measurements while a run is in progress.
// Implementations must be safe for concurrent use.
type MetricsCollector interface {
	// RecordLoad is called after an archive was loaded for a run.
	RecordLoad(duration time.Duration, err error)

	// RecordSample is called after each sample of one phase. duration covers
	// all iterations of the sample.
	RecordSample(phase Phase, solver string, duration time.Duration, failures int)

	// RecordResidual is called with the mean residual of each solve sample.
	RecordResidual(solver string, residual float64)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLoad(time.Duration, error)                {}
func (NoopMetricsCollector) RecordSample(Phase, string, time.Duration, int) {}
func (NoopMetricsCollector) RecordResidual(string, float64)                 {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	LoadCount      atomic.Int64
	LoadErrors     atomic.Int64
	LoadTotalNanos atomic.Int64
	SampleCount    atomic.Int64
	Failures       atomic.Int64

	mu           sync.Mutex
	phaseNanos   map[Phase]int64
	maxResidual  float64
	residualSeen bool
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// RecordSample implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSample(phase Phase, _ string, duration time.Duration, failures int) {
	b.SampleCount.Add(1)
	b.Failures.Add(int64(failures))

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.phaseNanos == nil {
		b.phaseNanos = make(map[Phase]int64)
	}
	b.phaseNanos[phase] += duration.Nanoseconds()
}

// RecordResidual implements MetricsCollector.
func (b *BasicMetricsCollector) RecordResidual(_ string, residual float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.residualSeen || residual > b.maxResidual {
		b.maxResidual = residual
		b.residualSeen = true
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	b.mu.Lock()
	defer b.mu.Unlock()

	phases := make(map[Phase]time.Duration, len(b.phaseNanos))
	for p, n := range b.phaseNanos {
		phases[p] = time.Duration(n)
	}
	return BasicMetricsStats{
		LoadCount:    b.LoadCount.Load(),
		LoadErrors:   b.LoadErrors.Load(),
		LoadAvgNanos: b.getAvgLoadNanos(),
		SampleCount:  b.SampleCount.Load(),
		Failures:     b.Failures.Load(),
		PhaseTotals:  phases,
		MaxResidual:  b.maxResidual,
	}
}

func (b *BasicMetricsCollector) getAvgLoadNanos() int64 {
	count := b.LoadCount.Load()
	if count == 0 {
		return 0
	}
	return b.LoadTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	LoadCount    int64
	LoadErrors   int64
	LoadAvgNanos int64
	SampleCount  int64
	Failures     int64
	PhaseTotals  map[Phase]time.Duration
	MaxResidual  float64
}

// PrometheusMetricsCollector exports run measurements to Prometheus.
type PrometheusMetricsCollector struct {
	loads     *prometheus.HistogramVec
	samples   *prometheus.HistogramVec
	failures  *prometheus.CounterVec
	residuals *prometheus.GaugeVec
}

// NewPrometheusMetricsCollector registers the benchmark metrics with reg.
func NewPrometheusMetricsCollector(reg prometheus.Registerer) *PrometheusMetricsCollector {
	return &PrometheusMetricsCollector{
		loads: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "benchy",
			Name:      "archive_load_duration_seconds",
			Help:      "Duration of loading and decoding a problem archive",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"status"}),
		samples: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "benchy",
			Name:      "sample_duration_seconds",
			Help:      "Duration of one benchmark sample, all iterations included",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 12),
		}, []string{"phase", "solver"}),
		failures: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "benchy",
			Name:      "numerical_failures_total",
			Help:      "Number of numerical failures per phase and solver",
		}, []string{"phase", "solver"}),
		residuals: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "benchy",
			Name:      "last_residual",
			Help:      "Mean residual of the last solve sample per solver",
		}, []string{"solver"}),
	}
}

// RecordLoad implements MetricsCollector.
func (p *PrometheusMetricsCollector) RecordLoad(duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	p.loads.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordSample implements MetricsCollector.
func (p *PrometheusMetricsCollector) RecordSample(phase Phase, solver string, duration time.Duration, failures int) {
	p.samples.WithLabelValues(phase.String(), solver).Observe(duration.Seconds())
	p.failures.WithLabelValues(phase.String(), solver).Add(float64(failures))
}

// RecordResidual implements MetricsCollector.
func (p *PrometheusMetricsCollector) RecordResidual(solver string, residual float64) {
	p.residuals.WithLabelValues(solver).Set(residual)
}
