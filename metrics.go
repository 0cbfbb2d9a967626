package hawk

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metrics is an optional interface for SDK telemetry. When configured, the
// client and worker report counters for captured, delivered, and dropped
// events, and the duration of delivery attempts.
type Metrics interface {
	// IncrementCounter increments a counter metric.
	IncrementCounter(name string, value int64)
	// RecordDuration records a duration metric.
	RecordDuration(name string, duration time.Duration)
}

// Metric names reported by the SDK.
const (
	metricEventsEnqueued    = "hawk.events.enqueued"
	metricEventsDropped     = "hawk.events.dropped"
	metricEventsDelivered   = "hawk.events.delivered"
	metricDeliveryFailures  = "hawk.delivery.failures"
	metricFlushTimeouts     = "hawk.flush.timeouts"
	metricTransportDuration = "hawk.transport.duration_ms"
)

// OTelMetrics implements Metrics on top of the OpenTelemetry metric API.
// Instruments are created lazily through the globally registered meter
// provider; installing a provider (and exporters) is the host's job.
type OTelMetrics struct {
	meter metric.Meter

	mu         sync.Mutex
	counters   map[string]metric.Int64Counter
	histograms map[string]metric.Float64Histogram
}

// NewOTelMetrics creates a Metrics implementation backed by OpenTelemetry.
func NewOTelMetrics() *OTelMetrics {
	return &OTelMetrics{
		meter:      otel.Meter("github.com/hawk-so/hawk-go"),
		counters:   make(map[string]metric.Int64Counter),
		histograms: make(map[string]metric.Float64Histogram),
	}
}

// IncrementCounter implements Metrics.IncrementCounter.
func (m *OTelMetrics) IncrementCounter(name string, value int64) {
	m.mu.Lock()
	counter, ok := m.counters[name]
	if !ok {
		var err error
		counter, err = m.meter.Int64Counter(name)
		if err != nil {
			m.mu.Unlock()
			return
		}
		m.counters[name] = counter
	}
	m.mu.Unlock()

	counter.Add(context.Background(), value)
}

// RecordDuration implements Metrics.RecordDuration.
func (m *OTelMetrics) RecordDuration(name string, duration time.Duration) {
	m.mu.Lock()
	histogram, ok := m.histograms[name]
	if !ok {
		var err error
		histogram, err = m.meter.Float64Histogram(name, metric.WithUnit("ms"))
		if err != nil {
			m.mu.Unlock()
			return
		}
		m.histograms[name] = histogram
	}
	m.mu.Unlock()

	histogram.Record(context.Background(), float64(duration)/float64(time.Millisecond))
}

var _ Metrics = (*OTelMetrics)(nil)
