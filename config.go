package hawk

import (
	"net/http"
	"time"
)

// Defaults applied by Config.applyDefaults.
const (
	// DefaultQueueCapacity is the bounded delivery queue capacity.
	DefaultQueueCapacity = 100

	// DefaultFlushTimeout bounds how long Flush (and the guard on close)
	// waits for the worker to drain pending events.
	DefaultFlushTimeout = 2000 * time.Millisecond

	// DefaultHTTPTimeout bounds a single delivery attempt.
	DefaultHTTPTimeout = 30 * time.Second

	// breadcrumbCapacity is the fixed size of the breadcrumb ring.
	breadcrumbCapacity = 50
)

// BeforeSend is an optional callback invoked with each event before it is
// enqueued. It may modify and return the event, or return nil to drop it.
//
// The callback runs under a failure boundary: if it panics, the original
// unmodified event is sent and a warning is logged.
type BeforeSend func(event *Event) *Event

// Config holds the SDK configuration. The zero value plus a token is a
// working configuration; applyDefaults fills the rest.
type Config struct {
	// Token is the base64-encoded integration token from the Hawk project
	// settings. Required.
	Token string

	// CollectorEndpoint overrides the collector URL derived from the
	// token (https://{integrationId}.k1.hawk.so/).
	CollectorEndpoint string

	// QueueCapacity is the bounded delivery queue capacity. When the
	// queue is full new events are dropped, never blocking the caller.
	// Defaults to DefaultQueueCapacity.
	QueueCapacity int

	// FlushTimeout bounds how long Flush waits for the worker.
	// Defaults to DefaultFlushTimeout.
	FlushTimeout time.Duration

	// DisableBreadcrumbs turns AddBreadcrumb into a no-op.
	DisableBreadcrumbs bool

	// DisablePanicCapture skips installing the panic hook during Init.
	DisablePanicCapture bool

	// Release is the application release attached to every event.
	Release string

	// Environment names the deployment environment, e.g. "production".
	Environment string

	// Service names the reporting service in multi-service setups.
	Service string

	// Debug enables debug-level SDK logging.
	Debug bool

	// BeforeSend is the optional event filter callback.
	BeforeSend BeforeSend

	// Logger receives SDK diagnostics. Dropped events and transport
	// failures fall back to stderr when unset.
	Logger StructuredLogger

	// Metrics receives SDK telemetry. Optional.
	Metrics Metrics

	// HTTPClient is used by the default HTTP transport.
	HTTPClient *http.Client

	// Transport overrides event delivery entirely. Used by tests and by
	// hosts that tunnel events through their own channel.
	Transport Transport
}

// applyDefaults fills unset fields with their default values.
func (c *Config) applyDefaults() {
	if c.QueueCapacity <= 0 {
		c.QueueCapacity = DefaultQueueCapacity
	}
	if c.FlushTimeout <= 0 {
		c.FlushTimeout = DefaultFlushTimeout
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: DefaultHTTPTimeout}
	}
}

// validate checks that the configuration is usable.
func (c *Config) validate() error {
	if c.Token == "" {
		return ErrMissingToken
	}
	return nil
}
