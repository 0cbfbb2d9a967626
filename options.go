package hawk

import (
	"net/http"
	"time"
)

// ConfigOption is a function that modifies a Config.
type ConfigOption func(*Config)

// WithCollectorEndpoint sets a custom collector URL, overriding the
// endpoint derived from the integration token.
func WithCollectorEndpoint(endpoint string) ConfigOption {
	return func(c *Config) {
		c.CollectorEndpoint = endpoint
	}
}

// WithQueueCapacity sets the bounded delivery queue capacity.
func WithQueueCapacity(capacity int) ConfigOption {
	return func(c *Config) {
		c.QueueCapacity = capacity
	}
}

// WithFlushTimeout sets how long Flush waits for the worker to drain.
func WithFlushTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.FlushTimeout = timeout
	}
}

// WithRelease sets the application release attached to every event.
func WithRelease(release string) ConfigOption {
	return func(c *Config) {
		c.Release = release
	}
}

// WithEnvironment sets the deployment environment name.
func WithEnvironment(environment string) ConfigOption {
	return func(c *Config) {
		c.Environment = environment
	}
}

// WithService sets the reporting service name.
func WithService(service string) ConfigOption {
	return func(c *Config) {
		c.Service = service
	}
}

// WithBeforeSend sets the event filter callback.
func WithBeforeSend(fn BeforeSend) ConfigOption {
	return func(c *Config) {
		c.BeforeSend = fn
	}
}

// WithBreadcrumbs enables or disables breadcrumb collection.
func WithBreadcrumbs(enabled bool) ConfigOption {
	return func(c *Config) {
		c.DisableBreadcrumbs = !enabled
	}
}

// WithPanicCapture controls whether Init installs the panic hook.
func WithPanicCapture(enabled bool) ConfigOption {
	return func(c *Config) {
		c.DisablePanicCapture = !enabled
	}
}

// WithLogger sets the logger receiving SDK diagnostics.
func WithLogger(logger StructuredLogger) ConfigOption {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithMetrics sets the metrics sink receiving SDK telemetry.
func WithMetrics(metrics Metrics) ConfigOption {
	return func(c *Config) {
		c.Metrics = metrics
	}
}

// WithHTTPClient sets the HTTP client used by the default transport.
func WithHTTPClient(client *http.Client) ConfigOption {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithTransport overrides event delivery entirely.
func WithTransport(transport Transport) ConfigOption {
	return func(c *Config) {
		c.Transport = transport
	}
}

// WithDebug enables debug logging.
func WithDebug(debug bool) ConfigOption {
	return func(c *Config) {
		c.Debug = debug
	}
}
