package hawk

import (
	"os"
	"strconv"
	"time"
)

// Environment variable names for configuration.
const (
	// EnvToken is the environment variable for the integration token.
	EnvToken = "HAWK_TOKEN"
	// EnvCollectorEndpoint overrides the collector URL.
	EnvCollectorEndpoint = "HAWK_COLLECTOR_ENDPOINT"
	// EnvRelease sets the application release.
	EnvRelease = "HAWK_RELEASE"
	// EnvEnvironment sets the deployment environment name.
	EnvEnvironment = "HAWK_ENVIRONMENT"
	// EnvService sets the reporting service name.
	EnvService = "HAWK_SERVICE"
	// EnvQueueCapacity sets the delivery queue capacity.
	EnvQueueCapacity = "HAWK_QUEUE_CAPACITY"
	// EnvFlushTimeoutMS sets the flush timeout in milliseconds.
	EnvFlushTimeoutMS = "HAWK_FLUSH_TIMEOUT_MS"
	// EnvDebug enables debug logging ("1" or "true").
	EnvDebug = "HAWK_DEBUG"
)

// configFromEnv builds a Config from HAWK_* environment variables.
// Unset variables leave the corresponding field at its zero value so
// defaults and explicit options still apply.
func configFromEnv() *Config {
	cfg := &Config{
		Token:             os.Getenv(EnvToken),
		CollectorEndpoint: os.Getenv(EnvCollectorEndpoint),
		Release:           os.Getenv(EnvRelease),
		Environment:       os.Getenv(EnvEnvironment),
		Service:           os.Getenv(EnvService),
	}

	if v := os.Getenv(EnvQueueCapacity); v != "" {
		if capacity, err := strconv.Atoi(v); err == nil {
			cfg.QueueCapacity = capacity
		}
	}
	if v := os.Getenv(EnvFlushTimeoutMS); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.FlushTimeout = time.Duration(ms) * time.Millisecond
		}
	}
	if v := os.Getenv(EnvDebug); v == "1" || v == "true" {
		cfg.Debug = true
	}

	return cfg
}
