package hawk

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML shape of a Hawk configuration file.
//
//	token: "BASE64_TOKEN"
//	collector_endpoint: ""          # optional override
//	queue_capacity: 100
//	flush_timeout_ms: 2000
//	disable_breadcrumbs: false
//	disable_panic_capture: false
//	release: "v1.4.2"
//	environment: "production"
//	service: "billing"
//	debug: false
type fileConfig struct {
	Token               string `yaml:"token"`
	CollectorEndpoint   string `yaml:"collector_endpoint"`
	QueueCapacity       int    `yaml:"queue_capacity"`
	FlushTimeoutMS      int    `yaml:"flush_timeout_ms"`
	DisableBreadcrumbs  bool   `yaml:"disable_breadcrumbs"`
	DisablePanicCapture bool   `yaml:"disable_panic_capture"`
	Release             string `yaml:"release"`
	Environment         string `yaml:"environment"`
	Service             string `yaml:"service"`
	Debug               bool   `yaml:"debug"`
}

// LoadConfig reads a YAML configuration file into a Config. Fields absent
// from the file keep their zero values, so defaults and explicit options
// still apply on top.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("hawk: failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("hawk: failed to parse config file: %w", err)
	}

	cfg := &Config{
		Token:               fc.Token,
		CollectorEndpoint:   fc.CollectorEndpoint,
		QueueCapacity:       fc.QueueCapacity,
		FlushTimeout:        time.Duration(fc.FlushTimeoutMS) * time.Millisecond,
		DisableBreadcrumbs:  fc.DisableBreadcrumbs,
		DisablePanicCapture: fc.DisablePanicCapture,
		Release:             fc.Release,
		Environment:         fc.Environment,
		Service:             fc.Service,
		Debug:               fc.Debug,
	}
	return cfg, nil
}
