package hawk

import (
	"context"
	"encoding/base64"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// testToken builds a valid base64 integration token for the given
// integration id.
func testToken(integrationID string) string {
	return base64.StdEncoding.EncodeToString(
		[]byte(`{"integrationId":"` + integrationID + `","secret":"s3cret"}`),
	)
}

// recordingTransport captures every envelope handed to it. When gate is
// set, Send signals started and then blocks until the gate is closed,
// letting tests hold the worker mid-delivery.
type recordingTransport struct {
	mu        sync.Mutex
	envelopes []*Envelope

	err         error
	panicOnSend bool

	gate    chan struct{}
	started chan struct{}
}

func (t *recordingTransport) Send(ctx context.Context, endpoint string, envelope *Envelope) error {
	if t.panicOnSend {
		panic("transport exploded")
	}
	if t.started != nil {
		select {
		case t.started <- struct{}{}:
		default:
		}
	}
	if t.gate != nil {
		<-t.gate
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	copied := *envelope
	t.envelopes = append(t.envelopes, &copied)
	return t.err
}

func (t *recordingTransport) Envelopes() []*Envelope {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*Envelope, len(t.envelopes))
	copy(out, t.envelopes)
	return out
}

// countingMetrics is a Metrics implementation counting increments by name.
type countingMetrics struct {
	mu       sync.Mutex
	counters map[string]int64
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{counters: make(map[string]int64)}
}

func (m *countingMetrics) IncrementCounter(name string, value int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name] += value
}

func (m *countingMetrics) RecordDuration(name string, duration time.Duration) {}

func (m *countingMetrics) Count(name string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[name]
}

// atomicCounter is a tiny helper for counting callback invocations.
type atomicCounter struct {
	n atomic.Int64
}

func (c *atomicCounter) inc()       { c.n.Add(1) }
func (c *atomicCounter) get() int64 { return c.n.Load() }

// initGlobalForTest initializes the process-wide client on a recording
// transport, resetting singleton state before and after so tests that
// exercise the package-level API do not leak into each other. Tests using
// it must not run in parallel.
func initGlobalForTest(t *testing.T, cfg *Config) (*Guard, *recordingTransport) {
	t.Helper()

	resetGlobalForTest()
	resetPanicHookForTest()

	transport := &recordingTransport{}
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Token == "" {
		cfg.Token = testToken("test123")
	}
	if cfg.Transport == nil {
		cfg.Transport = transport
	} else {
		transport = nil
	}
	if cfg.Logger == nil {
		cfg.Logger = NopLogger{}
	}

	guard, err := InitWithConfig(cfg)
	if err != nil {
		t.Fatalf("InitWithConfig() error = %v", err)
	}
	t.Cleanup(func() {
		resetGlobalForTest()
		resetPanicHookForTest()
	})
	return guard, transport
}

// newTestClient builds a client on a recording transport and registers
// cleanup so the worker goroutine never outlives the test.
func newTestClient(t *testing.T, cfg *Config) (*Client, *recordingTransport) {
	t.Helper()

	transport := &recordingTransport{}
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Token == "" {
		cfg.Token = testToken("test123")
	}
	if cfg.Transport == nil {
		cfg.Transport = transport
	} else {
		transport = nil
	}
	if cfg.Logger == nil {
		cfg.Logger = NopLogger{}
	}

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client, transport
}
