package hawk

import (
	"sync"
	"sync/atomic"
)

// Process-wide singleton holding the initialized client. Init can succeed
// exactly once per process; the package-level capture functions read the
// singleton and are silent no-ops until it is set.
var (
	globalMu     sync.Mutex
	globalClient atomic.Pointer[Client]
)

// Init initializes the SDK with the given integration token and options,
// publishes the client as the process-wide singleton, and returns a Guard
// whose Close flushes pending events.
//
// Init can succeed exactly once per process. A second call returns
// ErrAlreadyInitialized without side effects: no worker is spawned and no
// queue is created. A failed Init (for example an invalid token) does not
// consume the once-only slot.
func Init(token string, opts ...ConfigOption) (*Guard, error) {
	cfg := &Config{Token: token}
	for _, opt := range opts {
		opt(cfg)
	}
	return InitWithConfig(cfg)
}

// InitFromEnv initializes the SDK from HAWK_* environment variables.
// Explicit options are applied on top of the environment.
func InitFromEnv(opts ...ConfigOption) (*Guard, error) {
	cfg := configFromEnv()
	for _, opt := range opts {
		opt(cfg)
	}
	return InitWithConfig(cfg)
}

// InitWithConfig initializes the SDK from a Config struct. See Init.
func InitWithConfig(cfg *Config) (*Guard, error) {
	// Pre-allocation check: a second init must fail before any resource
	// is created.
	if globalClient.Load() != nil {
		return nil, ErrAlreadyInitialized
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalClient.Load() != nil {
		return nil, ErrAlreadyInitialized
	}

	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}

	if cfg == nil || !cfg.DisablePanicCapture {
		defaultPanicHook.Install(nil)
	}

	globalClient.Store(client)
	return newGuard(client), nil
}

// CurrentClient returns the process-wide client, or nil before a
// successful Init.
func CurrentClient() *Client {
	return globalClient.Load()
}

// CaptureMessage sends an informational message event with a backtrace
// captured at the call site. No-op before Init.
func CaptureMessage(message string) {
	client := CurrentClient()
	if client == nil {
		return
	}
	client.SendEvent(&Event{
		Title:     message,
		Type:      LevelInfo,
		Backtrace: captureBacktrace(1),
	})
}

// CaptureError sends an error event with a backtrace captured at the call
// site. No-op before Init or when err is nil.
func CaptureError(err error) {
	if err == nil {
		return
	}
	client := CurrentClient()
	if client == nil {
		return
	}
	client.SendEvent(&Event{
		Title:     err.Error(),
		Type:      LevelError,
		Backtrace: captureBacktrace(1),
	})
}

// CaptureEvent sends a pre-built event through the default-filling and
// filter pipeline. No-op before Init.
func CaptureEvent(event *Event) {
	client := CurrentClient()
	if client == nil {
		return
	}
	client.SendEvent(event)
}

// SetTag sets a global tag attached to every subsequent event.
// No-op before Init.
func SetTag(key, value string) {
	if client := CurrentClient(); client != nil {
		client.Context().SetTag(key, value)
	}
}

// SetExtra sets a global extra attached to every subsequent event.
// No-op before Init.
func SetExtra(key, value string) {
	if client := CurrentClient(); client != nil {
		client.Context().SetExtra(key, value)
	}
}

// SetUser sets the current user, replacing any previous one wholesale.
// No-op before Init.
func SetUser(user User) {
	if client := CurrentClient(); client != nil {
		client.Context().SetUser(user)
	}
}

// AddBreadcrumb records a breadcrumb for inclusion in the next event.
// No-op before Init.
func AddBreadcrumb(b Breadcrumb) {
	if client := CurrentClient(); client != nil {
		client.Context().AddBreadcrumb(b)
	}
}

// Flush blocks until pending events are handed to the transport or the
// configured flush timeout elapses, reporting whether the flush completed
// in time. Returns true before Init: there is nothing to flush.
func Flush() bool {
	client := CurrentClient()
	if client == nil {
		return true
	}
	return client.Flush(client.FlushTimeout())
}
