package hawk

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Client is the core SDK client: the single authoritative owner of
// SDK-wide state and the bridge between capture calls and the delivery
// queue.
//
// A Client owns the producer side of the bounded queue, the
// ContextManager, and per-event assembly. Enqueueing is always
// non-blocking: on a full queue the event is dropped and a warning is
// logged, never stalling the caller.
type Client struct {
	token    string
	endpoint string

	release      string
	environment  string
	service      string
	beforeSend   BeforeSend
	flushTimeout time.Duration
	debug        bool

	contextMgr *ContextManager
	log        StructuredLogger
	metrics    Metrics

	queue  chan queueMessage
	worker *worker

	// mu guards closed against concurrent enqueues; senders hold the read
	// lock for the duration of the channel send attempt so Close can never
	// close the queue out from under them.
	mu     sync.RWMutex
	closed bool

	// closeMu serializes Close.
	closeMu sync.Mutex
}

// NewClient creates a Client from a Config and spawns its background
// worker. Most applications should use Init instead, which additionally
// publishes the client as the process-wide singleton; NewClient exists for
// tests and for hosts that manage the client lifetime themselves.
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, ErrMissingToken
	}

	// Copy so the caller's struct is never mutated.
	cfgCopy := *cfg
	cfgCopy.applyDefaults()
	if err := cfgCopy.validate(); err != nil {
		return nil, err
	}

	decoded, err := DecodeToken(cfgCopy.Token)
	if err != nil {
		return nil, err
	}

	endpoint := cfgCopy.CollectorEndpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint(decoded.IntegrationID)
	}

	transport := cfgCopy.Transport
	if transport == nil {
		transport = NewHTTPTransport(cfgCopy.HTTPClient)
	}

	logger := cfgCopy.Logger
	if logger == nil {
		logger = defaultStderrLogger
	}

	c := &Client{
		token:        cfgCopy.Token,
		endpoint:     endpoint,
		release:      cfgCopy.Release,
		environment:  cfgCopy.Environment,
		service:      cfgCopy.Service,
		beforeSend:   cfgCopy.BeforeSend,
		flushTimeout: cfgCopy.FlushTimeout,
		debug:        cfgCopy.Debug,
		contextMgr:   NewContextManager(breadcrumbCapacity, cfgCopy.DisableBreadcrumbs),
		log:          logger,
		metrics:      cfgCopy.Metrics,
		queue:        make(chan queueMessage, cfgCopy.QueueCapacity),
	}
	c.worker = startWorker(c.queue, endpoint, transport, logger, cfgCopy.Metrics)

	if c.debug {
		c.log.Debug("client initialized",
			"endpoint", endpoint,
			"token", MaskToken(cfgCopy.Token),
			"queue_capacity", cfgCopy.QueueCapacity,
		)
	}
	return c, nil
}

// Context returns the client's ContextManager.
func (c *Client) Context() *ContextManager {
	return c.contextMgr
}

// Endpoint returns the resolved collector endpoint.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// SendEvent fills default fields the caller left unset, runs the
// BeforeSend filter, wraps the event in an envelope, and attempts a
// non-blocking enqueue. It never blocks and never returns an error: every
// failure mode past Init degrades to "log and continue".
func (c *Client) SendEvent(event *Event) {
	if event == nil {
		return
	}

	c.fillDefaults(event)

	event = c.applyBeforeSend(event)
	if event == nil {
		if c.debug {
			c.log.Debug("event dropped by BeforeSend")
		}
		if c.metrics != nil {
			c.metrics.IncrementCounter(metricEventsDropped, 1)
		}
		return
	}

	envelope := &Envelope{
		Token:       c.token,
		CatcherType: catcherType,
		Payload:     *event,
	}

	ok, reason := c.tryEnqueue(queueMessage{envelope: envelope})
	if !ok {
		c.log.Warn("event dropped",
			"event_id", event.ID,
			"reason", string(reason),
		)
		if c.metrics != nil {
			c.metrics.IncrementCounter(metricEventsDropped, 1)
		}
		return
	}
	if c.metrics != nil {
		c.metrics.IncrementCounter(metricEventsEnqueued, 1)
	}
}

// fillDefaults populates fields the caller did not set: the event id and
// catcher version, the configured release, the current user, the merged
// context, and the drained breadcrumbs.
func (c *Client) fillDefaults(event *Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CatcherVersion == "" {
		event.CatcherVersion = catcherVersion
	}
	if event.Release == "" {
		event.Release = c.release
	}
	if event.User == nil {
		event.User = c.contextMgr.User()
	}

	event.Context = c.contextMgr.BuildContext(event.Context)
	if c.environment != "" {
		event.Context = setContextDefault(event.Context, "environment", c.environment)
	}
	if c.service != "" {
		event.Context = setContextDefault(event.Context, "service", c.service)
	}

	if event.Breadcrumbs == nil {
		event.Breadcrumbs = c.contextMgr.TakeBreadcrumbs()
	}
}

// setContextDefault sets key to value unless the context already carries
// the key, allocating the map when needed.
func setContextDefault(ctx map[string]any, key string, value any) map[string]any {
	if ctx == nil {
		ctx = make(map[string]any)
	}
	if _, ok := ctx[key]; !ok {
		ctx[key] = value
	}
	return ctx
}

// applyBeforeSend runs the user filter under a failure boundary. When the
// filter panics, the original unmodified event is sent and a warning is
// logged; filter failures never silently drop an event.
//
// The snapshot is a deep copy: a filter that mutates nested state in place
// (breadcrumb entries, context values, backtrace frames) before panicking
// must not corrupt the event that gets delivered.
func (c *Client) applyBeforeSend(event *Event) (result *Event) {
	if c.beforeSend == nil {
		return event
	}

	original := event.clone()
	defer func() {
		if r := recover(); r != nil {
			c.log.Warn("BeforeSend panicked; sending the original event",
				"event_id", original.ID,
				"panic", r,
			)
			result = original
		}
	}()

	return c.beforeSend(event)
}

// tryEnqueue attempts a non-blocking enqueue, reporting why it failed.
func (c *Client) tryEnqueue(msg queueMessage) (bool, DiscardReason) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return false, ReasonQueueClosed
	}
	select {
	case c.queue <- msg:
		return true, ""
	default:
		return false, ReasonQueueOverflow
	}
}

// Flush enqueues a flush marker and blocks until the worker has handed
// every previously enqueued event to the transport, or the timeout
// elapses. It returns whether the flush completed in time.
//
// The marker is enqueued non-blocking like everything else: when the queue
// is full or the client is closed, Flush returns false immediately.
func (c *Client) Flush(timeout time.Duration) bool {
	signal := NewFlushSignal()
	if ok, _ := c.tryEnqueue(queueMessage{flush: signal}); !ok {
		return false
	}

	flushed := signal.WaitTimeout(timeout)
	if !flushed && c.metrics != nil {
		c.metrics.IncrementCounter(metricFlushTimeouts, 1)
	}
	return flushed
}

// FlushTimeout returns the configured flush timeout.
func (c *Client) FlushTimeout() time.Duration {
	return c.flushTimeout
}

// Close flushes pending events, closes the queue, and waits for the
// worker goroutine to exit. Subsequent sends drop with a warning and
// subsequent flushes fail fast. Returns ErrClientClosed when called twice.
func (c *Client) Close() error {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()

	c.mu.RLock()
	alreadyClosed := c.closed
	c.mu.RUnlock()
	if alreadyClosed {
		return ErrClientClosed
	}

	// Drain before rejecting producers, bounded by the flush timeout.
	if !c.Flush(c.flushTimeout) {
		c.log.Warn("flush timed out during close; some events may be undelivered")
	}

	c.mu.Lock()
	c.closed = true
	close(c.queue)
	c.mu.Unlock()

	<-c.worker.done
	return nil
}
