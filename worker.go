package hawk

import (
	"context"
	"errors"
	"sync"
	"time"
)

// queueMessage is the tagged union crossing the producer/consumer
// boundary: either an envelope to deliver or a flush marker.
type queueMessage struct {
	envelope *Envelope
	flush    *FlushSignal
}

// FlushSignal is a one-shot completion signal with a bounded wait.
//
// The worker calls Notify when it reaches the corresponding flush marker;
// the flushing caller blocks in WaitTimeout. Built on a once-closed
// channel, so callers observe either "signaled" or "timed out" and never a
// false positive.
type FlushSignal struct {
	once sync.Once
	done chan struct{}
}

// NewFlushSignal creates a FlushSignal in the not-yet-signaled state.
func NewFlushSignal() *FlushSignal {
	return &FlushSignal{done: make(chan struct{})}
}

// Notify marks the flush as complete and wakes all waiters. Calling it
// more than once is a no-op.
func (s *FlushSignal) Notify() {
	s.once.Do(func() { close(s.done) })
}

// WaitTimeout blocks until Notify is called or the timeout elapses.
// It returns true when the signal fired before the timeout.
func (s *FlushSignal) WaitTimeout(timeout time.Duration) bool {
	select {
	case <-s.done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// worker is the single background consumer draining the delivery queue in
// FIFO order and handing envelopes to the transport.
type worker struct {
	queue     <-chan queueMessage
	endpoint  string
	transport Transport
	logger    StructuredLogger
	metrics   Metrics

	// done is closed when the run loop exits.
	done chan struct{}
}

// startWorker spawns the consumer goroutine bound to the queue, the
// resolved endpoint, and a transport.
func startWorker(queue <-chan queueMessage, endpoint string, transport Transport, logger StructuredLogger, metrics Metrics) *worker {
	w := &worker{
		queue:     queue,
		endpoint:  endpoint,
		transport: transport,
		logger:    logger,
		metrics:   metrics,
		done:      make(chan struct{}),
	}
	go w.run()
	return w
}

// run drains the queue until it is closed and empty, then exits. Because
// the queue is FIFO and single-consumer, every envelope enqueued before a
// flush marker has been handed to the transport by the time the marker's
// signal fires.
func (w *worker) run() {
	defer close(w.done)
	for msg := range w.queue {
		w.process(msg)
	}
}

// process handles a single message under a failure boundary so one
// faulty message can never kill the delivery loop.
func (w *worker) process(msg queueMessage) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("recovered from panic while processing a queue message", "panic", r)
		}
	}()

	if msg.flush != nil {
		msg.flush.Notify()
		return
	}

	w.deliver(msg.envelope)
}

// deliver hands one envelope to the transport. Best-effort: failures are
// logged and the envelope is discarded, never retried.
func (w *worker) deliver(envelope *Envelope) {
	start := time.Now()
	err := w.transport.Send(context.Background(), w.endpoint, envelope)
	if w.metrics != nil {
		w.metrics.RecordDuration(metricTransportDuration, time.Since(start))
	}

	if err == nil {
		if w.metrics != nil {
			w.metrics.IncrementCounter(metricEventsDelivered, 1)
		}
		return
	}

	reason := ReasonNetworkError
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		reason = ReasonSendError
	}
	w.logger.Warn("event delivery failed",
		"event_id", envelope.Payload.ID,
		"reason", string(reason),
		"error", err,
	)
	if w.metrics != nil {
		w.metrics.IncrementCounter(metricDeliveryFailures, 1)
	}
}
