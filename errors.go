package hawk

import "errors"

// Sentinel errors surfaced by Init and configuration loading. Everything
// past a successful Init degrades to "log and continue": capture calls
// never return errors to the host application.
var (
	// ErrInvalidToken indicates a malformed integration token: bad base64,
	// bad JSON, or an empty integrationId.
	ErrInvalidToken = errors.New("hawk: invalid integration token")

	// ErrAlreadyInitialized is returned by Init when the SDK has already
	// been initialized in this process. The second call has no side
	// effects: no worker is spawned and no queue is created.
	ErrAlreadyInitialized = errors.New("hawk: already initialized")

	// ErrClientClosed is returned by Close when the client has already
	// been closed.
	ErrClientClosed = errors.New("hawk: client is closed")

	// ErrMissingToken indicates that no integration token was configured.
	ErrMissingToken = errors.New("hawk: integration token is required")
)

// DiscardReason categorizes why an event was dropped instead of delivered.
// Reasons appear in warning logs and metrics, never in errors returned to
// the caller.
type DiscardReason string

const (
	// ReasonQueueOverflow indicates the delivery queue was full.
	ReasonQueueOverflow DiscardReason = "queue_overflow"

	// ReasonQueueClosed indicates the client was closed and the worker is gone.
	ReasonQueueClosed DiscardReason = "queue_closed"

	// ReasonBeforeSend indicates the event was dropped by the BeforeSend callback.
	ReasonBeforeSend DiscardReason = "before_send"

	// ReasonNetworkError indicates the delivery attempt failed in transit.
	ReasonNetworkError DiscardReason = "network_error"

	// ReasonSendError indicates the collector answered with a non-2xx status.
	ReasonSendError DiscardReason = "send_error"
)
