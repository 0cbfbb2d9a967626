package hawk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Transport attempts one best-effort delivery of a serialized envelope to
// the collector endpoint. Implementations must be safe for use from the
// single worker goroutine and must never panic.
type Transport interface {
	Send(ctx context.Context, endpoint string, envelope *Envelope) error
}

// StatusError reports a non-2xx collector response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("hawk: collector responded with HTTP %d: %s", e.StatusCode, e.Body)
}

// HTTPTransport delivers envelopes with a single JSON POST per event.
//
// The token travels inside the JSON body, not in an Authorization header,
// matching the collector protocol. No retries: transient failures are
// acceptable to drop.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport creates an HTTPTransport on the given client. A nil
// client gets a default one with DefaultHTTPTimeout.
func NewHTTPTransport(client *http.Client) *HTTPTransport {
	if client == nil {
		client = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return &HTTPTransport{client: client}
}

// Send implements Transport.Send.
func (t *HTTPTransport) Send(ctx context.Context, endpoint string, envelope *Envelope) error {
	body, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("hawk: failed to serialize envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("hawk: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("hawk: failed to send event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Read a bounded slice of the body for the log line.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(snippet)}
	}

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

var _ Transport = (*HTTPTransport)(nil)
