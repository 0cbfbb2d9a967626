package hawk

import "sync"

// Guard is the scope-bound token returned by Init. Closing it triggers a
// best-effort flush of pending events, bounded by the configured flush
// timeout:
//
//	guard, err := hawk.Init(token)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer guard.Close()
//
// The guard does not own the client: the client is process-lifetime, the
// guard is scope-lifetime. Closing it more than once is a no-op.
type Guard struct {
	client *Client
	once   sync.Once
}

func newGuard(client *Client) *Guard {
	return &Guard{client: client}
}

// Close flushes pending events. When the flush times out, a warning is
// logged that some events may be undelivered.
func (g *Guard) Close() {
	g.once.Do(func() {
		if g.client == nil {
			return
		}
		if !g.client.Flush(g.client.FlushTimeout()) {
			g.client.log.Warn("flush timed out; some events may be undelivered")
		}
	})
}
