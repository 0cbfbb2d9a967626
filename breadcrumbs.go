package hawk

// breadcrumbRing is a fixed-capacity FIFO ring of breadcrumbs. When full,
// adding a new entry evicts the oldest one. The ring is not safe for
// concurrent use on its own; the ContextManager guards it with its lock.
type breadcrumbRing struct {
	buf   []Breadcrumb
	start int
	count int
}

func newBreadcrumbRing(capacity int) *breadcrumbRing {
	return &breadcrumbRing{buf: make([]Breadcrumb, capacity)}
}

// add appends a breadcrumb, evicting the oldest entry when the ring is full.
func (r *breadcrumbRing) add(b Breadcrumb) {
	if len(r.buf) == 0 {
		return
	}
	if r.count < len(r.buf) {
		r.buf[(r.start+r.count)%len(r.buf)] = b
		r.count++
		return
	}
	// Full: overwrite the oldest slot and advance the start.
	r.buf[r.start] = b
	r.start = (r.start + 1) % len(r.buf)
}

// takeAll returns the breadcrumbs in insertion order and empties the ring.
// Returns nil when the ring is empty, so callers can distinguish "nothing
// happened" from an empty list.
func (r *breadcrumbRing) takeAll() []Breadcrumb {
	if r.count == 0 {
		return nil
	}
	out := make([]Breadcrumb, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	r.start = 0
	r.count = 0
	return out
}

func (r *breadcrumbRing) len() int {
	return r.count
}
