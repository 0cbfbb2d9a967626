package hawk

import (
	"sync"
	"time"
)

// ContextManager accumulates the ambient state attached to every outgoing
// event: tags, extras, the current user, and the breadcrumb ring.
//
// All methods are safe for concurrent use from any number of goroutines.
// Reads (building context for an event) and writes (SetTag, SetExtra, ...)
// follow a readers-writer discipline.
type ContextManager struct {
	mu sync.RWMutex

	tags   map[string]string
	extras map[string]string
	user   *User
	crumbs *breadcrumbRing

	// breadcrumbsDisabled is fixed at construction.
	breadcrumbsDisabled bool
}

// NewContextManager creates an empty ContextManager with a breadcrumb ring
// of the given capacity.
func NewContextManager(crumbCapacity int, disableBreadcrumbs bool) *ContextManager {
	return &ContextManager{
		tags:                make(map[string]string),
		extras:              make(map[string]string),
		crumbs:              newBreadcrumbRing(crumbCapacity),
		breadcrumbsDisabled: disableBreadcrumbs,
	}
}

// SetTag sets a single tag, overwriting any existing tag with the same key.
func (cm *ContextManager) SetTag(key, value string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.tags[key] = value
}

// SetExtra sets a single extra, overwriting any existing extra with the
// same key.
func (cm *ContextManager) SetExtra(key, value string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.extras[key] = value
}

// SetUser sets the current user, replacing any previously set user
// wholesale. Fields are never merged.
func (cm *ContextManager) SetUser(user User) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	u := user
	cm.user = &u
}

// User returns a copy of the current user, or nil when none is set.
func (cm *ContextManager) User() *User {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	if cm.user == nil {
		return nil
	}
	u := *cm.user
	return &u
}

// AddBreadcrumb records a breadcrumb in the ring, evicting the oldest
// entry when the ring is full. A zero Timestamp is filled with the current
// time. No-op when breadcrumb collection is disabled.
func (cm *ContextManager) AddBreadcrumb(b Breadcrumb) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if cm.breadcrumbsDisabled {
		return
	}
	if b.Timestamp.IsZero() {
		b.Timestamp = time.Now().UTC()
	}
	cm.crumbs.add(b)
}

// TakeBreadcrumbs atomically drains the breadcrumb ring, returning the
// entries in insertion order. Returns nil when the ring is empty.
func (cm *ContextManager) TakeBreadcrumbs() []Breadcrumb {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return cm.crumbs.takeAll()
}

// BuildContext returns the merged context for an outgoing event.
//
// The merge is shallow: it starts from {"tags": {...}, "extras": {...}}
// (omitting either key when its map is empty), then overlays every
// top-level key of eventContext, overwriting on collision. Returns nil
// when the merged result would be empty.
func (cm *ContextManager) BuildContext(eventContext map[string]any) map[string]any {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	ctx := make(map[string]any)

	if len(cm.tags) > 0 {
		tags := make(map[string]string, len(cm.tags))
		for k, v := range cm.tags {
			tags[k] = v
		}
		ctx["tags"] = tags
	}
	if len(cm.extras) > 0 {
		extras := make(map[string]string, len(cm.extras))
		for k, v := range cm.extras {
			extras[k] = v
		}
		ctx["extras"] = extras
	}

	// Per-event context wins on top-level key collisions.
	for k, v := range eventContext {
		ctx[k] = v
	}

	if len(ctx) == 0 {
		return nil
	}
	return ctx
}
