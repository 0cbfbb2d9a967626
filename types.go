package hawk

import "time"

// SDK identification constants baked into every envelope.
const (
	// Version is the SDK version string.
	Version = "0.1.0"

	// catcherType identifies the SDK family to the collector.
	catcherType = "errors/go"

	// catcherVersion is included in every event payload.
	catcherVersion = "hawk-go/" + Version
)

// Level is the severity of an event, serialized into the payload "type"
// field as a lowercase string.
type Level string

// Severity levels recognized by the collector.
const (
	LevelDebug   Level = "debug"
	LevelInfo    Level = "info"
	LevelWarning Level = "warn"
	LevelError   Level = "error"
	LevelFatal   Level = "fatal"
)

// Event is the payload describing one captured message, error, or panic.
//
// Events are assembled by the capture calls, optionally enriched with
// ambient context by the client, and are immutable once enqueued. Zero
// fields are omitted from the serialized payload entirely rather than
// emitted as null.
type Event struct {
	// ID identifies the event in SDK logs and metrics. It is generated at
	// capture time and never sent to the collector.
	ID string `json:"-"`

	// Title is the human-readable event title, e.g. "panic: index out of range".
	Title string `json:"title"`

	// Type is the event severity.
	Type Level `json:"type,omitempty"`

	// Backtrace holds stack frames ordered from the most recent call.
	Backtrace []Frame `json:"backtrace,omitempty"`

	// Release is the application release/version configured at init.
	Release string `json:"release,omitempty"`

	// User is the affected user at the time of the event.
	User *User `json:"user,omitempty"`

	// Context is a shallow merge of global tags/extras and per-event data.
	Context map[string]any `json:"context,omitempty"`

	// Breadcrumbs are the actions recorded before this event.
	Breadcrumbs []Breadcrumb `json:"breadcrumbs,omitempty"`

	// CatcherVersion is the SDK version string, filled by the client when
	// the caller leaves it empty.
	CatcherVersion string `json:"catcherVersion"`
}

// clone returns a copy of the event whose mutable fields (user, backtrace,
// breadcrumbs, context) do not alias the receiver, so in-place mutation of
// the copy never reaches the original.
func (e *Event) clone() *Event {
	c := *e
	if e.User != nil {
		u := *e.User
		c.User = &u
	}
	if e.Backtrace != nil {
		c.Backtrace = append([]Frame(nil), e.Backtrace...)
	}
	if e.Breadcrumbs != nil {
		c.Breadcrumbs = make([]Breadcrumb, len(e.Breadcrumbs))
		copy(c.Breadcrumbs, e.Breadcrumbs)
		for i := range c.Breadcrumbs {
			c.Breadcrumbs[i].Data = cloneContextMap(e.Breadcrumbs[i].Data)
		}
	}
	c.Context = cloneContextMap(e.Context)
	return &c
}

// cloneContextMap copies a context-shaped map, descending into the nested
// map values the SDK itself produces (tags, extras, breadcrumb data).
func cloneContextMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		switch nested := v.(type) {
		case map[string]string:
			nm := make(map[string]string, len(nested))
			for nk, nv := range nested {
				nm[nk] = nv
			}
			out[k] = nm
		case map[string]any:
			out[k] = cloneContextMap(nested)
		default:
			out[k] = v
		}
	}
	return out
}

// Frame is a single stack frame in an event backtrace.
type Frame struct {
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
	Function string `json:"function,omitempty"`
}

// empty reports whether the frame carries no useful debugging information.
// Such frames are discarded during stack capture.
func (f Frame) empty() bool {
	return f.File == "" && f.Function == ""
}

// User describes the affected user attached to outgoing events.
// SetUser replaces the current user wholesale; fields are never merged.
type User struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	URL   string `json:"url,omitempty"`
	Image string `json:"image,omitempty"`
}

// Breadcrumb is a recorded prior action kept in a bounded ring for
// inclusion in the next captured event.
type Breadcrumb struct {
	// Message describes what happened, e.g. "cache miss for session 42".
	Message string `json:"message"`

	// Category groups related breadcrumbs, e.g. "http" or "db".
	Category string `json:"category,omitempty"`

	// Timestamp records when the breadcrumb was added. AddBreadcrumb fills
	// it when left zero.
	Timestamp time.Time `json:"timestamp,omitempty"`

	// Data carries arbitrary structured attachments.
	Data map[string]any `json:"data,omitempty"`
}

// Envelope is the unit actually transmitted to the collector:
// the raw integration token, the catcher type, and the event payload.
type Envelope struct {
	Token       string `json:"token"`
	CatcherType string `json:"catcherType"`
	Payload     Event  `json:"payload"`
}
