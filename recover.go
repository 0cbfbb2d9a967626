package hawk

import (
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// PanicHandler receives the recovered panic value after the SDK has
// captured it. Used to chain pre-existing crash handling.
type PanicHandler func(recovered any)

// PanicHook converts recovered panics into fatal events.
//
// Go has no process-wide panic interceptor, so the hook is driven by the
// defer-based helpers Recover, RecoverAndRepanic, and Go. Install is
// idempotent: the first call wins and may chain a previously installed
// handler, which then runs after every capture.
type PanicHook struct {
	installed atomic.Bool
	prev      atomic.Pointer[PanicHandler]

	// inHook holds the ids of goroutines currently inside the hook, the
	// per-thread re-entrancy guard: when the capture path itself panics,
	// the nested invocation skips capture and only forwards to the
	// chained handler.
	inHook sync.Map
}

// defaultPanicHook backs the package-level recover helpers. Init installs
// it unless panic capture is disabled.
var defaultPanicHook = &PanicHook{}

// InstallPanicHook installs the package-level panic hook, chaining prev so
// existing crash handling is preserved. A second call is a no-op, so
// installing twice never produces duplicate events per panic.
func InstallPanicHook(prev PanicHandler) {
	defaultPanicHook.Install(prev)
}

// Install marks the hook installed and records the chained handler.
// Idempotent; only the first call takes effect.
func (h *PanicHook) Install(prev PanicHandler) {
	if !h.installed.CompareAndSwap(false, true) {
		return
	}
	if prev != nil {
		h.prev.Store(&prev)
	}
}

// handle captures a recovered panic as a fatal event and forwards to the
// chained handler. The entire capture runs inside a failure boundary so a
// secondary panic cannot escalate; the chained handler always runs.
func (h *PanicHook) handle(recovered any) {
	gid := goroutineID()
	if _, reentrant := h.inHook.LoadOrStore(gid, struct{}{}); reentrant {
		h.forward(recovered)
		return
	}
	defer h.inHook.Delete(gid)

	func() {
		defer func() {
			if r := recover(); r != nil {
				defaultStderrLogger.Error("panic capture failed", "panic", r)
			}
		}()
		h.capture(recovered, gid)
	}()

	h.forward(recovered)
}

// capture builds the fatal event and sends it through the regular
// pipeline, reusing all default-filling and filter semantics, then
// flushes so the event reaches the transport before the process dies.
func (h *PanicHook) capture(recovered any, gid uint64) {
	client := CurrentClient()
	if client == nil {
		return
	}

	backtrace := captureBacktrace(3)

	ctx := map[string]any{
		"goroutine": strconv.FormatUint(gid, 10),
	}
	if len(backtrace) > 0 {
		ctx["file"] = backtrace[0].File
		ctx["line"] = backtrace[0].Line
	}

	client.SendEvent(&Event{
		Title:     "panic: " + panicMessage(recovered),
		Type:      LevelFatal,
		Backtrace: backtrace,
		Context:   ctx,
	})

	// Bounded: the panic path may never block indefinitely.
	client.Flush(client.FlushTimeout())
}

func (h *PanicHook) forward(recovered any) {
	if prev := h.prev.Load(); prev != nil {
		(*prev)(recovered)
	}
}

// panicMessage extracts a human-readable message from a panic payload.
// String payloads are used verbatim and errors report Error(); anything
// else becomes "<unknown panic>".
func panicMessage(recovered any) string {
	switch v := recovered.(type) {
	case string:
		return v
	case error:
		return v.Error()
	default:
		return "<unknown panic>"
	}
}

// Recover captures a recovered panic as a fatal event without re-raising
// it. Must be deferred directly:
//
//	defer hawk.Recover()
func Recover() {
	if r := recover(); r != nil {
		defaultPanicHook.handle(r)
	}
}

// RecoverAndRepanic captures a recovered panic as a fatal event and then
// re-panics with the original value, preserving the runtime's default
// crash output. Must be deferred directly.
func RecoverAndRepanic() {
	if r := recover(); r != nil {
		defaultPanicHook.handle(r)
		panic(r)
	}
}

// Go runs fn on a new goroutine supervised by the panic hook: a panic in
// fn is captured as a fatal event instead of crashing the process.
func Go(fn func()) {
	go func() {
		defer Recover()
		fn()
	}()
}

// goroutineID parses the current goroutine id from the runtime.Stack
// header ("goroutine 123 [running]:"). Go exposes no goroutine-locals, so
// the re-entrancy guard keys on this id.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := strings.Fields(string(buf[:n]))
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0
	}
	return id
}
