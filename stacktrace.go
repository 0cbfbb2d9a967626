package hawk

import (
	"runtime"
	"strings"
)

// sdkFunctionPrefix identifies the SDK's own frames in captured stacks.
const sdkFunctionPrefix = "github.com/hawk-so/hawk-go."

// captureBacktrace collects the current goroutine's stack as Frames,
// ordered from the most recent call. skip counts additional frames to
// drop on top of captureBacktrace itself.
//
// Frames inside the SDK and frames with neither file nor function are
// discarded, so the first reported frame is the capture call site in the
// host application. Returns nil when nothing useful remains.
func captureBacktrace(skip int) []Frame {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	var out []Frame
	for {
		frame, more := frames.Next()
		f := Frame{
			File:     frame.File,
			Line:     frame.Line,
			Function: frame.Function,
		}
		if !f.empty() && !isSDKFrame(frame.Function) && !isRuntimeFrame(frame.Function) {
			out = append(out, f)
		}
		if !more {
			break
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// isRuntimeFrame reports whether a function is a Go runtime internal,
// e.g. runtime.gopanic on the panic capture path.
func isRuntimeFrame(function string) bool {
	return strings.HasPrefix(function, "runtime.")
}

// isSDKFrame reports whether a function belongs to this SDK. Test
// functions are kept so the SDK's own tests see their call sites.
func isSDKFrame(function string) bool {
	if !strings.HasPrefix(function, sdkFunctionPrefix) {
		return false
	}
	name := strings.TrimPrefix(function, sdkFunctionPrefix)
	return !strings.HasPrefix(name, "Test") && !strings.Contains(name, ".Test")
}
