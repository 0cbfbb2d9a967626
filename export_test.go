package hawk

// Test hooks for resetting process-wide state between tests.

// resetGlobalForTest closes and clears the singleton client so each test
// can exercise Init from a clean slate.
func resetGlobalForTest() {
	globalMu.Lock()
	defer globalMu.Unlock()
	if c := globalClient.Load(); c != nil {
		_ = c.Close()
	}
	globalClient.Store(nil)
}

// resetPanicHookForTest returns the package-level panic hook to its
// uninstalled state.
func resetPanicHookForTest() {
	defaultPanicHook.installed.Store(false)
	defaultPanicHook.prev.Store(nil)
}
