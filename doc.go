// Package hawk provides a Go SDK for the Hawk error-tracking platform.
//
// The SDK captures error and message events, enriches them with ambient
// context (tags, extras, the current user, breadcrumbs), and delivers them
// to the Hawk collector from a dedicated background goroutine. Capture calls
// never block and never panic the host application: when the delivery queue
// is full, new events are dropped and a warning is logged.
//
// # Quick Start
//
// Initialize the SDK once at startup and hold on to the returned guard:
//
//	guard, err := hawk.Init(os.Getenv("HAWK_TOKEN"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer guard.Close()
//
//	hawk.SetTag("region", "eu")
//	hawk.CaptureMessage("application started")
//
//	if err := doWork(); err != nil {
//	    hawk.CaptureError(err)
//	}
//
// Closing the guard flushes pending events (bounded by the configured flush
// timeout) so short-lived programs do not lose events on exit.
//
// # Panic Capture
//
// Panics are captured with the defer-based recover helpers:
//
//	defer hawk.RecoverAndRepanic()
//
// or by running goroutines under supervision:
//
//	hawk.Go(func() { riskyWork() })
//
// # Configuration
//
// Init accepts functional options:
//
//	guard, err := hawk.Init(token,
//	    hawk.WithQueueCapacity(200),
//	    hawk.WithRelease("v1.4.2"),
//	    hawk.WithBeforeSend(scrubSecrets),
//	)
//
// Configuration can also come from the environment (InitFromEnv) or from a
// YAML file (LoadConfig).
//
// # Delivery Guarantees
//
// Delivery is best-effort with a single attempt per event: transport
// failures are logged and the event is discarded, never retried. Flush
// means "handed to the transport", not "acknowledged by the collector".
// All capture calls made before a successful Init are silent no-ops.
package hawk
