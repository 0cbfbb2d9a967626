package hawk

import (
	"fmt"
	"testing"
	"time"
)

func TestFlushSignal_NotifyBeforeWait(t *testing.T) {
	signal := NewFlushSignal()
	signal.Notify()

	if !signal.WaitTimeout(time.Second) {
		t.Error("WaitTimeout() = false after Notify, want true")
	}
}

func TestFlushSignal_Timeout(t *testing.T) {
	signal := NewFlushSignal()

	start := time.Now()
	if signal.WaitTimeout(20 * time.Millisecond) {
		t.Error("WaitTimeout() = true without Notify, want false")
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("WaitTimeout returned after %v, want at least 20ms", elapsed)
	}
}

func TestFlushSignal_NotifyIsIdempotent(t *testing.T) {
	signal := NewFlushSignal()
	signal.Notify()
	signal.Notify() // second call must be a no-op, not a panic

	if !signal.WaitTimeout(time.Second) {
		t.Error("WaitTimeout() = false, want true")
	}
}

func TestWorker_DeliversInFIFOOrder(t *testing.T) {
	transport := &recordingTransport{}
	queue := make(chan queueMessage, 10)
	w := startWorker(queue, "https://test123.k1.hawk.so/", transport, NopLogger{}, nil)

	for i := 0; i < 5; i++ {
		queue <- queueMessage{envelope: &Envelope{
			Token:       "tok",
			CatcherType: catcherType,
			Payload:     Event{Title: fmt.Sprintf("event-%d", i)},
		}}
	}

	signal := NewFlushSignal()
	queue <- queueMessage{flush: signal}

	if !signal.WaitTimeout(time.Second) {
		t.Fatal("flush signal did not fire")
	}

	// The flush marker fired, so every prior envelope was handed to the
	// transport already.
	envelopes := transport.Envelopes()
	if len(envelopes) != 5 {
		t.Fatalf("delivered %d envelopes, want 5", len(envelopes))
	}
	for i, env := range envelopes {
		want := fmt.Sprintf("event-%d", i)
		if env.Payload.Title != want {
			t.Errorf("envelope[%d].Payload.Title = %q, want %q", i, env.Payload.Title, want)
		}
	}

	close(queue)
	<-w.done
}

func TestWorker_SurvivesTransportPanic(t *testing.T) {
	transport := &recordingTransport{panicOnSend: true}
	queue := make(chan queueMessage, 10)
	w := startWorker(queue, "https://test123.k1.hawk.so/", transport, NopLogger{}, nil)

	queue <- queueMessage{envelope: &Envelope{Payload: Event{Title: "boom"}}}

	// The loop must still be alive to process the flush marker.
	signal := NewFlushSignal()
	queue <- queueMessage{flush: signal}
	if !signal.WaitTimeout(time.Second) {
		t.Fatal("worker died after a transport panic")
	}

	close(queue)
	<-w.done
}

func TestWorker_ExitsWhenQueueCloses(t *testing.T) {
	transport := &recordingTransport{}
	queue := make(chan queueMessage, 1)
	w := startWorker(queue, "https://test123.k1.hawk.so/", transport, NopLogger{}, nil)

	close(queue)

	select {
	case <-w.done:
	case <-time.After(time.Second):
		t.Fatal("worker did not exit after queue close")
	}
}

func TestWorker_CountsDeliveryFailures(t *testing.T) {
	metrics := newCountingMetrics()
	transport := &recordingTransport{err: &StatusError{StatusCode: 500, Body: "oops"}}
	queue := make(chan queueMessage, 2)
	w := startWorker(queue, "https://test123.k1.hawk.so/", transport, NopLogger{}, metrics)

	queue <- queueMessage{envelope: &Envelope{Payload: Event{Title: "fails"}}}
	signal := NewFlushSignal()
	queue <- queueMessage{flush: signal}
	if !signal.WaitTimeout(time.Second) {
		t.Fatal("flush signal did not fire")
	}

	if got := metrics.Count(metricDeliveryFailures); got != 1 {
		t.Errorf("delivery failures = %d, want 1", got)
	}
	if got := metrics.Count(metricEventsDelivered); got != 0 {
		t.Errorf("delivered = %d, want 0", got)
	}

	close(queue)
	<-w.done
}
