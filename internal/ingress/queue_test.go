package ingress

import (
	"testing"

	"github.com/ctkqiang/redrtc/internal/proto"
)

type fakeHandle struct{}

func (fakeHandle) Send([]byte) error { return nil }

// TestQueuePushPopOrder verifies FIFO ordering across mixed lifecycle
// kinds from the same connection.
func TestQueuePushPopOrder(t *testing.T) {
	t.Parallel()

	q := New(4)
	h := fakeHandle{}

	if err := q.Push(Event{Kind: Accepted, Handle: h}); err != nil {
		t.Fatalf("Push(Accepted) error: %v", err)
	}
	env, err := proto.Decode([]byte(`{"event":"join-room","data":{}}`))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if err := q.Push(Event{Kind: Received, Handle: h, Envelope: env}); err != nil {
		t.Fatalf("Push(Received) error: %v", err)
	}
	if err := q.Push(Event{Kind: Closed, Handle: h}); err != nil {
		t.Fatalf("Push(Closed) error: %v", err)
	}

	wantKinds := []Kind{Accepted, Received, Closed}
	for i, want := range wantKinds {
		ev, ok := q.Pop()
		if !ok {
			t.Fatalf("Pop() #%d: queue unexpectedly empty", i)
		}
		if ev.Kind != want {
			t.Errorf("Pop() #%d Kind = %v, want %v", i, ev.Kind, want)
		}
	}

	if _, ok := q.Pop(); ok {
		t.Error("Pop() on drained queue returned an event")
	}
}

// TestQueueFullDropsAndReportsError verifies the overflow error kind:
// no blocking, no backpressure, just a dropped push.
func TestQueueFullDropsAndReportsError(t *testing.T) {
	t.Parallel()

	q := New(2)
	h := fakeHandle{}

	if err := q.Push(Event{Kind: Accepted, Handle: h}); err != nil {
		t.Fatalf("Push() 1 error: %v", err)
	}
	if err := q.Push(Event{Kind: Accepted, Handle: h}); err != nil {
		t.Fatalf("Push() 2 error: %v", err)
	}
	if err := q.Push(Event{Kind: Accepted, Handle: h}); err != ErrQueueFull {
		t.Fatalf("Push() on full queue = %v, want ErrQueueFull", err)
	}

	if got := q.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2 (overflow push must not be counted)", got)
	}
}

// TestQueueRefCountingAcrossPushPop verifies the queue never retains an
// envelope across Pop, per the reference-counting contract described on
// Push and Pop.
func TestQueueRefCountingAcrossPushPop(t *testing.T) {
	t.Parallel()

	q := New(1)
	h := fakeHandle{}

	env, err := proto.Decode([]byte(`{"event":"leave-room"}`))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if got := env.Data.RefCount(); got != 1 {
		t.Fatalf("RefCount() after Decode = %d, want 1", got)
	}

	if err := q.Push(Event{Kind: Received, Handle: h, Envelope: env}); err != nil {
		t.Fatalf("Push() error: %v", err)
	}
	if got := env.Data.RefCount(); got != 2 {
		t.Fatalf("RefCount() after Push = %d, want 2 (queue took a reference)", got)
	}

	// The producer drops its own reference once Push succeeds.
	env.Data.Unref()
	if got := env.Data.RefCount(); got != 1 {
		t.Fatalf("RefCount() after producer unref = %d, want 1", got)
	}

	popped, ok := q.Pop()
	if !ok {
		t.Fatal("Pop() returned no event")
	}
	popped.Envelope.Data.Unref()
	if got := popped.Envelope.Data.RefCount(); got != 0 {
		t.Fatalf("RefCount() after consumer unref = %d, want 0", got)
	}
}
