package proto

import "sync/atomic"

// Value is a reference-counted holder for a parsed JSON payload. The
// ingress queue increments the count on push and the dispatcher
// decrements it once after processing; the underlying data is only
// ever read, never mutated, so sharing it across the push/pop boundary
// is safe without copying.
type Value struct {
	data any
	refs atomic.Int32
}

// NewValue wraps data with an initial reference count of one, matching
// message_create's ref_count = 1 in the original implementation.
func NewValue(data any) *Value {
	v := &Value{data: data}
	v.refs.Store(1)
	return v
}

// Ref increments the reference count. Called by the ingress queue on
// push.
func (v *Value) Ref() {
	if v == nil {
		return
	}
	v.refs.Add(1)
}

// Unref decrements the reference count. The zero-collection semantics
// of the original (free at zero) have no Go equivalent worth keeping —
// the garbage collector reclaims the value once nothing holds a
// reference — so Unref exists to preserve the push/pop discipline and
// make double-frees or missing-unref bugs visible in tests, not to
// manage memory.
func (v *Value) Unref() {
	if v == nil {
		return
	}
	v.refs.Add(-1)
}

// RefCount reports the current reference count, for tests asserting
// the queue never retains an envelope across pop.
func (v *Value) RefCount() int32 {
	if v == nil {
		return 0
	}
	return v.refs.Load()
}

// Get returns the wrapped payload.
func (v *Value) Get() any {
	if v == nil {
		return nil
	}
	return v.data
}
