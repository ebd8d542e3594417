package signaling

import "sync/atomic"

// Stats holds the server-wide message and error counters. Only the
// dispatcher goroutine increments them (through Core.Dispatch); the
// fields are atomic so Snapshot can be read from any other goroutine.
// Malformed envelopes are counted by the transport instead
// (Server.MalformedFrames), and neither queue overflow nor protocol
// violations are counted here.
type Stats struct {
	totalMessages atomic.Uint64
	totalErrors   atomic.Uint64
}

// IncMessages counts one successfully dispatched message.
func (s *Stats) IncMessages() {
	s.totalMessages.Add(1)
}

// IncErrors counts one error-taxonomy event. Core.Dispatch calls it for
// every unknown event.
func (s *Stats) IncErrors() {
	s.totalErrors.Add(1)
}

// Snapshot returns the current counters as plain values, safe to log
// or export without holding any lock.
func (s *Stats) Snapshot() (totalMessages, totalErrors uint64) {
	return s.totalMessages.Load(), s.totalErrors.Load()
}
