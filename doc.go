// Package redrtc documents the architecture of a WebRTC signaling
// server: the in-memory session fabric that relays offer/answer/ICE
// handshake traffic between participants of small, bounded-capacity
// rooms. The runnable entrypoint lives in cmd/server; this package
// holds no executable code of its own.
//
// # Architecture
//
// Four subsystems compose the core, each under its own package in
// internal/:
//
//   - registry: slotted, reusable tables of live client sessions and
//     rooms, enforcing the per-room participant cap and handling
//     ownership transfer and empty-room reaping.
//   - proto: the wire envelope ({event, data}) and a reference-counted
//     payload value shared between the transport and the dispatcher.
//   - ingress: a bounded, mutex-guarded queue of connection lifecycle
//     events (accepted, received, closed) that absorbs traffic from
//     every connection's own goroutine.
//   - signaling: the protocol state machine — join-room, leave-room,
//     offer, answer, and ice-candidate handlers, and the routing
//     invariants that forbid cross-room relay.
//
// internal/dispatch runs the single goroutine that drains the ingress
// queue and is therefore the only mutator of the registries, no matter
// how many connection goroutines are producing events concurrently.
// internal/transport/websocket adapts gorilla/websocket connections
// into that lifecycle event vocabulary.
//
// # Quick Start
//
//	go run ./cmd/server -addr :8080 -max-clients 4096
//
// Configuration can also be supplied via a YAML file (-config) or
// REDRTC_-prefixed environment variables; see internal/config.
package redrtc
