// Package signaling implements the protocol state machine: the
// event-to-transition rules that relay WebRTC offer/answer/ICE traffic
// between the participants of a room, enforcing the routing invariants
// from the original redrtc.c handlers.
package signaling

// Event names recognized on the wire, exactly as spec.md §4.4
// enumerates them.
const (
	EventClientID     = "client-id"
	EventJoinRoom     = "join-room"
	EventRoomCreated  = "room-created"
	EventParticipants = "participants"
	EventLeaveRoom    = "leave-room"
	EventOffer        = "offer"
	EventAnswer       = "answer"
	EventICECandidate = "ice-candidate"
	EventError        = "error"
)

// Error reason strings, verbatim, so tests and handlers share one
// source of truth instead of re-typing literals that must match.
const (
	reasonCannotCreateRoom = "Cannot create room"
	reasonRoomFull         = "Room is full (max 6 participants)"
	reasonNotInRoom        = "Not in a room"
	reasonMissingTarget    = "Missing target client ID"
	reasonTargetNotInRoom  = "Target client not found in room"
)
