package registry

import "errors"

// Sentinel errors returned by registry and room operations. Handlers in
// internal/signaling translate these into the wire-level error strings
// from the error taxonomy.
var (
	// ErrClientRegistryFull is returned by ClientRegistry.Add when no
	// free slot is available.
	ErrClientRegistryFull = errors.New("registry: client registry full")

	// ErrRoomRegistryFull is returned by RoomRegistry.Create when no
	// free slot is available.
	ErrRoomRegistryFull = errors.New("registry: room registry full")

	// ErrRoomFull is returned by Room.AddParticipant when the room
	// already holds MaxParticipants members.
	ErrRoomFull = errors.New("registry: room full")

	// ErrAlreadyInThisRoom is returned by Room.AddParticipant when the
	// client is already a participant of this room.
	ErrAlreadyInThisRoom = errors.New("registry: client already in this room")

	// ErrAlreadyInOtherRoom is returned by Room.AddParticipant when the
	// client's current room back-reference points elsewhere.
	ErrAlreadyInOtherRoom = errors.New("registry: client already in another room")

	// ErrParticipantNotFound is returned by Room.RemoveParticipant when
	// the client does not occupy any slot in the room.
	ErrParticipantNotFound = errors.New("registry: participant not found")
)
