package signaling

import "github.com/ctkqiang/redrtc/internal/registry"

// relayPayloadKey maps a relay event to the opaque payload field it
// carries, since ice-candidate's field is named "candidate" rather
// than echoing the event name.
var relayPayloadKey = map[string]string{
	EventOffer:        "offer",
	EventAnswer:       "answer",
	EventICECandidate: "candidate",
}

// joinRoom implements the join-room rules: implicit leave, then find-
// or-create, then add_participant, broadcasting the resulting
// participant list on success.
func (c *Core) joinRoom(client *registry.Client, payload map[string]any) {
	c.leaveRoom(client)

	roomID, _ := fieldString(payload, "roomId")
	roomName, _ := fieldString(payload, "roomName")

	var room *registry.Room
	var found bool
	if roomID != "" {
		room, found = c.Rooms.FindByID(roomID)
	}

	justCreated := false
	if !found {
		var err error
		room, err = c.Rooms.Create(roomName, client)
		if err != nil {
			sendError(client, reasonCannotCreateRoom)
			return
		}
		justCreated = true
		sendRoomCreated(client, room)
	}

	// Create already seated the owner as the room's first participant;
	// calling AddParticipant again would spuriously report
	// ALREADY_IN_THIS. Only an existing room needs the explicit add.
	if !justCreated {
		// FULL and ALREADY_IN_OTHER share one reply string in the
		// source protocol; the implicit leave above makes
		// ALREADY_IN_OTHER unreachable in practice, but the handler
		// doesn't rely on that.
		if err := room.AddParticipant(client); err != nil {
			sendError(client, reasonRoomFull)
			return
		}
	}

	broadcastParticipants(room)
}

// leaveRoom implements the leave-room rules, and also backs the
// implicit leave performed at the start of join-room and at client
// teardown — the same rule applies in all three cases: silently no-op
// outside a room, otherwise remove and broadcast only if members remain.
func (c *Core) leaveRoom(client *registry.Client) {
	room := client.Room
	if room == nil {
		return
	}

	if err := room.RemoveParticipant(client); err != nil {
		return
	}

	if !room.IsEmpty() {
		broadcastParticipants(room)
	}
}

// relay implements the shared offer/answer/ice-candidate routing
// logic: not-in-room, missing-target, and target-not-found guards, in
// that order, then forward verbatim to the target.
func (c *Core) relay(client *registry.Client, payload map[string]any, event string) {
	room := client.Room
	if room == nil {
		sendError(client, reasonNotInRoom)
		return
	}

	targetID, ok := fieldString(payload, "targetClientId")
	if !ok || targetID == "" {
		sendError(client, reasonMissingTarget)
		return
	}

	target, found := room.FindParticipant(targetID)
	if !found {
		sendError(client, reasonTargetNotInRoom)
		return
	}

	key := relayPayloadKey[event]
	sendRelayed(target, event, client.ID, key, payload[key])
}

// fieldString extracts a string field from a decoded JSON object
// payload. Returns false if payload is nil, the key is absent, or the
// value is not a string.
func fieldString(payload map[string]any, key string) (string, bool) {
	if payload == nil {
		return "", false
	}
	v, ok := payload[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
