package signaling

import (
	"github.com/ctkqiang/redrtc/internal/proto"
	"github.com/ctkqiang/redrtc/internal/registry"
)

// sendClientID sends the identity assignment every freshly accepted
// client receives before anything else.
func sendClientID(client *registry.Client) {
	send(client, EventClientID, map[string]any{"clientId": client.ID})
}

// sendRoomCreated notifies the creator, and only the creator, that a
// new room now exists.
func sendRoomCreated(client *registry.Client, room *registry.Room) {
	send(client, EventRoomCreated, map[string]any{
		"roomId":   room.ID,
		"roomName": room.Name,
	})
}

// broadcastParticipants sends the current, slot-ordered participant
// list to every member of room.
func broadcastParticipants(room *registry.Room) {
	room.Broadcast(nil, EventParticipants, map[string]any{
		"roomId":       room.ID,
		"participants": room.ParticipantIDs(),
	})
}

// sendRelayed forwards an offer/answer/ice-candidate payload to target,
// tagging it with the sender's ID and the event-specific payload key.
func sendRelayed(target *registry.Client, event, fromClientID, payloadKey string, payload any) {
	send(target, event, map[string]any{
		"fromClientId": fromClientID,
		payloadKey:     payload,
	})
}

// sendError sends a plain string reason as the error event's payload,
// never wrapped in an object.
func sendError(client *registry.Client, reason string) {
	send(client, EventError, reason)
}

// send encodes and delivers one envelope. On the rare encode failure
// nothing is sent and nothing is counted.
func send(client *registry.Client, event string, data any) {
	frame, err := proto.Encode(event, data)
	if err != nil {
		return
	}
	client.Send(frame)
}
