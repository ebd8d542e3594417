package signaling

import (
	"github.com/ctkqiang/redrtc/internal/proto"
	"github.com/ctkqiang/redrtc/internal/registry"
)

// Core owns the two registries and the protocol state machine that
// operates on them. It is the single mutator: every method here is
// meant to be called only from the dispatcher goroutine — see
// SPEC_FULL.md §5.1 for why that invariant exists.
type Core struct {
	Clients *registry.ClientRegistry
	Rooms   *registry.RoomRegistry
	Stats   Stats
}

// New builds a Core around freshly sized registries.
func New(maxClients, maxRooms int) *Core {
	return &Core{
		Clients: registry.NewClientRegistry(maxClients),
		Rooms:   registry.NewRoomRegistry(maxRooms),
	}
}

// Accept admits a new connection, assigning it an identity and sending
// the client-id event. Returns the new client, or an error if the
// client registry is full; no client-id is sent in that case. Accept
// does not close the refused connection, and the dispatcher only logs
// the refusal.
func (c *Core) Accept(handle registry.ConnHandle) (*registry.Client, error) {
	client, err := c.Clients.Add(handle)
	if err != nil {
		return nil, err
	}
	sendClientID(client)
	return client, nil
}

// Close retires a client: performs the implicit leave-room if it was
// seated, then frees its registry slot. Safe to call exactly once per
// client, at connection teardown.
func (c *Core) Close(client *registry.Client) {
	c.leaveRoom(client)
	c.Clients.Remove(client)
}

// Reap runs the periodic sweep: removes timed-out clients (performing
// their implicit leave first) and releases rooms left empty by it.
// Returns the number of clients and rooms reclaimed.
func (c *Core) Reap(idleTimeoutSec int64) (clientsReaped, roomsReaped int) {
	for _, client := range c.Clients.TimedOut(idleTimeoutSec) {
		c.Close(client)
		clientsReaped++
	}
	roomsReaped = c.Rooms.ReapEmpty()
	return clientsReaped, roomsReaped
}

// Dispatch routes one received envelope to its handler. client must be
// a live, registered client. Unknown events count as a taxonomy error
// and are otherwise ignored, matching the original's default case.
func (c *Core) Dispatch(client *registry.Client, env proto.Envelope) {
	client.TouchActivity()
	client.MessagesReceived++

	payload, _ := env.Data.Get().(map[string]any)

	switch env.Event {
	case EventJoinRoom:
		c.joinRoom(client, payload)
	case EventLeaveRoom:
		c.leaveRoom(client)
	case EventOffer:
		c.relay(client, payload, EventOffer)
	case EventAnswer:
		c.relay(client, payload, EventAnswer)
	case EventICECandidate:
		c.relay(client, payload, EventICECandidate)
	default:
		c.Stats.IncErrors()
		client.Errors++
		return
	}

	c.Stats.IncMessages()
}
