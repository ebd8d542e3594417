package registry

import "github.com/ctkqiang/redrtc/internal/ids"

// ConnHandle is the opaque connection handle the transport layer owns.
// The registry never dereferences it beyond equality comparison and
// dispatching Send — everything else (framing, buffering, the actual
// socket) is the transport's business. Send must be non-blocking or
// buffer internally; it is called from the single dispatcher goroutine
// and must never suspend it.
type ConnHandle interface {
	Send(frame []byte) error
}

// ClientState is one of the four states a client occupies at any
// instant.
type ClientState int

const (
	// StateConnected is the state a client is in immediately after
	// accept, and again after leaving a room.
	StateConnected ClientState = iota
	// StateJoining is reserved for an in-flight join. The dispatcher
	// resolves join-room synchronously within a single event, so no
	// client is ever observed in this state — it exists to keep the
	// state enumeration faithful to the source design.
	StateJoining
	// StateInRoom holds exactly when Client.Room is non-nil.
	StateInRoom
	// StateDisconnecting is the terminal state set by Remove; the slot
	// is freed for reuse once entered.
	StateDisconnecting
)

// String renders the state for logging.
func (s ClientState) String() string {
	switch s {
	case StateConnected:
		return "CONNECTED"
	case StateJoining:
		return "JOINING"
	case StateInRoom:
		return "IN_ROOM"
	case StateDisconnecting:
		return "DISCONNECTING"
	default:
		return "UNKNOWN"
	}
}

// Client is a live signaling session. Identity is assigned once on
// accept and never mutated. All fields are mutated only by the
// dispatcher goroutine.
type Client struct {
	ID     string
	Handle ConnHandle

	State ClientState

	ConnectedAt  int64
	LastActivity int64
	Alive        bool

	// Room is a non-owning back-reference to the room this client
	// currently occupies, or nil. Room != nil iff State == StateInRoom.
	Room *Room

	MessagesSent     uint64
	MessagesReceived uint64
	Errors           uint64
}

func newClient(handle ConnHandle) *Client {
	now := ids.NowSeconds()
	return &Client{
		ID:           ids.New(),
		Handle:       handle,
		State:        StateConnected,
		ConnectedAt:  now,
		LastActivity: now,
		Alive:        true,
	}
}

// TouchActivity refreshes LastActivity to now. Called on every received
// frame, including unknown events, before the event is routed.
func (c *Client) TouchActivity() {
	c.LastActivity = ids.NowSeconds()
}

// TimedOut reports whether the client's idle time exceeds timeoutSec.
func (c *Client) TimedOut(timeoutSec int64) bool {
	return ids.NowSeconds()-c.LastActivity > timeoutSec
}

// Send delivers an already-encoded frame to the client if it is alive,
// counting the send on success. It never blocks: ConnHandle.Send is
// required to be non-blocking or to buffer internally.
func (c *Client) Send(frame []byte) bool {
	if !c.Alive || c.Handle == nil {
		return false
	}
	if err := c.Handle.Send(frame); err != nil {
		return false
	}
	c.MessagesSent++
	return true
}
