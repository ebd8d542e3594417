package registry

import (
	"unicode/utf8"

	"github.com/ctkqiang/redrtc/internal/ids"
	"github.com/ctkqiang/redrtc/internal/proto"
)

// MaxParticipants is the hard per-room participant cap. It is a
// constant, not a configuration option, per the external interface
// spec.
const MaxParticipants = 6

// maxRoomNameBytes bounds the human-readable room name.
const maxRoomNameBytes = 63

// defaultRoomName is used when no name is supplied on creation.
const defaultRoomName = "Unnamed Room"

// RoomState is one of the three states a room occupies. Only Active is
// ever assigned: "empty" is a derived condition (Count == 0 while
// Active), and RoomRegistry.ReapEmpty resets a reaped room's slot
// straight back to the free zero value, so neither RoomEmpty nor
// RoomClosing is set on any room.
type RoomState int

const (
	// roomFree is the zero value: an unoccupied registry slot. It is
	// unexported because it is a registry bookkeeping detail, not a
	// state a caller ever observes on a room returned from a lookup.
	roomFree RoomState = iota
	RoomActive
	RoomEmpty
	RoomClosing
)

// ParticipantSlot is one seat in a room's fixed-length participant
// array. A slot is empty iff Client is nil.
type ParticipantSlot struct {
	Client   *Client
	JoinedAt int64
	IsOwner  bool
}

// Room is a bounded multiset of clients exchanging signaling payloads.
type Room struct {
	ID   string
	Name string

	Participants [MaxParticipants]ParticipantSlot
	Count        int

	State RoomState

	CreatedAt    int64
	LastActivity int64

	// Owner is a non-owning reference to the current owner participant,
	// or nil if the room has no members.
	Owner *Client
}

func newRoom(name string) *Room {
	if name == "" {
		name = defaultRoomName
	}
	name = truncateUTF8(name, maxRoomNameBytes)

	now := ids.NowSeconds()
	return &Room{
		ID:           ids.New(),
		Name:         name,
		State:        RoomActive,
		CreatedAt:    now,
		LastActivity: now,
	}
}

// truncateUTF8 truncates s to at most n bytes without splitting a
// multi-byte rune, matching the "truncated safely to 63 bytes, UTF-8"
// requirement.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	b := s[:n]
	for len(b) > 0 && !utf8.RuneStart(b[len(b)-1]) {
		b = b[:len(b)-1]
	}
	// If the last rune we kept was itself cut in half, drop it too.
	if len(b) > 0 {
		if r, size := utf8.DecodeLastRuneInString(b); r == utf8.RuneError && size <= 1 {
			b = b[:len(b)-1]
		}
	}
	return b
}

// IsFull reports whether the room already holds MaxParticipants
// members.
func (r *Room) IsFull() bool {
	return r.Count >= MaxParticipants
}

// IsEmpty reports whether the room currently holds no participants.
func (r *Room) IsEmpty() bool {
	return r.Count == 0
}

// FindParticipant scans the room's slots for a client with the given
// ID. O(MaxParticipants).
func (r *Room) FindParticipant(clientID string) (*Client, bool) {
	for i := range r.Participants {
		c := r.Participants[i].Client
		if c != nil && c.ID == clientID {
			return c, true
		}
	}
	return nil, false
}

// AddParticipant fills the lowest-index empty slot with client. Rejects
// full rooms, duplicate membership, and clients whose current room
// points elsewhere. On success it updates the client's back-reference
// and state and refreshes the room's activity timestamp.
func (r *Room) AddParticipant(client *Client) error {
	if r.IsFull() {
		return ErrRoomFull
	}
	if _, already := r.FindParticipant(client.ID); already {
		return ErrAlreadyInThisRoom
	}
	if client.Room != nil && client.Room != r {
		return ErrAlreadyInOtherRoom
	}

	for i := range r.Participants {
		if r.Participants[i].Client == nil {
			now := ids.NowSeconds()
			r.Participants[i] = ParticipantSlot{
				Client:   client,
				JoinedAt: now,
				IsOwner:  r.Owner == client,
			}
			r.Count++
			r.LastActivity = now

			client.Room = r
			client.State = StateInRoom
			return nil
		}
	}

	// Unreachable if IsFull was checked correctly above.
	return ErrRoomFull
}

// RemoveParticipant clears the slot matching client, resets the
// client's back-reference and state to Connected, and promotes the
// lowest-index remaining participant to owner if client was the owner
// and the room is not now empty.
func (r *Room) RemoveParticipant(client *Client) error {
	for i := range r.Participants {
		if r.Participants[i].Client != client {
			continue
		}

		wasOwner := r.Participants[i].IsOwner
		r.Participants[i] = ParticipantSlot{}
		r.Count--
		r.LastActivity = ids.NowSeconds()

		client.Room = nil
		client.State = StateConnected

		if wasOwner {
			r.Owner = nil
			if r.Count > 0 {
				for j := range r.Participants {
					if r.Participants[j].Client != nil {
						r.Participants[j].IsOwner = true
						r.Owner = r.Participants[j].Client
						break
					}
				}
			}
		}

		return nil
	}
	return ErrParticipantNotFound
}

// ParticipantIDs returns the current participants' IDs in slot order,
// the order every "participants" broadcast uses.
func (r *Room) ParticipantIDs() []string {
	ids := make([]string, 0, r.Count)
	for i := range r.Participants {
		if c := r.Participants[i].Client; c != nil {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// Broadcast encodes {event, data} once and sends it to every
// non-excluded, live participant, returning the number of successful
// sends. It always refreshes the room's activity timestamp, even if
// nothing was sent.
func (r *Room) Broadcast(exclude *Client, event string, data any) int {
	frame, err := proto.Encode(event, data)
	r.LastActivity = ids.NowSeconds()
	if err != nil {
		return 0
	}

	sent := 0
	for i := range r.Participants {
		c := r.Participants[i].Client
		if c == nil || c == exclude {
			continue
		}
		if c.Send(frame) {
			sent++
		}
	}
	return sent
}

func (r *Room) reset() {
	*r = Room{}
}
