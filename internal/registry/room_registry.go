package registry

// RoomRegistry is a fixed-capacity, slotted table of rooms. A slot
// whose State is not RoomActive is free and reusable.
type RoomRegistry struct {
	slots       []Room
	activeCount int
}

// NewRoomRegistry pre-allocates capacity slots, all initially free.
func NewRoomRegistry(capacity int) *RoomRegistry {
	return &RoomRegistry{slots: make([]Room, capacity)}
}

// Capacity returns the maximum number of simultaneous rooms.
func (r *RoomRegistry) Capacity() int {
	return len(r.slots)
}

// ActiveCount returns the number of rooms currently in the ACTIVE
// state.
func (r *RoomRegistry) ActiveCount() int {
	return r.activeCount
}

// Create allocates the first free slot, initializes a room with name
// and owner, and adds owner as its first participant if non-nil.
// Returns ErrRoomRegistryFull if every slot is occupied.
func (r *RoomRegistry) Create(name string, owner *Client) (*Room, error) {
	for i := range r.slots {
		if r.slots[i].State != RoomActive {
			r.slots[i] = *newRoom(name)
			room := &r.slots[i]

			if owner != nil {
				room.Owner = owner
				// AddParticipant sets IsOwner by comparing against
				// room.Owner, which is already set above.
				_ = room.AddParticipant(owner)
			}

			r.activeCount++
			return room, nil
		}
	}
	return nil, ErrRoomRegistryFull
}

// FindByID scans ACTIVE rooms for a matching identifier.
func (r *RoomRegistry) FindByID(roomID string) (*Room, bool) {
	if roomID == "" {
		return nil, false
	}
	for i := range r.slots {
		if r.slots[i].State == RoomActive && r.slots[i].ID == roomID {
			return &r.slots[i], true
		}
	}
	return nil, false
}

// FindByClient scans every ACTIVE room's participant slots for client.
// Typically avoided in favor of Client.Room; kept for parity with the
// source and for consistency checks in tests.
func (r *RoomRegistry) FindByClient(client *Client) (*Room, bool) {
	if client == nil {
		return nil, false
	}
	for i := range r.slots {
		if r.slots[i].State != RoomActive {
			continue
		}
		for j := range r.slots[i].Participants {
			if r.slots[i].Participants[j].Client == client {
				return &r.slots[i], true
			}
		}
	}
	return nil, false
}

// ReapEmpty releases every ACTIVE room whose participant count is zero,
// returning the number of rooms freed.
func (r *RoomRegistry) ReapEmpty() int {
	freed := 0
	for i := range r.slots {
		room := &r.slots[i]
		if room.State == RoomActive && room.IsEmpty() {
			room.reset()
			r.activeCount--
			freed++
		}
	}
	return freed
}
