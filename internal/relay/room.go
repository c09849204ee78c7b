package relay

// Room is an ephemeral pairing of exactly two connections. The id is
// derived from the members' connection ids in arrival order
// (partner first, requester second) so both sides compute the same key.
type Room struct {
	ID      string
	members map[string]*Client
}

func newRoom(id string, a, b *Client) *Room {
	return &Room{
		ID:      id,
		members: map[string]*Client{a.ID: a, b.ID: b},
	}
}

// ForwardFrom delivers msg to every member except the sender. With
// two-party rooms that is exactly one recipient, or none once the
// partner has already left.
func (r *Room) ForwardFrom(senderID string, msg *Message) {
	for id, member := range r.members {
		if id == senderID {
			continue
		}
		member.Send <- msg
	}
}

// Remove drops a member from the room. No-op for unknown ids.
func (r *Room) Remove(id string) {
	delete(r.members, id)
}

// Empty reports whether the room has no members left.
func (r *Room) Empty() bool {
	return len(r.members) == 0
}
