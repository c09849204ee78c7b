package relay

import (
	"github.com/sirupsen/logrus"
)

// Hub owns every piece of mutable matchmaking state: the registry of
// live connections, the waiting pool and the connection→room index.
// All of it is touched only from the Run goroutine, which serializes
// every inbound event (join, chat, signal, skip, disconnect) into a
// strict total order. Handlers therefore run to completion with no
// interleaving, which is what keeps a skip from landing mid-pairing.
type Hub struct {
	// clients maps connection id to the live connection.
	clients map[string]*Client

	// pool holds connections that asked for a match and have none yet.
	pool pool

	// roomIndex maps connection id to room id for exactly the paired
	// connections. Absence means "not currently paired". An entry can
	// go stale after the partner leaves: indexed means "believes itself
	// matched", not "room has two live members".
	roomIndex map[string]string

	// rooms maps room id to the room's current membership.
	rooms map[string]*Room

	// Register is for newly upgraded connections.
	Register chan *Client

	// Unregister is for connections whose transport dropped.
	Unregister chan *Client

	// Inbound carries every parsed client message.
	Inbound chan *Message
}

// NewHub creates a hub with empty state. Call Run in its own goroutine
// before serving connections.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		roomIndex:  make(map[string]string),
		rooms:      make(map[string]*Room),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Inbound:    make(chan *Message),
	}
}

// Run is the hub's event loop. It is the only goroutine allowed to read
// or write the registry, the pool, the room index or the room table.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client.ID] = client
			// Tell the connection its own id; clients need it to pick
			// the negotiation initiator.
			client.Send <- &Message{Type: EventConnected, ID: client.ID}
			logrus.WithField("conn", client.ID).Info("client connected")

		case client := <-h.Unregister:
			if _, ok := h.clients[client.ID]; !ok {
				continue
			}
			h.teardown(client)
			delete(h.clients, client.ID)
			close(client.Send)
			logrus.WithField("conn", client.ID).Info("client disconnected")

		case msg := <-h.Inbound:
			h.dispatch(msg)
		}
	}
}

func (h *Hub) dispatch(msg *Message) {
	switch msg.Type {
	case EventJoinRoom:
		h.handleJoin(msg.sender, msg.Label)

	case EventSendMessage:
		h.relay(msg.sender, msg.Room, &Message{
			Type: EventReceiveMessage,
			Text: msg.Text,
		})

	case EventSignal:
		h.relay(msg.sender, msg.Room, &Message{
			Type:   EventSignal,
			Signal: msg.Signal,
		})

	case EventSkipPartner:
		h.teardown(msg.sender)

	default:
		logrus.WithFields(logrus.Fields{
			"conn": msg.sender.ID,
			"type": msg.Type,
		}).Warn("unknown message type")
	}
}

// handleJoin pairs the requester with the newest waiter, or parks it in
// the pool when nobody is waiting. Pairing emits exactly one match-found
// to each side, carrying the room id and the other connection's id.
func (h *Hub) handleJoin(c *Client, label string) {
	c.Label = label

	// A join from a still-paired connection means the client moved on
	// without an explicit skip. Tear the old room down first so the
	// connection can never sit in two rooms at once.
	if _, ok := h.roomIndex[c.ID]; ok {
		h.teardown(c)
	}

	partner, ok := h.pool.DequeueAny()
	if !ok {
		h.pool.Enqueue(c)
		logrus.WithField("conn", c.ID).Debug("waiting for a partner")
		return
	}

	if partner.ID == c.ID {
		// The sole waiter asked again. Keep it matchable instead of
		// dropping the request and stranding the connection.
		h.pool.Enqueue(c)
		return
	}

	roomID := partner.ID + "-" + c.ID
	room := newRoom(roomID, partner, c)
	h.rooms[roomID] = room
	h.roomIndex[partner.ID] = roomID
	h.roomIndex[c.ID] = roomID

	partner.Send <- &Message{Type: EventMatchFound, RoomID: roomID, PartnerID: c.ID}
	c.Send <- &Message{Type: EventMatchFound, RoomID: roomID, PartnerID: partner.ID}

	logrus.WithFields(logrus.Fields{
		"room":    roomID,
		"conn":    c.ID,
		"partner": partner.ID,
	}).Info("match found")
}

// relay forwards msg to every other member of the caller-supplied room.
// The room id is trusted as-is: a stale or foreign id forwards to nobody
// and is not an error. Integrity rests on clients using the id from
// their last match-found.
func (h *Hub) relay(c *Client, roomID string, msg *Message) {
	room, ok := h.rooms[roomID]
	if !ok {
		return
	}
	room.ForwardFrom(c.ID, msg)
}

// teardown is the shared path for skip and disconnect. It notifies the
// remaining room member, revokes the leaver's room membership and index
// entry, and always clears the leaver from the waiting pool. The
// partner's index entry is deliberately left until the partner itself
// leaves or rejoins; the partner-left event moves it to an unmatched UI
// state either way.
func (h *Hub) teardown(c *Client) {
	if roomID, ok := h.roomIndex[c.ID]; ok {
		if room, exists := h.rooms[roomID]; exists {
			room.ForwardFrom(c.ID, &Message{Type: EventPartnerLeft})
			room.Remove(c.ID)
			if room.Empty() {
				delete(h.rooms, roomID)
			}
		}
		delete(h.roomIndex, c.ID)
		logrus.WithFields(logrus.Fields{"conn": c.ID, "room": roomID}).Info("left room")
	}

	h.pool.Remove(c)
}
