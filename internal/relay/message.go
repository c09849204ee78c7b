package relay

import "encoding/json"

// Event names shared with the browser and CLI clients.
const (
	// Client to relay.
	EventJoinRoom    = "join-room"
	EventSendMessage = "send-message"
	EventSignal      = "signal"
	EventSkipPartner = "skip-partner"

	// Relay to client.
	EventConnected      = "connected"
	EventMatchFound     = "match-found"
	EventReceiveMessage = "receive-message"
	EventPartnerLeft    = "partner-left"
)

// Message is the JSON envelope for every websocket frame in either
// direction. Fields are populated per event type; the signal payload is
// kept raw because the relay never interprets it.
type Message struct {
	Type string `json:"type"`

	// ID carries the connection's own identifier on "connected".
	ID string `json:"id,omitempty"`

	// Label is the optional display label supplied on "join-room".
	Label string `json:"label,omitempty"`

	// Room is the caller-supplied room id on "send-message" and "signal".
	Room string `json:"room,omitempty"`

	// Text carries chat text on "send-message" and "receive-message".
	Text string `json:"message,omitempty"`

	// Signal is the opaque negotiation payload, forwarded verbatim.
	Signal json.RawMessage `json:"signal,omitempty"`

	// RoomID and PartnerID are set on "match-found".
	RoomID    string `json:"roomID,omitempty"`
	PartnerID string `json:"partnerID,omitempty"`

	// sender is the client that delivered the message. Internal to the
	// hub, never serialized.
	sender *Client `json:"-"`
}
