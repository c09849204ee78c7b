package signaling

import "encoding/json"

// Message mirrors the relay's wire envelope.
type Message struct {
	Type      string          `json:"type"`
	ID        string          `json:"id,omitempty"`
	Label     string          `json:"label,omitempty"`
	Room      string          `json:"room,omitempty"`
	Text      string          `json:"message,omitempty"`
	Signal    json.RawMessage `json:"signal,omitempty"`
	RoomID    string          `json:"roomID,omitempty"`
	PartnerID string          `json:"partnerID,omitempty"`
}

// Event type constants, shared with the relay.
const (
	MessageTypeJoinRoom    = "join-room"
	MessageTypeSendMessage = "send-message"
	MessageTypeSignal      = "signal"
	MessageTypeSkipPartner = "skip-partner"

	MessageTypeConnected      = "connected"
	MessageTypeMatchFound     = "match-found"
	MessageTypeReceiveMessage = "receive-message"
	MessageTypePartnerLeft    = "partner-left"
)

// SignalPayload is the negotiation payload carried opaquely through the
// relay: an SDP description or a trickled ICE candidate.
type SignalPayload struct {
	Type      string          `json:"type,omitempty"`
	SDP       string          `json:"sdp,omitempty"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
}
