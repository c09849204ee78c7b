package signaling

import "encoding/json"

// MatchInfo is what a match-found event tells us.
type MatchInfo struct {
	RoomID    string
	PartnerID string
}

// Handler routes incoming relay messages to typed channels.
type Handler struct {
	client      *Client
	Connected   chan string
	MatchFound  chan *MatchInfo
	PartnerLeft chan struct{}
	Signal      chan *SignalPayload
	Chat        chan string
	Dropped     chan struct{}
}

// NewHandler creates a handler for the given client.
func NewHandler(client *Client) *Handler {
	return &Handler{
		client:      client,
		Connected:   make(chan string, 1),
		MatchFound:  make(chan *MatchInfo, 1),
		PartnerLeft: make(chan struct{}, 1),
		Signal:      make(chan *SignalPayload, 32),
		Chat:        make(chan string, 32),
		Dropped:     make(chan struct{}),
	}
}

// Start consumes the client's incoming channel until the connection
// drops, then signals Dropped. Run it in its own goroutine.
func (h *Handler) Start() {
	for msg := range h.client.Incoming() {
		switch msg.Type {

		case MessageTypeConnected:
			h.Connected <- msg.ID

		case MessageTypeMatchFound:
			h.MatchFound <- &MatchInfo{RoomID: msg.RoomID, PartnerID: msg.PartnerID}

		case MessageTypePartnerLeft:
			h.PartnerLeft <- struct{}{}

		case MessageTypeSignal:
			var payload SignalPayload
			if err := json.Unmarshal(msg.Signal, &payload); err != nil {
				continue
			}
			h.Signal <- &payload

		case MessageTypeReceiveMessage:
			h.Chat <- msg.Text

		default:
		}
	}

	close(h.Dropped)
}
