package peer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pion/webrtc/v4"

	"github.com/campusconnect/campusconnect/internal/cli/signaling"
	"github.com/campusconnect/campusconnect/internal/config"
)

// Initiates reports which side starts negotiation. Both peers compare
// the same two ids, so exactly one of them initiates: the one with the
// lexicographically smaller connection id. Changing this comparison on
// one side only will deadlock negotiation.
func Initiates(ownID, partnerID string) bool {
	return ownID < partnerID
}

// Peer wraps a pion peer connection carrying a single "chat" data
// channel. The initiator creates the channel and the offer; the other
// side answers and waits for OnDataChannel. All negotiation payloads
// travel as opaque signals through the relay.
type Peer struct {
	conn       *webrtc.PeerConnection
	initiator  bool
	sendSignal func(*signaling.SignalPayload)

	mu      sync.Mutex
	channel *webrtc.DataChannel
	ready   bool

	openOnce  sync.Once
	closeOnce sync.Once

	// Opened is closed once the chat channel is usable.
	Opened chan struct{}

	// Incoming carries decoded frames from the partner.
	Incoming chan Frame

	// Done is closed when the peer connection fails or closes.
	Done chan struct{}
}

// New creates a peer connection against the configured ICE servers.
// sendSignal is called from pion callbacks and must not block.
func New(cfg *config.Client, initiator bool, sendSignal func(*signaling.SignalPayload)) (*Peer, error) {
	servers := []webrtc.ICEServer{
		{URLs: []string{cfg.STUNServer}},
	}
	if cfg.TURNServer != "" {
		servers = append(servers, webrtc.ICEServer{
			URLs:       []string{cfg.TURNServer},
			Username:   cfg.TURNUser,
			Credential: cfg.TURNPass,
		})
	}

	conn, err := webrtc.NewPeerConnection(webrtc.Configuration{ICEServers: servers})
	if err != nil {
		return nil, fmt.Errorf("create peer connection: %w", err)
	}

	p := &Peer{
		conn:       conn,
		initiator:  initiator,
		sendSignal: sendSignal,
		Opened:     make(chan struct{}),
		Incoming:   make(chan Frame, 32),
		Done:       make(chan struct{}),
	}

	conn.OnICECandidate(func(c *webrtc.ICECandidate) {
		if c == nil {
			return
		}
		candidate, err := json.Marshal(c.ToJSON())
		if err != nil {
			return
		}
		p.sendSignal(&signaling.SignalPayload{Candidate: candidate})
	})

	conn.OnConnectionStateChange(func(state webrtc.PeerConnectionState) {
		slog.Debug("peer connection state", "state", state.String())
		if state == webrtc.PeerConnectionStateFailed || state == webrtc.PeerConnectionStateClosed {
			p.closeOnce.Do(func() { close(p.Done) })
		}
	})

	if !initiator {
		conn.OnDataChannel(func(dc *webrtc.DataChannel) {
			p.attachChannel(dc)
		})
	}

	return p, nil
}

// Start begins negotiation. On the initiating side it creates the chat
// channel and sends the offer; the answering side just waits for
// signals.
func (p *Peer) Start() error {
	if !p.initiator {
		return nil
	}

	dc, err := p.conn.CreateDataChannel("chat", nil)
	if err != nil {
		return fmt.Errorf("create data channel: %w", err)
	}
	p.attachChannel(dc)

	offer, err := p.conn.CreateOffer(nil)
	if err != nil {
		return fmt.Errorf("create offer: %w", err)
	}
	if err := p.conn.SetLocalDescription(offer); err != nil {
		return fmt.Errorf("set local description: %w", err)
	}

	// Trickle ICE: candidates follow via OnICECandidate.
	p.sendSignal(&signaling.SignalPayload{Type: offer.Type.String(), SDP: offer.SDP})
	return nil
}

// HandleSignal feeds a relayed negotiation payload into the connection.
func (p *Peer) HandleSignal(payload *signaling.SignalPayload) error {
	switch {
	case payload.Type == webrtc.SDPTypeOffer.String():
		desc := webrtc.SessionDescription{Type: webrtc.SDPTypeOffer, SDP: payload.SDP}
		if err := p.conn.SetRemoteDescription(desc); err != nil {
			return fmt.Errorf("set remote offer: %w", err)
		}

		answer, err := p.conn.CreateAnswer(nil)
		if err != nil {
			return fmt.Errorf("create answer: %w", err)
		}
		if err := p.conn.SetLocalDescription(answer); err != nil {
			return fmt.Errorf("set local description: %w", err)
		}
		p.sendSignal(&signaling.SignalPayload{Type: answer.Type.String(), SDP: answer.SDP})
		return nil

	case payload.Type == webrtc.SDPTypeAnswer.String():
		desc := webrtc.SessionDescription{Type: webrtc.SDPTypeAnswer, SDP: payload.SDP}
		if err := p.conn.SetRemoteDescription(desc); err != nil {
			return fmt.Errorf("set remote answer: %w", err)
		}
		return nil

	case payload.Candidate != nil:
		var candidate webrtc.ICECandidateInit
		if err := json.Unmarshal(payload.Candidate, &candidate); err != nil {
			return fmt.Errorf("parse candidate: %w", err)
		}
		if err := p.conn.AddICECandidate(candidate); err != nil {
			return fmt.Errorf("add candidate: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("unexpected signal payload")
	}
}

func (p *Peer) attachChannel(dc *webrtc.DataChannel) {
	p.mu.Lock()
	p.channel = dc
	p.mu.Unlock()

	dc.OnOpen(func() {
		p.mu.Lock()
		p.ready = true
		p.mu.Unlock()
		p.openOnce.Do(func() { close(p.Opened) })
	})

	dc.OnClose(func() {
		p.mu.Lock()
		p.ready = false
		p.mu.Unlock()
	})

	dc.OnMessage(func(msg webrtc.DataChannelMessage) {
		frame, err := DecodeFrame(msg.Data)
		if err != nil {
			slog.Debug("undecodable data channel frame", "err", err)
			return
		}
		p.Incoming <- frame
	})
}

// Ready reports whether the chat channel is open.
func (p *Peer) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ready
}

// SendChat delivers a chat frame to the partner over the data channel.
func (p *Peer) SendChat(label, text string) error {
	p.mu.Lock()
	dc := p.channel
	ready := p.ready
	p.mu.Unlock()

	if dc == nil || !ready {
		return fmt.Errorf("chat channel not open")
	}

	data, err := EncodeFrame(NewChatFrame(label, text))
	if err != nil {
		return err
	}
	return dc.Send(data)
}

// Close tears the peer connection down.
func (p *Peer) Close() error {
	p.closeOnce.Do(func() { close(p.Done) })
	return p.conn.Close()
}
