package signaling

import (
	"encoding/json"
	"testing"
	"time"
)

func newHandlerWithFeed() (*Handler, chan *Message) {
	client := &Client{incoming: make(chan *Message, 8)}
	return NewHandler(client), client.incoming
}

func TestHandlerRoutesEvents(t *testing.T) {
	h, feed := newHandlerWithFeed()
	go h.Start()

	feed <- &Message{Type: MessageTypeConnected, ID: "conn-1"}
	feed <- &Message{Type: MessageTypeMatchFound, RoomID: "a-b", PartnerID: "b"}
	feed <- &Message{Type: MessageTypeReceiveMessage, Text: "hello"}
	feed <- &Message{Type: MessageTypeSignal, Signal: json.RawMessage(`{"type":"offer","sdp":"v=0"}`)}
	feed <- &Message{Type: MessageTypePartnerLeft}

	if id := <-h.Connected; id != "conn-1" {
		t.Fatalf("unexpected id %s", id)
	}
	match := <-h.MatchFound
	if match.RoomID != "a-b" || match.PartnerID != "b" {
		t.Fatalf("unexpected match %+v", match)
	}
	if text := <-h.Chat; text != "hello" {
		t.Fatalf("unexpected chat %q", text)
	}
	sig := <-h.Signal
	if sig.Type != "offer" || sig.SDP != "v=0" {
		t.Fatalf("unexpected signal %+v", sig)
	}
	<-h.PartnerLeft
}

func TestHandlerIgnoresUnknownAndBadPayloads(t *testing.T) {
	h, feed := newHandlerWithFeed()
	go h.Start()

	feed <- &Message{Type: "no-such-event"}
	feed <- &Message{Type: MessageTypeSignal, Signal: json.RawMessage(`not json`)}
	close(feed)

	select {
	case <-h.Dropped:
	case <-time.After(time.Second):
		t.Fatal("handler did not signal drop after the feed closed")
	}

	select {
	case sig := <-h.Signal:
		t.Fatalf("undecodable signal should be dropped, got %+v", sig)
	default:
	}
}
