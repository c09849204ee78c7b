package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/campusconnect/campusconnect/internal/relay"
)

type testConn struct {
	t  *testing.T
	ws *websocket.Conn
	id string
}

func dialRelay(t *testing.T, url string) *testConn {
	t.Helper()
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { ws.Close() })

	c := &testConn{t: t, ws: ws}
	msg := c.read()
	if msg.Type != relay.EventConnected || msg.ID == "" {
		t.Fatalf("expected connected event, got %+v", msg)
	}
	c.id = msg.ID
	return c
}

func (c *testConn) read() *relay.Message {
	c.t.Helper()
	c.ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg relay.Message
	if err := c.ws.ReadJSON(&msg); err != nil {
		c.t.Fatalf("read: %v", err)
	}
	return &msg
}

func (c *testConn) write(msg *relay.Message) {
	c.t.Helper()
	if err := c.ws.WriteJSON(msg); err != nil {
		c.t.Fatalf("write: %v", err)
	}
}

func startRelay(t *testing.T) string {
	t.Helper()
	hub := relay.NewHub()
	go hub.Run()

	srv := httptest.NewServer(ServeWs(hub))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestEndToEndPairingAndRelay(t *testing.T) {
	url := startRelay(t)

	alice := dialRelay(t, url)
	bob := dialRelay(t, url)

	alice.write(&relay.Message{Type: relay.EventJoinRoom, Label: "alice@college.edu"})
	// Give the relay a moment so alice is queued before bob joins.
	time.Sleep(50 * time.Millisecond)
	bob.write(&relay.Message{Type: relay.EventJoinRoom})

	am := alice.read()
	bm := bob.read()
	if am.Type != relay.EventMatchFound || bm.Type != relay.EventMatchFound {
		t.Fatalf("expected match-found on both sides: %+v / %+v", am, bm)
	}
	if am.RoomID != bm.RoomID {
		t.Fatalf("room ids differ: %s vs %s", am.RoomID, bm.RoomID)
	}
	if am.RoomID != alice.id+"-"+bob.id {
		t.Fatalf("room id should be partner-then-requester, got %s", am.RoomID)
	}
	if am.PartnerID != bob.id || bm.PartnerID != alice.id {
		t.Fatalf("partner ids inconsistent")
	}

	// Opaque signal forwarding, byte-for-byte.
	sig := json.RawMessage(`{"type":"offer","sdp":"v=0\r\n"}`)
	alice.write(&relay.Message{Type: relay.EventSignal, Room: am.RoomID, Signal: sig})
	got := bob.read()
	if got.Type != relay.EventSignal || string(got.Signal) != string(sig) {
		t.Fatalf("signal mangled: %+v", got)
	}

	// Chat relay.
	bob.write(&relay.Message{Type: relay.EventSendMessage, Room: am.RoomID, Text: "hey"})
	chat := alice.read()
	if chat.Type != relay.EventReceiveMessage || chat.Text != "hey" {
		t.Fatalf("chat mangled: %+v", chat)
	}

	// Skip notifies exactly the partner.
	bob.write(&relay.Message{Type: relay.EventSkipPartner})
	left := alice.read()
	if left.Type != relay.EventPartnerLeft {
		t.Fatalf("expected partner-left, got %+v", left)
	}
}

func TestMalformedFrameDoesNotEndSession(t *testing.T) {
	url := startRelay(t)

	alice := dialRelay(t, url)
	bob := dialRelay(t, url)

	alice.write(&relay.Message{Type: relay.EventJoinRoom})
	time.Sleep(50 * time.Millisecond)
	bob.write(&relay.Message{Type: relay.EventJoinRoom})
	am := alice.read()
	bob.read()

	// Garbage from alice is dropped; the pairing stays alive and the
	// next chat message still goes through.
	if err := alice.ws.WriteMessage(websocket.TextMessage, []byte("not json at all")); err != nil {
		t.Fatalf("write garbage: %v", err)
	}
	alice.write(&relay.Message{Type: relay.EventSendMessage, Room: am.RoomID, Text: "still here"})

	got := bob.read()
	if got.Type == relay.EventPartnerLeft {
		t.Fatal("one malformed frame ended the session")
	}
	if got.Type != relay.EventReceiveMessage || got.Text != "still here" {
		t.Fatalf("expected chat after garbage frame, got %+v", got)
	}
}

func TestEndToEndDisconnectNotifiesPartner(t *testing.T) {
	url := startRelay(t)

	alice := dialRelay(t, url)
	bob := dialRelay(t, url)

	alice.write(&relay.Message{Type: relay.EventJoinRoom})
	time.Sleep(50 * time.Millisecond)
	bob.write(&relay.Message{Type: relay.EventJoinRoom})
	alice.read()
	bob.read()

	bob.ws.Close()

	left := alice.read()
	if left.Type != relay.EventPartnerLeft {
		t.Fatalf("expected partner-left after disconnect, got %+v", left)
	}
}

func TestHealthEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	Health(rec, httptest.NewRequest("GET", "/health", nil))
	if rec.Code != 200 {
		t.Fatalf("unexpected status %d", rec.Code)
	}
}
