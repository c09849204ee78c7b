package relay

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. SDP offers for a video
	// call fit comfortably below this.
	maxMessageSize = 64 * 1024

	sendQueueSize = 256
)

// Client wraps a single websocket connection. The hub addresses it by its
// process-unique id, assigned at upgrade time and stable until disconnect.
type Client struct {
	// ID identifies the connection for its whole lifetime.
	ID string

	// Label is the display label supplied by the client at join time.
	// The relay stores it but never acts on it.
	Label string

	Hub  *Hub
	Conn *websocket.Conn

	// Send is the buffered channel of outbound messages, drained by the
	// write pump. The hub closes it on unregister.
	Send chan *Message
}

// ReadPump pumps messages from the websocket connection to the hub.
//
// There is at most one reader per connection; all reads happen on this
// goroutine. A read error (including a normal close) unregisters the
// client, which the hub treats as a skip for bookkeeping.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithField("conn", c.ID).WithError(errors.WithStack(err)).Debug("read failed")
			}
			break
		}

		// A frame that doesn't decode is dropped; only a transport
		// error ends the session.
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			logrus.WithField("conn", c.ID).WithError(err).Warn("malformed message dropped")
			continue
		}

		msg.sender = c
		c.Hub.Inbound <- &msg
	}
}

// WritePump pumps messages from the hub to the websocket connection and
// keeps the connection alive with periodic pings. There is at most one
// writer per connection; all writes happen on this goroutine.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteJSON(message); err != nil {
				logrus.WithField("conn", c.ID).WithError(errors.WithStack(err)).Debug("write failed")
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
