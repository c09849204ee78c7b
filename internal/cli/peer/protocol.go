package peer

import (
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Frame types carried over the chat data channel.
const (
	FrameChat = "chat"
)

// Frame is the msgpack-encoded envelope for data-channel messages.
type Frame struct {
	Type   string `msgpack:"type"`
	Label  string `msgpack:"label,omitempty"`
	Text   string `msgpack:"text,omitempty"`
	SentAt int64  `msgpack:"sentAt,omitempty"`
}

// NewChatFrame builds a chat frame stamped with the current time.
func NewChatFrame(label, text string) Frame {
	return Frame{
		Type:   FrameChat,
		Label:  label,
		Text:   text,
		SentAt: time.Now().Unix(),
	}
}

// EncodeFrame serializes a frame for the data channel.
func EncodeFrame(f Frame) ([]byte, error) {
	return msgpack.Marshal(f)
}

// DecodeFrame parses a data-channel message.
func DecodeFrame(data []byte) (Frame, error) {
	var f Frame
	err := msgpack.Unmarshal(data, &f)
	return f, err
}
