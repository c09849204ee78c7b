package peer

import "testing"

func TestChatFrameRoundTrip(t *testing.T) {
	f := NewChatFrame("alice@college.edu", "hey, what's your major?")

	data, err := EncodeFrame(f)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := DecodeFrame(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Type != FrameChat || got.Label != f.Label || got.Text != f.Text {
		t.Fatalf("frame altered in transit: %+v", got)
	}
	if got.SentAt == 0 {
		t.Fatal("chat frame should carry a timestamp")
	}
}

func TestDecodeFrameRejectsGarbage(t *testing.T) {
	if _, err := DecodeFrame([]byte{0xc1, 0x00}); err == nil {
		t.Fatal("expected error for invalid msgpack")
	}
}

func TestInitiates(t *testing.T) {
	if !Initiates("aaa", "bbb") {
		t.Fatal("smaller id should initiate")
	}
	if Initiates("bbb", "aaa") {
		t.Fatal("larger id should answer")
	}
	// Exactly one side initiates for any pair of distinct ids.
	if Initiates("x", "y") == Initiates("y", "x") {
		t.Fatal("both or neither side would initiate")
	}
}
