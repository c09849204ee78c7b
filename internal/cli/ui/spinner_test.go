package ui

import (
	"testing"
	"time"
)

func TestSpinnerStopEndsPrinting(t *testing.T) {
	s := NewSearchSpinner("searching")
	s.Start()
	s.Stop()

	select {
	case <-s.done:
	case <-time.After(time.Second):
		t.Fatal("stop did not end the spinner goroutine")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := NewSearchSpinner("searching")
	s.Start()
	s.Stop()
	// A second stop must not panic on the closed channel.
	s.Stop()
}

func TestStopFuncSafeWithoutStart(t *testing.T) {
	// Callers hold stop functions across state changes; stopping a
	// spinner that never started printing must be safe too.
	stop := func() { NewConnectionSpinner("connecting").Stop() }
	stop()
}
