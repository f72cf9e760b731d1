package net_test

import (
	"testing"
	"time"

	boardnet "InkBoard/internal/net"
)

func TestBrowse_ReturnsAfterLookupWindow(t *testing.T) {
	// Whether or not any board answers (or multicast works at all in the
	// test environment), Browse must hand back control once the lookup
	// window passes instead of leaving its collector ranging forever.
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = boardnet.Browse(func(string) {})
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Browse did not return after the lookup window")
	}
}
