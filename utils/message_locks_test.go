package utils

import (
	"sync"
	"testing"
	"time"
)

func TestMessageLocksSerializeSameMessage(t *testing.T) {
	locks := NewMessageLocks()

	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("msg-1")
			defer unlock()
			v := counter
			time.Sleep(time.Microsecond)
			counter = v + 1
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Errorf("Expected 50 serialized increments, got %d", counter)
	}
	if locks.Len() != 0 {
		t.Errorf("Expected lock table to drain, got %d entries", locks.Len())
	}
}

func TestMessageLocksIndependentMessages(t *testing.T) {
	locks := NewMessageLocks()
	unlockA := locks.Lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := locks.Lock("b")
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Expected lock on another message not to block")
	}
}

func TestMessageLocksUnlockIsIdempotent(t *testing.T) {
	locks := NewMessageLocks()
	unlock := locks.Lock("a")
	unlock()
	unlock()

	if locks.Len() != 0 {
		t.Errorf("Expected 0 entries, got %d", locks.Len())
	}

	relock := locks.Lock("a")
	relock()
}
