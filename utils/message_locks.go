package utils

import "sync"

// messageLock is a mutex shared by every handler working on one message.
type messageLock struct {
	mu   sync.Mutex
	refs int
}

// MessageLocks serializes work per message ID. Entries exist only while
// someone holds or waits for them.
type MessageLocks struct {
	locks map[string]*messageLock
	mutex sync.Mutex
}

// NewMessageLocks creates an empty lock table.
func NewMessageLocks() *MessageLocks {
	return &MessageLocks{locks: make(map[string]*messageLock)}
}

// Lock blocks until the caller owns messageID and returns the release func.
func (ml *MessageLocks) Lock(messageID string) (unlock func()) {
	ml.mutex.Lock()
	l, exists := ml.locks[messageID]
	if !exists {
		l = &messageLock{}
		ml.locks[messageID] = l
	}
	l.refs++
	ml.mutex.Unlock()

	l.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Unlock()

			ml.mutex.Lock()
			l.refs--
			if l.refs == 0 {
				delete(ml.locks, messageID)
			}
			ml.mutex.Unlock()
		})
	}
}

// Len returns how many messages currently have holders or waiters.
func (ml *MessageLocks) Len() int {
	ml.mutex.Lock()
	defer ml.mutex.Unlock()
	return len(ml.locks)
}
