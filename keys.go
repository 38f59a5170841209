package main

import (
	"sync"
	"time"
)

// Terminals report key presses but never releases, so the latch holds
// each pad key down for a short window after its last event. ROMs
// that poll key state see a held key for keyHold; ROMs that wait for
// a key see it at the next tick batch.
const keyHold = 100 * time.Millisecond

type keyLatch struct {
	mu    sync.Mutex
	until [16]time.Time
}

// press records a pad key event. Called from the UI event loop.
func (l *keyLatch) press(k int) {
	l.mu.Lock()
	l.until[k] = time.Now().Add(keyHold)
	l.mu.Unlock()
}

// snapshot returns the full pressed state of the pad, suitable for
// assigning to Machine.Keys wholesale. Called from the runner.
func (l *keyLatch) snapshot() (keys [16]bool) {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, t := range l.until {
		keys[i] = now.Before(t)
	}
	return keys
}

// padKey maps a keyboard rune to its CHIP-8 pad value: the digits and
// a-f mirror the hex pad directly.
func padKey(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10, true
	}
	return 0, false
}
