package main

import (
	"testing"
	"time"
)

func TestPadKey(t *testing.T) {
	for _, c := range []struct {
		r  rune
		k  int
		ok bool
	}{
		{'0', 0, true},
		{'9', 9, true},
		{'a', 0xa, true},
		{'f', 0xf, true},
		{'A', 0xa, true},
		{'F', 0xf, true},
		{'g', 0, false},
		{' ', 0, false},
		{'.', 0, false},
	} {
		k, ok := padKey(c.r)
		if k != c.k || ok != c.ok {
			t.Errorf("padKey(%q) = %d, %v; want %d, %v", c.r, k, ok, c.k, c.ok)
		}
	}
}

func TestKeyLatch(t *testing.T) {
	var l keyLatch
	if s := l.snapshot(); s != [16]bool{} {
		t.Errorf("fresh latch reports %v", s)
	}
	l.press(5)
	l.press(0xb)
	s := l.snapshot()
	for i, pressed := range s {
		want := i == 5 || i == 0xb
		if pressed != want {
			t.Errorf("key %x pressed = %v, want %v", i, pressed, want)
		}
	}
	l.until[5] = time.Now().Add(-time.Millisecond)
	if s := l.snapshot(); s[5] {
		t.Error("key 5 still pressed after its hold expired")
	}
}
