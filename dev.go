package main

import (
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"
)

// watchROM watches romFile and sends a swap message whenever it
// changes, debounced so that a ROM still being written is read once,
// after the writes settle. The returned stop function releases the
// watcher.
func watchROM(romFile string, ctrl chan<- ctrlMsg) (stop func(), err error) {
	romFile = filepath.Clean(romFile)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(filepath.Dir(romFile)); err != nil {
		watcher.Close()
		return nil, err
	}

	done := make(chan bool)
	go func() {
		defer watcher.Close()
		var reload <-chan time.Time
		for {
			select {
			case <-reload:
				rom, err := readROM(romFile)
				if err != nil {
					ctrl <- ctrlMsg{kind: ctrlNote, text: err.Error()}
					continue
				}
				ctrl <- ctrlMsg{kind: ctrlSwap, rom: rom}
			case ev := <-watcher.Event:
				if ev.Name == romFile && !ev.IsAttrib() {
					reload = time.After(100 * time.Millisecond)
				}
			case err := <-watcher.Error:
				ctrl <- ctrlMsg{kind: ctrlNote, text: "watcher: " + err.Error()}
			case <-done:
				return
			}
		}
	}()
	return func() { close(done) }, nil
}
