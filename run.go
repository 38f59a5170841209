package main

import (
	"fmt"
	"time"

	"github.com/nf/c8/chip8"
)

// refreshRate is the frame rate of the front-end; each frame the
// runner executes hz/refreshRate machine ticks.
const refreshRate = 60

type options struct {
	hz     int
	dev    bool
	quirks chip8.Quirks
}

type ctrlKind int

const (
	ctrlPause ctrlKind = iota // toggle pause
	ctrlStep                  // execute one tick while paused
	ctrlSwap                  // replace the machine with a fresh ROM
	ctrlNote                  // show a transient message in the status bar
)

type ctrlMsg struct {
	kind ctrlKind
	rom  []byte
	text string
}

// frame is the hand-off unit between the runner and the UI: a copy of
// the framebuffer plus the rendered status line. The runner never
// shares the live Machine with the UI goroutine.
type frame struct {
	gfx    [chip8.ScreenWidth * chip8.ScreenHeight]bool
	status string
}

func run(romFile string, opts options) error {
	rom, err := readROM(romFile)
	if err != nil {
		return err
	}

	ui, err := newUI()
	if err != nil {
		return err
	}

	r := &runner{
		opts: opts,
		ui:   ui,
		done: make(chan error, 1),
	}

	if opts.dev {
		stop, err := watchROM(romFile, ui.ctrl)
		if err != nil {
			return err
		}
		defer stop()
	}

	go r.loop(rom)
	if err := ui.app.Run(); err != nil {
		return err
	}
	select {
	case err := <-r.done:
		return err
	default:
		return nil
	}
}

type runner struct {
	opts options
	ui   *ui
	done chan error

	note      string
	noteUntil time.Time
}

// loop owns the Machine exclusively. The UI reaches it only through
// the key latch, the control channel, and published frame copies.
func (r *runner) loop(rom []byte) {
	m := r.newMachine(rom)
	t := time.NewTicker(time.Second / refreshRate)
	defer t.Stop()

	paused := false
	for {
		select {
		case c := <-r.ui.ctrl:
			switch c.kind {
			case ctrlPause:
				paused = !paused
			case ctrlStep:
				if paused && !r.step(m, 1) {
					return
				}
			case ctrlSwap:
				m = r.newMachine(c.rom)
				r.setNote("rom reloaded")
			case ctrlNote:
				r.setNote(c.text)
			}
			r.publish(m, paused)
		case <-t.C:
			if !paused && !r.step(m, r.opts.hz/refreshRate) {
				return
			}
			r.publish(m, paused)
		}
	}
}

func (r *runner) newMachine(rom []byte) *chip8.Machine {
	m := chip8.NewMachine(rom)
	m.Quirks = r.opts.quirks
	return m
}

// step samples the key latch into the machine and executes n ticks,
// sounding the bell if a beep fell due. It reports whether the
// session may continue.
func (r *runner) step(m *chip8.Machine, n int) bool {
	m.Keys = r.ui.keys.snapshot()
	for i := 0; i < n; i++ {
		if err := m.Tick(); err != nil {
			r.done <- err
			r.ui.app.Stop()
			return false
		}
	}
	if m.Beep {
		m.Beep = false
		r.ui.beep()
	}
	return true
}

func (r *runner) publish(m *chip8.Machine, paused bool) {
	r.ui.show(frame{gfx: m.GFX, status: r.status(m, paused)})
}

func (r *runner) setNote(text string) {
	r.note = text
	r.noteUntil = time.Now().Add(3 * time.Second)
}

func (r *runner) status(m *chip8.Machine, paused bool) string {
	state := "run"
	if paused {
		state = "pause"
	}
	text := "???"
	if int(m.PC)+1 < len(m.Mem) {
		text = decodeText(m.Opcode())
	}
	s := fmt.Sprintf(" %-5s %4d Hz  %.4x %-14s", state, r.opts.hz, m.PC, text)
	if time.Now().Before(r.noteUntil) {
		return s + "  " + r.note
	}
	return s + "  space pauses, . steps, esc quits"
}
