package main

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/nf/c8/chip8"
)

// ui renders the framebuffer in the terminal and feeds key events to
// the runner. Each character cell shows two pixels using the upper
// half block, so the 64x32 display occupies a 64x16 cell region.
type ui struct {
	app    *tview.Application
	screen tcell.Screen
	game   *tview.Box
	status *tview.TextView
	keys   *keyLatch
	ctrl   chan ctrlMsg

	mu    sync.Mutex
	frame frame
}

func newUI() (*ui, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	u := &ui{
		app:    tview.NewApplication(),
		screen: screen,
		status: tview.NewTextView(),
		keys:   &keyLatch{},
		ctrl:   make(chan ctrlMsg, 8),
	}
	u.game = tview.NewBox().SetDrawFunc(u.drawFrame)
	u.status.SetBackgroundColor(tcell.ColorDarkBlue)
	rows := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(u.game, chip8.ScreenHeight/2, 0, true).
		AddItem(u.status, 1, 0, false)
	u.app.
		SetScreen(screen).
		SetRoot(rows, true).
		SetInputCapture(u.input)
	return u, nil
}

var (
	pixelOn  = tcell.ColorWhite
	pixelOff = tcell.NewHexColor(0x111111)
)

func (u *ui) drawFrame(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	u.mu.Lock()
	f := u.frame
	u.mu.Unlock()

	pixel := func(col, row int) tcell.Color {
		if f.gfx[row*chip8.ScreenWidth+col] {
			return pixelOn
		}
		return pixelOff
	}
	for row := 0; row < chip8.ScreenHeight/2 && row < height; row++ {
		for col := 0; col < chip8.ScreenWidth && col < width; col++ {
			st := tcell.StyleDefault.
				Foreground(pixel(col, 2*row)).
				Background(pixel(col, 2*row+1))
			screen.SetContent(x+col, y+row, '▀', nil, st)
		}
	}
	return x, y, width, height
}

// show stores the frame for the next draw and schedules a redraw.
// Called from the runner goroutine.
func (u *ui) show(f frame) {
	u.mu.Lock()
	u.frame = f
	u.mu.Unlock()
	u.app.QueueUpdateDraw(func() {
		u.status.SetText(f.status)
	})
}

// beep sounds the terminal bell. Called from the runner goroutine.
func (u *ui) beep() {
	u.app.QueueUpdate(func() {
		u.screen.Beep()
	})
}

func (u *ui) input(ev *tcell.EventKey) *tcell.EventKey {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		u.app.Stop()
		return nil
	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case ' ':
			u.control(ctrlPause)
		case '.':
			u.control(ctrlStep)
		default:
			if k, ok := padKey(r); ok {
				u.keys.press(k)
			}
		}
		return nil
	}
	return ev
}

func (u *ui) control(kind ctrlKind) {
	// Drop rather than block: the input capture runs on the UI event
	// loop, which must never wait on the runner.
	select {
	case u.ctrl <- ctrlMsg{kind: kind}:
	default:
	}
}
