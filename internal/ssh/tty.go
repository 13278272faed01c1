// Package ssh adapts an SSH session into the terminal tcell draws on.
package ssh

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// SessionTty is a tcell.Tty over one gliderlabs session: keystrokes are read
// from the channel, frames are written back to it and window-change requests
// become resize notifications.
type SessionTty struct {
	sess  gossh.Session
	winCh <-chan gossh.Window

	mu       sync.Mutex
	win      gossh.Window
	onResize func()
	watching bool
}

// NewSessionTty starts from the window size of the PTY request.
func NewSessionTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *SessionTty {
	return &SessionTty{sess: s, win: pty.Window, winCh: winCh}
}

func (t *SessionTty) Read(b []byte) (int, error)  { return t.sess.Read(b) }
func (t *SessionTty) Write(b []byte) (int, error) { return t.sess.Write(b) }
func (t *SessionTty) Close() error                { return t.sess.Close() }

// Start, Stop and Drain have nothing to do: the server owns the channel.
func (t *SessionTty) Start() error { return nil }
func (t *SessionTty) Stop() error  { return nil }
func (t *SessionTty) Drain() error { return nil }

func (t *SessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.win.Width, Height: t.win.Height}, nil
}

// NotifyResize sets the resize callback. The first call starts watching the
// window-change channel until the session closes it.
func (t *SessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.onResize = cb
	start := !t.watching && t.winCh != nil
	t.watching = true
	t.mu.Unlock()
	if start {
		go t.watch()
	}
}

func (t *SessionTty) watch() {
	for w := range t.winCh {
		t.mu.Lock()
		t.win = w
		cb := t.onResize
		t.mu.Unlock()
		if cb != nil {
			cb()
		}
	}
}
