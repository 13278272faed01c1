package ssh

import (
	"bytes"
	"testing"
	"time"

	gossh "github.com/gliderlabs/ssh"
)

// fakeSession implements the parts of gossh.Session the tty touches.
type fakeSession struct {
	gossh.Session
	in     *bytes.Buffer
	out    bytes.Buffer
	closed bool
}

func (f *fakeSession) Read(b []byte) (int, error)  { return f.in.Read(b) }
func (f *fakeSession) Write(b []byte) (int, error) { return f.out.Write(b) }
func (f *fakeSession) Close() error                { f.closed = true; return nil }

func TestSessionTtyPassesBytesThrough(t *testing.T) {
	s := &fakeSession{in: bytes.NewBufferString("wasd")}
	tty := NewSessionTty(s, gossh.Pty{Window: gossh.Window{Width: 80, Height: 24}}, nil)

	buf := make([]byte, 8)
	n, err := tty.Read(buf)
	if err != nil || string(buf[:n]) != "wasd" {
		t.Fatalf("Read = %q, %v", buf[:n], err)
	}
	if _, err := tty.Write([]byte("frame")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if s.out.String() != "frame" {
		t.Fatalf("session got %q", s.out.String())
	}
	if err := tty.Close(); err != nil || !s.closed {
		t.Fatalf("Close = %v, closed=%v", err, s.closed)
	}
}

func TestSessionTtyResize(t *testing.T) {
	winCh := make(chan gossh.Window)
	tty := NewSessionTty(&fakeSession{}, gossh.Pty{Window: gossh.Window{Width: 80, Height: 24}}, winCh)

	ws, _ := tty.WindowSize()
	if ws.Width != 80 || ws.Height != 24 {
		t.Fatalf("initial size = %dx%d", ws.Width, ws.Height)
	}

	resized := make(chan struct{}, 1)
	tty.NotifyResize(func() { resized <- struct{}{} })
	tty.NotifyResize(func() { resized <- struct{}{} }) // second call must not start another watcher

	winCh <- gossh.Window{Width: 120, Height: 40}
	select {
	case <-resized:
	case <-time.After(time.Second):
		t.Fatal("resize callback not called")
	}
	ws, _ = tty.WindowSize()
	if ws.Width != 120 || ws.Height != 40 {
		t.Fatalf("resized size = %dx%d", ws.Width, ws.Height)
	}
	close(winCh)
}
