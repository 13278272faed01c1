// rogue-server serves medieval-rogue over SSH. Every connection plays its
// own run; saves, profiles and highscores live in the shared store, one slot
// per SSH user. Build:
//
//	go build -o rogue-server ./cmd/server
//
// Usage:
//
//	./rogue-server [-port 2222] [-key server_host_key] [-config path]
//
// Connect with:
//
//	ssh -t -p 2222 localhost
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"

	"medieval-rogue/internal/combat"
	"medieval-rogue/internal/config"
	"medieval-rogue/internal/game"
	"medieval-rogue/internal/save"
	internalssh "medieval-rogue/internal/ssh"
)

// maxNameBytes bounds the user name used for the save slot.
const maxNameBytes = 16

// allowedTerms lists the TERM values handed to terminfo.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode-256color": true,
}

// termMu protects os.Setenv("TERM") around screen creation.
var termMu sync.Mutex

func main() {
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "path to the PEM host key (generated if absent)")
	defPath, _ := config.DefaultPath()
	cfgPath := flag.String("config", defPath, "path to the YAML config file")
	flag.Parse()

	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(log)

	if err := serve(*port, *keyFile, *cfgPath, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func serve(port int, keyFile, cfgPath string, log *slog.Logger) error {
	settings, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := combat.ValidateTables(); err != nil {
		return fmt.Errorf("data tables: %w", err)
	}
	store, err := save.Open(settings.Storage.Dir, settings.Storage.PostgresDSN)
	if err != nil {
		return fmt.Errorf("open save store: %w", err)
	}
	defer store.Close()

	signer, err := loadOrCreateHostKey(keyFile, log)
	if err != nil {
		return err
	}

	h := &handler{settings: settings, store: store, log: log}
	srv := &gossh.Server{
		Addr:        fmt.Sprintf(":%d", port),
		Handler:     h.handleSession,
		PtyCallback: func(gossh.Context, gossh.Pty) bool { return true },
		HostSigners: []gossh.Signer{signer},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			log.Warn("shutdown", "error", err)
		}
	}()

	log.Info("listening", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, gossh.ErrServerClosed) {
		return err
	}
	return nil
}

type handler struct {
	settings config.Settings
	store    save.Store
	log      *slog.Logger
}

// handleSession runs one game for the connection and returns when it ends.
func (h *handler) handleSession(s gossh.Session) {
	pty, winCh, hasPTY := s.Pty()
	if !hasPTY {
		fmt.Fprintln(s, "This game requires a PTY. Connect with: ssh -t -p 2222 <host>")
		return
	}
	term := pty.Term
	if !allowedTerms[term] {
		term = "xterm-256color"
	}
	slot := slotFor(s.User())
	log := h.log.With("user", slot, "remote", s.RemoteAddr().String())

	tty := internalssh.NewSessionTty(s, pty, winCh)
	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(s, "Screen init failed: %v\n", err)
		return
	}
	screen.EnableMouse()

	g, err := game.New(screen, h.gameOptions(slot, log))
	if err != nil {
		screen.Fini()
		log.Error("new game", "error", err)
		return
	}
	log.Info("session started", "term", term)
	if err := g.Run(s.Context()); err != nil {
		log.Warn("session ended", "error", err)
		return
	}
	log.Info("session ended")
}

// gameOptions configures the game for one session. Run logs go next to the
// store's files.
func (h *handler) gameOptions(slot string, log *slog.Logger) game.Options {
	return game.Options{
		Settings: h.settings,
		Store:    h.store,
		Slot:     slot,
		DataDir:  h.settings.Storage.Dir,
		Logger:   log,
	}
}

// sanitizeName strips control characters and truncates to maxNameBytes
// without splitting a rune.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsControl(r) {
			continue
		}
		if b.Len()+len(string(r)) > maxNameBytes {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// slotFor maps an SSH user to a save slot.
func slotFor(user string) string {
	name := strings.NewReplacer("/", "_", `\`, "_").Replace(sanitizeName(user))
	if name == "" || name == "." || name == ".." {
		name = "guest"
	}
	return "ssh-" + name
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key when the file is absent or unreadable.
func loadOrCreateHostKey(path string, log *slog.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.Info("loaded host key", "path", path)
			return signer, nil
		}
	}

	log.Info("generating host key", "path", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	block, err := xssh.MarshalPrivateKey(key, "medieval-rogue server")
	if err != nil {
		return nil, fmt.Errorf("marshal host key: %w", err)
	}
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
		log.Warn("persist host key", "path", path, "error", err)
	}
	return signer, nil
}
