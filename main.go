// medieval-rogue is the terminal build: a real-time twin-stick dungeon
// crawler drawn with emoji.
//
//	go build -o medieval-rogue .
//	./medieval-rogue [-config path] [-slot name]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"medieval-rogue/internal/audio"
	"medieval-rogue/internal/combat"
	"medieval-rogue/internal/config"
	"medieval-rogue/internal/game"
	"medieval-rogue/internal/save"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	defPath, _ := config.DefaultPath()
	cfgPath := flag.String("config", defPath, "path to the YAML config file")
	slot := flag.String("slot", "local", "save slot")
	flag.Parse()

	settings, err := config.Load(*cfgPath)
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

	// the terminal belongs to the game; logs go to a file next to the saves
	dataDir := settings.Storage.Dir
	if dataDir == "" {
		if dataDir, err = save.DataDir(); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	logFile, err := os.OpenFile(filepath.Join(dataDir, "game.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	log := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(log)

	cues := audio.New(settings.Audio, log)
	defer cues.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()

	g, err := game.New(screen, game.Options{
		Settings: settings,
		Store:    store,
		Slot:     *slot,
		DataDir:  dataDir,
		Cues:     cues,
		Logger:   log,
	})
	if err != nil {
		screen.Fini()
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return g.Run(ctx)
}
