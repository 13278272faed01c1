// rogue-gui is the windowed build of medieval-rogue.
//
//	go build -o rogue-gui ./cmd/rogue-gui
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"medieval-rogue/internal/audio"
	"medieval-rogue/internal/combat"
	"medieval-rogue/internal/config"
	"medieval-rogue/internal/gui"
	"medieval-rogue/internal/save"
)

func main() {
	defPath, _ := config.DefaultPath()
	cfgPath := flag.String("config", defPath, "path to the YAML config file")
	slot := flag.String("slot", "local", "save slot")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(log)

	if err := run(*cfgPath, *slot, log); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath, slot string, log *slog.Logger) error {
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

	cues := audio.New(settings.Audio, log)
	defer cues.Close()

	app, err := gui.New(gui.Options{
		Settings: settings,
		Store:    store,
		Slot:     slot,
		Cues:     cues,
		Logger:   log,
	})
	if err != nil {
		return err
	}
	return app.Run()
}
