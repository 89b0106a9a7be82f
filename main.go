package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode (physics overlay, agent stats, C copies the path)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "level name from levels/sequence.yaml to start on (.json optional)")
	verbose := flag.Bool("v", false, "log at debug level")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("coinpath")

	game, err := NewGame(GameConfig{
		LevelName: *levelName,
		Debug:     *debug,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("failed to start", "err", err)
		os.Exit(1)
	}

	err = ebiten.RunGame(game)
	game.Close()
	if err != nil {
		logger.Error("game stopped", "err", err)
		os.Exit(1)
	}
}
