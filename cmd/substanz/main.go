package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/darkbibni/Substanz/internal/config"
	"github.com/darkbibni/Substanz/internal/core"
	"github.com/darkbibni/Substanz/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "path to substanz.yaml")
	level := flag.String("level", "", "level file, overrides game.level")
	flag.Parse()

	// Загружаем конфигурацию
	loader, err := config.NewLoader(*configPath)
	var cfg *config.Config
	if err != nil {
		slog.Warn("Не удалось загрузить конфигурацию, используется конфигурация по умолчанию", "err", err)
		cfg = config.DefaultConfig()
	} else {
		current := *loader.Current()
		cfg = &current
	}
	if *level != "" {
		cfg.Game.Level = *level
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		logger.Warn("logging config ignored", "err", err)
	}
	slog.SetDefault(logger)

	// Создаем игру
	game, err := core.NewGame(cfg, logger)
	if err != nil {
		fmt.Printf("Ошибка создания игры: %v\n", err)
		os.Exit(1)
	}
	if loader != nil {
		loader.SetLogger(logger)
		game.Watch(loader)
	}

	// Запускаем игру
	if err := game.Run(); err != nil {
		fmt.Printf("Ошибка во время игры: %v\n", err)
		os.Exit(1)
	}
}
