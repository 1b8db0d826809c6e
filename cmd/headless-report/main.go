// Command headless-report plays seeded matches without a window, driving the
// player with a simple bot, and prints a combat summary. Events can be stored
// in SQLite for later analysis.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/config"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/logging"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/recorder"
)

func main() {
	settingsFile := flag.String("settings", "", "optional settings file (yaml, json or toml)")
	flag.Parse()

	s, err := loadSettings(newViper(), *settingsFile)
	if err != nil {
		l := logging.New(config.LoggingConfig{Console: true}, os.Stderr)
		l.Fatal().Err(err).Msg("Invalid settings")
	}

	cfg := config.MustLoadConfig(s.Config)
	logCfg := cfg.Logging
	logCfg.Level = s.LogLevel
	log := logging.New(logCfg, os.Stderr)

	recCfg := cfg.Recorder
	if s.Recorder != "" {
		recCfg.Backend = s.Recorder
	}
	if s.DSN != "" {
		recCfg.DSN = cfg.AssetPath(s.DSN)
	}
	backend, err := recorder.NewBackend(recCfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create recorder")
	}
	if err := backend.Init(); err != nil {
		log.Fatal().Err(err).Msg("Failed to init recorder")
	}

	sh, err := loadShared(cfg, backend, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load assets")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	log.Info().Int("runs", s.Runs).Dur("duration", s.Duration).Str("recorder", recCfg.Backend).Msg("Starting batch")
	results, err := runBatch(ctx, sh, s)
	closeErr := backend.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("Batch failed")
	}
	if closeErr != nil {
		log.Error().Err(closeErr).Msg("Failed to close recorder")
	}
	writeReport(os.Stdout, results)
}
