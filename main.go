package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/config"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/game"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/logging"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/recorder"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/world"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the arena config")
	record := flag.Bool("record", false, "record combat events with the configured backend")
	flag.Parse()

	// Load configuration
	cfg := config.MustLoadConfig(*configPath)
	log := logging.New(cfg.Logging, os.Stderr)

	fx := game.NewFxSink()
	w, err := world.New(cfg, world.WithEffects(fx), world.WithLogger(log))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build world")
	}
	w.Subscribe(logging.EventLogger(logging.WithSimTime(log, w)))

	var session *recorder.Session
	if *record {
		backend, err := recorder.NewBackend(cfg.Recorder, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create recorder")
		}
		if err := backend.Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to init recorder")
		}
		defer backend.Close()
		session, err = recorder.Attach(backend, w, "interactive", log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to start recording")
		}
	}

	// Set window properties from config
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.GetWindowTitle())
	ebiten.SetTPS(cfg.GetTickRate())

	g := game.NewGame(cfg, w, fx, log)
	if err := ebiten.RunGame(g); err != nil {
		log.Error().Err(err).Msg("Game stopped")
	}

	if session != nil {
		m, err := session.Finish()
		if err != nil {
			log.Error().Err(err).Msg("Failed to finish recording")
			return
		}
		log.Info().Uint("match", m.ID).Int("kills", m.Kills).Int("deaths", m.Deaths).Msg("Match recorded")
	}
}
