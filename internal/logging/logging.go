// Package logging builds the zerolog loggers used by the binaries and turns
// world events into log lines.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/config"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/world"
)

// ParseLevel maps a config level name to a zerolog level. Unknown names
// fall back to info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToUpper(name) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "DISABLED", "OFF":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New creates a timestamped logger writing to out (stderr when nil). With
// Console set the output is human readable instead of JSON.
func New(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stderr
	}
	if cfg.Console {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	return zerolog.New(out).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// WithSimTime stamps every line with the simulation clock of w.
func WithSimTime(log zerolog.Logger, w *world.World) zerolog.Logger {
	return log.Hook(zerolog.HookFunc(func(e *zerolog.Event, level zerolog.Level, msg string) {
		e.Float64("sim_time", w.Now()).Uint64("tick", w.Clock().Ticks())
	}))
}

// EventLogger returns a world subscriber that logs combat events. Deaths,
// charges and revives go to debug; the chattier kinds go to trace.
func EventLogger(log zerolog.Logger) func(world.Event) {
	return func(ev world.Event) {
		var e *zerolog.Event
		switch ev.Kind {
		case world.EventDeath, world.EventRevive, world.EventChargeStarted,
			world.EventChargeRetargeted, world.EventChargeEnded, world.EventPickup:
			e = log.Debug()
		default:
			e = log.Trace()
		}
		e = e.Str("kind", ev.Kind.String()).
			Stringer("entity", ev.Entity).
			Str("archetype", ev.Archetype)
		if ev.Source.Valid() {
			e = e.Stringer("source", ev.Source)
		}
		if ev.Amount != 0 {
			e = e.Int("amount", ev.Amount)
		}
		if ev.Detail != "" {
			e = e.Str("detail", ev.Detail)
		}
		e.Msg("event")
	}
}
