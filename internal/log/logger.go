// Package log wraps zerolog with the CamGo debug levels.
package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Debug levels, as used by defaults.debug_level in the config file.
const (
	LevelOff     = 0 // No output
	LevelInfo    = 1 // Important info (startup, saved paths)
	LevelLive    = 2 // Live info (each capture)
	LevelVerbose = 3 // Verbose (request details, backend steps)
	LevelTrace   = 4 // Trace (GPIO, very low level)
)

// Config captures options for configuring the global logger.
type Config struct {
	DebugLevel int       // 0-4, see the Level constants
	Output     io.Writer // defaults to os.Stdout
	Service    string    // attached to every entry, defaults to "camgo"
}

var (
	mu   sync.RWMutex
	base = zerolog.Nop()
)

// Configure replaces the global logger. It is called once at startup;
// tests may call it again to capture output.
func Configure(cfg Config) {
	w := cfg.Output
	if w == nil {
		w = os.Stdout
	}
	service := cfg.Service
	if service == "" {
		service = "camgo"
	}

	// Filtering happens per logger; the global floor must not hide trace.
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	zerolog.TimeFieldFormat = time.RFC3339Nano
	l := zerolog.New(w).
		Level(ZerologLevel(cfg.DebugLevel)).
		With().
		Timestamp().
		Str("service", service).
		Logger()

	mu.Lock()
	base = l
	mu.Unlock()
}

// ZerologLevel maps a 0-4 debug level onto a zerolog level. Live and
// verbose both map to debug, so levels 2 and 3 produce the same output.
func ZerologLevel(debugLevel int) zerolog.Level {
	switch {
	case debugLevel <= LevelOff:
		return zerolog.Disabled
	case debugLevel == LevelInfo:
		return zerolog.InfoLevel
	case debugLevel < LevelTrace:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// Base returns the configured base logger.
func Base() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// WithComponent returns a child logger annotated with the given component name.
func WithComponent(component string) zerolog.Logger {
	return Base().With().Str(FieldComponent, component).Logger()
}
