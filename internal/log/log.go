// Package log wires zerolog to stderr, so engine diagnostics never collide
// with the UCI stdout stream. Grounded on domino14-macondo's
// cmd/ucgi_cli/main.go debug-level wiring.
package log

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is the process-wide zerolog instance. info level by default;
// SetDebug(true) (the UCI `debug on` handler) drops it to debug.
var Logger = zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger()

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// SetDebug toggles between info and debug level, the two levels the UCI
// `debug on|off` command distinguishes.
func SetDebug(on bool) {
	if on {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		Logger = Logger.Level(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		Logger = Logger.Level(zerolog.InfoLevel)
	}
}
