package utils

import (
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger configures the global logger. When logFile is set, JSON lines are
// also appended to it. The returned closer releases the file.
func InitLogger(debug bool, logFile string) (func() error, error) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	var out io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.DateTime,
	}
	closer := func() error { return nil }
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return closer, err
		}
		out = zerolog.MultiLevelWriter(out, f)
		closer = f.Close
	}
	log.Logger = zerolog.New(out).With().Timestamp().Str("run", uuid.NewString()).Logger()
	return closer, nil
}
