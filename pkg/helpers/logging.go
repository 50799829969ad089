package helpers

import (
	"io"
	"os"
	"path/filepath"

	"github.com/PitDeckProject/pitdeck/pkg/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// InitLogging sets up the global zerolog logger writing to a rotated log
// file in tempDir, plus any extra writers (e.g. a console writer).
func InitLogging(tempDir string, writers []io.Writer) error {
	err := os.MkdirAll(tempDir, 0o750)
	if err != nil {
		return err
	}

	logWriters := []io.Writer{&lumberjack.Logger{
		Filename:   filepath.Join(tempDir, config.LogFile),
		MaxSize:    1,
		MaxBackups: 2,
	}}

	if len(writers) > 0 {
		logWriters = append(logWriters, writers...)
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	log.Logger = log.Output(io.MultiWriter(logWriters...)).
		With().Timestamp().Caller().Logger()

	return nil
}
