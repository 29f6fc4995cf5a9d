// Package debug configures where the standard logger writes.
package debug

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options describes the rotating log file.
type Options struct {
	// File is the log path. Empty discards log output.
	File       string
	MaxSizeMB  int
	MaxAgeDays int
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// EnableLogging routes the standard logger to a rotating file. A terminal
// UI owns stdout, so logging anywhere else would corrupt the screen.
// Close the returned closer on exit.
func EnableLogging(o Options) (io.Closer, error) {
	if o.File == "" {
		log.SetOutput(io.Discard)
		return nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(o.File), 0o755); err != nil {
		return nil, err
	}
	w := &lumberjack.Logger{
		Filename: o.File,
		MaxSize:  o.MaxSizeMB,
		MaxAge:   o.MaxAgeDays,
	}
	log.SetOutput(w)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("[debug] logging to %s", o.File)
	return w, nil
}
