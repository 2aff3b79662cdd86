// Package logging sets up the application logger: a rotating file plus
// a channel feeding the in-app log pane.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lowaak/circuit-coach/internal/config"
)

// uiLogChanBuffer sizes the UI tee channel; lines beyond it are dropped
// rather than blocking a log call.
const uiLogChanBuffer = 256

// chanWriter tees formatted log lines into a channel for the UI pane.
type chanWriter struct {
	ch chan string
}

func (w *chanWriter) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")
	stamped := fmt.Sprintf("[%s] %s\n", time.Now().Format("15:04:05"), line)
	select {
	case w.ch <- stamped:
	default:
		// UI is not draining, drop the line for the pane only
	}
	return len(p), nil
}

// New builds the application logger. Log lines go to a size-rotated
// file and, line by line, to the returned channel for display in the
// UI log pane.
func New(cfg config.LogConfig) (*log.Logger, <-chan string) {
	file := cfg.File
	if file == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = "."
		}
		file = filepath.Join(homeDir, ".circuit-coach", "circuit-coach.log")
	}

	rotator := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}

	uiChan := make(chan string, uiLogChanBuffer)
	sink := io.MultiWriter(rotator, &chanWriter{ch: uiChan})

	logger := log.New(sink, "", log.LstdFlags)
	return logger, uiChan
}
