// Copyright (c) 2026 The Botcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"

	"github.com/toole-brendan/shell/chaincfg/upgrade"
	"github.com/toole-brendan/shell/indexer"
	"github.com/toole-brendan/shell/mining/randomx"
)

// logRotator pins the rotating log file open for the life of the process.
var logRotator *rotator.Rotator

// logWriter implements io.Writer so that a btclog backend can fan out to
// both stdout and the rotator simultaneously.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	os.Stdout.Write(p)
	if logRotator != nil {
		logRotator.Write(p)
	}
	return len(p), nil
}

// initLogRotator opens (creating if necessary) the rotating log file under
// logDir, capped at 10MB per file with three rotations kept.
func initLogRotator(logDir string) error {
	if err := os.MkdirAll(logDir, 0o700); err != nil {
		return err
	}
	logFile := filepath.Join(logDir, defaultLogFilename)

	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		return err
	}
	logRotator = r
	return nil
}

// useLogger wires every package that follows the btclog.Logger convention
// to a single backend, so one --debuglevel flag controls the whole node.
func useLogger(level btclog.Level) {
	backend := btclog.NewBackend(logWriter{})

	randomxLog := backend.Logger("RNDX")
	randomxLog.SetLevel(level)
	randomx.UseLogger(randomxLog)

	upgradeLog := backend.Logger("UPGD")
	upgradeLog.SetLevel(level)
	upgrade.UseLogger(upgradeLog)

	indexerLog := backend.Logger("INDX")
	indexerLog.SetLevel(level)
	indexer.UseLogger(indexerLog)
}

// parseLogLevel maps the --debuglevel flag to a btclog.Level, defaulting
// to Info on an unrecognized name rather than failing startup over a
// logging preference.
func parseLogLevel(name string) btclog.Level {
	level, ok := btclog.LevelFromString(name)
	if !ok {
		return btclog.LevelInfo
	}
	return level
}
