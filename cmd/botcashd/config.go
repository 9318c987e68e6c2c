// Copyright (c) 2026 The Botcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"

	"github.com/toole-brendan/shell/chaincfg"
)

const (
	defaultConfigFilename = "botcashd.conf"
	defaultDataDirname    = "data"
	defaultLogLevel       = "info"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "botcashd.log"

	// defaultRandomXMemoryMB is the default --randomxmemory value. The
	// value is only validated; nothing passes it to the RandomX verifier.
	defaultRandomXMemoryMB = 256
)

// config defines the configuration options for botcashd.
//
// See loadConfig for details on the configuration load process.
type config struct {
	ConfigFile string `short:"C" long:"configfile" description:"Path to configuration file"`
	DataDir    string `short:"b" long:"datadir" description:"Directory to store data"`
	LogDir     string `long:"logdir" description:"Directory to log output"`

	TestNet bool `long:"testnet" description:"Use the Zcash test network"`
	RegTest bool `long:"regtest" description:"Use the regression test network"`
	Botcash bool `long:"botcash" description:"Use the Botcash distinguished production network (default)"`

	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level: trace, debug, info, warn, error, critical"`

	RandomXMemoryMB int64 `long:"randomxmemory" description:"RandomX light-mode cache size in MB (validated only; not applied to the verifier)"`

	onetimeNet chaincfg.NetworkKind
}

// netName returns the network kind selected by the mutually exclusive
// network flags, defaulting to Botcash.
func (c *config) netName() (chaincfg.NetworkKind, error) {
	selected := 0
	kind := chaincfg.Botcash
	if c.TestNet {
		selected++
		kind = chaincfg.Testnet
	}
	if c.RegTest {
		selected++
		kind = chaincfg.Regtest
	}
	if c.Botcash {
		selected++
		kind = chaincfg.Botcash
	}
	if selected > 1 {
		return 0, fmt.Errorf("%s: testnet, regtest, and botcash are mutually exclusive", defaultConfigFilename)
	}
	return kind, nil
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleaning the result.
func cleanAndExpandPath(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		homeDir := os.Getenv("HOME")
		path = filepath.Join(homeDir, path[1:])
	}
	return filepath.Clean(os.ExpandEnv(path))
}

// defaultAppDataDir returns the default data directory under $HOME.
func defaultAppDataDir(appName string) string {
	homeDir := os.Getenv("HOME")
	if homeDir == "" {
		homeDir = "."
	}
	return filepath.Join(homeDir, "."+appName)
}

// loadConfig initializes and parses the config using command-line options
// and, if present, an INI config file. It follows the usual btcd-family
// two-pass parse: a first pass to locate a non-default config file, then
// a second pass over the merged flags/INI/defaults.
func loadConfig() (*config, []string, error) {
	appDataDir := defaultAppDataDir("botcashd")

	cfg := config{
		ConfigFile:      filepath.Join(appDataDir, defaultConfigFilename),
		DataDir:         filepath.Join(appDataDir, defaultDataDirname),
		LogDir:          filepath.Join(appDataDir, defaultLogDirname),
		DebugLevel:      defaultLogLevel,
		RandomXMemoryMB: defaultRandomXMemoryMB,
	}

	preCfg := cfg
	preParser := flags.NewParser(&preCfg, flags.Default)
	_, err := preParser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return nil, nil, err
		}
		return nil, nil, err
	}

	if preCfg.ConfigFile != "" {
		preCfg.ConfigFile = cleanAndExpandPath(preCfg.ConfigFile)
	}

	parser := flags.NewParser(&cfg, flags.Default)
	if _, statErr := os.Stat(preCfg.ConfigFile); statErr == nil {
		if err := flags.NewIniParser(parser).ParseFile(preCfg.ConfigFile); err != nil {
			return nil, nil, fmt.Errorf("parsing config file %s: %w", preCfg.ConfigFile, err)
		}
	}

	remainingArgs, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return nil, nil, err
		}
		return nil, nil, err
	}

	cfg.DataDir = cleanAndExpandPath(cfg.DataDir)
	cfg.LogDir = cleanAndExpandPath(cfg.LogDir)

	net, err := cfg.netName()
	if err != nil {
		return nil, nil, err
	}
	cfg.onetimeNet = net

	if cfg.RandomXMemoryMB <= 0 {
		return nil, nil, fmt.Errorf("randomxmemory must be positive, got %d", cfg.RandomXMemoryMB)
	}

	return &cfg, remainingArgs, nil
}
