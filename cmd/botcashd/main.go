// Copyright (c) 2026 The Botcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/btcsuite/btclog"

	"github.com/toole-brendan/shell/chaincfg"
	"github.com/toole-brendan/shell/mining/randomx"
)

// verifyGenesis checks a network's genesis block at startup: its coinbase
// encodes height 0, it is the block's only transaction, and the launch
// marker is present.
func verifyGenesis(params *chaincfg.Params) error {
	if params.GenesisBlock == nil {
		return fmt.Errorf("network %s has no embedded genesis block", params.Name)
	}
	height, err := params.GenesisBlock.CoinbaseHeight()
	if err != nil {
		return fmt.Errorf("genesis coinbase height: %w", err)
	}
	if height != 0 {
		return fmt.Errorf("genesis coinbase height = %d, want 0", height)
	}
	if len(params.GenesisBlock.Transactions) != 1 {
		return fmt.Errorf("genesis block has %d transactions, want 1", len(params.GenesisBlock.Transactions))
	}
	if !chaincfg.VerifyGenesisMarker(params.GenesisBlock) {
		return fmt.Errorf("genesis block missing launch marker")
	}
	return nil
}

func botcashdMain() error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	if err := initLogRotator(cfg.LogDir); err != nil {
		return fmt.Errorf("init log rotator: %w", err)
	}
	level := parseLogLevel(cfg.DebugLevel)
	useLogger(level)

	backend := btclog.NewBackend(logWriter{})
	log := backend.Logger("BCSD")
	log.SetLevel(level)

	params, err := chaincfg.ParamsForNetwork(cfg.onetimeNet)
	if err != nil {
		return fmt.Errorf("selecting network parameters: %w", err)
	}
	log.Infof("starting botcashd on network %s (data dir %s)", cfg.onetimeNet, cfg.DataDir)

	if err := verifyGenesis(params); err != nil {
		return fmt.Errorf("genesis verification failed: %w", err)
	}
	log.Infof("genesis block %s verified", params.GenesisHash)

	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	// The RandomX verifier's epoch cache is allocated lazily on first use;
	// exercising Verify once at startup confirms the CGO/stub build, the
	// epoch key derivation, and the cache allocation all work together
	// before the node accepts any peers. The embedded genesis headers were
	// not re-mined by this build, so a difficulty miss here is expected and
	// informational; only a cache or VM failure is fatal.
	err = randomx.Verify(&params.GenesisBlock.Header, 0)
	switch {
	case err == nil:
		log.Infof("RandomX verifier ready and genesis header verified")
	case errors.Is(err, randomx.ErrInvalidSolution):
		log.Infof("RandomX verifier ready (genesis difficulty self-check not conclusive)")
	default:
		return fmt.Errorf("randomx self-check failed: %w", err)
	}

	return nil
}

func main() {
	if err := botcashdMain(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
