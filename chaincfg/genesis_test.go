// Copyright (c) 2026 The Botcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBotcashGenesisStructure(t *testing.T) {
	block := BotcashParams.GenesisBlock

	height, err := block.CoinbaseHeight()
	require.NoError(t, err)
	require.Equal(t, int32(0), height)

	require.Len(t, block.Transactions, 1)
	require.Contains(t, string(block.Transactions[0].CoinbaseData), "Privacy is not secrecy")

	// No premine: the sole coinbase output pays zero.
	require.Len(t, block.Transactions[0].TxOut, 1)
	require.Zero(t, block.Transactions[0].TxOut[0].Value)
}

func TestBotcashGenesisHashMatchesRecorded(t *testing.T) {
	require.Equal(t,
		"b42125dbe5ba96501aa1336634d2689dcabe0e5cb1c57450bd6cae5328a0b6f3",
		BotcashParams.GenesisHash.String())
}

func TestRegtestGenesisStructure(t *testing.T) {
	block := RegtestParams.GenesisBlock

	height, err := block.CoinbaseHeight()
	require.NoError(t, err)
	require.Equal(t, int32(0), height)
	require.Len(t, block.Transactions, 1)
	require.True(t, VerifyGenesisMarker(block))
}

func TestVerifyGenesisMarkerRejectsForeignBlock(t *testing.T) {
	foreign := *RegtestParams.GenesisBlock
	foreign.Transactions = nil
	require.False(t, VerifyGenesisMarker(&foreign))
}
