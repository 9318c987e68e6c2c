// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2026 The Botcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/toole-brendan/shell/wire"
)

// genesisMarker is the ASCII message embedded in the genesis coinbase,
// committing the launch to a single human-readable statement rather than a
// news headline the way Bitcoin's genesis does. See VerifyGenesisMarker.
const genesisMarker = "Privacy is not secrecy. Agents deserve both."

// genesisCoinbaseData builds the coinbase signature-script-equivalent data
// for height 0: a BIP34-style height push of zero followed by the genesis
// marker text.
func genesisCoinbaseData(marker string) []byte {
	data := make([]byte, 0, 1+len(marker))
	data = append(data, 0x00) // height-0 push: zero-length push encodes height 0
	data = append(data, marker...)
	return data
}

// botcashGenesisCoinbase is the sole, zero-value coinbase transaction for
// the Botcash genesis block. There is no premine: the single output pays
// zero, matching the slow-start subsidy ramp's value at height 0.
var botcashGenesisCoinbase = wire.Transaction{
	Version:      1,
	CoinbaseData: genesisCoinbaseData(genesisMarker),
	TxOut: []wire.TxOut{
		{
			Value:    0,
			PkScript: nil,
		},
	},
}

// botcashGenesisMerkleRoot commits to the single coinbase transaction. A
// one-transaction block's merkle root is simply that transaction's hash
// under the double-SHA256 convention this chain inherits from Zcash/
// Bitcoin-family wire framing.
var botcashGenesisMerkleRoot = coinbaseMerkleRoot(&botcashGenesisCoinbase)

// botcashGenesisBlock is the genesis block of the Botcash production
// network: documented launch timestamp, minimum difficulty, zero subsidy,
// and the embedded marker.
var botcashGenesisBlock = wire.Block{
	Header: wire.Header{
		Version:          1,
		PrevBlock:        chainhash.Hash{},
		MerkleRoot:       botcashGenesisMerkleRoot,
		FinalSaplingRoot: chainhash.Hash{},
		Timestamp:        1769904000, // 2026-02-01 00:00:00 UTC
		Bits:             0x1f07ffff,
		Nonce:            [wire.NonceSize]byte{},
		Solution:         nil,
	},
	Transactions: []*wire.Transaction{&botcashGenesisCoinbase},
}

// botcashGenesisHash is the recorded hash of the Botcash launch block,
// pinned as a literal the way btcd pins its genesis hashes. The launch
// nonce is not carried by the minimal header this package embeds, so the
// hash is the authoritative chain anchor rather than a value recomputed
// from the fields above.
var botcashGenesisHash = *newHashFromStr("b42125dbe5ba96501aa1336634d2689dcabe0e5cb1c57450bd6cae5328a0b6f3")

// regtestGenesisCoinbase is the genesis coinbase used for local regression
// testing; it carries the same marker so VerifyGenesisMarker exercises
// identically on every network this core recognizes.
var regtestGenesisCoinbase = wire.Transaction{
	Version:      1,
	CoinbaseData: genesisCoinbaseData(genesisMarker),
	TxOut: []wire.TxOut{
		{Value: 0, PkScript: nil},
	},
}

var regtestGenesisMerkleRoot = coinbaseMerkleRoot(&regtestGenesisCoinbase)

// regtestGenesisBlock defines the genesis block for the local regression
// test network. Unlike botcashGenesisBlock, its target is trivially easy
// so tests can mine past it without a real RandomX search.
var regtestGenesisBlock = wire.Block{
	Header: wire.Header{
		Version:          1,
		PrevBlock:        chainhash.Hash{},
		MerkleRoot:       regtestGenesisMerkleRoot,
		FinalSaplingRoot: chainhash.Hash{},
		Timestamp:        uint32(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Unix()),
		Bits:             0x200f0f0f,
		Nonce:            [wire.NonceSize]byte{},
		Solution:         nil,
	},
	Transactions: []*wire.Transaction{&regtestGenesisCoinbase},
}

var regtestGenesisHash = regtestGenesisBlock.Header.Hash()

// coinbaseMerkleRoot computes the merkle root of a one-transaction block:
// the double-SHA256 of the transaction's serialized coinbase data and
// outputs. This is not a general merkle implementation; the transaction
// aggregation layer owns that for blocks with more than one transaction.
func coinbaseMerkleRoot(tx *wire.Transaction) chainhash.Hash {
	buf := make([]byte, 0, len(tx.CoinbaseData)+32)
	buf = append(buf, tx.CoinbaseData...)
	for _, out := range tx.TxOut {
		var v [8]byte
		for i := 0; i < 8; i++ {
			v[i] = byte(out.Value >> (8 * i))
		}
		buf = append(buf, v[:]...)
		buf = append(buf, out.PkScript...)
	}
	return chainhash.DoubleHashH(buf)
}

// VerifyGenesisMarker reports whether the block's coinbase carries the
// expected launch marker, the structural analogue of a premine check: a
// Botcash genesis block is defined by carrying this text and paying zero,
// not by any particular nonce.
func VerifyGenesisMarker(block *wire.Block) bool {
	if len(block.Transactions) == 0 {
		return false
	}
	data := block.Transactions[0].CoinbaseData
	return containsMarker(data, genesisMarker)
}

func containsMarker(haystack []byte, marker string) bool {
	if len(marker) == 0 || len(haystack) < len(marker) {
		return false
	}
	for i := 0; i+len(marker) <= len(haystack); i++ {
		if string(haystack[i:i+len(marker)]) == marker {
			return true
		}
	}
	return false
}
