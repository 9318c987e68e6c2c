// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	btcwire "github.com/btcsuite/btcd/wire"
)

// NonceSize is the length in bytes of a RandomX block nonce (32 octets,
// distinct from Bitcoin's 4-octet nonce).
const NonceSize = 32

// Header is a Botcash block header. It keeps the Zcash on-wire field order
// and widths so genuine Zcash framing remains parseable, but the nonce is
// widened to 32 bytes and the proof-of-work check never consults Solution.
type Header struct {
	// Version is the block version; low bits may carry protocol-upgrade
	// signaling (see chaincfg/upgrade).
	Version int32

	// PrevBlock is the hash of the previous block in the chain.
	PrevBlock chainhash.Hash

	// MerkleRoot commits to the block's transactions.
	MerkleRoot chainhash.Hash

	// FinalSaplingRoot commits to the Sapling/Orchard note commitment
	// tree state; opaque to this core, carried for wire fidelity.
	FinalSaplingRoot chainhash.Hash

	// Timestamp is the block time as a Unix timestamp.
	Timestamp uint32

	// Bits is the compact-encoded difficulty target.
	Bits uint32

	// Nonce is the 32-byte value miners vary to find a valid RandomX hash.
	Nonce [NonceSize]byte

	// Solution is the Equihash solution field retained for Zcash wire
	// compatibility. It is never consulted by RandomX PoW verification.
	Solution []byte
}

// HeaderInputLength is the number of header octets that feed the RandomX
// hash, before the nonce is appended (version+prev+merkle+final_root+time+bits).
const HeaderInputLength = 4 + chainhash.HashSize + chainhash.HashSize + chainhash.HashSize + 4 + 4

// RandomXInputLength is HeaderInputLength plus the 32-byte nonce.
const RandomXInputLength = HeaderInputLength + NonceSize

// SerializeForRandomX returns the 140-byte (header-input || nonce) buffer
// that is hashed for proof-of-work.
func (h *Header) SerializeForRandomX() []byte {
	buf := make([]byte, 0, RandomXInputLength)
	var scratch [4]byte

	binary.LittleEndian.PutUint32(scratch[:], uint32(h.Version))
	buf = append(buf, scratch[:]...)
	buf = append(buf, h.PrevBlock[:]...)
	buf = append(buf, h.MerkleRoot[:]...)
	buf = append(buf, h.FinalSaplingRoot[:]...)
	binary.LittleEndian.PutUint32(scratch[:], h.Timestamp)
	buf = append(buf, scratch[:]...)
	binary.LittleEndian.PutUint32(scratch[:], h.Bits)
	buf = append(buf, scratch[:]...)
	buf = append(buf, h.Nonce[:]...)

	return buf
}

// Transaction is a minimal transparent transaction view: only the fields
// genesis construction and verification need. Full transaction validation
// belongs to the Zcash engine this node delegates to.
type Transaction struct {
	Version      int32
	CoinbaseData []byte
	TxOut        []TxOut
}

// TxOut is a minimal transaction output.
type TxOut struct {
	Value    int64
	PkScript []byte
}

// Block is a minimal Botcash block: a header plus its transactions.
type Block struct {
	Header       Header
	Transactions []*Transaction
}

// CoinbaseHeight extracts the BIP34-style block height serialized as the
// first push in the coinbase's signature script.
func (b *Block) CoinbaseHeight() (int32, error) {
	if len(b.Transactions) == 0 {
		return 0, errors.New("block has no transactions")
	}
	data := b.Transactions[0].CoinbaseData
	if len(data) < 1 {
		return 0, errors.New("coinbase script is empty")
	}

	pushLen := int(data[0])
	switch {
	case pushLen == 0:
		return 0, nil
	case pushLen <= 4 && len(data) >= 1+pushLen:
		var v int64
		for i := pushLen - 1; i >= 0; i-- {
			v = v<<8 | int64(data[1+i])
		}
		return int32(v), nil
	default:
		return 0, errors.New("coinbase height push is malformed")
	}
}

// Hash returns the double-SHA256 hash of the serialized header. The
// solution field carries a CompactSize length prefix, matching Zcash's
// block-header framing.
func (h *Header) Hash() chainhash.Hash {
	var buf bytes.Buffer
	var scratch [4]byte

	binary.LittleEndian.PutUint32(scratch[:], uint32(h.Version))
	buf.Write(scratch[:])
	buf.Write(h.PrevBlock[:])
	buf.Write(h.MerkleRoot[:])
	buf.Write(h.FinalSaplingRoot[:])
	binary.LittleEndian.PutUint32(scratch[:], h.Timestamp)
	buf.Write(scratch[:])
	binary.LittleEndian.PutUint32(scratch[:], h.Bits)
	buf.Write(scratch[:])
	buf.Write(h.Nonce[:])
	_ = btcwire.WriteVarInt(&buf, 0, uint64(len(h.Solution)))
	buf.Write(h.Solution)

	return chainhash.DoubleHashH(buf.Bytes())
}
