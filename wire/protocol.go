// Copyright (c) 2013-2024 The btcsuite developers
// Copyright (c) 2026 The Botcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

const (
	// ProtocolVersion is the latest p2p protocol version this package
	// supports.
	ProtocolVersion uint32 = 170100
)

// BitcoinNet represents which network a message belongs to, identified by
// the 4-octet magic that prefixes every wire message. The type name is
// kept from the btcd lineage this package descends from; the values are
// the Zcash family magics plus Botcash's own.
type BitcoinNet uint32

const (
	// ZcashMainNet is the real Zcash mainnet magic, wire bytes 24 e9 27 64,
	// kept so this node can be wire-tested against genuine Zcash mainnet
	// framing; Botcash consensus never runs under this magic.
	ZcashMainNet BitcoinNet = 0x6427e924

	// ZcashTestNet is the real Zcash testnet magic, wire bytes fa 1a f9 bf.
	ZcashTestNet BitcoinNet = 0xbff91afa

	// ZcashRegtest is the real Zcash regtest magic, wire bytes aa e8 3f 5f.
	ZcashRegtest BitcoinNet = 0x5f3fe8aa

	// BotcashNet is the distinguished Botcash production network, wire
	// bytes 42 43 41 53 ("BCAS" in ASCII).
	BotcashNet BitcoinNet = 0x53414342
)

// bnStrings is a map of networks back to their constant names for pretty
// printing.
var bnStrings = map[BitcoinNet]string{
	ZcashMainNet: "ZcashMainNet",
	ZcashTestNet: "ZcashTestNet",
	ZcashRegtest: "ZcashRegtest",
	BotcashNet:   "BotcashNet",
}

// String returns the BitcoinNet in human-readable form.
func (n BitcoinNet) String() string {
	if s, ok := bnStrings[n]; ok {
		return s
	}

	return fmt.Sprintf("Unknown BitcoinNet (%d)", uint32(n))
}

// Magic is a network's 4-octet wire tag in the order the bytes appear on
// the wire.
type Magic [4]byte

// Magic returns the network's wire-order magic bytes.
func (n BitcoinNet) Magic() Magic {
	var m Magic
	binary.LittleEndian.PutUint32(m[:], uint32(n))
	return m
}

// Net converts wire-order magic bytes back into a BitcoinNet value. The
// result is only meaningful for one of the defined networks; callers are
// expected to look it up before trusting it.
func (m Magic) Net() BitcoinNet {
	return BitcoinNet(binary.LittleEndian.Uint32(m[:]))
}

// String renders the magic as Magic("42434153"), the form used in logs
// and error messages when a peer's network tag is rejected.
func (m Magic) String() string {
	return `Magic("` + hex.EncodeToString(m[:]) + `")`
}
