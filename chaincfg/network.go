// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2026 The Botcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"errors"
	"fmt"

	"github.com/toole-brendan/shell/wire"
)

// NetworkKind is the closed enumeration of networks this node recognizes.
// Mainnet, Testnet, and Regtest are genuine Zcash networks, retained only
// for wire-format interoperability and testing; Botcash is the distinguished
// production network this node actually validates consensus for.
type NetworkKind int

const (
	// Mainnet is the real Zcash mainnet.
	Mainnet NetworkKind = iota

	// Testnet is the real Zcash testnet.
	Testnet

	// Regtest is the real Zcash regression-test network.
	Regtest

	// Botcash is the distinguished production network.
	Botcash
)

// String returns the human-readable name of the network.
func (k NetworkKind) String() string {
	switch k {
	case Mainnet:
		return "Mainnet"
	case Testnet:
		return "Testnet"
	case Regtest:
		return "Regtest"
	case Botcash:
		return "Botcash"
	default:
		return fmt.Sprintf("NetworkKind(%d)", int(k))
	}
}

// ErrUnknownMagic is returned by NetworkOf when the magic does not match any
// of the four defined networks.
var ErrUnknownMagic = errors.New("chaincfg: unknown network magic")

var magicToNetwork = map[wire.BitcoinNet]NetworkKind{
	wire.ZcashMainNet: Mainnet,
	wire.ZcashTestNet: Testnet,
	wire.ZcashRegtest: Regtest,
	wire.BotcashNet:   Botcash,
}

// NetworkOf is total over the four defined network magics; it errors on any
// other value.
func NetworkOf(magic wire.BitcoinNet) (NetworkKind, error) {
	kind, ok := magicToNetwork[magic]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownMagic, magic)
	}
	return kind, nil
}

// ParamsForNetwork returns the registered Params for a NetworkKind.
func ParamsForNetwork(kind NetworkKind) (*Params, error) {
	switch kind {
	case Mainnet:
		return &ZcashMainNetParams, nil
	case Testnet:
		return &ZcashTestNetParams, nil
	case Regtest:
		return &RegtestParams, nil
	case Botcash:
		return &BotcashParams, nil
	default:
		return nil, fmt.Errorf("chaincfg: unrecognized network kind %v", kind)
	}
}
