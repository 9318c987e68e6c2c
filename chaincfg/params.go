// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2026 The Botcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"errors"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/toole-brendan/shell/wire"
)

// These variables are the chain proof-of-work limit parameters for each
// default network.
var (
	bigOne = big.NewInt(1)

	// botcashPowLimit is the highest proof-of-work value a Botcash block can
	// have. RandomX is memory-hard rather than SHA256-hard, so the limit is
	// expressed the same way Bitcoin-family chains express theirs: the
	// largest 256-bit target allowed at minimum difficulty.
	botcashPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 224), bigOne)

	// regtestPowLimit is the easiest possible target, used only for local
	// regression testing.
	regtestPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)
)

// Checkpoint identifies a known good point in the block chain.
type Checkpoint struct {
	Height int32
	Hash   *chainhash.Hash
}

// EffectiveAlwaysActiveHeight returns the effective activation height for the
// deployment. If AlwaysActiveHeight is unset (i.e. zero), it returns the
// maximum uint32 value to indicate that it does not force activation.
func (d *ConsensusDeployment) EffectiveAlwaysActiveHeight() uint32 {
	if d.AlwaysActiveHeight == 0 {
		return math.MaxUint32
	}
	return d.AlwaysActiveHeight
}

// DNSSeed identifies a DNS seed.
type DNSSeed struct {
	Host         string
	HasFiltering bool
}

// ConsensusDeployment defines details related to a specific consensus rule
// change that is voted in via block-version-bit signaling (BIP0009-style,
// generalized for chaincfg/upgrade's window tracker).
type ConsensusDeployment struct {
	BitNumber                 uint8
	MinActivationHeight       uint32
	CustomActivationThreshold uint32
	AlwaysActiveHeight        uint32
	DeploymentStarter         ConsensusDeploymentStarter
	DeploymentEnder           ConsensusDeploymentEnder
}

// Constants identifying each defined deployment's slot in Params.Deployments.
const (
	// DeploymentTestDummy is reserved for testing.
	DeploymentTestDummy = iota

	// DeploymentPrivacyLayer signals support for the optional ring-
	// signature/stealth-address privacy layer, tracked via version bits
	// like any other soft-fork deployment (see chaincfg/upgrade).
	DeploymentPrivacyLayer

	// DefinedDeployments must always come last.
	DefinedDeployments
)

// Params defines a Botcash-family network by its parameters.
type Params struct {
	Name        string
	Net         wire.BitcoinNet
	DefaultPort string
	DNSSeeds    []DNSSeed

	GenesisBlock *wire.Block
	GenesisHash  *chainhash.Hash

	PowLimit         *big.Int
	PowLimitBits     uint32
	PoWNoRetargeting bool

	// RandomX parameters.
	RandomXSeedRotation int32 // blocks per epoch (2048)
	RandomXMemory       int64 // light-mode cache size in bytes

	// Subsidy schedule.
	SlowStartInterval  int32 // height before which subsidy ramps linearly
	BlossomHeight      int32 // height from which the post-Blossom subsidy applies
	FirstHalvingHeight int32 // height of the first post-Blossom halving
	HalvingInterval    int32 // blocks per post-Blossom halving
	PreBlossomSubsidy  int64 // zatoshis, base subsidy before Blossom
	PostBlossomSubsidy int64 // zatoshis, base subsidy from Blossom to first halving

	CoinbaseMaturity uint16

	TargetTimespan           time.Duration
	TargetTimePerBlock       time.Duration
	RetargetAdjustmentFactor int64
	ReduceMinDifficulty      bool
	MinDiffReductionTime     time.Duration
	GenerateSupported        bool

	Checkpoints []Checkpoint

	RuleChangeActivationThreshold uint32
	MinerConfirmationWindow       uint32
	Deployments                   [DefinedDeployments]ConsensusDeployment

	RelayNonStdTxs bool

	// Bech32(m) human-readable parts.
	HRPSaplingPaymentAddress         string
	HRPSaplingExtendedSpendingKey    string
	HRPSaplingExtendedFullViewingKey string
	HRPTexAddress                    string
	HRPUnifiedAddress                string
	HRPUnifiedFullViewingKey         string
	HRPUnifiedIncomingViewingKey     string

	// Base58Check transparent address prefixes. Zcash-family transparent
	// addresses use two-byte version prefixes, unlike Bitcoin's single
	// byte.
	PubKeyHashAddrID [2]byte
	ScriptHashAddrID [2]byte
	PrivateKeyID     byte
	TexAddressPrefix [2]byte

	HDPrivateKeyID [4]byte
	HDPublicKeyID  [4]byte

	// HDCoinType is the SLIP-44 coin type (347 for Botcash).
	HDCoinType uint32
}

// BotcashParams defines the network parameters for the distinguished
// Botcash production network.
var BotcashParams = Params{
	Name:        "botcash",
	Net:         wire.BotcashNet,
	DefaultPort: "8733",
	DNSSeeds: []DNSSeed{
		{"seed1.botcash.org", true},
		{"seed2.botcash.org", true},
	},

	GenesisBlock: &botcashGenesisBlock,
	GenesisHash:  &botcashGenesisHash,

	PowLimit:         botcashPowLimit,
	PowLimitBits:     0x1f07ffff,
	PoWNoRetargeting: false,
	CoinbaseMaturity: 100,

	RandomXSeedRotation: 2048,
	RandomXMemory:       256 * 1024 * 1024,

	SlowStartInterval:  20000,
	BlossomHeight:      653600,
	FirstHalvingHeight: 1046400,
	HalvingInterval:    840000,
	PreBlossomSubsidy:  1250000000, // 12.5 BCASH
	PostBlossomSubsidy: 625000000,  // 6.25 BCASH

	TargetTimespan:           time.Minute * 75,
	TargetTimePerBlock:       time.Second * 75,
	RetargetAdjustmentFactor: 4,
	ReduceMinDifficulty:      false,
	GenerateSupported:        true,

	Checkpoints: []Checkpoint{},

	RuleChangeActivationThreshold: 2160, // 75% of a 2880-block window
	MinerConfirmationWindow:       2880,
	Deployments: [DefinedDeployments]ConsensusDeployment{
		DeploymentTestDummy: {
			BitNumber:         28,
			DeploymentStarter: NewMedianTimeDeploymentStarter(time.Time{}),
			DeploymentEnder:   NewMedianTimeDeploymentEnder(time.Time{}),
		},
		DeploymentPrivacyLayer: {
			BitNumber:           5,
			MinActivationHeight: 1051200,
			DeploymentStarter:   NewMedianTimeDeploymentStarter(time.Date(2028, 1, 1, 0, 0, 0, 0, time.UTC)),
			DeploymentEnder:     NewMedianTimeDeploymentEnder(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)),
		},
	},

	RelayNonStdTxs: false,

	HRPSaplingPaymentAddress:         "bs",
	HRPSaplingExtendedSpendingKey:    "secret-extended-key-botcash",
	HRPSaplingExtendedFullViewingKey: "bviews",
	HRPTexAddress:                    "btex",
	HRPUnifiedAddress:                "bu",
	HRPUnifiedFullViewingKey:         "buview",
	HRPUnifiedIncomingViewingKey:     "buivk",

	PubKeyHashAddrID: [2]byte{0x05, 0xa2}, // addresses render with a "B1" lead
	ScriptHashAddrID: [2]byte{0x05, 0xa7}, // "B3" lead
	PrivateKeyID:     0x80,
	TexAddressPrefix: [2]byte{0x1c, 0xc0},

	HDPrivateKeyID: [4]byte{0x04, 0x88, 0xAD, 0xE4},
	HDPublicKeyID:  [4]byte{0x04, 0x88, 0xB2, 0x1E},

	HDCoinType: 347,
}

// ZcashMainNetParams and ZcashTestNetParams are minimal stubs carrying only
// the name, magic, port and PoW limit needed for NetworkOf/wire
// interoperability testing; this node does not implement full Zcash
// mainnet/testnet consensus.
var ZcashMainNetParams = Params{
	Name:        "zcash-mainnet",
	Net:         wire.ZcashMainNet,
	DefaultPort: "8233",
	PowLimit:    botcashPowLimit,
}

var ZcashTestNetParams = Params{
	Name:        "zcash-testnet",
	Net:         wire.ZcashTestNet,
	DefaultPort: "18233",
	PowLimit:    botcashPowLimit,
}

// RegtestParams defines the local regression test network, with its own
// genesis block, subsidy schedule and a small signaling window.
var RegtestParams = Params{
	Name:             "regtest",
	Net:              wire.ZcashRegtest,
	DefaultPort:      "18344",
	GenesisBlock:     &regtestGenesisBlock,
	GenesisHash:      &regtestGenesisHash,
	PowLimit:         regtestPowLimit,
	PowLimitBits:     0x200f0f0f,
	PoWNoRetargeting: true,
	CoinbaseMaturity: 1,

	RandomXSeedRotation: 2048,
	RandomXMemory:       256 * 1024 * 1024,

	SlowStartInterval:  0,
	BlossomHeight:      1,
	FirstHalvingHeight: 100,
	HalvingInterval:    50,
	PreBlossomSubsidy:  1250000000,
	PostBlossomSubsidy: 625000000,

	RuleChangeActivationThreshold: 3,
	MinerConfirmationWindow:       4,
	GenerateSupported:             true,

	HRPSaplingPaymentAddress: "bsregtest",
	PubKeyHashAddrID:         [2]byte{0x05, 0xa2},
	ScriptHashAddrID:         [2]byte{0x05, 0xa7},
	PrivateKeyID:             0x80,
	HDCoinType:               1,
}

var (
	// ErrDuplicateNet describes an error where the parameters for a network
	// could not be set due to the network already being registered.
	ErrDuplicateNet = errors.New("duplicate network")

	// ErrUnknownHDKeyID describes an error where the provided id which is
	// intended to identify the network for a hierarchical deterministic
	// private extended key is not registered.
	ErrUnknownHDKeyID = errors.New("unknown hd private extended key bytes")

	// ErrInvalidHDKeyID describes an error where the provided hierarchical
	// deterministic version bytes, or hd key id, is malformed.
	ErrInvalidHDKeyID = errors.New("invalid hd extended key version bytes")
)

var (
	registeredNets    = make(map[wire.BitcoinNet]struct{})
	pubKeyHashAddrIDs = make(map[[2]byte]struct{})
	scriptHashAddrIDs = make(map[[2]byte]struct{})
	bech32HRPs        = make(map[string]struct{})
	hdPrivToPubKeyIDs = make(map[[4]byte][]byte)
)

// String returns the hostname of the DNS seed in human-readable form.
func (d DNSSeed) String() string {
	return d.Host
}

// Register registers the network parameters for a Botcash-family network.
// This may error with ErrDuplicateNet if the network is already registered.
func Register(params *Params) error {
	if _, ok := registeredNets[params.Net]; ok {
		return ErrDuplicateNet
	}
	registeredNets[params.Net] = struct{}{}
	pubKeyHashAddrIDs[params.PubKeyHashAddrID] = struct{}{}
	scriptHashAddrIDs[params.ScriptHashAddrID] = struct{}{}

	if err := RegisterHDKeyID(params.HDPublicKeyID[:], params.HDPrivateKeyID[:]); err != nil {
		return err
	}

	if params.HRPSaplingPaymentAddress != "" {
		bech32HRPs[params.HRPSaplingPaymentAddress] = struct{}{}
	}
	return nil
}

// mustRegister performs the same function as Register except it panics if
// there is an error. This should only be called from package init functions.
func mustRegister(params *Params) {
	if err := Register(params); err != nil {
		panic("failed to register network: " + err.Error())
	}
}

// IsPubKeyHashAddrID returns whether the id is an identifier known to prefix
// a pay-to-pubkey-hash address on any default or registered network.
func IsPubKeyHashAddrID(id [2]byte) bool {
	_, ok := pubKeyHashAddrIDs[id]
	return ok
}

// IsScriptHashAddrID returns whether the id is an identifier known to prefix
// a pay-to-script-hash address on any default or registered network.
func IsScriptHashAddrID(id [2]byte) bool {
	_, ok := scriptHashAddrIDs[id]
	return ok
}

// IsBech32HRP returns whether the human-readable part is known on any
// default or registered network.
func IsBech32HRP(hrp string) bool {
	_, ok := bech32HRPs[strings.ToLower(hrp)]
	return ok
}

// RegisterHDKeyID registers a public and private hierarchical deterministic
// extended key ID pair.
func RegisterHDKeyID(hdPublicKeyID []byte, hdPrivateKeyID []byte) error {
	if len(hdPublicKeyID) != 4 || len(hdPrivateKeyID) != 4 {
		return ErrInvalidHDKeyID
	}

	var keyID [4]byte
	copy(keyID[:], hdPrivateKeyID)
	hdPrivToPubKeyIDs[keyID] = hdPublicKeyID

	return nil
}

// HDPrivateKeyToPublicKeyID accepts a private hierarchical deterministic
// extended key id and returns the associated public key id.
func HDPrivateKeyToPublicKeyID(id []byte) ([]byte, error) {
	if len(id) != 4 {
		return nil, ErrUnknownHDKeyID
	}

	var key [4]byte
	copy(key[:], id)
	pubBytes, ok := hdPrivToPubKeyIDs[key]
	if !ok {
		return nil, ErrUnknownHDKeyID
	}

	return pubBytes, nil
}

// newHashFromStr converts the passed big-endian hex string into a
// chainhash.Hash. It only differs from the one available in chainhash in
// that it panics on error since it is only ever called with hard-coded,
// and therefore known good, hashes.
func newHashFromStr(hexStr string) *chainhash.Hash {
	hash, err := chainhash.NewHashFromStr(hexStr)
	if err != nil {
		panic(err)
	}
	return hash
}

func init() {
	mustRegister(&BotcashParams)
}
