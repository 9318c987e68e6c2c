// Copyright (c) 2026 The Botcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package multisig

import (
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

// Three well-known secp256k1 points (G, 2G, 3G) in compressed form, used
// throughout as valid public key fixtures.
var (
	pubkeyG  = mustDecodeHex("0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	pubkey2G = mustDecodeHex("02c6047f9441ed7d6d3045406e95c07cd85c778e4b8cef3ca7abac09b95c709ee5")
	pubkey3G = mustDecodeHex("02f9308a019258c31049344f85f89d5229b531c845836f99b08601f113bce036f9")
)

func mustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

func buildSetupPayload(keys [][]byte, threshold byte) []byte {
	payload := []byte{byte(len(keys))}
	for _, k := range keys {
		payload = append(payload, k...)
	}
	payload = append(payload, threshold)
	return payload
}

func TestParseSetupValid(t *testing.T) {
	payload := buildSetupPayload([][]byte{pubkeyG, pubkey2G, pubkey3G}, 2)

	setup, err := ParseSetup(payload)
	require.NoError(t, err)
	require.Equal(t, uint8(3), setup.KeyCount)
	require.Equal(t, uint8(2), setup.Threshold)
	require.Len(t, setup.PublicKeys, 3)
	require.True(t, setup.MeetsThreshold(2))
	require.True(t, setup.MeetsThreshold(3))
	require.False(t, setup.MeetsThreshold(1))
}

func TestParseSetupInvalidKeyCount(t *testing.T) {
	payload := buildSetupPayload([][]byte{pubkeyG}, 1)

	_, err := ParseSetup(payload)
	require.ErrorIs(t, err, ErrInvalidKeyCount)
}

func TestParseSetupInvalidThreshold(t *testing.T) {
	payload := buildSetupPayload([][]byte{pubkeyG, pubkey2G}, 3)

	_, err := ParseSetup(payload)
	require.ErrorIs(t, err, ErrInvalidThreshold)
}

func TestParseSetupInvalidPubkey(t *testing.T) {
	bogus := make([]byte, CompressedPubkeySize)
	bogus[0] = 0x02 // well-formed prefix, but x-coordinate is not on the curve
	payload := buildSetupPayload([][]byte{pubkeyG, bogus}, 1)

	_, err := ParseSetup(payload)
	require.ErrorIs(t, err, ErrInvalidPubkey)
}

func TestParseSetupMalformed(t *testing.T) {
	_, err := ParseSetup([]byte{})
	require.ErrorIs(t, err, ErrMalformed)

	// Declares 3 keys but payload is short.
	_, err = ParseSetup([]byte{3, 0x02})
	require.ErrorIs(t, err, ErrMalformed)
}

func buildActionPayload(innerType byte, inner []byte, sigs []Signature) []byte {
	payload := []byte{innerType}
	lenBuf := make([]byte, 2)
	binary.LittleEndian.PutUint16(lenBuf, uint16(len(inner)))
	payload = append(payload, lenBuf...)
	payload = append(payload, inner...)
	payload = append(payload, byte(len(sigs)))
	for _, s := range sigs {
		payload = append(payload, s.KeyIndex)
		payload = append(payload, s.Signature[:]...)
	}
	return payload
}

func TestParseActionValid(t *testing.T) {
	var sig1, sig2 [SchnorrSignatureSize]byte
	for i := range sig1 {
		sig1[i] = 0xAA
	}
	for i := range sig2 {
		sig2[i] = 0xBB
	}

	payload := buildActionPayload(0x20, []byte("Hello!!!!!"), []Signature{
		{KeyIndex: 0, Signature: sig1},
		{KeyIndex: 2, Signature: sig2},
	})

	action, err := ParseAction(payload)
	require.NoError(t, err)
	require.Equal(t, byte(0x20), action.InnerType)
	require.Equal(t, []byte("Hello!!!!!"), action.InnerPayload)
	require.Equal(t, uint8(2), action.SignatureCount())
	require.Equal(t, uint8(0), action.Signatures[0].KeyIndex)
	require.Equal(t, uint8(2), action.Signatures[1].KeyIndex)
}

func TestParseActionMalformed(t *testing.T) {
	_, err := ParseAction([]byte{0x20})
	require.ErrorIs(t, err, ErrMalformed)
}

func TestValidateKeyIndices(t *testing.T) {
	setup := Setup{KeyCount: 3}
	action := Action{Signatures: []Signature{{KeyIndex: 2}}}
	require.NoError(t, action.ValidateKeyIndices(setup))

	outOfRange := Action{Signatures: []Signature{{KeyIndex: 3}}}
	require.ErrorIs(t, outOfRange.ValidateKeyIndices(setup), ErrKeyIndexOutOfRange)
}

func TestBlockStats(t *testing.T) {
	stats := NewBlockStats()
	stats.RecordSetup(3)
	stats.RecordAction(2)
	require.Equal(t, uint32(1), stats.SetupCount)
	require.Equal(t, uint32(3), stats.TotalKeys)
	require.Equal(t, uint32(1), stats.ActionCount)
	require.Equal(t, uint32(2), stats.TotalSignatures)

	other := NewBlockStats()
	other.RecordSetup(5)
	other.RecordAction(3)

	stats.Merge(other)
	require.Equal(t, uint32(2), stats.SetupCount)
	require.Equal(t, uint32(2), stats.ActionCount)
	require.Equal(t, uint32(8), stats.TotalKeys)
	require.Equal(t, uint32(5), stats.TotalSignatures)
}
