// Copyright (c) 2026 The Botcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recovery

import (
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

// validPubkey is the secp256k1 generator point in compressed form, used
// wherever a test needs a pubkey that actually decodes.
func validPubkey() [NewPubkeySize]byte {
	raw, err := hex.DecodeString("0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	if err != nil {
		panic(err)
	}
	var pubkey [NewPubkeySize]byte
	copy(pubkey[:], raw)
	return pubkey
}

func buildConfigPayload(version, guardianCount, threshold byte, timelock uint32, owner string, hashes [][GuardianHashSize]byte) []byte {
	payload := []byte{version, guardianCount, threshold}
	tl := make([]byte, 4)
	binary.LittleEndian.PutUint32(tl, timelock)
	payload = append(payload, tl...)
	payload = append(payload, byte(len(owner)))
	payload = append(payload, []byte(owner)...)
	for _, h := range hashes {
		payload = append(payload, h[:]...)
	}
	return payload
}

func TestParseConfigValid(t *testing.T) {
	var h1, h2, h3 [GuardianHashSize]byte
	h1[0], h2[0], h3[0] = 1, 2, 3
	payload := buildConfigPayload(1, 3, 2, 10080, "bs1owner", [][GuardianHashSize]byte{h1, h2, h3})

	cfg, err := ParseConfig(payload, "txid123", 1000)
	require.NoError(t, err)
	require.Equal(t, uint32(1000), cfg.CreatedAtBlock)
	require.Equal(t, "bs1owner", cfg.OwnerAddress)
	require.Equal(t, uint8(3), cfg.GuardianCount)
	require.Equal(t, uint8(2), cfg.Threshold)
	require.Equal(t, uint32(10080), cfg.TimelockBlocks)
	require.Len(t, cfg.GuardianHashes, 3)
	require.NotEmpty(t, cfg.RecoveryID)
}

func TestParseConfigInvalidGuardianCount(t *testing.T) {
	payload := buildConfigPayload(1, 0, 0, 10080, "o", nil)
	_, err := ParseConfig(payload, "tx", 1000)
	require.ErrorIs(t, err, ErrInvalidGuardianCount)
}

func TestParseConfigInvalidThreshold(t *testing.T) {
	var h1 [GuardianHashSize]byte
	payload := buildConfigPayload(1, 1, 2, 10080, "o", [][GuardianHashSize]byte{h1})
	_, err := ParseConfig(payload, "tx", 1000)
	require.ErrorIs(t, err, ErrInvalidThreshold)
}

func TestParseConfigInvalidTimelock(t *testing.T) {
	var h1 [GuardianHashSize]byte
	payload := buildConfigPayload(1, 1, 1, 100, "o", [][GuardianHashSize]byte{h1})
	_, err := ParseConfig(payload, "tx", 1000)
	require.ErrorIs(t, err, ErrInvalidTimelock)
}

func TestConfigHasGuardian(t *testing.T) {
	var h1, h2 [GuardianHashSize]byte
	h1[0], h2[0] = 1, 2
	payload := buildConfigPayload(1, 2, 1, 10080, "o", [][GuardianHashSize]byte{h1, h2})
	cfg, err := ParseConfig(payload, "tx", 1000)
	require.NoError(t, err)

	require.True(t, cfg.HasGuardian(h1))
	require.True(t, cfg.HasGuardian(h2))
	var h3 [GuardianHashSize]byte
	h3[0] = 3
	require.False(t, cfg.HasGuardian(h3))
}

func TestConfigGuardiansNeeded(t *testing.T) {
	hashes := make([][GuardianHashSize]byte, 5)
	for i := range hashes {
		hashes[i][0] = byte(i + 1)
	}
	payload := buildConfigPayload(1, 5, 3, 10080, "o", hashes)
	cfg, err := ParseConfig(payload, "tx", 1000)
	require.NoError(t, err)

	require.Equal(t, uint8(3), cfg.GuardiansNeeded(0))
	require.Equal(t, uint8(2), cfg.GuardiansNeeded(1))
	require.Equal(t, uint8(0), cfg.GuardiansNeeded(3))
	require.Equal(t, uint8(0), cfg.GuardiansNeeded(5))
}

func buildRequestPayload(recoveryID, targetAddr string, newPubkey [NewPubkeySize]byte, proof []byte) []byte {
	payload := []byte{1, byte(len(recoveryID))}
	payload = append(payload, []byte(recoveryID)...)
	payload = append(payload, byte(len(targetAddr)))
	payload = append(payload, []byte(targetAddr)...)
	payload = append(payload, newPubkey[:]...)
	pl := make([]byte, 2)
	binary.LittleEndian.PutUint16(pl, uint16(len(proof)))
	payload = append(payload, pl...)
	payload = append(payload, proof...)
	return payload
}

func TestParseRequestValid(t *testing.T) {
	pubkey := validPubkey()
	payload := buildRequestPayload("rid", "bs1target", pubkey, []byte("proof"))

	req, err := ParseRequest(payload, "txid456", 2000, 10080)
	require.NoError(t, err)
	require.Equal(t, uint32(2000), req.RequestedAtBlock)
	require.Equal(t, "bs1target", req.TargetAddress)
	require.Equal(t, uint32(2000+10080), req.TimelockExpires)
	require.Empty(t, req.ApprovedGuardians)
}

func TestParseRequestInvalidPubkey(t *testing.T) {
	var pubkey [NewPubkeySize]byte
	pubkey[0] = 0x02 // well-formed prefix, but x-coordinate is not on the curve
	payload := buildRequestPayload("rid", "bs1target", pubkey, nil)

	_, err := ParseRequest(payload, "txid456", 2000, 10080)
	require.ErrorIs(t, err, ErrInvalidPubkey)
}

func TestRequestStateAt(t *testing.T) {
	pubkey := validPubkey()
	payload := buildRequestPayload("rid", "bs1target", pubkey, nil)
	req, err := ParseRequest(payload, "txid456", 1000, 10080)
	require.NoError(t, err)

	require.Equal(t, StatePending, req.StateAt(5000, 0, 2, false))
	require.Equal(t, StatePending, req.StateAt(10000, 0, 2, false))
	require.Equal(t, StateExpired, req.StateAt(12000, 0, 2, false))
	require.Equal(t, StateCancelled, req.StateAt(5000, 0, 2, true))
}

func TestRequestStateWithApprovals(t *testing.T) {
	pubkey := validPubkey()
	payload := buildRequestPayload("rid", "bs1target", pubkey, nil)
	req, err := ParseRequest(payload, "txid456", 1000, 10080)
	require.NoError(t, err)

	req.AddApproval("guardian1")
	req.AddApproval("guardian2")
	require.Len(t, req.ApprovedGuardians, 2)

	require.Equal(t, StateTimelocked, req.StateAt(5000, 2, 2, false))
	require.Equal(t, StateExecuted, req.StateAt(12000, 2, 2, false))
}

func TestRequestAddApprovalIdempotent(t *testing.T) {
	pubkey := validPubkey()
	payload := buildRequestPayload("rid", "bs1target", pubkey, nil)
	req, err := ParseRequest(payload, "txid456", 1000, 10080)
	require.NoError(t, err)

	req.AddApproval("guardian1")
	require.Len(t, req.ApprovedGuardians, 1)
	req.AddApproval("guardian1")
	require.Len(t, req.ApprovedGuardians, 1)
	req.AddApproval("guardian2")
	require.Len(t, req.ApprovedGuardians, 2)
}

func TestRequestCanExecute(t *testing.T) {
	pubkey := validPubkey()
	payload := buildRequestPayload("rid", "bs1target", pubkey, nil)
	req, err := ParseRequest(payload, "txid456", 1000, 10080)
	require.NoError(t, err)

	require.False(t, req.CanExecute(12000, 0, 2, false))
	require.False(t, req.CanExecute(5000, 2, 2, false))
	require.True(t, req.CanExecute(12000, 2, 2, false))
	require.False(t, req.CanExecute(12000, 2, 2, true))
}

func TestRequestIsInTimelock(t *testing.T) {
	pubkey := validPubkey()
	payload := buildRequestPayload("rid", "bs1target", pubkey, nil)
	req, err := ParseRequest(payload, "txid456", 1000, 10080)
	require.NoError(t, err)

	require.False(t, req.IsInTimelock(5000, 0, 2))
	require.True(t, req.IsInTimelock(5000, 2, 2))
	require.False(t, req.IsInTimelock(12000, 2, 2))
}

func buildApprovalPayload(requestID, guardianAddr string, share []byte) []byte {
	payload := []byte{1, byte(len(requestID))}
	payload = append(payload, []byte(requestID)...)
	payload = append(payload, byte(len(guardianAddr)))
	payload = append(payload, []byte(guardianAddr)...)
	sl := make([]byte, 2)
	binary.LittleEndian.PutUint16(sl, uint16(len(share)))
	payload = append(payload, sl...)
	payload = append(payload, share...)
	return payload
}

func TestParseApproval(t *testing.T) {
	payload := buildApprovalPayload("request123", "bs1guardian", []byte("share"))
	approval, err := ParseApproval(payload, 3000)
	require.NoError(t, err)
	require.Equal(t, uint32(3000), approval.ApprovedAtBlock)
	require.Equal(t, "bs1guardian", approval.GuardianAddress)
	// Request id bytes surface hex-encoded.
	require.Equal(t, hex.EncodeToString([]byte("request123")), approval.RequestID)
	require.Equal(t, []byte("share"), approval.EncryptedShare)
}

func buildCancelPayload(requestID, ownerAddr string) []byte {
	payload := []byte{1, byte(len(requestID))}
	payload = append(payload, []byte(requestID)...)
	payload = append(payload, byte(len(ownerAddr)))
	payload = append(payload, []byte(ownerAddr)...)
	return payload
}

func TestParseCancel(t *testing.T) {
	payload := buildCancelPayload("request123", "bs1owner")
	cancel, err := ParseCancel(payload, 4000)
	require.NoError(t, err)
	require.Equal(t, uint32(4000), cancel.CancelledBlock)
	require.Equal(t, hex.EncodeToString([]byte("request123")), cancel.RequestID)
	require.Equal(t, "bs1owner", cancel.OwnerAddress)
}

func buildKeyRotationPayload(oldAddr, newAddr string, viaRecovery bool, oldSig, newSig []byte, reason string) []byte {
	var flags byte
	if viaRecovery {
		flags |= viaRecoveryFlag
	}
	payload := []byte{1, flags, byte(len(oldAddr))}
	payload = append(payload, []byte(oldAddr)...)
	payload = append(payload, byte(len(newAddr)))
	payload = append(payload, []byte(newAddr)...)
	payload = append(payload, byte(len(oldSig)))
	payload = append(payload, oldSig...)
	payload = append(payload, byte(len(newSig)))
	payload = append(payload, newSig...)
	if reason != "" {
		rl := make([]byte, 2)
		binary.LittleEndian.PutUint16(rl, uint16(len(reason)))
		payload = append(payload, rl...)
		payload = append(payload, []byte(reason)...)
	}
	return payload
}

func TestParseKeyRotation(t *testing.T) {
	payload := buildKeyRotationPayload("bs1old", "bs1new", false, []byte("sig1"), []byte("sig2"), "Security upgrade")
	rot, err := ParseKeyRotation(payload, 5000)
	require.NoError(t, err)
	require.Equal(t, "bs1old", rot.OldAddress)
	require.Equal(t, "bs1new", rot.NewAddress)
	require.False(t, rot.ViaRecovery)
	require.Equal(t, "Security upgrade", rot.Reason)
}

func TestParseKeyRotationViaRecoveryNoReason(t *testing.T) {
	payload := buildKeyRotationPayload("bs1lost", "bs1recovered", true, []byte("a"), []byte("b"), "")
	rot, err := ParseKeyRotation(payload, 6000)
	require.NoError(t, err)
	require.True(t, rot.ViaRecovery)
	require.Empty(t, rot.Reason)
}

func TestKeyRotationMigrationID(t *testing.T) {
	rot1 := KeyRotation{OldAddress: "bs1old", NewAddress: "bs1new"}
	rot2 := KeyRotation{OldAddress: "bs1old", NewAddress: "bs1new"}

	require.Equal(t, rot1.MigrationID("tx1"), rot2.MigrationID("tx1"))
	require.NotEqual(t, rot1.MigrationID("tx1"), rot1.MigrationID("tx2"))
	require.Len(t, rot1.MigrationID("tx1"), 16)
}

func TestDeriveIDsDeterministic(t *testing.T) {
	id1 := DeriveRecoveryID("txid123")
	id2 := DeriveRecoveryID("txid123")
	require.Equal(t, id1, id2)

	id3 := DeriveRecoveryID("txid456")
	require.NotEqual(t, id1, id3)

	reqID := DeriveRequestID("txid123")
	require.NotEqual(t, id1, reqID)
}

func TestBlockStats(t *testing.T) {
	stats := NewBlockStats()
	require.True(t, stats.IsEmpty())

	stats.RecordConfig()
	stats.RecordRequest()
	stats.RecordApproval()
	stats.RecordCancellation()
	stats.RecordKeyRotation()

	require.False(t, stats.IsEmpty())
	require.Equal(t, uint32(5), stats.TotalRecoveryTxs)

	other := NewBlockStats()
	other.RecordKeyRotation()
	stats.Merge(other)
	require.Equal(t, uint32(2), stats.KeyRotations)
	require.Equal(t, uint32(6), stats.TotalRecoveryTxs)
}
