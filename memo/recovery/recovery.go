// Copyright (c) 2026 The Botcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package recovery decodes guardian-based social account recovery
// messages: configuration, request, approval, cancellation, and key
// rotation.
package recovery

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/btcsuite/btcd/btcec/v2"
)

// Guardian count bounds for a recovery configuration.
const (
	MinGuardians = 1
	MaxGuardians = 15
)

// Timelock bounds, in blocks: about 1.25 days to 12.5 weeks at 75-second
// blocks.
const (
	MinTimelockBlocks     = 1440
	MaxTimelockBlocks     = 100800
	DefaultTimelockBlocks = 10080
)

// GuardianHashSize is the fixed length, in octets, of a guardian address
// hash carried in a Config payload.
const GuardianHashSize = 32

// NewPubkeySize is the fixed length, in octets, of the compressed public
// key a Request payload rotates to.
const NewPubkeySize = 33

var (
	// ErrMalformed is returned when a payload is too short for its
	// declared field lengths.
	ErrMalformed = errors.New("recovery: malformed payload")

	// ErrInvalidGuardianCount means guardian_count fell outside
	// [MinGuardians, MaxGuardians].
	ErrInvalidGuardianCount = errors.New("recovery: invalid guardian count")

	// ErrInvalidThreshold means threshold was zero or exceeded
	// guardian_count.
	ErrInvalidThreshold = errors.New("recovery: invalid threshold")

	// ErrInvalidTimelock means timelock_blocks fell outside
	// [MinTimelockBlocks, MaxTimelockBlocks].
	ErrInvalidTimelock = errors.New("recovery: invalid timelock")

	// ErrInvalidPubkey means new_pubkey does not decode to a point on
	// secp256k1.
	ErrInvalidPubkey = errors.New("recovery: invalid new pubkey")
)

// State is a recovery request's lifecycle phase, derived purely from the
// approval set size, current height, and the cancelled flag.
type State int

const (
	StatePending State = iota
	StateTimelocked
	StateExecuted
	StateCancelled
	StateExpired
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateTimelocked:
		return "timelocked"
	case StateExecuted:
		return "executed"
	case StateCancelled:
		return "cancelled"
	case StateExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Config is a decoded RecoveryConfig payload: the guardian set and
// threshold protecting OwnerAddress, plus the timelock applied to any
// future request against it.
type Config struct {
	Version        byte
	GuardianCount  uint8
	Threshold      uint8
	TimelockBlocks uint32
	OwnerAddress   string
	GuardianHashes [][GuardianHashSize]byte
	CreatedAtBlock uint32
	RecoveryID     string
}

// ParseConfig decodes [version(1)] [guardian_count(1)] [threshold(1)]
// [timelock_blocks(4 LE)] [owner_addr_len(1)] [owner_addr]
// [guardian_hash(32)]·guardian_count, validating guardian count,
// threshold, and timelock bounds.
func ParseConfig(payload []byte, txID string, createdAtBlock uint32) (Config, error) {
	if len(payload) < 8 {
		return Config{}, ErrMalformed
	}

	version := payload[0]
	guardianCount := payload[1]
	threshold := payload[2]

	if guardianCount < MinGuardians || guardianCount > MaxGuardians {
		return Config{}, ErrInvalidGuardianCount
	}
	if threshold < 1 || threshold > guardianCount {
		return Config{}, ErrInvalidThreshold
	}

	timelockBlocks := binary.LittleEndian.Uint32(payload[3:7])
	if timelockBlocks < MinTimelockBlocks || timelockBlocks > MaxTimelockBlocks {
		return Config{}, ErrInvalidTimelock
	}

	ownerAddrLen := int(payload[7])
	offset := 8
	if offset+ownerAddrLen > len(payload) {
		return Config{}, ErrMalformed
	}
	ownerAddr := string(payload[offset : offset+ownerAddrLen])
	offset += ownerAddrLen

	expectedHashBytes := int(guardianCount) * GuardianHashSize
	if offset+expectedHashBytes > len(payload) {
		return Config{}, ErrMalformed
	}

	hashes := make([][GuardianHashSize]byte, guardianCount)
	for i := 0; i < int(guardianCount); i++ {
		var h [GuardianHashSize]byte
		copy(h[:], payload[offset:offset+GuardianHashSize])
		hashes[i] = h
		offset += GuardianHashSize
	}

	return Config{
		Version:        version,
		GuardianCount:  guardianCount,
		Threshold:      threshold,
		TimelockBlocks: timelockBlocks,
		OwnerAddress:   ownerAddr,
		GuardianHashes: hashes,
		CreatedAtBlock: createdAtBlock,
		RecoveryID:     DeriveRecoveryID(txID),
	}, nil
}

// HasGuardian reports whether hash is registered in this configuration.
func (c Config) HasGuardian(hash [GuardianHashSize]byte) bool {
	for _, h := range c.GuardianHashes {
		if h == hash {
			return true
		}
	}
	return false
}

// GuardiansNeeded returns how many more approvals are required beyond
// approvals to reach the configured threshold.
func (c Config) GuardiansNeeded(approvals uint8) uint8 {
	if approvals >= c.Threshold {
		return 0
	}
	return c.Threshold - approvals
}

// Request is a decoded RecoveryRequest payload: a proposal to rotate the
// owner address's key to NewPubkey, subject to guardian approval and
// timelock.
type Request struct {
	RecoveryID        string
	TargetAddress     string
	NewPubkey         [NewPubkeySize]byte
	Proof             []byte
	RequestedAtBlock  uint32
	TimelockBlocks    uint32
	TimelockExpires   uint32
	RequestID         string
	ApprovedGuardians []string
}

// ParseRequest decodes [version(1)] [recovery_id_len(1)] [recovery_id]
// [target_addr_len(1)] [target_addr] [new_pubkey(33)] [proof_len(2 LE)]
// [proof]. timelockBlocks is carried over from the referenced Config (the
// memo itself does not restate it); DefaultTimelockBlocks is used absent
// one.
func ParseRequest(payload []byte, txID string, requestedAtBlock uint32, timelockBlocks uint32) (Request, error) {
	if len(payload) < 3 {
		return Request{}, ErrMalformed
	}

	recoveryIDLen := int(payload[1])
	if 2+recoveryIDLen+1 > len(payload) {
		return Request{}, ErrMalformed
	}
	recoveryID := hex.EncodeToString(payload[2 : 2+recoveryIDLen])

	targetOffset := 2 + recoveryIDLen
	targetAddrLen := int(payload[targetOffset])
	if targetOffset+1+targetAddrLen+NewPubkeySize > len(payload) {
		return Request{}, ErrMalformed
	}
	targetAddr := string(payload[targetOffset+1 : targetOffset+1+targetAddrLen])

	pubkeyOffset := targetOffset + 1 + targetAddrLen
	var pubkey [NewPubkeySize]byte
	copy(pubkey[:], payload[pubkeyOffset:pubkeyOffset+NewPubkeySize])
	if _, err := btcec.ParsePubKey(pubkey[:]); err != nil {
		return Request{}, ErrInvalidPubkey
	}

	var proof []byte
	proofLenOffset := pubkeyOffset + NewPubkeySize
	if proofLenOffset+2 <= len(payload) {
		proofLen := int(binary.LittleEndian.Uint16(payload[proofLenOffset : proofLenOffset+2]))
		if proofLenOffset+2+proofLen <= len(payload) {
			proof = append([]byte(nil), payload[proofLenOffset+2:proofLenOffset+2+proofLen]...)
		}
	}

	if timelockBlocks == 0 {
		timelockBlocks = DefaultTimelockBlocks
	}

	return Request{
		RecoveryID:       recoveryID,
		TargetAddress:    targetAddr,
		NewPubkey:        pubkey,
		Proof:            proof,
		RequestedAtBlock: requestedAtBlock,
		TimelockBlocks:   timelockBlocks,
		TimelockExpires:  requestedAtBlock + timelockBlocks,
		RequestID:        DeriveRequestID(txID),
	}, nil
}

// StateAt returns the request's lifecycle phase at currentHeight, given
// the number of approvals received so far, the configured threshold, and
// whether the owner cancelled it.
func (r Request) StateAt(currentHeight uint32, approvals uint8, threshold uint8, cancelled bool) State {
	if cancelled {
		return StateCancelled
	}

	if approvals >= threshold {
		if currentHeight >= r.TimelockExpires {
			return StateExecuted
		}
		return StateTimelocked
	}

	if currentHeight >= r.TimelockExpires {
		return StateExpired
	}
	return StatePending
}

// CanExecute reports whether the request may be finalized at
// currentHeight.
func (r Request) CanExecute(currentHeight uint32, approvals uint8, threshold uint8, cancelled bool) bool {
	return !cancelled && approvals >= threshold && currentHeight >= r.TimelockExpires
}

// IsInTimelock reports whether the threshold has been met but the
// timelock has not yet expired.
func (r Request) IsInTimelock(currentHeight uint32, approvals uint8, threshold uint8) bool {
	return approvals >= threshold && currentHeight < r.TimelockExpires
}

// AddApproval records an approval from guardianAddress, idempotently: a
// guardian that has already approved this request contributes nothing on
// a repeat approval.
func (r *Request) AddApproval(guardianAddress string) {
	for _, g := range r.ApprovedGuardians {
		if g == guardianAddress {
			return
		}
	}
	r.ApprovedGuardians = append(r.ApprovedGuardians, guardianAddress)
}

// Approval is a decoded RecoveryApprove payload: one guardian's approval
// of a pending request, carrying its encrypted Shamir share.
type Approval struct {
	RequestID       string
	GuardianAddress string
	EncryptedShare  []byte
	ApprovedAtBlock uint32
}

// ParseApproval decodes [version(1)] [request_id_len(1)] [request_id]
// [guardian_addr_len(1)] [guardian_addr] [share_len(2 LE)]
// [encrypted_share].
func ParseApproval(payload []byte, approvedAtBlock uint32) (Approval, error) {
	if len(payload) < 3 {
		return Approval{}, ErrMalformed
	}

	requestIDLen := int(payload[1])
	if 2+requestIDLen+1 > len(payload) {
		return Approval{}, ErrMalformed
	}
	requestID := hex.EncodeToString(payload[2 : 2+requestIDLen])

	guardianOffset := 2 + requestIDLen
	guardianAddrLen := int(payload[guardianOffset])
	if guardianOffset+1+guardianAddrLen+2 > len(payload) {
		return Approval{}, ErrMalformed
	}
	guardianAddr := string(payload[guardianOffset+1 : guardianOffset+1+guardianAddrLen])

	shareLenOffset := guardianOffset + 1 + guardianAddrLen
	shareLen := int(binary.LittleEndian.Uint16(payload[shareLenOffset : shareLenOffset+2]))
	if shareLenOffset+2+shareLen > len(payload) {
		return Approval{}, ErrMalformed
	}
	share := append([]byte(nil), payload[shareLenOffset+2:shareLenOffset+2+shareLen]...)

	return Approval{
		RequestID:       requestID,
		GuardianAddress: guardianAddr,
		EncryptedShare:  share,
		ApprovedAtBlock: approvedAtBlock,
	}, nil
}

// Cancel is a decoded RecoveryCancel payload: the owner rejecting an
// unauthorized recovery attempt.
type Cancel struct {
	RequestID      string
	OwnerAddress   string
	CancelledBlock uint32
}

// ParseCancel decodes [version(1)] [request_id_len(1)] [request_id]
// [owner_addr_len(1)] [owner_addr].
func ParseCancel(payload []byte, cancelledBlock uint32) (Cancel, error) {
	if len(payload) < 3 {
		return Cancel{}, ErrMalformed
	}

	requestIDLen := int(payload[1])
	if 2+requestIDLen+1 > len(payload) {
		return Cancel{}, ErrMalformed
	}
	requestID := hex.EncodeToString(payload[2 : 2+requestIDLen])

	ownerOffset := 2 + requestIDLen
	ownerAddrLen := int(payload[ownerOffset])
	if ownerOffset+1+ownerAddrLen > len(payload) {
		return Cancel{}, ErrMalformed
	}
	ownerAddr := string(payload[ownerOffset+1 : ownerOffset+1+ownerAddrLen])

	return Cancel{RequestID: requestID, OwnerAddress: ownerAddr, CancelledBlock: cancelledBlock}, nil
}

// viaRecoveryFlag is bit 0 of a KeyRotation payload's flags octet.
const viaRecoveryFlag = 0x01

// KeyRotation is a decoded KeyRotation payload: migration of a social
// identity from OldAddress to NewAddress, optionally following a
// successful recovery.
type KeyRotation struct {
	OldAddress   string
	NewAddress   string
	ViaRecovery  bool
	OldSignature []byte
	NewSignature []byte
	Reason       string
	RotatedBlock uint32
}

// ParseKeyRotation decodes [version(1)] [flags(1)] [old_addr_len(1)]
// [old_addr] [new_addr_len(1)] [new_addr] [old_sig_len(1)] [old_sig]
// [new_sig_len(1)] [new_sig] [reason_len(2 LE)] [reason]?.
func ParseKeyRotation(payload []byte, rotatedBlock uint32) (KeyRotation, error) {
	if len(payload) < 4 {
		return KeyRotation{}, ErrMalformed
	}

	flags := payload[1]
	viaRecovery := flags&viaRecoveryFlag != 0

	oldAddrLen := int(payload[2])
	if 3+oldAddrLen+1 > len(payload) {
		return KeyRotation{}, ErrMalformed
	}
	oldAddr := string(payload[3 : 3+oldAddrLen])

	newAddrOffset := 3 + oldAddrLen
	newAddrLen := int(payload[newAddrOffset])
	if newAddrOffset+1+newAddrLen+1 > len(payload) {
		return KeyRotation{}, ErrMalformed
	}
	newAddr := string(payload[newAddrOffset+1 : newAddrOffset+1+newAddrLen])

	oldSigOffset := newAddrOffset + 1 + newAddrLen
	if oldSigOffset+1 > len(payload) {
		return KeyRotation{}, ErrMalformed
	}
	oldSigLen := int(payload[oldSigOffset])
	if oldSigOffset+1+oldSigLen+1 > len(payload) {
		return KeyRotation{}, ErrMalformed
	}
	oldSig := append([]byte(nil), payload[oldSigOffset+1:oldSigOffset+1+oldSigLen]...)

	newSigOffset := oldSigOffset + 1 + oldSigLen
	newSigLen := int(payload[newSigOffset])
	if newSigOffset+1+newSigLen > len(payload) {
		return KeyRotation{}, ErrMalformed
	}
	newSig := append([]byte(nil), payload[newSigOffset+1:newSigOffset+1+newSigLen]...)

	var reason string
	reasonOffset := newSigOffset + 1 + newSigLen
	if reasonOffset+2 <= len(payload) {
		reasonLen := int(binary.LittleEndian.Uint16(payload[reasonOffset : reasonOffset+2]))
		if reasonLen > 0 && reasonOffset+2+reasonLen <= len(payload) {
			reason = string(payload[reasonOffset+2 : reasonOffset+2+reasonLen])
		}
	}

	return KeyRotation{
		OldAddress:   oldAddr,
		NewAddress:   newAddr,
		ViaRecovery:  viaRecovery,
		OldSignature: oldSig,
		NewSignature: newSig,
		Reason:       reason,
		RotatedBlock: rotatedBlock,
	}, nil
}

// MigrationID identifies this rotation for index bookkeeping. It is a
// non-cryptographic digest over (old address, new address, carrying tx);
// collision resistance is not required because the transaction ID already
// disambiguates.
func (k KeyRotation) MigrationID(txID string) string {
	h := fnv.New64a()
	h.Write([]byte(k.OldAddress))
	h.Write([]byte(k.NewAddress))
	h.Write([]byte(txID))
	return fmt.Sprintf("%016x", h.Sum64())
}

// DeriveRecoveryID is the SHA-256 hex digest of the transaction ID
// string.
func DeriveRecoveryID(txID string) string {
	sum := sha256.Sum256([]byte(txID))
	return hex.EncodeToString(sum[:])
}

// DeriveRequestID is the SHA-256 hex digest of "request:" prefixed to the
// transaction ID string, kept distinct from DeriveRecoveryID for the same
// transaction.
func DeriveRequestID(txID string) string {
	h := sha256.New()
	h.Write([]byte("request:"))
	h.Write([]byte(txID))
	return hex.EncodeToString(h.Sum(nil))
}

// BlockStats tallies recovery activity within a block.
type BlockStats struct {
	ConfigsCreated    uint32
	RequestsInitiated uint32
	Approvals         uint32
	Cancellations     uint32
	KeyRotations      uint32
	TotalRecoveryTxs  uint32
}

// NewBlockStats creates an empty tally.
func NewBlockStats() BlockStats {
	return BlockStats{}
}

// RecordConfig records one recovery configuration.
func (s *BlockStats) RecordConfig() {
	s.ConfigsCreated++
	s.TotalRecoveryTxs++
}

// RecordRequest records one recovery request.
func (s *BlockStats) RecordRequest() {
	s.RequestsInitiated++
	s.TotalRecoveryTxs++
}

// RecordApproval records one guardian approval.
func (s *BlockStats) RecordApproval() {
	s.Approvals++
	s.TotalRecoveryTxs++
}

// RecordCancellation records one cancellation.
func (s *BlockStats) RecordCancellation() {
	s.Cancellations++
	s.TotalRecoveryTxs++
}

// RecordKeyRotation records one key rotation.
func (s *BlockStats) RecordKeyRotation() {
	s.KeyRotations++
	s.TotalRecoveryTxs++
}

// Merge combines two BlockStats covering disjoint transaction sets.
func (s *BlockStats) Merge(other BlockStats) {
	s.ConfigsCreated += other.ConfigsCreated
	s.RequestsInitiated += other.RequestsInitiated
	s.Approvals += other.Approvals
	s.Cancellations += other.Cancellations
	s.KeyRotations += other.KeyRotations
	s.TotalRecoveryTxs += other.TotalRecoveryTxs
}

// IsEmpty reports whether no recovery transactions were recorded.
func (s BlockStats) IsEmpty() bool {
	return s.TotalRecoveryTxs == 0
}
