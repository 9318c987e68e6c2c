// Copyright (c) 2026 The Botcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package memo implements the low-level type+version+payload framing
// carried in shielded-transaction memo fields. Subpackages (batch, bridge,
// governance, moderation, multisig, recovery) decode the payload for each
// registered message type.
package memo

import "errors"

// Type identifies a social message's wire type, the single octet at
// memo[0].
type Type byte

// The complete social message type registry.
const (
	TypeProfile Type = 0x10
	TypePost    Type = 0x20
	TypeFollow  Type = 0x30
	TypeDM      Type = 0x40
	TypeTip     Type = 0x50

	TypeAttentionBoost Type = 0x60

	TypeBatch Type = 0x80

	TypeBridgeLink   Type = 0xB0
	TypeBridgeUnlink Type = 0xB1
	TypeBridgePost   Type = 0xB2
	TypeBridgeVerify Type = 0xB3

	TypeTrust  Type = 0xD0
	TypeReport Type = 0xD1

	TypeGovernanceVote     Type = 0xE0
	TypeGovernanceProposal Type = 0xE1

	TypeRecoveryConfig  Type = 0xF0
	TypeRecoveryRequest Type = 0xF1
	TypeRecoveryApprove Type = 0xF2
	TypeRecoveryCancel  Type = 0xF3
	TypeKeyRotation     Type = 0xF4

	TypeMultisigSetup  Type = 0xF5
	TypeMultisigAction Type = 0xF6
)

// ErrTruncated means the memo was too short to contain a version octet.
var ErrTruncated = errors.New("memo: truncated, no version octet")

// ErrUnknownType means memo[0] does not match any entry in the type
// registry. This is a non-fatal parse error: the containing transaction
// remains valid.
var ErrUnknownType = errors.New("memo: unknown social message type")

// SocialMessage is the parsed type+version+payload framing common to
// every social message. Subpackages further decode Payload according to
// Type.
type SocialMessage struct {
	Type    Type
	Version byte
	Payload []byte
}

// IsValueTransfer reports whether this message type moves value alongside
// its social action (Tip, AttentionBoost, Report).
func (t Type) IsValueTransfer() bool {
	switch t {
	case TypeTip, TypeAttentionBoost, TypeReport:
		return true
	default:
		return false
	}
}

// known is the complete registry of recognized type octets, used for the
// unknown-type check.
var known = map[Type]struct{}{
	TypeProfile: {}, TypePost: {}, TypeFollow: {}, TypeDM: {}, TypeTip: {},
	TypeAttentionBoost: {},
	TypeBatch:          {},
	TypeBridgeLink:     {}, TypeBridgeUnlink: {}, TypeBridgePost: {}, TypeBridgeVerify: {},
	TypeTrust: {}, TypeReport: {},
	TypeGovernanceVote: {}, TypeGovernanceProposal: {},
	TypeRecoveryConfig: {}, TypeRecoveryRequest: {}, TypeRecoveryApprove: {}, TypeRecoveryCancel: {}, TypeKeyRotation: {},
	TypeMultisigSetup: {}, TypeMultisigAction: {},
}

// IsKnownType reports whether t is a registered social message type.
func IsKnownType(t Type) bool {
	_, ok := known[t]
	return ok
}

// Parse reads a memo's type, version, and payload. Only memo[0] is
// consulted for dispatch; a length-zero memo or one with no version octet
// fails with ErrTruncated, and an unrecognized type octet fails with
// ErrUnknownType.
func Parse(data []byte) (SocialMessage, error) {
	if len(data) < 1 {
		return SocialMessage{}, ErrTruncated
	}

	t := Type(data[0])
	if !IsKnownType(t) {
		return SocialMessage{}, ErrUnknownType
	}

	if len(data) < 2 {
		return SocialMessage{}, ErrTruncated
	}

	return SocialMessage{
		Type:    t,
		Version: data[1],
		Payload: data[2:],
	}, nil
}

// Encode reassembles a SocialMessage into its wire form: type ∥ version ∥
// payload.
func Encode(msg SocialMessage) []byte {
	out := make([]byte, 0, 2+len(msg.Payload))
	out = append(out, byte(msg.Type))
	out = append(out, msg.Version)
	out = append(out, msg.Payload...)
	return out
}
