// Copyright (c) 2026 The Botcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package indexer implements the pure memo-derivation layer: given a
// parsed social message, a transaction id, and a block height, it
// produces a typed Event an external index can aggregate. The package
// never touches persistent state; every function here is synchronous,
// allocation-only, and safe to call from any thread.
package indexer

import (
	"github.com/toole-brendan/shell/memo"
	"github.com/toole-brendan/shell/memo/batch"
	"github.com/toole-brendan/shell/memo/bridge"
	"github.com/toole-brendan/shell/memo/governance"
	"github.com/toole-brendan/shell/memo/moderation"
	"github.com/toole-brendan/shell/memo/multisig"
	"github.com/toole-brendan/shell/memo/recovery"
)

// Kind identifies which field of Event is populated.
type Kind int

const (
	KindSocial Kind = iota
	KindBatch
	KindBridgeLink
	KindBridgeUnlink
	KindBridgePost
	KindBridgeVerify
	KindTrust
	KindReport
	KindGovernanceVote
	KindGovernanceProposal
	KindRecoveryConfig
	KindRecoveryRequest
	KindRecoveryApprove
	KindRecoveryCancel
	KindKeyRotation
	KindMultisigSetup
	KindMultisigAction
)

func (k Kind) String() string {
	switch k {
	case KindSocial:
		return "social"
	case KindBatch:
		return "batch"
	case KindBridgeLink:
		return "bridge_link"
	case KindBridgeUnlink:
		return "bridge_unlink"
	case KindBridgePost:
		return "bridge_post"
	case KindBridgeVerify:
		return "bridge_verify"
	case KindTrust:
		return "trust"
	case KindReport:
		return "report"
	case KindGovernanceVote:
		return "governance_vote"
	case KindGovernanceProposal:
		return "governance_proposal"
	case KindRecoveryConfig:
		return "recovery_config"
	case KindRecoveryRequest:
		return "recovery_request"
	case KindRecoveryApprove:
		return "recovery_approve"
	case KindRecoveryCancel:
		return "recovery_cancel"
	case KindKeyRotation:
		return "key_rotation"
	case KindMultisigSetup:
		return "multisig_setup"
	case KindMultisigAction:
		return "multisig_action"
	default:
		return "unknown"
	}
}

// Event is the tagged-union output of deriving one social message into an
// indexable value. TxID and Height are carried on every event since ID
// derivation (recovery, governance) and lifecycle-state computation both
// need them; Sender is the shielded sender's address where the
// transaction layer can supply one (trust edges and reports are
// attributed to it). Profile/Post/Follow/DM/Tip/AttentionBoost carry no
// further structure beyond the raw SocialMessage, so they surface as
// KindSocial.
type Event struct {
	Kind   Kind
	TxID   string
	Sender string
	Height uint32

	Social             memo.SocialMessage
	Batch              batch.Batch
	BridgeLink         bridge.Link
	BridgeUnlink       bridge.Unlink
	BridgePost         bridge.Post
	BridgeVerify       bridge.Verify
	Trust              moderation.Trust
	Report             moderation.Report
	GovernanceVote     governance.Vote
	GovernanceProposal governance.Proposal
	RecoveryConfig     recovery.Config
	RecoveryRequest    recovery.Request
	RecoveryApprove    recovery.Approval
	RecoveryCancel     recovery.Cancel
	KeyRotation        recovery.KeyRotation
	MultisigSetup      multisig.Setup
	MultisigAction     multisig.Action
}

// Derive parses msg into a typed Event, dispatching on msg.Type.
// txID and height thread through to every subparser that needs them for
// ID derivation or timelock computation; sender is attached verbatim and
// may be empty when the transaction layer cannot attribute one.
// recoveryTimelockBlocks overrides recovery.DefaultTimelockBlocks for a
// RecoveryRequest; pass 0 to accept the default, since the request's
// governing guardian config (and its configured timelock) lives outside
// a single memo's payload.
func Derive(msg memo.SocialMessage, txID, sender string, height uint32, recoveryTimelockBlocks uint32) (Event, error) {
	base := Event{TxID: txID, Sender: sender, Height: height}

	switch msg.Type {
	case memo.TypeProfile, memo.TypePost, memo.TypeFollow, memo.TypeDM, memo.TypeTip, memo.TypeAttentionBoost:
		base.Kind = KindSocial
		base.Social = msg
		return base, nil

	case memo.TypeBatch:
		b, err := batch.Parse(msg)
		if err != nil {
			return Event{}, err
		}
		base.Kind = KindBatch
		base.Batch = b
		return base, nil

	case memo.TypeBridgeLink:
		l, err := bridge.ParseLink(msg.Payload)
		if err != nil {
			return Event{}, err
		}
		base.Kind = KindBridgeLink
		base.BridgeLink = l
		return base, nil

	case memo.TypeBridgeUnlink:
		u, err := bridge.ParseUnlink(msg.Payload)
		if err != nil {
			return Event{}, err
		}
		base.Kind = KindBridgeUnlink
		base.BridgeUnlink = u
		return base, nil

	case memo.TypeBridgePost:
		p, err := bridge.ParsePost(msg.Payload)
		if err != nil {
			return Event{}, err
		}
		base.Kind = KindBridgePost
		base.BridgePost = p
		return base, nil

	case memo.TypeBridgeVerify:
		v, err := bridge.ParseVerify(msg.Payload)
		if err != nil {
			return Event{}, err
		}
		base.Kind = KindBridgeVerify
		base.BridgeVerify = v
		return base, nil

	case memo.TypeTrust:
		t, err := moderation.ParseTrust(msg.Payload)
		if err != nil {
			return Event{}, err
		}
		base.Kind = KindTrust
		base.Trust = t
		return base, nil

	case memo.TypeReport:
		r, err := moderation.ParseReport(msg.Payload, height)
		if err != nil {
			return Event{}, err
		}
		base.Kind = KindReport
		base.Report = r
		return base, nil

	case memo.TypeGovernanceVote:
		v, err := governance.ParseVote(msg.Payload)
		if err != nil {
			return Event{}, err
		}
		base.Kind = KindGovernanceVote
		base.GovernanceVote = v
		return base, nil

	case memo.TypeGovernanceProposal:
		p, err := governance.ParseProposal(msg.Payload, txID, height)
		if err != nil {
			return Event{}, err
		}
		base.Kind = KindGovernanceProposal
		base.GovernanceProposal = p
		return base, nil

	case memo.TypeRecoveryConfig:
		c, err := recovery.ParseConfig(msg.Payload, txID, height)
		if err != nil {
			return Event{}, err
		}
		base.Kind = KindRecoveryConfig
		base.RecoveryConfig = c
		return base, nil

	case memo.TypeRecoveryRequest:
		r, err := recovery.ParseRequest(msg.Payload, txID, height, recoveryTimelockBlocks)
		if err != nil {
			return Event{}, err
		}
		base.Kind = KindRecoveryRequest
		base.RecoveryRequest = r
		return base, nil

	case memo.TypeRecoveryApprove:
		a, err := recovery.ParseApproval(msg.Payload, height)
		if err != nil {
			return Event{}, err
		}
		base.Kind = KindRecoveryApprove
		base.RecoveryApprove = a
		return base, nil

	case memo.TypeRecoveryCancel:
		c, err := recovery.ParseCancel(msg.Payload, height)
		if err != nil {
			return Event{}, err
		}
		base.Kind = KindRecoveryCancel
		base.RecoveryCancel = c
		return base, nil

	case memo.TypeKeyRotation:
		k, err := recovery.ParseKeyRotation(msg.Payload, height)
		if err != nil {
			return Event{}, err
		}
		base.Kind = KindKeyRotation
		base.KeyRotation = k
		return base, nil

	case memo.TypeMultisigSetup:
		s, err := multisig.ParseSetup(msg.Payload)
		if err != nil {
			return Event{}, err
		}
		base.Kind = KindMultisigSetup
		base.MultisigSetup = s
		return base, nil

	case memo.TypeMultisigAction:
		a, err := multisig.ParseAction(msg.Payload)
		if err != nil {
			return Event{}, err
		}
		base.Kind = KindMultisigAction
		base.MultisigAction = a
		return base, nil

	default:
		return Event{}, memo.ErrUnknownType
	}
}

// DeriveAll parses msg and expands a batch container into its inner
// actions as a contiguous run preserving inner order, which fixes the
// canonical event sequence for any index. A non-batch message yields
// exactly one Event.
func DeriveAll(msg memo.SocialMessage, txID, sender string, height uint32, recoveryTimelockBlocks uint32) ([]Event, error) {
	if msg.Type != memo.TypeBatch {
		ev, err := Derive(msg, txID, sender, height, recoveryTimelockBlocks)
		if err != nil {
			return nil, err
		}
		return []Event{ev}, nil
	}

	b, err := batch.Parse(msg)
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(b.Actions))
	for _, action := range b.Actions {
		ev, err := Derive(action.Message, txID, sender, height, recoveryTimelockBlocks)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}
