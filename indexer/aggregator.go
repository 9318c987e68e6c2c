// Copyright (c) 2026 The Botcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package indexer

import (
	"github.com/btcsuite/btclog"

	"github.com/toole-brendan/shell/memo/batch"
	"github.com/toole-brendan/shell/memo/bridge"
	"github.com/toole-brendan/shell/memo/governance"
	"github.com/toole-brendan/shell/memo/moderation"
	"github.com/toole-brendan/shell/memo/multisig"
	"github.com/toole-brendan/shell/memo/recovery"
)

// log is the package-level logger, left disabled until UseLogger is
// called by a caller that has a concrete btclog.Logger to hand it.
var log = btclog.Disabled

// UseLogger sets the package-level logger used by this package. Calling
// this is optional; if not called, all log messages are discarded.
func UseLogger(logger btclog.Logger) {
	log = logger
}

// BlockAggregator folds a block's derived Events into the per-block
// stats of each message family, plus a counter of memos that failed to
// parse. Every mutation is a small arithmetic update on privately held
// state, so no locking is imposed here: run one BlockAggregator per
// indexing actor and Merge partial results together.
type BlockAggregator struct {
	Height uint32

	Batch      batch.BlockStats
	Bridge     bridge.BlockStats
	Governance governance.BlockStats
	Recovery   recovery.BlockStats
	Multisig   multisig.BlockStats
	Reports    moderation.ReportAggregation

	MalformedMessages uint32
}

// NewBlockAggregator creates an empty aggregator for the given height.
func NewBlockAggregator(height uint32) BlockAggregator {
	return BlockAggregator{
		Height:     height,
		Batch:      batch.NewBlockStats(height),
		Bridge:     bridge.NewBlockStats(height),
		Governance: governance.NewBlockStats(height),
		Recovery:   recovery.NewBlockStats(),
		Multisig:   multisig.NewBlockStats(),
		Reports:    moderation.NewReportAggregation(),
	}
}

// RecordMalformed counts one memo that failed to parse. Malformed memos
// never invalidate their containing transaction; the index just keeps a
// per-block tally of them.
func (a *BlockAggregator) RecordMalformed() {
	a.MalformedMessages++
	log.Warnf("malformed social message at height %d (running total %d)", a.Height, a.MalformedMessages)
}

// Record folds one derived Event into the aggregator.
func (a *BlockAggregator) Record(ev Event) {
	switch ev.Kind {
	case KindSocial:
		a.Batch.RecordIndividual()
	case KindBatch:
		a.Batch.RecordBatch(uint32(len(ev.Batch.Actions)))
	case KindBridgeLink:
		a.Bridge.RecordLink(ev.BridgeLink.Platform)
	case KindBridgeUnlink:
		a.Bridge.RecordUnlink()
	case KindBridgePost:
		a.Bridge.RecordPost()
	case KindBridgeVerify:
		a.Bridge.RecordVerify()
	case KindTrust:
		// Trust scores accumulate per-address across many blocks; there is
		// nothing block-local to tally beyond what the event itself carries.
	case KindReport:
		a.Reports.AddReport(ev.Report)
	case KindGovernanceVote:
		a.Governance.RecordVote()
	case KindGovernanceProposal:
		a.Governance.RecordProposal()
	case KindRecoveryConfig:
		a.Recovery.RecordConfig()
	case KindRecoveryRequest:
		a.Recovery.RecordRequest()
	case KindRecoveryApprove:
		a.Recovery.RecordApproval()
	case KindRecoveryCancel:
		a.Recovery.RecordCancellation()
	case KindKeyRotation:
		a.Recovery.RecordKeyRotation()
	case KindMultisigSetup:
		a.Multisig.RecordSetup(ev.MultisigSetup.KeyCount)
	case KindMultisigAction:
		a.Multisig.RecordAction(ev.MultisigAction.SignatureCount())
	}
}

// Merge combines two BlockAggregators covering disjoint transaction sets
// of the same block.
func (a *BlockAggregator) Merge(other BlockAggregator) {
	a.Batch.Merge(other.Batch)
	a.Bridge.Merge(other.Bridge)
	a.Governance.Merge(other.Governance)
	a.Recovery.Merge(other.Recovery)
	a.Multisig.Merge(other.Multisig)
	a.Reports.Merge(other.Reports)
	a.MalformedMessages += other.MalformedMessages
}
