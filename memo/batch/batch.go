// Copyright (c) 2026 The Botcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package batch decodes batch container memos: a single memo that
// carries up to five inner social messages, saving the per-transaction
// overhead of sending them individually.
package batch

import (
	"encoding/binary"
	"errors"

	"github.com/toole-brendan/shell/memo"
)

// MaxActions is the largest number of actions a batch may carry.
const MaxActions = 5

var (
	// ErrNotBatch is returned when Parse is handed a non-batch message.
	ErrNotBatch = errors.New("batch: memo is not a batch message")

	// ErrEmptyBatch means action_count was zero.
	ErrEmptyBatch = errors.New("batch: action count must be at least 1")

	// ErrTooManyActions means action_count exceeded MaxActions.
	ErrTooManyActions = errors.New("batch: action count exceeds maximum")

	// ErrNestedBatch means an inner action was itself a batch.
	ErrNestedBatch = errors.New("batch: batches cannot be nested")

	// ErrMalformed means the payload was too short for its declared
	// action lengths.
	ErrMalformed = errors.New("batch: malformed action framing")
)

// Action is one inner social message extracted from a batch, annotated
// with its position.
type Action struct {
	Index   uint8
	Message memo.SocialMessage
}

// Batch is a fully decoded batch payload.
type Batch struct {
	Version byte
	Actions []Action
}

// Parse decodes a batch message's payload: [action_count(1)]
// ([len(2 LE)] [action])*action_count, where each action is itself a full
// type, version, payload social message.
func Parse(msg memo.SocialMessage) (Batch, error) {
	if msg.Type != memo.TypeBatch {
		return Batch{}, ErrNotBatch
	}

	payload := msg.Payload
	if len(payload) < 1 {
		return Batch{}, ErrMalformed
	}

	count := int(payload[0])
	if count < 1 {
		return Batch{}, ErrEmptyBatch
	}
	if count > MaxActions {
		return Batch{}, ErrTooManyActions
	}

	offset := 1
	actions := make([]Action, 0, count)
	for i := 0; i < count; i++ {
		if offset+2 > len(payload) {
			return Batch{}, ErrMalformed
		}
		actionLen := int(binary.LittleEndian.Uint16(payload[offset : offset+2]))
		offset += 2

		if offset+actionLen > len(payload) {
			return Batch{}, ErrMalformed
		}
		raw := payload[offset : offset+actionLen]
		offset += actionLen

		inner, err := memo.Parse(raw)
		if err != nil {
			return Batch{}, err
		}
		if inner.Type == memo.TypeBatch {
			return Batch{}, ErrNestedBatch
		}

		actions = append(actions, Action{Index: uint8(i), Message: inner})
	}

	return Batch{Version: msg.Version, Actions: actions}, nil
}

// BlockStats tallies batching activity within a block; it is a monoid
// over per-transaction observations recorded via RecordIndividual and
// RecordBatch.
type BlockStats struct {
	BlockHeight            uint32
	TotalTransactions      uint32
	BatchTransactions      uint32
	TotalSocialActions     uint32
	IndividualActions      uint32
	BatchedActions         uint32
	AvgActionsPerBatchX100 uint32
	EstimatedSpaceSavings  uint32
}

// NewBlockStats creates an empty tally for the given block height.
func NewBlockStats(height uint32) BlockStats {
	return BlockStats{BlockHeight: height}
}

// RecordIndividual records one non-batch social transaction.
func (s *BlockStats) RecordIndividual() {
	s.TotalTransactions++
	s.TotalSocialActions++
	s.IndividualActions++
}

// RecordBatch records one batch transaction carrying actionCount inner
// actions.
func (s *BlockStats) RecordBatch(actionCount uint32) {
	s.TotalTransactions++
	s.BatchTransactions++
	s.TotalSocialActions += actionCount
	s.BatchedActions += actionCount

	if actionCount > 1 {
		s.EstimatedSpaceSavings += (actionCount - 1) * 200
	}

	if s.BatchTransactions > 0 {
		s.AvgActionsPerBatchX100 = (s.BatchedActions * 100) / s.BatchTransactions
	}
}

// Merge combines two BlockStats covering disjoint transaction sets
// (typically when aggregation is parallelized across shards of the same
// block), recomputing the derived average.
func (s *BlockStats) Merge(other BlockStats) {
	s.TotalTransactions += other.TotalTransactions
	s.BatchTransactions += other.BatchTransactions
	s.TotalSocialActions += other.TotalSocialActions
	s.IndividualActions += other.IndividualActions
	s.BatchedActions += other.BatchedActions
	s.EstimatedSpaceSavings += other.EstimatedSpaceSavings

	if s.BatchTransactions > 0 {
		s.AvgActionsPerBatchX100 = (s.BatchedActions * 100) / s.BatchTransactions
	}
}
