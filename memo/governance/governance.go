// Copyright (c) 2026 The Botcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package governance decodes proposal and vote messages and computes
// karma+stake-weighted vote tallies.
package governance

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"math"
)

// Phase lengths in blocks. At 75-second blocks these are about 8.75 days
// of discussion, 17.5 days of voting and 37.5 days of execution timelock.
const (
	ProposalPhaseBlocks     = 10080
	VotingPhaseBlocks       = 20160
	ExecutionTimelockBlocks = 43200
)

// Economic thresholds.
const (
	MinProposalDeposit     = 1000000000 // zatoshis, 10 BCASH
	DepositReturnThreshold = 10.0       // percent
	QuorumRequired         = 20.0       // percent
	ApprovalRequired       = 66.0       // percent
)

// ProposalType distinguishes the kind of governance action proposed.
type ProposalType byte

const (
	ProposalOther ProposalType = iota
	ProposalParameter
	ProposalUpgrade
	ProposalSpending
)

func (t ProposalType) String() string {
	switch t {
	case ProposalOther:
		return "other"
	case ProposalParameter:
		return "parameter"
	case ProposalUpgrade:
		return "upgrade"
	case ProposalSpending:
		return "spending"
	default:
		return "unknown"
	}
}

// VoteChoice is the one-octet ballot value.
type VoteChoice byte

const (
	VoteNo VoteChoice = iota
	VoteYes
	VoteAbstain
)

func (c VoteChoice) String() string {
	switch c {
	case VoteNo:
		return "no"
	case VoteYes:
		return "yes"
	case VoteAbstain:
		return "abstain"
	default:
		return "unknown"
	}
}

// ProposalStatus tracks a proposal's lifecycle. The parser only ever
// observes Pending at creation time; Voting/Passed/Rejected/Executed are
// derived by the aggregator from height and vote tallies.
type ProposalStatus int

const (
	StatusPending ProposalStatus = iota
	StatusVoting
	StatusPassed
	StatusRejected
	StatusExecuted
)

func (s ProposalStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusVoting:
		return "voting"
	case StatusPassed:
		return "passed"
	case StatusRejected:
		return "rejected"
	case StatusExecuted:
		return "executed"
	default:
		return "unknown"
	}
}

var (
	// ErrEmptyTitle is returned when a proposal's title has zero length.
	ErrEmptyTitle = errors.New("governance: proposal title must not be empty")

	// ErrMalformed is returned when a payload is too short for its
	// declared field lengths.
	ErrMalformed = errors.New("governance: malformed payload")

	// ErrInvalidProposalType means the type octet is outside [0, 3].
	ErrInvalidProposalType = errors.New("governance: invalid proposal type")

	// ErrInvalidVoteChoice means the choice octet is outside [0, 2].
	ErrInvalidVoteChoice = errors.New("governance: invalid vote choice")
)

// Proposal is a decoded governance proposal, with the fixed voting window
// computed from its creation height.
type Proposal struct {
	Type              ProposalType
	Title             string
	Description       string
	CreatedAtBlock    uint32
	VotingStartsBlock uint32
	VotingEndsBlock   uint32
	ExecutionBlock    uint32
	ProposalID        string
}

// ParseProposal decodes a Proposal payload:
// [type(1)] [title_len(1)] [title] [desc_len(2 LE)] [desc].
func ParseProposal(payload []byte, txID string, createdAtBlock uint32) (Proposal, error) {
	if len(payload) < 1 {
		return Proposal{}, ErrMalformed
	}
	pt := ProposalType(payload[0])
	if pt > ProposalSpending {
		return Proposal{}, ErrInvalidProposalType
	}

	if len(payload) < 2 {
		return Proposal{}, ErrMalformed
	}
	titleLen := int(payload[1])
	offset := 2
	if offset+titleLen > len(payload) {
		return Proposal{}, ErrMalformed
	}
	title := string(payload[offset : offset+titleLen])
	offset += titleLen
	if title == "" {
		return Proposal{}, ErrEmptyTitle
	}

	if offset+2 > len(payload) {
		return Proposal{}, ErrMalformed
	}
	descLen := int(binary.LittleEndian.Uint16(payload[offset : offset+2]))
	offset += 2
	if offset+descLen > len(payload) {
		return Proposal{}, ErrMalformed
	}
	desc := string(payload[offset : offset+descLen])

	votingStarts := createdAtBlock + ProposalPhaseBlocks
	votingEnds := votingStarts + VotingPhaseBlocks
	execution := votingEnds + ExecutionTimelockBlocks

	return Proposal{
		Type:              pt,
		Title:             title,
		Description:       desc,
		CreatedAtBlock:    createdAtBlock,
		VotingStartsBlock: votingStarts,
		VotingEndsBlock:   votingEnds,
		ExecutionBlock:    execution,
		ProposalID:        DeriveProposalID(txID),
	}, nil
}

// DeriveProposalID is the SHA-256 hex digest of the transaction ID string.
func DeriveProposalID(txID string) string {
	sum := sha256.Sum256([]byte(txID))
	return hex.EncodeToString(sum[:])
}

// StatusAt returns the proposal's lifecycle phase purely from height. It
// does not consult a Tally: after voting closes it reports StatusPassed
// until ExecutionBlock and StatusExecuted from then on, whatever the votes
// were, and never reports StatusRejected; Tally.FinalStatus is what
// separates Passed from Rejected.
func (p Proposal) StatusAt(height uint32) ProposalStatus {
	switch {
	case height < p.VotingStartsBlock:
		return StatusPending
	case height < p.VotingEndsBlock:
		return StatusVoting
	case height >= p.ExecutionBlock:
		return StatusExecuted
	default:
		return StatusPassed
	}
}

// IsVotingOpen reports whether height falls within the proposal's voting
// window.
func (p Proposal) IsVotingOpen(height uint32) bool {
	return height >= p.VotingStartsBlock && height < p.VotingEndsBlock
}

// VotePayloadSize is the fixed length of a Vote payload. The weight field
// is always a full 8 octets so that zero-padded fixed-width memos cannot
// corrupt a little-endian weight by trimming trailing zeros.
const VotePayloadSize = 32 + 1 + 8

// Vote is a decoded governance vote.
type Vote struct {
	ProposalID [32]byte
	Choice     VoteChoice
	Weight     uint64
}

// ParseVote decodes the fixed 41-octet Vote payload:
// [proposal_id(32)] [choice(1)] [weight(8 LE)].
func ParseVote(payload []byte) (Vote, error) {
	if len(payload) != VotePayloadSize {
		return Vote{}, ErrMalformed
	}

	choice := VoteChoice(payload[32])
	if choice > VoteAbstain {
		return Vote{}, ErrInvalidVoteChoice
	}

	var id [32]byte
	copy(id[:], payload[:32])
	weight := binary.LittleEndian.Uint64(payload[33:41])

	return Vote{ProposalID: id, Choice: choice, Weight: weight}, nil
}

// VotingPower computes power(karma, balance) = sqrt(max(karma,0)) +
// sqrt(balance), the diminishing-returns weighting over social capital
// and stake.
func VotingPower(karma float64, balance uint64) float64 {
	if karma < 0 {
		karma = 0
	}
	return math.Sqrt(karma) + math.Sqrt(float64(balance))
}

// Tally accumulates voting power cast on a proposal.
type Tally struct {
	YesPower          float64
	NoPower           float64
	AbstainPower      float64
	VoterCount        uint32
	CirculatingSupply uint64
}

// NewTally creates an empty tally referencing the given circulating
// supply for quorum calculation.
func NewTally(circulatingSupply uint64) Tally {
	return Tally{CirculatingSupply: circulatingSupply}
}

// RecordVote folds one vote's weighted power into the tally.
func (t *Tally) RecordVote(choice VoteChoice, power float64) {
	switch choice {
	case VoteYes:
		t.YesPower += power
	case VoteNo:
		t.NoPower += power
	case VoteAbstain:
		t.AbstainPower += power
	}
	t.VoterCount++
}

// TotalPower is the sum of all cast voting power, used for quorum.
func (t Tally) TotalPower() float64 {
	return t.YesPower + t.NoPower + t.AbstainPower
}

// QuorumPercent is total power cast as a percentage of circulating
// supply.
func (t Tally) QuorumPercent() float64 {
	if t.CirculatingSupply == 0 {
		return 0
	}
	return (t.TotalPower() / float64(t.CirculatingSupply)) * 100
}

// HasQuorum reports whether quorum percent reached QuorumRequired.
func (t Tally) HasQuorum() bool {
	return t.QuorumPercent() >= QuorumRequired
}

// ApprovalPercent is yes power as a percentage of (yes + no); abstain
// does not appear in the denominator.
func (t Tally) ApprovalPercent() float64 {
	total := t.YesPower + t.NoPower
	if total == 0 {
		return 0
	}
	return (t.YesPower / total) * 100
}

// HasApproval reports whether approval percent reached ApprovalRequired.
func (t Tally) HasApproval() bool {
	return t.ApprovalPercent() >= ApprovalRequired
}

// HasPassed reports whether both quorum and approval were reached.
func (t Tally) HasPassed() bool {
	return t.HasQuorum() && t.HasApproval()
}

// DepositReturned reports whether the proposer's deposit is returned: yes
// power must be at least DepositReturnThreshold percent of yes+no power.
func (t Tally) DepositReturned() bool {
	total := t.YesPower + t.NoPower
	if total == 0 {
		return false
	}
	return (t.YesPower/total)*100 >= DepositReturnThreshold
}

// FinalStatus is Passed if HasPassed, else Rejected.
func (t Tally) FinalStatus() ProposalStatus {
	if t.HasPassed() {
		return StatusPassed
	}
	return StatusRejected
}

// BlockStats tallies governance activity within a block.
type BlockStats struct {
	BlockHeight        uint32
	TotalGovernanceTxs uint32
	ProposalsCreated   uint32
	VotesCast          uint32
}

// NewBlockStats creates an empty tally for the given block height.
func NewBlockStats(height uint32) BlockStats {
	return BlockStats{BlockHeight: height}
}

// RecordProposal records one proposal creation.
func (s *BlockStats) RecordProposal() {
	s.TotalGovernanceTxs++
	s.ProposalsCreated++
}

// RecordVote records one cast vote.
func (s *BlockStats) RecordVote() {
	s.TotalGovernanceTxs++
	s.VotesCast++
}

// Merge combines two BlockStats covering disjoint transaction sets of the
// same block.
func (s *BlockStats) Merge(other BlockStats) {
	s.TotalGovernanceTxs += other.TotalGovernanceTxs
	s.ProposalsCreated += other.ProposalsCreated
	s.VotesCast += other.VotesCast
}
