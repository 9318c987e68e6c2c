package governance

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildProposalPayload(pt ProposalType, title, desc string) []byte {
	out := []byte{byte(pt), byte(len(title))}
	out = append(out, title...)
	var descLen [2]byte
	binary.LittleEndian.PutUint16(descLen[:], uint16(len(desc)))
	out = append(out, descLen[:]...)
	out = append(out, desc...)
	return out
}

func TestParseProposalComputesWindow(t *testing.T) {
	payload := buildProposalPayload(ProposalParameter, "Raise fee", "details")
	p, err := ParseProposal(payload, "txid1", 1000)
	require.NoError(t, err)
	require.Equal(t, uint32(1000+ProposalPhaseBlocks), p.VotingStartsBlock)
	require.Equal(t, uint32(1000+ProposalPhaseBlocks+VotingPhaseBlocks), p.VotingEndsBlock)
	require.Less(t, p.VotingStartsBlock, p.VotingEndsBlock)
	require.Less(t, p.VotingEndsBlock, p.ExecutionBlock)
}

func TestParseProposalRejectsEmptyTitle(t *testing.T) {
	payload := buildProposalPayload(ProposalOther, "", "x")
	_, err := ParseProposal(payload, "tx", 0)
	require.ErrorIs(t, err, ErrEmptyTitle)
}

func TestParseVoteFixedSize(t *testing.T) {
	payload := make([]byte, VotePayloadSize)
	payload[32] = byte(VoteYes)
	binary.LittleEndian.PutUint64(payload[33:], 7)

	v, err := ParseVote(payload)
	require.NoError(t, err)
	require.Equal(t, VoteYes, v.Choice)
	require.Equal(t, uint64(7), v.Weight)
}

func TestParseVoteRejectsBadChoice(t *testing.T) {
	payload := make([]byte, VotePayloadSize)
	payload[32] = 5
	_, err := ParseVote(payload)
	require.ErrorIs(t, err, ErrInvalidVoteChoice)
}

func TestTallyQuorumAndApproval(t *testing.T) {
	tally := NewTally(1000)
	tally.RecordVote(VoteYes, 150)
	tally.RecordVote(VoteNo, 50)

	require.True(t, tally.HasQuorum()) // 200/1000 = 20%
	require.True(t, tally.HasApproval())
	require.True(t, tally.HasPassed())
	require.Equal(t, StatusPassed, tally.FinalStatus())
}

func TestTallyFailsBelowApproval(t *testing.T) {
	tally := NewTally(1000)
	tally.RecordVote(VoteYes, 100)
	tally.RecordVote(VoteNo, 100)

	require.True(t, tally.HasQuorum())
	require.False(t, tally.HasApproval())
	require.Equal(t, StatusRejected, tally.FinalStatus())
}

func TestTallyMixedBallots(t *testing.T) {
	tally := NewTally(1000)
	tally.RecordVote(VoteYes, 100)
	tally.RecordVote(VoteNo, 50)
	tally.RecordVote(VoteAbstain, 25)
	tally.RecordVote(VoteYes, 50)

	require.Equal(t, 150.0, tally.YesPower)
	require.Equal(t, 50.0, tally.NoPower)
	require.Equal(t, 25.0, tally.AbstainPower)
	require.Equal(t, uint32(4), tally.VoterCount)
	require.InDelta(t, 22.5, tally.QuorumPercent(), 0.001)
	require.InDelta(t, 75.0, tally.ApprovalPercent(), 0.001)
	require.True(t, tally.HasPassed())
}

func TestTallyDepositReturn(t *testing.T) {
	kept := NewTally(1000)
	kept.RecordVote(VoteYes, 10)
	kept.RecordVote(VoteNo, 90)
	require.True(t, kept.DepositReturned())

	forfeited := NewTally(1000)
	forfeited.RecordVote(VoteYes, 5)
	forfeited.RecordVote(VoteNo, 95)
	require.False(t, forfeited.DepositReturned())
}

func TestVotingPowerDiminishingReturns(t *testing.T) {
	power := VotingPower(100, 100)
	require.InDelta(t, 20.0, power, 0.001)

	negativeKarma := VotingPower(-50, 0)
	require.Equal(t, 0.0, negativeKarma)
}
