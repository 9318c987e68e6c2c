// Copyright (c) 2026 The Botcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package moderation

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildTrustPayload(target string, level TrustLevel, reason string) []byte {
	payload := []byte{byte(len(target))}
	payload = append(payload, []byte(target)...)
	payload = append(payload, byte(level))
	if reason != "" {
		rl := make([]byte, 2)
		binary.LittleEndian.PutUint16(rl, uint16(len(reason)))
		payload = append(payload, rl...)
		payload = append(payload, []byte(reason)...)
	}
	return payload
}

func TestParseTrustValid(t *testing.T) {
	payload := buildTrustPayload("bs1target", TrustTrusted, "known contact")
	trust, err := ParseTrust(payload)
	require.NoError(t, err)
	require.Equal(t, "bs1target", trust.TargetAddress)
	require.Equal(t, TrustTrusted, trust.Level)
	require.Equal(t, "known contact", trust.Reason)
	require.Equal(t, int64(1), trust.ScoreContribution())
}

func TestParseTrustInvalidLevel(t *testing.T) {
	payload := []byte{1, 'x', 0x05}
	_, err := ParseTrust(payload)
	require.ErrorIs(t, err, ErrInvalidTrustLevel)
}

func TestParseTrustMalformed(t *testing.T) {
	_, err := ParseTrust([]byte{})
	require.ErrorIs(t, err, ErrMalformed)
}

func TestTrustScoreSumsContributions(t *testing.T) {
	trusts := []Trust{
		{Level: TrustTrusted},
		{Level: TrustDistrust},
		{Level: TrustNeutral},
		{Level: TrustTrusted},
	}
	require.Equal(t, int64(1), TrustScore(trusts))
}

func TestTransitiveTrustDecaysByDepth(t *testing.T) {
	depth1 := TransitiveTrust(TrustTrusted, 1, 1)
	depth2 := TransitiveTrust(TrustTrusted, 1, 2)
	require.InDelta(t, 0.7, depth1, 0.0001)
	require.InDelta(t, 0.49, depth2, 0.0001)
}

func TestTransitiveTrustZeroBeyondMaxDepth(t *testing.T) {
	require.Zero(t, TransitiveTrust(TrustTrusted, 1, MaxTrustDepth+1))
}

func TestTransitiveTrustZeroThroughNeutralIntermediary(t *testing.T) {
	require.Zero(t, TransitiveTrust(TrustTrusted, 0, 1))
}

func TestTransitiveTrustFlipsSignThroughDistrustedIntermediary(t *testing.T) {
	v := TransitiveTrust(TrustTrusted, -1, 1)
	require.Less(t, v, 0.0)
}

func buildReportPayload(txid [32]byte, category ReportCategory, stake uint64, evidence string) []byte {
	payload := append([]byte(nil), txid[:]...)
	payload = append(payload, byte(category))
	sb := make([]byte, 8)
	binary.LittleEndian.PutUint64(sb, stake)
	payload = append(payload, sb...)
	if evidence != "" {
		el := make([]byte, 2)
		binary.LittleEndian.PutUint16(el, uint16(len(evidence)))
		payload = append(payload, el...)
		payload = append(payload, []byte(evidence)...)
	}
	return payload
}

func TestParseReportValid(t *testing.T) {
	var txid [32]byte
	txid[0] = 0xAB
	payload := buildReportPayload(txid, ReportScam, 2000000, "screenshot")

	report, err := ParseReport(payload, 500)
	require.NoError(t, err)
	require.Equal(t, ReportScam, report.Category)
	require.Equal(t, ReportPending, report.Status)
	require.Equal(t, uint64(2000000), report.Stake)
	require.Equal(t, "screenshot", report.Evidence)
	require.Equal(t, uint32(500+ReportExpirationBlocks), report.ExpirationBlock())
	require.True(t, report.IsActiveAt(500))
	require.False(t, report.IsActiveAt(500+ReportExpirationBlocks))
}

func TestParseReportInsufficientStake(t *testing.T) {
	var txid [32]byte
	payload := buildReportPayload(txid, ReportSpam, MinReportStake-1, "")
	_, err := ParseReport(payload, 500)
	require.ErrorIs(t, err, ErrInsufficientStake)
}

func TestParseReportInvalidCategory(t *testing.T) {
	var txid [32]byte
	payload := buildReportPayload(txid, ReportOther, MinReportStake, "")
	payload[32] = 0xFF
	_, err := ParseReport(payload, 500)
	require.ErrorIs(t, err, ErrInvalidCategory)
}

func TestReportStatusAt(t *testing.T) {
	report := Report{SubmittedAtBlock: 500}
	require.Equal(t, ReportPending, report.StatusAt(500))
	require.Equal(t, ReportPending, report.StatusAt(500+ReportExpirationBlocks-1))
	require.Equal(t, ReportExpired, report.StatusAt(500+ReportExpirationBlocks))
}

func TestReportPotentialReward(t *testing.T) {
	report := Report{Stake: 1000000, Category: ReportScam}
	require.Equal(t, uint64(500000), report.PotentialReward())
}

func TestReportAggregation(t *testing.T) {
	agg := NewReportAggregation()
	var txid [32]byte
	agg.AddReport(Report{TargetTxID: txid, Category: ReportIllegal, Stake: 1000000})
	require.True(t, agg.HasImmediateReports())
	require.Equal(t, uint32(1), agg.TotalReports)

	other := NewReportAggregation()
	other.AddReport(Report{TargetTxID: txid, Category: ReportSpam, Stake: 2000000})
	agg.Merge(other)

	require.Equal(t, uint32(2), agg.TotalReports)
	require.Equal(t, uint64(3000000), agg.TotalStake)
	require.Equal(t, uint32(1), agg.ByCategory[ReportIllegal])
	require.Equal(t, uint32(1), agg.ByCategory[ReportSpam])
	require.Equal(t, uint32(2), agg.ByStatus[ReportPending])
}
