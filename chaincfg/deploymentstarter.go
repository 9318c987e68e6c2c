// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2026 The Botcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import "time"

// ConsensusDeploymentStarter defines an interface that specifies the
// condition in which a consensus rule-change deployment's signaling window
// is eligible to begin.
type ConsensusDeploymentStarter interface {
	// HasStarted returns true if the deployment period should start, given
	// the median time of the chain tip.
	HasStarted(blockTime time.Time) bool
}

// ConsensusDeploymentEnder defines an interface that specifies the
// condition in which a consensus rule-change deployment's signaling window
// should be abandoned (timed out without reaching activation).
type ConsensusDeploymentEnder interface {
	// HasEnded returns true if the deployment's signaling window should be
	// considered expired, given the median time of the chain tip.
	HasEnded(blockTime time.Time) bool
}

// ClockConsensusDeploymentStarter is a narrower interface implemented by
// starters that are driven purely by a wall-clock threshold, allowing test
// harnesses to fast-forward activation by swapping the reference time.
type ClockConsensusDeploymentStarter interface {
	ConsensusDeploymentStarter

	StartTime() time.Time
}

// ClockConsensusDeploymentEnder is the ender counterpart of
// ClockConsensusDeploymentStarter.
type ClockConsensusDeploymentEnder interface {
	ConsensusDeploymentEnder

	EndTime() time.Time
}

// MedianTimeDeploymentStarter is the most straightforward implementation of
// the ConsensusDeploymentStarter interface: a deployment starts signaling
// once the median time of the chain tip reaches a fixed point in time.
type MedianTimeDeploymentStarter struct {
	startTime time.Time
}

// NewMedianTimeDeploymentStarter creates a new MedianTimeDeploymentStarter
// that signals the deployment should start once the past median block time
// reaches startTime.
func NewMedianTimeDeploymentStarter(startTime time.Time) *MedianTimeDeploymentStarter {
	return &MedianTimeDeploymentStarter{startTime: startTime}
}

// HasStarted returns true once blockTime is at or after the configured
// start time. A zero start time always signals started, matching the
// always-on test-dummy deployment.
func (m *MedianTimeDeploymentStarter) HasStarted(blockTime time.Time) bool {
	if m.startTime.IsZero() {
		return true
	}
	return blockTime.Unix() >= m.startTime.Unix()
}

// StartTime returns the configured start time.
func (m *MedianTimeDeploymentStarter) StartTime() time.Time {
	return m.startTime
}

// MedianTimeDeploymentEnder is the ConsensusDeploymentEnder counterpart of
// MedianTimeDeploymentStarter.
type MedianTimeDeploymentEnder struct {
	endTime time.Time
}

// NewMedianTimeDeploymentEnder creates a new MedianTimeDeploymentEnder that
// signals the deployment window has expired once the past median block
// time reaches endTime.
func NewMedianTimeDeploymentEnder(endTime time.Time) *MedianTimeDeploymentEnder {
	return &MedianTimeDeploymentEnder{endTime: endTime}
}

// HasEnded returns true once blockTime is at or after the configured end
// time. A zero end time never expires, matching the always-on test-dummy
// deployment.
func (m *MedianTimeDeploymentEnder) HasEnded(blockTime time.Time) bool {
	if m.endTime.IsZero() {
		return false
	}
	return blockTime.Unix() >= m.endTime.Unix()
}

// EndTime returns the configured end time.
func (m *MedianTimeDeploymentEnder) EndTime() time.Time {
	return m.endTime
}
