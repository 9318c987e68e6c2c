// Copyright (c) 2026 The Botcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package upgrade tracks BIP9-style version-bit signaling for protocol
// upgrade deployments. It generalizes the window/threshold mechanics
// scattered across chaincfg.ConsensusDeployment into a standalone tracker
// that callers drive with observed block versions and heights.
package upgrade

import (
	"fmt"

	"github.com/btcsuite/btclog"
)

// log is the package-level logger, left disabled until UseLogger is
// called by a caller that has a concrete btclog.Logger to hand it.
var log = btclog.Disabled

// UseLogger sets the package-level logger used by this package. Calling
// this is optional; if not called, all log messages are discarded.
func UseLogger(logger btclog.Logger) {
	log = logger
}

// State is a deployment's position in its signaling lifecycle.
type State int

const (
	// Defined means the deployment has been declared but its signaling
	// window has not yet begun.
	Defined State = iota

	// Started means the current window's height is at or past the
	// deployment's configured start height; miners may signal.
	Started

	// LockedIn means a prior Started window closed with a signal ratio at
	// or above the activation threshold.
	LockedIn

	// Active means the window following a LockedIn window has begun; the
	// deployment's rules are enforced.
	Active

	// Failed means the timeout height was reached without the deployment
	// ever reaching LockedIn or Active.
	Failed
)

func (s State) String() string {
	switch s {
	case Defined:
		return "defined"
	case Started:
		return "started"
	case LockedIn:
		return "locked-in"
	case Active:
		return "active"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MaxConcurrentDeployments bounds how many deployments may be in flight at
// once, guarding against version-bit exhaustion.
const MaxConcurrentDeployments = 32

// SignalingMinBit and SignalingMaxBit bound the inclusive range of
// block-version bits available for deployment signaling. Following the BIP9
// convention, the top three bits carry the SignalingVersion pattern, which
// leaves bits 0 through 28 for deployments.
const (
	SignalingMinBit = 0
	SignalingMaxBit = 28
)

// SignalingVersion is the bit pattern that marks a block version as
// carrying deployment signals rather than a legacy version number.
const SignalingVersion uint32 = 0x20000000

// SupportsSignaling reports whether a raw block-version field identifies
// itself as a signaling version.
func SupportsSignaling(version uint32) bool {
	return version&0xE0000000 == SignalingVersion
}

// ParseVersionBits extracts the set of signaled bit positions from a
// signaling block version. It returns nil for a non-signaling version.
func ParseVersionBits(version uint32) []uint8 {
	if !SupportsSignaling(version) {
		return nil
	}
	var bits []uint8
	for b := SignalingMinBit; b <= SignalingMaxBit; b++ {
		if version&(1<<uint(b)) != 0 {
			bits = append(bits, uint8(b))
		}
	}
	return bits
}

// CreateSignalingVersion builds a block-version value that signals the
// given bit positions.
func CreateSignalingVersion(bits ...uint8) uint32 {
	v := SignalingVersion
	for _, b := range bits {
		v |= 1 << uint(b)
	}
	return v
}

// ActivationThresholdPercent is the fraction of a window's blocks that
// must signal a bit for that window to be treated as LockedIn.
const ActivationThresholdPercent = 75

// GraceBlocks is the number of blocks after a LockedIn window closes
// before the deployment's rules are enforced, giving the network time to
// upgrade software.
const GraceBlocks = 0

// Deployment describes a single candidate soft fork's signaling
// parameters.
type Deployment struct {
	Bit           uint8
	WindowSize    int32
	StartHeight   int32
	TimeoutHeight int32
}

// WindowNumber returns the index of the window containing height, windows
// being contiguous non-overlapping ranges of WindowSize blocks starting at
// height 0.
func WindowNumber(height, windowSize int32) int32 {
	if windowSize <= 0 {
		return 0
	}
	return height / windowSize
}

// WindowStartHeight returns the first height in the window containing
// height.
func WindowStartHeight(height, windowSize int32) int32 {
	return WindowNumber(height, windowSize) * windowSize
}

// WindowEndHeight returns the last height in the window containing
// height.
func WindowEndHeight(height, windowSize int32) int32 {
	return WindowStartHeight(height, windowSize) + windowSize - 1
}

// CalculateActivationHeight returns the first height at which a
// deployment that reached LockedIn in the window ending at lockedInEnd
// becomes Active: the start of the window after the grace period.
func CalculateActivationHeight(lockedInEnd int32, windowSize int32) int32 {
	return lockedInEnd + 1 + GraceBlocks
}

// WindowStats tallies how many of a window's blocks signaled a given bit.
type WindowStats struct {
	WindowNumber  int32
	BlocksSeen    int32
	BlocksSignals int32
}

// Ratio returns the observed signaling ratio as a percentage in [0, 100].
// It is 0 for an empty window.
func (w WindowStats) Ratio() int32 {
	if w.BlocksSeen == 0 {
		return 0
	}
	return (w.BlocksSignals * 100) / w.BlocksSeen
}

// MeetsThreshold reports whether the window's signaling ratio reached
// ActivationThresholdPercent.
func (w WindowStats) MeetsThreshold() bool {
	return w.Ratio() >= ActivationThresholdPercent
}

// Tracker computes a Deployment's State at a given height from a sequence
// of completed window observations the caller supplies. It holds no block
// data itself; callers own collecting per-window signal counts (for
// example from an indexer's block-version observations) and hand the
// completed tallies in via RecordWindow.
type Tracker struct {
	dep     Deployment
	windows map[int32]WindowStats

	lockedInWindow int32
	hasLockedIn    bool
}

// NewTracker creates a Tracker for the given deployment parameters.
func NewTracker(dep Deployment) *Tracker {
	return &Tracker{
		dep:     dep,
		windows: make(map[int32]WindowStats),
	}
}

// RecordWindow records a completed window's signaling tally. Windows must
// be recorded in increasing order; recording the same window twice
// overwrites the prior tally.
func (t *Tracker) RecordWindow(w WindowStats) {
	t.windows[w.WindowNumber] = w
	if !t.hasLockedIn && w.MeetsThreshold() && w.WindowNumber >= WindowNumber(t.dep.StartHeight, t.dep.WindowSize) {
		t.lockedInWindow = w.WindowNumber
		t.hasLockedIn = true
		log.Debugf("deployment bit %d locked in at window %d (ratio %d%%)",
			t.dep.Bit, w.WindowNumber, w.Ratio())
	}
}

// StateAt returns the deployment's state as of height, given the windows
// recorded so far via RecordWindow.
func (t *Tracker) StateAt(height int32) State {
	if height < t.dep.StartHeight {
		return Defined
	}

	if t.hasLockedIn {
		activationWindow := t.lockedInWindow + 1
		if WindowNumber(height, t.dep.WindowSize) >= activationWindow {
			return Active
		}
		return LockedIn
	}

	if t.dep.TimeoutHeight > 0 && height >= t.dep.TimeoutHeight {
		return Failed
	}

	return Started
}

// ActivationHeight returns the height at which the deployment becomes
// Active, or false if it has not yet locked in.
func (t *Tracker) ActivationHeight() (int32, bool) {
	if !t.hasLockedIn {
		return 0, false
	}
	lockedInEnd := WindowEndHeight(t.lockedInWindow*t.dep.WindowSize, t.dep.WindowSize)
	return CalculateActivationHeight(lockedInEnd, t.dep.WindowSize), true
}
