// Copyright (c) 2026 The Botcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package bridge decodes external-platform identity messages: link,
// unlink, cross-post, and verification requests against one of five
// supported social platforms.
package bridge

import (
	"encoding/binary"
	"errors"
)

// Platform is the one-octet enum identifying an external social network.
type Platform byte

const (
	PlatformTelegram Platform = iota
	PlatformDiscord
	PlatformNostr
	PlatformMastodon
	PlatformTwitter
)

// String returns the platform's canonical lowercase name.
func (p Platform) String() string {
	switch p {
	case PlatformTelegram:
		return "telegram"
	case PlatformDiscord:
		return "discord"
	case PlatformNostr:
		return "nostr"
	case PlatformMastodon:
		return "mastodon"
	case PlatformTwitter:
		return "twitter"
	default:
		return "unknown"
	}
}

// ErrUnknownPlatform is returned when a platform octet is outside [0, 4].
var ErrUnknownPlatform = errors.New("bridge: unknown platform")

// ErrMalformed is returned when a payload is too short for its declared
// field lengths.
var ErrMalformed = errors.New("bridge: malformed payload")

func platformFromByte(b byte) (Platform, error) {
	if b > byte(PlatformTwitter) {
		return 0, ErrUnknownPlatform
	}
	return Platform(b), nil
}

// ChallengeSize is the fixed length, in octets, of a link's verification
// challenge.
const ChallengeSize = 32

// Link is a decoded BridgeLink payload: (platform, platform_id, 32-octet
// challenge, variable signature).
type Link struct {
	Platform   Platform
	PlatformID string
	Challenge  [ChallengeSize]byte
	Signature  []byte
}

// ParseLink decodes a BridgeLink payload:
// [platform(1)] [id_len(1)] [id] [challenge(32)] [sig_len(2 LE)] [sig].
func ParseLink(payload []byte) (Link, error) {
	if len(payload) < 1 {
		return Link{}, ErrMalformed
	}
	platform, err := platformFromByte(payload[0])
	if err != nil {
		return Link{}, err
	}

	offset := 1
	id, offset, err := readLenPrefixedString(payload, offset, 1)
	if err != nil {
		return Link{}, err
	}

	if offset+ChallengeSize > len(payload) {
		return Link{}, ErrMalformed
	}
	var challenge [ChallengeSize]byte
	copy(challenge[:], payload[offset:offset+ChallengeSize])
	offset += ChallengeSize

	if offset+2 > len(payload) {
		return Link{}, ErrMalformed
	}
	sigLen := int(binary.LittleEndian.Uint16(payload[offset : offset+2]))
	offset += 2
	if offset+sigLen > len(payload) {
		return Link{}, ErrMalformed
	}
	sig := append([]byte(nil), payload[offset:offset+sigLen]...)

	return Link{Platform: platform, PlatformID: id, Challenge: challenge, Signature: sig}, nil
}

// Unlink is a decoded BridgeUnlink payload: (platform, platform_id).
type Unlink struct {
	Platform   Platform
	PlatformID string
}

// ParseUnlink decodes [platform(1)] [id_len(1)] [id].
func ParseUnlink(payload []byte) (Unlink, error) {
	if len(payload) < 1 {
		return Unlink{}, ErrMalformed
	}
	platform, err := platformFromByte(payload[0])
	if err != nil {
		return Unlink{}, err
	}

	id, _, err := readLenPrefixedString(payload, 1, 1)
	if err != nil {
		return Unlink{}, err
	}
	return Unlink{Platform: platform, PlatformID: id}, nil
}

// Post is a decoded BridgePost payload: (platform, original_id, content).
type Post struct {
	Platform   Platform
	OriginalID string
	Content    string
}

// HasContent reports whether the cross-posted content is non-empty.
func (p Post) HasContent() bool { return p.Content != "" }

// ParsePost decodes [platform(1)] [orig_len(1)] [orig] [content_len(2 LE)] [content].
func ParsePost(payload []byte) (Post, error) {
	if len(payload) < 1 {
		return Post{}, ErrMalformed
	}
	platform, err := platformFromByte(payload[0])
	if err != nil {
		return Post{}, err
	}

	orig, offset, err := readLenPrefixedString(payload, 1, 1)
	if err != nil {
		return Post{}, err
	}

	content, _, err := readLenPrefixedString(payload, offset, 2)
	if err != nil {
		return Post{}, err
	}

	return Post{Platform: platform, OriginalID: orig, Content: content}, nil
}

// Verify is a decoded BridgeVerify payload: (platform, platform_id, nonce).
type Verify struct {
	Platform   Platform
	PlatformID string
	Nonce      uint64
}

// ParseVerify decodes [platform(1)] [id_len(1)] [id] [nonce(8 LE)].
func ParseVerify(payload []byte) (Verify, error) {
	if len(payload) < 1 {
		return Verify{}, ErrMalformed
	}
	platform, err := platformFromByte(payload[0])
	if err != nil {
		return Verify{}, err
	}

	id, offset, err := readLenPrefixedString(payload, 1, 1)
	if err != nil {
		return Verify{}, err
	}

	if offset+8 > len(payload) {
		return Verify{}, ErrMalformed
	}
	nonce := binary.LittleEndian.Uint64(payload[offset : offset+8])

	return Verify{Platform: platform, PlatformID: id, Nonce: nonce}, nil
}

// readLenPrefixedString reads a length-prefixed UTF-8 string starting at
// offset, where the prefix is either 1 or 2 little-endian octets wide. It
// returns the string and the offset immediately following it.
func readLenPrefixedString(payload []byte, offset int, prefixWidth int) (string, int, error) {
	if offset+prefixWidth > len(payload) {
		return "", 0, ErrMalformed
	}

	var length int
	switch prefixWidth {
	case 1:
		length = int(payload[offset])
	case 2:
		length = int(binary.LittleEndian.Uint16(payload[offset : offset+2]))
	default:
		return "", 0, ErrMalformed
	}
	offset += prefixWidth

	if offset+length > len(payload) {
		return "", 0, ErrMalformed
	}
	s := string(payload[offset : offset+length])
	return s, offset + length, nil
}

// BlockStats tallies bridge activity within a block.
type BlockStats struct {
	BlockHeight uint32
	Links       uint32
	Unlinks     uint32
	Posts       uint32
	Verifies    uint32
	ByPlatform  map[string]uint32
}

// NewBlockStats creates an empty tally for the given block height.
func NewBlockStats(height uint32) BlockStats {
	return BlockStats{BlockHeight: height, ByPlatform: make(map[string]uint32)}
}

// RecordLink records one link event for the given platform.
func (s *BlockStats) RecordLink(platform Platform) {
	s.Links++
	s.ByPlatform[platform.String()]++
}

// RecordUnlink records one unlink event.
func (s *BlockStats) RecordUnlink() { s.Unlinks++ }

// RecordPost records one cross-post event.
func (s *BlockStats) RecordPost() { s.Posts++ }

// RecordVerify records one verification request.
func (s *BlockStats) RecordVerify() { s.Verifies++ }

// Merge combines two BlockStats covering disjoint transaction sets of the
// same block.
func (s *BlockStats) Merge(other BlockStats) {
	s.Links += other.Links
	s.Unlinks += other.Unlinks
	s.Posts += other.Posts
	s.Verifies += other.Verifies
	for platform, count := range other.ByPlatform {
		s.ByPlatform[platform] += count
	}
}
