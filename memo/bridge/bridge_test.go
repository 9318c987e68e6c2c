package bridge

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLinkRoundTrip(t *testing.T) {
	payload := []byte{byte(PlatformDiscord), 4}
	payload = append(payload, []byte("user")...)
	var challenge [ChallengeSize]byte
	challenge[0] = 0xAB
	payload = append(payload, challenge[:]...)
	sig := []byte{0x01, 0x02, 0x03}
	var sigLen [2]byte
	binary.LittleEndian.PutUint16(sigLen[:], uint16(len(sig)))
	payload = append(payload, sigLen[:]...)
	payload = append(payload, sig...)

	link, err := ParseLink(payload)
	require.NoError(t, err)
	require.Equal(t, PlatformDiscord, link.Platform)
	require.Equal(t, "user", link.PlatformID)
	require.Equal(t, challenge, link.Challenge)
	require.Equal(t, sig, link.Signature)
}

func TestParseUnlink(t *testing.T) {
	payload := []byte{byte(PlatformTelegram), 3}
	payload = append(payload, []byte("bob")...)

	u, err := ParseUnlink(payload)
	require.NoError(t, err)
	require.Equal(t, "bob", u.PlatformID)
	require.Equal(t, "telegram", u.Platform.String())
}

func TestParseVerifyNonce(t *testing.T) {
	payload := []byte{byte(PlatformNostr), 1, 'x'}
	var nonce [8]byte
	binary.LittleEndian.PutUint64(nonce[:], 42)
	payload = append(payload, nonce[:]...)

	v, err := ParseVerify(payload)
	require.NoError(t, err)
	require.Equal(t, uint64(42), v.Nonce)
}

func TestUnknownPlatformRejected(t *testing.T) {
	_, err := ParseUnlink([]byte{0xFF, 0})
	require.ErrorIs(t, err, ErrUnknownPlatform)
}

func TestPostHasContent(t *testing.T) {
	p := Post{Content: ""}
	require.False(t, p.HasContent())
	p.Content = "hi"
	require.True(t, p.HasContent())
}
