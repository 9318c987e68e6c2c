package memo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	msg := SocialMessage{Type: TypePost, Version: 1, Payload: []byte("hello")}
	encoded := Encode(msg)

	parsed, err := Parse(encoded)
	require.NoError(t, err)
	require.Equal(t, msg, parsed)
}

func TestParseUnknownType(t *testing.T) {
	_, err := Parse([]byte{0xFF, 0x01})
	require.ErrorIs(t, err, ErrUnknownType)
}

func TestParseTruncated(t *testing.T) {
	_, err := Parse(nil)
	require.ErrorIs(t, err, ErrTruncated)

	_, err = Parse([]byte{byte(TypePost)})
	require.ErrorIs(t, err, ErrTruncated)
}

func TestValueTransferFlags(t *testing.T) {
	require.True(t, TypeTip.IsValueTransfer())
	require.True(t, TypeAttentionBoost.IsValueTransfer())
	require.True(t, TypeReport.IsValueTransfer())
	require.False(t, TypePost.IsValueTransfer())
}
