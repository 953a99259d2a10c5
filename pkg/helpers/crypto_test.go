package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashDeterministic(t *testing.T) {
	a := Hash("secret-input")
	b := Hash("secret-input")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, Hash("secret-inputx"))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, s := range []string{
		"",
		"hello",
		"user@example.com:tok/en+bits",
		"héllo wörld ✓",
		string([]byte{0, 1, 2, 255}),
	} {
		got, err := Decode(Encode(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode("!!not base64!!")
	assert.Error(t, err)
}

func TestEncodeVerificationRoundTrip(t *testing.T) {
	seg := EncodeVerification("member@example.com", "tok-123")
	assert.NotContains(t, seg, "/")

	email, token, err := DecodeVerification(seg)
	require.NoError(t, err)
	assert.Equal(t, "member@example.com", email)
	assert.Equal(t, "tok-123", token)
}

func TestDecodeVerificationRejectsNonJSON(t *testing.T) {
	_, _, err := DecodeVerification(Encode("not json"))
	assert.Error(t, err)
}

func TestGenTokenUnique(t *testing.T) {
	a, err := GenToken(32)
	require.NoError(t, err)
	b, err := GenToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.NotEmpty(t, a)
}
