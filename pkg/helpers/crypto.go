package helpers

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 digest of text. Deterministic and
// fixed-length; used for password digests and generated credentials.
func Hash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Encode packs text into an opaque URL-safe string.
func Encode(text string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(text))
}

// Decode reverses Encode. Decode(Encode(s)) == s for every string s.
func Decode(opaque string) (string, error) {
	b, err := base64.RawURLEncoding.DecodeString(opaque)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type verificationPayload struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// EncodeVerification packs an email/token pair into a single URL path
// segment for the emailed verification link.
func EncodeVerification(email, token string) string {
	b, _ := json.Marshal(verificationPayload{Email: email, Token: token})
	return Encode(string(b))
}

// DecodeVerification unpacks a segment produced by EncodeVerification.
func DecodeVerification(opaque string) (email string, token string, err error) {
	raw, err := Decode(opaque)
	if err != nil {
		return "", "", err
	}
	var p verificationPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return "", "", err
	}
	return p.Email, p.Token, nil
}

// GenToken returns n random bytes as a URL-safe string.
func GenToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
