package helpers

import (
	"encoding/base64"
	"errors"
	"strings"
)

var ErrNotDataURI = errors.New("not a data URI")

// IsDataURI reports whether s looks like an RFC 2397 data URI.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// ParseDataURI decodes a base64 data URI ("data:image/png;base64,...")
// into its media type and raw bytes.
func ParseDataURI(s string) (contentType string, data []byte, err error) {
	if !IsDataURI(s) {
		return "", nil, ErrNotDataURI
	}
	rest := strings.TrimPrefix(s, "data:")
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	if !strings.HasSuffix(meta, ";base64") {
		return "", nil, errors.New("unsupported data URI encoding")
	}
	contentType = strings.TrimSuffix(meta, ";base64")
	if contentType == "" {
		contentType = "image/png"
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, err
	}
	return contentType, data, nil
}
