package object

import (
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	// RawHashSize is the width of a hash inside a tree entry.
	RawHashSize = 20
	// HexHashSize is the width of a hex-encoded hash.
	HexHashSize = 2 * RawHashSize
)

// Hash is a 40-character lowercase hex-encoded SHA-1 object id.
type Hash string

// HashFromBytes encodes a raw 20-byte object id.
func HashFromBytes(raw []byte) (Hash, error) {
	if len(raw) != RawHashSize {
		return "", fmt.Errorf("hash: want %d raw bytes, got %d", RawHashSize, len(raw))
	}
	return Hash(hex.EncodeToString(raw)), nil
}

// ParseHash validates a full hex object id and normalizes it to lowercase.
func ParseHash(s string) (Hash, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != HexHashSize || !isHex(s) {
		return "", fmt.Errorf("hash: invalid object id %q", s)
	}
	return Hash(s), nil
}

// HasPrefix reports whether p is a prefix of h.
func (h Hash) HasPrefix(p Prefix) bool {
	return strings.HasPrefix(string(h), string(p))
}

// Short returns the first 8 characters of h.
func (h Hash) Short() string {
	if len(h) > 8 {
		return string(h[:8])
	}
	return string(h)
}

// Prefix is a validated, lowercase, 1 to 40 character hex search prefix.
type Prefix string

// ParsePrefix validates a user-supplied abbreviated hash.
func ParsePrefix(s string) (Prefix, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidPrefix)
	}
	if len(s) > HexHashSize {
		return "", fmt.Errorf("%w: %q is longer than %d characters", ErrInvalidPrefix, s, HexHashSize)
	}
	if !isHex(s) {
		return "", fmt.Errorf("%w: %q is not hexadecimal", ErrInvalidPrefix, s)
	}
	return Prefix(s), nil
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
