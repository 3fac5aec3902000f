// Package commit produces answer commitments that the TreasureMap contract
// can verify with keccak256(abi.encodePacked(answer, salt, player)).
package commit

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

const (
	// SaltSize is the number of random bytes in a salt (bytes32 on-chain).
	SaltSize = 32
	// AddressLength is the length of a 0x-prefixed hex account address.
	AddressLength = 42
)

// ValidationError reports malformed commit material.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// GenerateSalt returns 32 cryptographically random bytes, hex-encoded without a 0x prefix.
func GenerateSalt() (string, error) {
	buf := make([]byte, SaltSize)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random salt: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashAnswer returns the 0x-prefixed Keccak-256 of the UTF-8 answer bytes,
// equal to Solidity's keccak256(bytes(answer)).
func HashAnswer(answer string) string {
	return keccakHex([]byte(answer))
}

// GenerateCommitHash tightly packs answer, salt and address and hashes them.
// No length prefixes or separators are inserted between the fields.
func GenerateCommitHash(answer, salt, address string) (string, error) {
	saltBytes, err := decodeHex(salt)
	if err != nil {
		return "", &ValidationError{Field: "salt", Err: err}
	}
	addressBytes, err := decodeHex(address)
	if err != nil {
		return "", &ValidationError{Field: "address", Err: err}
	}

	packed := make([]byte, 0, len(answer)+len(saltBytes)+len(addressBytes))
	packed = append(packed, answer...)
	packed = append(packed, saltBytes...)
	packed = append(packed, addressBytes...)
	return keccakHex(packed), nil
}

// ValidateAddressFormat reports whether address is 0x followed by exactly 40 hex digits.
func ValidateAddressFormat(address string) bool {
	if address == "" || !strings.HasPrefix(address, "0x") || len(address) != AddressLength {
		return false
	}
	for _, r := range address[2:] {
		if !isHexDigit(r) {
			return false
		}
	}
	return true
}

func decodeHex(raw string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(raw), "0x"))
}

func keccakHex(data []byte) string {
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write(data)
	return "0x" + hex.EncodeToString(h.Sum(nil))
}

func isHexDigit(r rune) bool {
	return ('0' <= r && r <= '9') || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}
