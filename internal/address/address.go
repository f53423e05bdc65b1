// Package address validates candidate Solana account identifiers and picks
// them out of free-form chat text.
package address

import (
	"strings"

	"github.com/mr-tron/base58"
)

// Base58-encoded 32-byte public keys render to 32-44 characters.
const (
	minLen = 32
	maxLen = 44
)

// Valid reports whether token looks like a Solana account address: base-58
// alphabet only (no 0, O, I or l) and length between 32 and 44 inclusive.
// It does not check that the account exists on chain.
func Valid(token string) bool {
	if len(token) < minLen || len(token) > maxLen {
		return false
	}
	_, err := base58.Decode(token)
	return err == nil
}

// Extract scans free-form text token by token and returns the first valid
// address. The second return value is false when the text contains none.
func Extract(text string) (string, bool) {
	for _, word := range strings.Fields(text) {
		if Valid(word) {
			return word, true
		}
	}
	return "", false
}
