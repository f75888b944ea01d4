package util

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID returns a random 128-bit hex ID, optionally prefixed ("qst_...",
// "rpt_...", "ans_..."). Answer tokens use the same generator, so token
// values are unguessable.
func NewID(prefix string) string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)
	if prefix == "" {
		return hex.EncodeToString(bytes)
	}
	return prefix + "_" + hex.EncodeToString(bytes)
}
