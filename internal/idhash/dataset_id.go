package idhash

import (
	"crypto/sha256"
	"fmt"

	"github.com/mr-tron/base58"
)

// ComputeDatasetFingerprint computes a deterministic fingerprint of one
// fetched dataset. Formula: SHA256(period|strategy_tag|content).
// Returns the base58-encoded hash.
func ComputeDatasetFingerprint(period, strategyTag, content string) string {
	data := fmt.Sprintf("%s|%s|%s", period, strategyTag, content)
	hash := sha256.Sum256([]byte(data))
	return base58.Encode(hash[:])
}

// Short returns the first n characters of a fingerprint for display.
func Short(fingerprint string, n int) string {
	if n <= 0 || len(fingerprint) <= n {
		return fingerprint
	}
	return fingerprint[:n]
}
