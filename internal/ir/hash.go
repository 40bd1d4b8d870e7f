package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainTrace prefixes trace hashes. The version suffix allows the
// algorithm to change without colliding with older hashes.
const DomainTrace = "knifehit/trace/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// TraceHash computes a stable identity for an event trace.
// Two runs with the same seed, tuning and inputs produce the same hash.
func TraceHash(events []TraceEvent) (string, error) {
	list := make([]any, len(events))
	for i, ev := range events {
		list[i] = ev.Object()
	}
	canonical, err := MarshalCanonical(list)
	if err != nil {
		return "", fmt.Errorf("TraceHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainTrace, canonical), nil
}
