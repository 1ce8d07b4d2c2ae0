package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// CacheKey computes a deterministic response-cache key using SHA256.
// Formula: SHA256(service|address|k1=v1|k2=v2...) with params sorted by key,
// so the order in which callers build params does not matter.
// Returns "<service>:" followed by the hex-encoded hash.
func CacheKey(service, address string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+2)
	parts = append(parts, service, address)
	for _, k := range keys {
		parts = append(parts, k+"="+params[k])
	}

	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return service + ":" + hex.EncodeToString(hash[:])
}
