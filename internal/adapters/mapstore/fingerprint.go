package mapstore

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns the content fingerprint of raw map data. Equal
// fingerprints mean the stored map did not change, so the facility version
// must not advance.
func Fingerprint(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// FormatFingerprint renders a fingerprint as 16 lowercase hex digits.
func FormatFingerprint(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}
