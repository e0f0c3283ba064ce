package cacheinfra

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// KeySeparator delimits cache key segments.
const KeySeparator = "::"

// maxKeyLen caps key length before the tail collapses to a digest. Keys stay
// prefix-addressable by their first segment either way, so prefix-based
// invalidation keeps working.
const maxKeyLen = 256

// Key builds a deterministic cache key from its parts. Equal parts always
// produce equal keys; over-long keys keep their first segment and replace
// the rest with an xxhash digest.
func Key(parts ...string) string {
	if len(parts) == 0 {
		return ""
	}

	key := strings.Join(parts, KeySeparator)
	if len(key) <= maxKeyLen {
		return key
	}
	return parts[0] + KeySeparator + "x" + strconv.FormatUint(xxhash.Sum64String(key), 16)
}
