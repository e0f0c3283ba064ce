package mapper

import (
	"sort"
	"strings"
)

// Tag and metadata columns persist as canonical strings: elements
// deduplicated, sorted, reserved characters escaped, then delimiter-joined.
// Sorting makes the encoding independent of map and slice iteration order,
// so equal sets always produce equal bytes and the round-trip law holds.
//
// The empty set encodes to the empty string. Absence is expressed by a NULL
// column, never by the encoding itself.

const (
	tagSeparator  = ","
	pairSeparator = ";"
	kvSeparator   = "="
	escapeChar    = '\\'
)

func encodeTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}

	uniq := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		uniq = append(uniq, t)
	}
	sort.Strings(uniq)

	for i, t := range uniq {
		uniq[i] = escapeToken(t, tagSeparator)
	}
	return strings.Join(uniq, tagSeparator)
}

func decodeTags(encoded string) []string {
	if encoded == "" {
		return nil
	}
	parts := splitEscaped(encoded, tagSeparator[0])
	tags := make([]string, len(parts))
	for i, p := range parts {
		tags[i] = unescapeToken(p)
	}
	return tags
}

func encodeMetadata(meta map[string]string) string {
	if len(meta) == 0 {
		return ""
	}

	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = escapeToken(k, pairSeparator+kvSeparator) + kvSeparator + escapeToken(meta[k], pairSeparator+kvSeparator)
	}
	return strings.Join(pairs, pairSeparator)
}

func decodeMetadata(encoded string) map[string]string {
	if encoded == "" {
		return nil
	}

	pairs := splitEscaped(encoded, pairSeparator[0])
	meta := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		kv := splitEscaped(pair, kvSeparator[0])
		if len(kv) != 2 {
			// Malformed pair; keep what we can rather than fail the row.
			continue
		}
		meta[unescapeToken(kv[0])] = unescapeToken(kv[1])
	}
	return meta
}

// escapeToken prefixes the escape character before itself and any rune in
// specials.
func escapeToken(s, specials string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == escapeChar || strings.ContainsRune(specials, r) {
			b.WriteByte(escapeChar)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// splitEscaped splits s on unescaped sep, leaving escape sequences intact so
// nested splits still see their boundaries.
func splitEscaped(s string, sep byte) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case escapeChar:
			i++
		case sep:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

func unescapeToken(s string) string {
	if !strings.ContainsRune(s, escapeChar) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == escapeChar && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
