package imap

import (
	"strconv"
	"strings"
)

// uitoa formats a uint64 as a decimal string.
func uitoa(n uint64) string {
	return strconv.FormatUint(n, 10)
}

// hasPrefixFold reports whether s begins with prefix, ignoring case.
// Spec §9 calls for centralising case-insensitive matching into one
// primitive instead of the ad-hoc per-comparison approach the
// reference implementation used.
func hasPrefixFold(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	return strings.EqualFold(s[:len(prefix)], prefix)
}

// containsFold reports whether substr occurs in s, ignoring case.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToUpper(s), strings.ToUpper(substr))
}

// stripCR removes a single trailing CR, as left after splitting a raw
// blob on LF.
func stripCR(line string) string {
	return strings.TrimSuffix(line, "\r")
}

// splitLines splits a raw response blob into lines on LF, stripping a
// trailing CR from each. The final empty segment produced by a
// trailing terminator is dropped, matching bufio.Scanner's behaviour.
func splitLines(blob string) []string {
	raw := strings.Split(blob, "\n")
	if len(raw) > 0 && raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = stripCR(l)
	}
	return lines
}

// unquote strips a single pair of surrounding double quotes, if
// present. Used for mailbox names, which spec §4.3 says are taken
// "with surrounding double quotes stripped".
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// lastField returns the last whitespace-separated token of s.
func lastField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
