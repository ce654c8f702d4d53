package imap

import (
	"regexp"
	"strconv"
	"strings"
)

// wordBoundary finds the index of the first word-boundary occurrence
// of keyword in line, case-insensitively, or -1. A word boundary means
// the character before the match (if any) is not a letter/digit/dot —
// this is what keeps "FLAGS" from matching inside "PERMANENTFLAGS".
func wordBoundary(line, keyword string) int {
	re := regexp.MustCompile(`(?i)(^|[^A-Za-z0-9.])(` + regexp.QuoteMeta(keyword) + `)\b`)
	loc := re.FindStringSubmatchIndex(line)
	if loc == nil {
		return -1
	}
	// loc[4], loc[5] bound the keyword group.
	return loc[4]
}

// extractParenAfter locates keyword (word-boundary match) in line, then
// returns the balanced parenthesised list that follows it, including
// the surrounding parentheses.
func extractParenAfter(line, keyword string) (string, bool) {
	idx := wordBoundary(line, keyword)
	if idx < 0 {
		return "", false
	}
	open := strings.IndexByte(line[idx:], '(')
	if open < 0 {
		return "", false
	}
	open += idx
	depth := 0
	for i := open; i < len(line); i++ {
		switch line[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return line[open : i+1], true
			}
		}
	}
	return "", false
}

// extractBracketValue locates "[<keyword> " in line and returns the
// text up to (not including) the matching "]", trimmed.
func extractBracketValue(line, keyword string) (string, bool) {
	re := regexp.MustCompile(`(?i)\[\s*` + regexp.QuoteMeta(keyword) + `\s*([^\]]*)\]`)
	m := re.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// extractBracketNumber is extractBracketValue restricted to the first
// decimal run in the bracketed value.
func extractBracketNumber(line, keyword string) (uint64, bool) {
	val, ok := extractBracketValue(line, keyword)
	if !ok {
		return 0, false
	}
	fields := strings.Fields(val)
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// extractNumberBefore returns the whitespace-separated token
// immediately preceding keyword's word-boundary occurrence, parsed as
// a decimal. Matches lines like "* 172 EXISTS".
func extractNumberBefore(line, keyword string) (uint64, bool) {
	idx := wordBoundary(line, keyword)
	if idx < 0 {
		return 0, false
	}
	before := strings.TrimSpace(line[:idx])
	fields := strings.Fields(before)
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.ParseUint(fields[len(fields)-1], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

var accessModeRe = regexp.MustCompile(`(?i)\[(READ-ONLY|READ-WRITE)\]`)

// extractAccessMode extracts the bracketed access qualifier from a
// tagged SELECT/EXAMINE OK line, e.g. "A1 OK [READ-WRITE] SELECT done".
func extractAccessMode(line string) string {
	m := accessModeRe.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return strings.ToUpper(m[1])
}
