package imap

import (
	"log/slog"
	"strings"
)

// parseFunc is the signature every command-specific parse routine
// implements. lines is the raw response blob split on LF with a
// trailing CR stripped from each (FETCH is the one exception — see
// parse_fetch.go — because its literals may contain embedded LF bytes that
// must not be mistaken for line breaks).
type parseFunc func(p *parseState) (*Response, error)

// parseState carries everything a parse routine needs: the untagged
// lines plus tagged terminator, the tag being matched, and the
// original outgoing command line (SELECT/EXAMINE need it for the
// mailbox name, per spec §4.3).
type parseState struct {
	kind    CommandKind
	tag     string
	cmdLine string
	blob    string
	lines   []string
	logger  *slog.Logger
}

// dispatch is the compile-time constant command-kind → parse-routine
// table (spec §9: no lazily-initialised mutable global). Commands not
// present here fall through to parseDefault in Parse.
var dispatch = map[CommandKind]parseFunc{
	CmdSelect:     parseSelectExamine,
	CmdExamine:    parseSelectExamine,
	CmdSearch:     parseSearch,
	CmdList:       parseListLSub,
	CmdLSub:       parseListLSub,
	CmdStatus:     parseStatus,
	CmdExpunge:    parseExpunge,
	CmdStore:      parseStore,
	CmdCapability: parseCapability,
	CmdNoop:       parseNoopIdle,
	CmdIdle:       parseNoopIdle,
	CmdFetch:      parseFetch,
	CmdLogout:     parseLogout,
}

// Parse turns a raw response blob into a typed Response. tag is the
// issuer-assigned tag (without the "<tag> " separator) the blob's
// terminating line must carry; kind is the command-kind dispatch hint
// (already resolved through the "UID <verb>" rule, per spec §4.2);
// cmdLine is the original outgoing command text (without tag), used by
// SELECT/EXAMINE to recover the mailbox name. logger may be nil.
func Parse(blob string, kind CommandKind, tag string, cmdLine string, logger *slog.Logger) (*Response, error) {
	if logger == nil {
		logger = slog.Default()
	}
	state := &parseState{
		kind:    kind,
		tag:     tag,
		cmdLine: cmdLine,
		blob:    blob,
		lines:   splitLines(blob),
		logger:  logger,
	}

	fn, ok := dispatch[kind]
	if !ok {
		fn = parseDefault
	}
	return fn(state)
}

// commonLineKind classifies a line against the rules shared by every
// parse routine (spec §4.3 "Common status-line recognition").
type commonLineKind int

const (
	lineOther commonLineKind = iota
	lineTaggedOK
	lineTaggedNO
	lineTaggedBAD
	lineBye
	lineServerWarning // untagged "* NO"/"* BAD": logged, parsing continues
)

// classifyCommon checks line against the tagged-status and untagged-BYE
// / untagged-warning rules. The returned message is the full line for
// every recognised kind, and empty for lineOther.
func classifyCommon(line, tag string) (commonLineKind, string) {
	trimmed := strings.TrimLeft(line, " \t")

	if hasPrefixFold(trimmed, tag+" ") {
		rest := strings.TrimLeft(trimmed[len(tag)+1:], " \t")
		switch {
		case hasPrefixFold(rest, "OK"):
			return lineTaggedOK, line
		case hasPrefixFold(rest, "NO"):
			return lineTaggedNO, line
		case hasPrefixFold(rest, "BAD"):
			return lineTaggedBAD, line
		}
		return lineOther, ""
	}

	if hasPrefixFold(trimmed, "* BYE") {
		return lineBye, line
	}
	if hasPrefixFold(trimmed, "* NO") || hasPrefixFold(trimmed, "* BAD") {
		return lineServerWarning, line
	}

	return lineOther, ""
}

// applyCommon applies classifyCommon to line and, if recognised,
// updates resp accordingly. It returns true if the line was consumed
// by a common rule (the caller's per-command loop should not try to
// interpret it further) and isTerminal=true once a tagged status line
// has been seen (the caller's loop should stop).
func applyCommon(resp *Response, line, tag string, logger *slog.Logger) (consumed, isTerminal bool) {
	kind, msg := classifyCommon(line, tag)
	switch kind {
	case lineTaggedOK:
		resp.Status = StatusOK
		resp.Message = msg
		return true, true
	case lineTaggedNO:
		resp.Status = StatusNO
		resp.Message = msg
		return true, true
	case lineTaggedBAD:
		resp.Status = StatusBAD
		resp.Message = msg
		return true, true
	case lineBye:
		resp.ByeSeen = true
		resp.RawLines = append(resp.RawLines, msg)
		return true, false
	case lineServerWarning:
		logger.Warn("server sent untagged warning", "line", msg)
		return true, false
	default:
		return false, false
	}
}

// parseDefault handles every command kind without a dedicated routine:
// it only extracts the tagged status line (and tracks BYE), matching
// spec §4.3's "Commands not in the table use a default routine that
// only extracts the status line."
func parseDefault(p *parseState) (*Response, error) {
	resp := newResponse(p.kind)
	for _, line := range p.lines {
		consumed, terminal := applyCommon(resp, line, p.tag, p.logger)
		if terminal {
			return resp, nil
		}
		if !consumed {
			// Non-status lines are ignored by the default routine; it
			// makes no attempt to interpret unrecognised command
			// payloads, per spec §4.3.
			continue
		}
	}
	return nil, &ParseError{Command: p.kind, Reason: "missing tagged terminator"}
}
