package imap

// selectItemOrder is the fixed testing order from spec §4.3: "Each
// untagged line is tested, in order, for the presence of the tokens...".
// Testing FLAGS before PERMANENTFLAGS is safe because word-boundary
// matching never matches FLAGS inside PERMANENTFLAGS.
var selectItemOrder = []string{
	"FLAGS", "PERMANENTFLAGS", "UIDVALIDITY", "UIDNEXT",
	"HIGHESTMODSEQ", "CAPABILITY", "UNSEEN", "EXISTS", "RECENT",
}

// parseSelectExamine implements the SELECT/EXAMINE routine (spec §4.3).
func parseSelectExamine(p *parseState) (*Response, error) {
	resp := newResponse(p.kind)
	resp.MailboxItems = make(map[string]string)
	resp.Mailbox = unquote(lastField(p.cmdLine))

	for _, line := range p.lines {
		consumed, terminal := applyCommon(resp, line, p.tag, p.logger)
		if terminal {
			resp.AccessMode = extractAccessMode(line)
			return resp, nil
		}
		if consumed {
			continue
		}

		// Lines matching none of the recognised item tokens are
		// informational (e.g. an untagged "* OK" banner) and are
		// skipped rather than treated as a grammar violation — the
		// item-token list is closed, but arbitrary server chatter
		// around it is not.
		classifySelectLine(resp, line)
	}

	return nil, &ParseError{Command: p.kind, Reason: "missing tagged terminator"}
}

// classifySelectLine tests line against selectItemOrder and records the
// first match into resp.MailboxItems. Returns false if nothing matched
// and the line isn't otherwise recognisable (an empty line is ignored).
func classifySelectLine(resp *Response, line string) bool {
	if len(line) == 0 {
		return true
	}

	for _, item := range selectItemOrder {
		switch item {
		case "FLAGS", "PERMANENTFLAGS":
			if val, ok := extractParenAfter(line, item); ok {
				resp.MailboxItems[item] = val
				return true
			}
		case "UIDVALIDITY", "UIDNEXT", "HIGHESTMODSEQ", "UNSEEN":
			if n, ok := extractBracketNumber(line, item); ok {
				resp.MailboxItems[item] = uitoa(n)
				return true
			}
		case "CAPABILITY":
			if val, ok := extractBracketValue(line, item); ok {
				resp.MailboxItems[item] = val
				return true
			}
		case "EXISTS", "RECENT":
			if n, ok := extractNumberBefore(line, item); ok {
				resp.MailboxItems[item] = uitoa(n)
				return true
			}
		}
	}
	return false
}
