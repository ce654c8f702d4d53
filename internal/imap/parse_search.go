package imap

import (
	"strconv"
	"strings"
)

// parseSearch implements the SEARCH routine (spec §4.3): each untagged
// "* SEARCH" line supplies zero or more whitespace-separated decimal
// indices, appended in order.
func parseSearch(p *parseState) (*Response, error) {
	resp := newResponse(p.kind)

	for _, line := range p.lines {
		consumed, terminal := applyCommon(resp, line, p.tag, p.logger)
		if terminal {
			return resp, nil
		}
		if consumed {
			continue
		}
		if !hasPrefixFold(line, "* SEARCH") {
			continue
		}
		rest := line[len("* SEARCH"):]
		for _, tok := range strings.Fields(rest) {
			n, err := strconv.ParseUint(tok, 10, 64)
			if err != nil {
				return nil, &ParseError{Command: p.kind, Reason: "non-numeric SEARCH index", Line: line}
			}
			resp.Indices = append(resp.Indices, n)
		}
	}

	return nil, &ParseError{Command: p.kind, Reason: "missing tagged terminator"}
}
