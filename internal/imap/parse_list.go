package imap

import "strings"

// parseListLSub implements the LIST/LSUB routine (spec §4.3).
func parseListLSub(p *parseState) (*Response, error) {
	resp := newResponse(p.kind)
	verb := p.kind.String() // "LIST" or "LSUB"

	for _, line := range p.lines {
		consumed, terminal := applyCommon(resp, line, p.tag, p.logger)
		if terminal {
			return resp, nil
		}
		if consumed {
			continue
		}
		if !hasPrefixFold(line, "* "+verb) {
			continue
		}

		listing, ok := parseListingLine(line, verb)
		if !ok {
			return nil, &ParseError{Command: p.kind, Reason: "malformed " + verb + " line", Line: line}
		}
		resp.Listings = append(resp.Listings, listing)
	}

	return nil, &ParseError{Command: p.kind, Reason: "missing tagged terminator"}
}

func parseListingLine(line, verb string) (Listing, bool) {
	attrs, ok := extractParenAfter(line, verb)
	if !ok {
		return Listing{}, false
	}

	after := line[strings.Index(line, attrs)+len(attrs):]
	firstQuote := strings.IndexByte(after, '"')
	if firstQuote < 0 || firstQuote+1 >= len(after) {
		return Listing{}, false
	}
	delim := after[firstQuote+1]

	// The mailbox name is the trailing whitespace-separated token,
	// quotes preserved as-is (spec §4.3: "If the mailbox name is
	// quoted, preserve the quotes.").
	mailbox := lastField(line)

	return Listing{Attributes: attrs, Delimiter: delim, Mailbox: mailbox}, true
}
